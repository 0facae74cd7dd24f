package engine

import (
	"context"
	"sync"
	"time"

	eventpublisherv1 "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/event-publisher/v1"
	orderreaderv1 "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/order-reader/v1"
	orderbookv1 "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/orderbook/v1"
	snapshotv1 "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/snapshot/v1"
	"github.com/hyyu189/SVM-CLOB-sub000/internal/usecase/depth"
	"github.com/hyyu189/SVM-CLOB-sub000/pkg/config"
	"github.com/hyyu189/SVM-CLOB-sub000/pkg/errors"
	"github.com/hyyu189/SVM-CLOB-sub000/pkg/logger"
	"go.uber.org/zap/zapcore"
)

// Engine is the single-writer service shell around the order book. It owns
// the only goroutine that mutates the book, reads commands from the order
// stream, broadcasts the resulting events, and snapshots the book so a
// restart can resume from the recorded stream offset.
type Engine struct {
	// Core components
	book           orderbookv1.Book
	orderReader    orderreaderv1.OrderReader
	eventPublisher eventpublisherv1.EventPublisher
	snapshotStore  snapshotv1.Store
	depth          *depth.Aggregator
	logger         *logger.Logger
	config         *config.Config

	// Offset state shared between the processor and the snapshot manager
	mu                 sync.RWMutex
	commandOffset      int64
	lastSnapshotOffset int64

	// Shutdown coordination
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Configuration
	snapshotInterval     time.Duration
	snapshotCommandDelta int64
	expirySweepInterval  time.Duration
	depthLevels          int

	// Trade statistics
	totalTrades int64
	tradesMutex sync.RWMutex
}

// NewEngine creates a new instance of Engine with the provided dependencies.
func NewEngine(
	book orderbookv1.Book,
	orderReader orderreaderv1.OrderReader,
	eventPublisher eventpublisherv1.EventPublisher,
	snapshotStore snapshotv1.Store,
	logger *logger.Logger,
	config *config.Config,
) *Engine {
	return NewEngineWithOptions(book, orderReader, eventPublisher, snapshotStore, logger, config, DefaultEngineOptions())
}

// NewEngineWithOptions creates a new engine with custom options.
func NewEngineWithOptions(
	book orderbookv1.Book,
	orderReader orderreaderv1.OrderReader,
	eventPublisher eventpublisherv1.EventPublisher,
	snapshotStore snapshotv1.Store,
	logger *logger.Logger,
	config *config.Config,
	options *Options,
) *Engine {
	e := &Engine{
		book:           book,
		orderReader:    orderReader,
		eventPublisher: eventPublisher,
		snapshotStore:  snapshotStore,
		depth:          depth.NewAggregator(book),
		logger:         logger,
		config:         config,

		snapshotInterval:     options.SnapshotInterval,
		snapshotCommandDelta: options.SnapshotCommandDelta,
		expirySweepInterval:  options.ExpirySweepInterval,
		depthLevels:          options.DepthLevels,
		commandOffset:        -1,
	}

	// Restore the book before any command is processed
	if err := e.loadSnapshot(context.Background()); err != nil {
		e.logger.GetZap().Fatal("Failed to load snapshot", zapcore.Field{
			Key:       "error",
			Interface: err,
		})
	}

	return e
}

// Start initializes the engine and starts processing routines.
func (e *Engine) Start(ctx context.Context) error {
	e.ctx, e.cancel = context.WithCancel(ctx)

	e.wg.Add(3)
	go e.runCommandProcessor()
	go e.runSnapshotManager()
	go e.runExpirySweeper()

	e.logger.Info("Matching engine started", logger.Field{
		Key:   "pair",
		Value: e.config.Pair,
	})

	return nil
}

// Stop gracefully shuts down the engine.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	// Wait for goroutines to finish with timeout
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("Matching engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

// runCommandProcessor is the single writer: it reads commands from the order
// stream and applies them to the book one at a time.
func (e *Engine) runCommandProcessor() {
	defer e.wg.Done()

	e.logger.Info("Starting command processor", logger.Field{
		Key:   "pair",
		Value: e.config.Pair,
	})

	// Resume one past the offset captured in the restored snapshot
	currentOffset := e.getCommandOffset()
	if currentOffset > 0 {
		currentOffset++
	}

	if err := e.orderReader.SetOffset(currentOffset); err != nil {
		e.logger.GetZap().Fatal("Failed to set offset for order reader", zapcore.Field{
			Key:       "error",
			Interface: err,
		})
	}

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Command processor shutting down")
			e.orderReader.Close()
			return
		default:
			msg, cmd, err := e.orderReader.ReadMessage(e.ctx)
			if err != nil {
				e.logger.ErrorContext(e.ctx, err, logger.Field{
					Key:   "action",
					Value: "read_command",
				})
				time.Sleep(100 * time.Millisecond)
				continue
			}

			if err := e.orderReader.CommitMessages(e.ctx, msg); err != nil {
				e.logger.ErrorContext(e.ctx, err, logger.Field{
					Key:   "action",
					Value: "commit_command",
				})
			}

			e.processCommand(cmd)

			e.setCommandOffset(msg.Offset)
		}
	}
}

// runSnapshotManager handles periodic snapshots.
func (e *Engine) runSnapshotManager() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.snapshotInterval)
	defer ticker.Stop()

	e.logger.Info("Starting snapshot manager")

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Snapshot manager shutting down")
			return
		case <-ticker.C:
			if e.shouldCreateSnapshot() {
				e.createAndStoreSnapshot()
			}
		}
	}
}

// runExpirySweeper cancels good-till-time orders whose expiry has passed.
func (e *Engine) runExpirySweeper() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.expirySweepInterval)
	defer ticker.Stop()

	e.logger.Info("Starting expiry sweeper")

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Expiry sweeper shutting down")
			return
		case now := <-ticker.C:
			expired := e.book.ExpireOrders(now.UnixNano())
			if len(expired) == 0 {
				continue
			}

			e.logger.Info("Expired resting orders", logger.Field{
				Key:   "count",
				Value: len(expired),
			})
			for _, order := range expired {
				e.publishOrderStatus(order)
			}
			e.publishBookUpdate()
		}
	}
}

// processCommand applies one command to the book and broadcasts the
// resulting events. Rejections are logged and skipped; they are part of
// normal operation and must not stall the stream.
func (e *Engine) processCommand(cmd *orderreaderv1.Command) {
	switch cmd.Type {
	case orderreaderv1.CommandTypePlace:
		if cmd.Place == nil {
			e.logger.Warn("Place command without payload", logger.Field{
				Key:   "offset",
				Value: cmd.Offset,
			})
			return
		}
		result, err := e.book.PlaceOrder(*cmd.Place)
		if err != nil {
			e.logRejection(cmd, err)
			return
		}
		e.publishTrades(result.Trades)
		e.publishOrderStatus(result.Order)
		for _, removed := range result.Removed {
			e.publishOrderStatus(removed)
		}
		e.publishBookUpdate()

	case orderreaderv1.CommandTypeCancel:
		if cmd.Cancel == nil {
			e.logger.Warn("Cancel command without payload", logger.Field{
				Key:   "offset",
				Value: cmd.Offset,
			})
			return
		}
		order, err := e.book.CancelOrder(cmd.Cancel.OrderID)
		if err != nil {
			e.logRejection(cmd, err)
			return
		}
		e.publishOrderStatus(order)
		e.publishBookUpdate()

	case orderreaderv1.CommandTypeModify:
		if cmd.Modify == nil {
			e.logger.Warn("Modify command without payload", logger.Field{
				Key:   "offset",
				Value: cmd.Offset,
			})
			return
		}
		result, err := e.book.ModifyOrder(*cmd.Modify)
		if err != nil {
			e.logRejection(cmd, err)
			return
		}
		e.publishTrades(result.Trades)
		e.publishOrderStatus(result.Order)
		for _, removed := range result.Removed {
			e.publishOrderStatus(removed)
		}
		e.publishBookUpdate()

	default:
		e.logger.Warn("Unknown command type", logger.Field{
			Key:   "type",
			Value: cmd.Type,
		}, logger.Field{
			Key:   "offset",
			Value: cmd.Offset,
		})
	}
}

// logRejection logs a rejected command with its error code.
func (e *Engine) logRejection(cmd *orderreaderv1.Command, err error) {
	e.logger.Warn("Command rejected",
		logger.Field{Key: "type", Value: cmd.Type},
		logger.Field{Key: "offset", Value: cmd.Offset},
		logger.Field{Key: "requestID", Value: cmd.RequestID},
		logger.Field{Key: "code", Value: errors.CodeOf(err)},
		logger.Field{Key: "reason", Value: err.Error()},
	)
}

// publishTrades broadcasts one event per trade and updates statistics.
func (e *Engine) publishTrades(trades []orderbookv1.Trade) {
	if len(trades) == 0 {
		return
	}

	e.tradesMutex.Lock()
	e.totalTrades += int64(len(trades))
	currentTotal := e.totalTrades
	e.tradesMutex.Unlock()

	e.logger.Info("Trades executed",
		logger.Field{Key: "tradeCount", Value: len(trades)},
		logger.Field{Key: "totalTrades", Value: currentTotal},
	)

	for i := range trades {
		trade := trades[i]
		event := &eventpublisherv1.Event{
			Type:      eventpublisherv1.EventTypeTradeExecuted,
			Pair:      e.config.Pair,
			Sequence:  trade.Sequence,
			Timestamp: trade.Timestamp,
			Trade:     &trade,
		}
		if err := e.eventPublisher.Publish(e.ctx, event); err != nil {
			e.logger.ErrorContext(e.ctx, err, logger.Field{
				Key:   "action",
				Value: "publish_trade",
			})
		}
	}
}

// publishOrderStatus broadcasts the current state of one order.
func (e *Engine) publishOrderStatus(order *orderbookv1.Order) {
	event := &eventpublisherv1.Event{
		Type:      eventpublisherv1.EventTypeOrderStatusChanged,
		Pair:      e.config.Pair,
		Sequence:  e.book.Sequence(),
		Timestamp: time.Now().UnixNano(),
		Order:     order,
	}
	if err := e.eventPublisher.Publish(e.ctx, event); err != nil {
		e.logger.ErrorContext(e.ctx, err, logger.Field{
			Key:   "action",
			Value: "publish_order_status",
		})
	}
}

// publishBookUpdate broadcasts the top of the book after a mutating command.
func (e *Engine) publishBookUpdate() {
	snap := e.depth.Snapshot(e.depthLevels)
	event := &eventpublisherv1.Event{
		Type:      eventpublisherv1.EventTypeOrderBookUpdate,
		Pair:      e.config.Pair,
		Sequence:  snap.Sequence,
		Timestamp: snap.Timestamp,
		Book: &eventpublisherv1.BookUpdate{
			Bids: snap.Bids,
			Asks: snap.Asks,
		},
	}
	if err := e.eventPublisher.Publish(e.ctx, event); err != nil {
		e.logger.ErrorContext(e.ctx, err, logger.Field{
			Key:   "action",
			Value: "publish_book_update",
		})
	}
}

// shouldCreateSnapshot checks if a snapshot should be created.
func (e *Engine) shouldCreateSnapshot() bool {
	e.mu.RLock()
	currentOffset := e.commandOffset
	lastSnapshotOffset := e.lastSnapshotOffset
	e.mu.RUnlock()

	if currentOffset <= 0 {
		return false
	}

	delta := currentOffset - lastSnapshotOffset
	return delta >= e.snapshotCommandDelta
}

// createAndStoreSnapshot creates and stores a snapshot.
func (e *Engine) createAndStoreSnapshot() {
	currentOffset := e.getCommandOffset()

	e.logger.Info("Creating snapshot", logger.Field{
		Key:   "commandOffset",
		Value: currentOffset,
	})

	snapshot := e.book.CreateSnapshot()
	snapshot.CommandOffset = currentOffset

	if err := e.snapshotStore.Store(e.ctx, snapshot); err != nil {
		e.logger.ErrorContext(e.ctx, err, logger.Field{
			Key:   "action",
			Value: "store_snapshot",
		})
	} else {
		e.setLastSnapshotOffset(currentOffset)
		e.logger.Info("Snapshot stored successfully", logger.Field{
			Key:   "pair",
			Value: e.config.Pair,
		}, logger.Field{
			Key:   "offset",
			Value: currentOffset,
		})
	}
}

// Thread-safe getters and setters
func (e *Engine) getCommandOffset() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.commandOffset
}

func (e *Engine) setCommandOffset(offset int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.commandOffset = offset
}

func (e *Engine) getLastSnapshotOffset() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastSnapshotOffset
}

func (e *Engine) setLastSnapshotOffset(offset int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSnapshotOffset = offset
}

// loadSnapshot loads and restores the book from the latest snapshot.
func (e *Engine) loadSnapshot(ctx context.Context) error {
	snapshot, err := e.snapshotStore.Load(ctx)
	if err != nil {
		return err
	}

	if snapshot != nil {
		if err := e.book.Restore(snapshot); err != nil {
			return err
		}
		e.mu.Lock()
		e.commandOffset = snapshot.CommandOffset
		e.lastSnapshotOffset = snapshot.CommandOffset
		e.mu.Unlock()

		e.logger.Info("Book restored from snapshot", logger.Field{
			Key:   "commandOffset",
			Value: snapshot.CommandOffset,
		}, logger.Field{
			Key:   "sequence",
			Value: e.book.Sequence(),
		})
	}

	return nil
}

// GetCommandOffset returns the current command offset.
func (e *Engine) GetCommandOffset() int64 {
	return e.getCommandOffset()
}

// GetLastSnapshotOffset returns the last snapshot offset.
func (e *Engine) GetLastSnapshotOffset() int64 {
	return e.getLastSnapshotOffset()
}

// GetTotalTrades returns the total number of trades processed.
func (e *Engine) GetTotalTrades() int64 {
	e.tradesMutex.RLock()
	defer e.tradesMutex.RUnlock()
	return e.totalTrades
}
