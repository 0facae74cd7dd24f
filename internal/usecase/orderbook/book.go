package orderbook

import (
	"fmt"
	"sync"
	"time"

	orderbookv1 "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/orderbook/v1"
	snapshotv1 "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/snapshot/v1"
	"github.com/hyyu189/SVM-CLOB-sub000/pkg/errors"
	"github.com/oklog/ulid/v2"
)

// Config holds the per-market matching parameters. One Book is constructed
// per traded market; there is no shared or global engine state.
type Config struct {
	TickSize    int64
	MinQuantity int64
}

// Option customizes a Book at construction time.
type Option func(*Book)

// WithClock overrides the trade timestamp source.
func WithClock(now func() time.Time) Option {
	return func(b *Book) {
		b.now = now
	}
}

// Book is the matching engine for one market: the order lifecycle state
// machine and the crossing algorithm over a price-time priority ledger.
//
// All mutating commands are serialized through one mutex, so callers always
// observe the book between commands, never mid-match. Read-only queries take
// the read lock and copy out, so no caller ever holds a reference into
// ledger state across commands.
type Book struct {
	mu     sync.RWMutex
	cfg    Config
	ledger *Ledger
	tape   orderbookv1.TradeTape

	nextOrderID uint64
	seq         uint64
	now         func() time.Time
}

var _ orderbookv1.Book = (*Book)(nil)

// NewBook creates an empty book for one market.
func NewBook(cfg Config, tape orderbookv1.TradeTape, opts ...Option) *Book {
	if cfg.TickSize <= 0 {
		cfg.TickSize = 1
	}
	if cfg.MinQuantity <= 0 {
		cfg.MinQuantity = 1
	}

	b := &Book{
		cfg:         cfg,
		ledger:      NewLedger(),
		tape:        tape,
		nextOrderID: 1,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// PlaceOrder validates, matches, and possibly rests an incoming order. All
// validation happens before any ledger mutation; a rejected command leaves
// the book untouched and does not advance the sequence number.
func (b *Book) PlaceOrder(req orderbookv1.PlaceOrderRequest) (*orderbookv1.PlaceOrderResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.validatePlace(&req); err != nil {
		return nil, err
	}

	if req.Type == orderbookv1.OrderTypePostOnly && b.wouldCross(req.Side, req.Price) {
		return nil, orderbookv1.ErrWouldCross
	}

	// FOK is an all-or-nothing promise; partial side effects cannot be
	// rolled back once trades are emitted, so the check is a dry run.
	if req.TimeInForce == orderbookv1.FillOrKill && !b.fillable(&req) {
		return nil, orderbookv1.ErrFillOrKillUnsatisfiable
	}

	b.seq++
	clientOrderID := req.ClientOrderID
	if clientOrderID == "" {
		clientOrderID = ulid.Make().String()
	}
	order := &orderbookv1.Order{
		ID:                b.nextOrderID,
		ClientOrderID:     clientOrderID,
		Owner:             req.Owner,
		Side:              req.Side,
		Type:              req.Type,
		Price:             req.Price,
		OriginalQuantity:  req.Quantity,
		RemainingQuantity: req.Quantity,
		Status:            orderbookv1.StatusOpen,
		TimeInForce:       req.TimeInForce,
		ExpireAt:          req.ExpireAt,
		SelfTrade:         req.SelfTrade,
		CreatedSeq:        b.seq,
	}
	b.nextOrderID++

	trades, removed := b.match(order)
	b.resolveRemainder(order, len(trades) > 0)

	return &orderbookv1.PlaceOrderResult{
		Order:   order,
		Trades:  trades,
		Removed: removed,
	}, nil
}

// CancelOrder removes a resting order from the ledger. A second cancel on
// the same id fails with OrderNotFound; the first removal is the only
// effect either call ever has.
func (b *Book) CancelOrder(orderID uint64) (*orderbookv1.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	order, err := b.ledger.Remove(orderID)
	if err != nil {
		return nil, err
	}

	b.seq++
	order.Status = orderbookv1.StatusCancelled
	return order, nil
}

// ModifyOrder changes a resting order's price and/or quantity. A price
// change or a quantity increase is a cancel-then-reinsert at the back of the
// target level's queue, which re-runs matching in case the new price
// crosses. A pure quantity decrease is applied in place and keeps priority.
func (b *Book) ModifyOrder(req orderbookv1.ModifyOrderRequest) (*orderbookv1.ModifyOrderResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, exists := b.ledger.Entry(req.OrderID)
	if !exists {
		return nil, orderbookv1.ErrOrderNotFound
	}
	order := entry.Order
	if order.Status.Terminal() {
		return nil, orderbookv1.ErrOrderNotModifiable
	}

	if req.NewPrice != nil {
		if *req.NewPrice <= 0 {
			return nil, orderbookv1.ErrInvalidPrice
		}
		if *req.NewPrice%b.cfg.TickSize != 0 {
			return nil, orderbookv1.ErrPriceNotAligned
		}
	}
	if req.NewQuantity != nil && *req.NewQuantity <= 0 {
		return nil, orderbookv1.ErrInvalidQuantity
	}

	priceChanged := req.NewPrice != nil && *req.NewPrice != order.Price
	newQty := order.RemainingQuantity
	if req.NewQuantity != nil {
		newQty = *req.NewQuantity
	}
	delta := newQty - order.RemainingQuantity

	if !priceChanged && delta == 0 {
		return &orderbookv1.ModifyOrderResult{Order: order}, nil
	}

	b.seq++

	if !priceChanged && delta < 0 {
		// decrease in place, queue position preserved; the original shrinks
		// with the remainder so the filled amount stays constant
		if err := b.ledger.Decrement(order.ID, -delta); err != nil {
			return nil, err
		}
		order.OriginalQuantity += delta
		return &orderbookv1.ModifyOrderResult{Order: order}, nil
	}

	// cancel-then-reinsert: time priority resets, and the order may now
	// cross, so it goes back through the matching loop.
	if _, err := b.ledger.Remove(order.ID); err != nil {
		return nil, err
	}
	if req.NewPrice != nil {
		order.Price = *req.NewPrice
	}
	order.RemainingQuantity = newQty
	order.OriginalQuantity += delta
	order.CreatedSeq = b.seq

	trades, removed := b.match(order)
	b.resolveRemainder(order, order.FilledQuantity() > 0)

	return &orderbookv1.ModifyOrderResult{
		Order:   order,
		Trades:  trades,
		Removed: removed,
	}, nil
}

// ExpireOrders cancels resting GoodTillTime orders whose expiry is at or
// before now (unix nanos) and returns them.
func (b *Book) ExpireOrders(now int64) []*orderbookv1.Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	var expired []*orderbookv1.Order
	for _, side := range []orderbookv1.Side{orderbookv1.SideBid, orderbookv1.SideAsk} {
		b.ledger.ForEachOrder(side, func(order *orderbookv1.Order) bool {
			if order.TimeInForce == orderbookv1.GoodTillTime && order.ExpireAt > 0 && order.ExpireAt <= now {
				expired = append(expired, order)
			}
			return true
		})
	}

	if len(expired) == 0 {
		return nil
	}

	b.seq++
	for _, order := range expired {
		_, _ = b.ledger.Remove(order.ID)
		order.Status = orderbookv1.StatusCancelled
	}
	return expired
}

// Sequence returns the book's monotonic sequence number.
func (b *Book) Sequence() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.seq
}

// Levels returns up to max read-only price levels on one side, best first.
func (b *Book) Levels(side orderbookv1.Side, max int) []orderbookv1.LevelView {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ledger.Views(side, max)
}

// CreateSnapshot serializes every resting order, best level first and FIFO
// within a level.
func (b *Book) CreateSnapshot() *snapshotv1.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var bookOrders []snapshotv1.BookOrder
	for _, side := range []orderbookv1.Side{orderbookv1.SideBid, orderbookv1.SideAsk} {
		b.ledger.ForEachOrder(side, func(order *orderbookv1.Order) bool {
			bookOrders = append(bookOrders, snapshotv1.BookOrder{
				OrderID:           order.ID,
				ClientOrderID:     order.ClientOrderID,
				Owner:             order.Owner,
				Side:              string(order.Side),
				Type:              string(order.Type),
				Price:             order.Price,
				OriginalQuantity:  order.OriginalQuantity,
				RemainingQuantity: order.RemainingQuantity,
				TimeInForce:       string(order.TimeInForce),
				ExpireAt:          order.ExpireAt,
				SelfTrade:         string(order.SelfTrade),
				CreatedSeq:        order.CreatedSeq,
			})
			return true
		})
	}

	return &snapshotv1.Snapshot{
		OrderBookSnapshot: snapshotv1.OrderBookSnapshot{
			Orders:      bookOrders,
			Sequence:    b.seq,
			NextOrderID: b.nextOrderID,
		},
	}
}

// Restore replaces the book's state with a previously stored snapshot.
func (b *Book) Restore(snapshot *snapshotv1.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ledger := NewLedger()
	for _, bookOrder := range snapshot.OrderBookSnapshot.Orders {
		order := &orderbookv1.Order{
			ID:                bookOrder.OrderID,
			ClientOrderID:     bookOrder.ClientOrderID,
			Owner:             bookOrder.Owner,
			Side:              orderbookv1.Side(bookOrder.Side),
			Type:              orderbookv1.OrderType(bookOrder.Type),
			Price:             bookOrder.Price,
			OriginalQuantity:  bookOrder.OriginalQuantity,
			RemainingQuantity: bookOrder.RemainingQuantity,
			Status:            orderbookv1.StatusOpen,
			TimeInForce:       orderbookv1.TimeInForce(bookOrder.TimeInForce),
			ExpireAt:          bookOrder.ExpireAt,
			SelfTrade:         orderbookv1.SelfTradeBehavior(bookOrder.SelfTrade),
			CreatedSeq:        bookOrder.CreatedSeq,
		}
		if order.FilledQuantity() > 0 {
			order.Status = orderbookv1.StatusPartiallyFilled
		}
		if err := ledger.Insert(order); err != nil {
			return fmt.Errorf("failed to restore order %d: %w", bookOrder.OrderID, err)
		}
	}

	b.ledger = ledger
	b.seq = snapshot.OrderBookSnapshot.Sequence
	if snapshot.OrderBookSnapshot.NextOrderID > 0 {
		b.nextOrderID = snapshot.OrderBookSnapshot.NextOrderID
	}
	return nil
}

// Validate checks the cross-command invariants: ledger consistency and the
// book never resting crossed.
func (b *Book) Validate() error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.ledger.Validate(); err != nil {
		return err
	}

	bestBid, bestAsk := b.ledger.Best(orderbookv1.SideBid), b.ledger.Best(orderbookv1.SideAsk)
	if bestBid != nil && bestAsk != nil && bestBid.Price >= bestAsk.Price {
		return fmt.Errorf("book resting crossed: best bid %d >= best ask %d", bestBid.Price, bestAsk.Price)
	}
	return nil
}

func (b *Book) validatePlace(req *orderbookv1.PlaceOrderRequest) error {
	if req.TimeInForce == "" {
		req.TimeInForce = orderbookv1.GoodTillCancelled
	}
	if req.SelfTrade == "" {
		req.SelfTrade = orderbookv1.DecrementAndCancel
	}

	if req.Quantity <= 0 || req.Quantity < b.cfg.MinQuantity {
		return orderbookv1.ErrInvalidQuantity
	}

	switch req.Type {
	case orderbookv1.OrderTypeLimit, orderbookv1.OrderTypePostOnly:
		if req.Price <= 0 {
			return orderbookv1.ErrInvalidPrice
		}
		if req.Price%b.cfg.TickSize != 0 {
			return orderbookv1.ErrPriceNotAligned
		}
	case orderbookv1.OrderTypeMarket:
		req.Price = 0
	default:
		return errors.New(errors.GeneralBadRequestError, fmt.Sprintf("unknown order type %q", req.Type))
	}

	if req.TimeInForce == orderbookv1.GoodTillTime && req.ExpireAt <= 0 {
		return errors.New(errors.GeneralBadRequestError, "good-till-time order requires an expiry")
	}

	return nil
}

// crosses reports whether an incoming order at price can trade against an
// opposing level at levelPrice. Market orders cross any level.
func crosses(orderType orderbookv1.OrderType, side orderbookv1.Side, price, levelPrice int64) bool {
	if orderType == orderbookv1.OrderTypeMarket {
		return true
	}
	if side == orderbookv1.SideBid {
		return price >= levelPrice
	}
	return price <= levelPrice
}

func (b *Book) wouldCross(side orderbookv1.Side, price int64) bool {
	best := b.ledger.Best(side.Opposite())
	if best == nil {
		return false
	}
	return crosses(orderbookv1.OrderTypeLimit, side, price, best.Price)
}

// fillable is the FOK dry run: a non-mutating walk of the opposing book
// mirroring the matching loop, including self-trade outcomes, to decide
// whether the full quantity would execute.
func (b *Book) fillable(req *orderbookv1.PlaceOrderRequest) bool {
	remaining := req.Quantity
	blocked := false

	b.ledger.ForEachLevel(req.Side.Opposite(), func(level *orderbookv1.Level) bool {
		if !crosses(req.Type, req.Side, req.Price, level.Price) {
			return false
		}
		for e := level.Front(); e != nil; e = e.Next() {
			maker := e.Order
			if maker.Owner == req.Owner {
				switch req.SelfTrade {
				case orderbookv1.CancelTake:
					blocked = true
					return false
				case orderbookv1.DecrementAndCancel:
					if maker.RemainingQuantity >= remaining {
						blocked = true
						return false
					}
					continue // the smaller resting side would be cancelled
				default: // CancelProvide cancels the resting order and moves on
					continue
				}
			}
			remaining -= min(remaining, maker.RemainingQuantity)
			if remaining == 0 {
				return false
			}
		}
		return true
	})

	return !blocked && remaining == 0
}

// match runs the crossing loop: take the best opposing level while the
// price condition holds, consuming resting orders strictly in FIFO order.
// Trade price is always the resting (maker) order's price.
func (b *Book) match(order *orderbookv1.Order) ([]orderbookv1.Trade, []*orderbookv1.Order) {
	var trades []orderbookv1.Trade
	var removed []*orderbookv1.Order

	for order.RemainingQuantity > 0 {
		level := b.ledger.Best(order.Side.Opposite())
		if level == nil || !crosses(order.Type, order.Side, order.Price, level.Price) {
			break
		}

		maker := level.Front().Order
		if maker.Owner == order.Owner {
			cancelledMaker, stop := b.resolveSelfTrade(order, maker)
			if cancelledMaker != nil {
				removed = append(removed, cancelledMaker)
			}
			if stop {
				break
			}
			continue
		}

		quantity := min(order.RemainingQuantity, maker.RemainingQuantity)
		trade := orderbookv1.NewTrade(maker, order, quantity, b.seq, b.now())
		trades = append(trades, trade)
		if b.tape != nil {
			b.tape.Append(trade)
		}

		order.RemainingQuantity -= quantity
		_ = b.ledger.Decrement(maker.ID, quantity)
		if maker.RemainingQuantity == 0 {
			maker.Status = orderbookv1.StatusFilled
			removed = append(removed, maker)
		} else {
			maker.Status = orderbookv1.StatusPartiallyFilled
		}
	}

	return trades, removed
}

// resolveSelfTrade applies the incoming order's policy against a resting
// order from the same owner. No trade is ever generated between them.
func (b *Book) resolveSelfTrade(order, maker *orderbookv1.Order) (*orderbookv1.Order, bool) {
	cancelMaker := func() *orderbookv1.Order {
		_, _ = b.ledger.Remove(maker.ID)
		maker.Status = orderbookv1.StatusCancelled
		return maker
	}

	switch order.SelfTrade {
	case orderbookv1.CancelProvide:
		return cancelMaker(), false
	case orderbookv1.CancelTake:
		order.Status = orderbookv1.StatusCancelled
		return nil, true
	default: // DecrementAndCancel: cancel the smaller side, both when equal
		switch {
		case maker.RemainingQuantity < order.RemainingQuantity:
			return cancelMaker(), false
		case maker.RemainingQuantity > order.RemainingQuantity:
			order.Status = orderbookv1.StatusCancelled
			return nil, true
		default:
			order.Status = orderbookv1.StatusCancelled
			return cancelMaker(), true
		}
	}
}

// resolveRemainder decides what happens to whatever the matching loop left:
// rest it, discard it, or mark the order filled.
func (b *Book) resolveRemainder(order *orderbookv1.Order, traded bool) {
	if order.Status == orderbookv1.StatusCancelled {
		return
	}
	if order.RemainingQuantity == 0 {
		order.Status = orderbookv1.StatusFilled
		return
	}

	resting := (order.Type == orderbookv1.OrderTypeLimit || order.Type == orderbookv1.OrderTypePostOnly) &&
		(order.TimeInForce == orderbookv1.GoodTillCancelled || order.TimeInForce == orderbookv1.GoodTillTime)
	if !resting {
		order.Status = orderbookv1.StatusCancelled
		return
	}

	if traded {
		order.Status = orderbookv1.StatusPartiallyFilled
	} else {
		order.Status = orderbookv1.StatusOpen
	}
	_ = b.ledger.Insert(order)
}
