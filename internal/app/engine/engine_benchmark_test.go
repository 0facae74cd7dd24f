package engine

import (
	"context"
	"testing"

	eventpublishermock "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/event-publisher/v1/mock"
	orderreaderv1 "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/order-reader/v1"
	orderreadermock "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/order-reader/v1/mock"
	orderbookv1 "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/orderbook/v1"
	snapshotmock "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/snapshot/v1/mock"
	"github.com/hyyu189/SVM-CLOB-sub000/internal/usecase/orderbook"
	"github.com/hyyu189/SVM-CLOB-sub000/internal/usecase/tape"
	"github.com/hyyu189/SVM-CLOB-sub000/pkg/config"
	"github.com/hyyu189/SVM-CLOB-sub000/pkg/logger"
	"go.uber.org/mock/gomock"
)

func setupBenchmarkEngine(b *testing.B) *Engine {
	ctrl := gomock.NewController(b)

	mockOrderReader := orderreadermock.NewMockOrderReader(ctrl)
	mockSnapshotStore := snapshotmock.NewMockStore(ctrl)
	mockEventPublisher := eventpublishermock.NewMockEventPublisher(ctrl)

	book := orderbook.NewBook(orderbook.Config{TickSize: 1, MinQuantity: 1}, tape.NewTape(1024))
	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.ErrorLevel))
	if err != nil {
		b.Fatal(err)
	}

	cfg := &config.Config{Pair: "SOL/USDC"}

	mockSnapshotStore.EXPECT().
		Load(gomock.Any()).
		Return(nil, nil).
		Times(1)
	mockEventPublisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	engine := NewEngine(book, mockOrderReader, mockEventPublisher, mockSnapshotStore, log, cfg)
	engine.ctx = context.Background()
	return engine
}

func benchmarkPlace(owner string, side orderbookv1.Side, price, qty int64) *orderreaderv1.Command {
	return &orderreaderv1.Command{
		Type: orderreaderv1.CommandTypePlace,
		Place: &orderbookv1.PlaceOrderRequest{
			Owner:    owner,
			Side:     side,
			Type:     orderbookv1.OrderTypeLimit,
			Price:    price,
			Quantity: qty,
		},
	}
}

// BenchmarkEngine_RestingOrders measures non-crossing order placement.
func BenchmarkEngine_RestingOrders(b *testing.B) {
	engine := setupBenchmarkEngine(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		price := int64(10_000 - i%1_000)
		engine.processCommand(benchmarkPlace("maker", orderbookv1.SideBid, price, 10))
	}
}

// BenchmarkEngine_MatchedOrders measures a place that always fully crosses.
func BenchmarkEngine_MatchedOrders(b *testing.B) {
	engine := setupBenchmarkEngine(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.processCommand(benchmarkPlace("maker", orderbookv1.SideAsk, 10_000, 10))
		engine.processCommand(benchmarkPlace("taker", orderbookv1.SideBid, 10_000, 10))
	}
}

// BenchmarkEngine_CancelOrders measures place-then-cancel round trips.
func BenchmarkEngine_CancelOrders(b *testing.B) {
	engine := setupBenchmarkEngine(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.processCommand(benchmarkPlace("maker", orderbookv1.SideBid, 10_000, 10))
		engine.processCommand(&orderreaderv1.Command{
			Type:   orderreaderv1.CommandTypeCancel,
			Cancel: &orderreaderv1.CancelPayload{OrderID: uint64(i + 1)},
		})
	}
}
