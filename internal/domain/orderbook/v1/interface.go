package orderbookv1

import (
	snapshotv1 "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/snapshot/v1"
)

// Book defines the mutating command surface of the matching engine plus the
// read-only accessors the service shell needs. Every mutating call executes
// as an atomic, non-interleaved unit with respect to ledger state.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderbookv1_mock
type Book interface {
	// PlaceOrder validates, matches, and possibly rests an incoming order.
	// It returns the resulting order state and the trades produced.
	PlaceOrder(req PlaceOrderRequest) (*PlaceOrderResult, error)

	// CancelOrder removes a resting order from the ledger.
	CancelOrder(orderID uint64) (*Order, error)

	// ModifyOrder changes a resting order's price and/or quantity. A price
	// change or a quantity increase resets time priority; a pure decrease
	// keeps the order's queue position.
	ModifyOrder(req ModifyOrderRequest) (*ModifyOrderResult, error)

	// ExpireOrders cancels resting GoodTillTime orders whose expiry is at or
	// before now (unix nanos) and returns them.
	ExpireOrders(now int64) []*Order

	// Sequence returns the book's monotonic sequence number, incremented on
	// every mutating command so consumers can detect missed updates.
	Sequence() uint64

	// Levels returns up to max read-only price levels on one side, best
	// first. max <= 0 means all levels.
	Levels(side Side, max int) []LevelView

	// CreateSnapshot serializes every resting order for persistence.
	CreateSnapshot() *snapshotv1.Snapshot

	// Restore replaces the book's state with a previously stored snapshot.
	Restore(snapshot *snapshotv1.Snapshot) error
}

// TradeTape is the bounded, append-only record of executed trades the book
// writes into. Purely observational; never a source of truth for balances.
type TradeTape interface {
	Append(trade Trade)
}
