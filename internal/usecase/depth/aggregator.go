package depth

import (
	"fmt"
	"time"

	orderbookv1 "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/orderbook/v1"
)

// BookSource is the read-only slice of the matching engine the aggregator
// consumes. It never mutates the book, and the views it receives are copies
// that stay valid after the next command.
type BookSource interface {
	Levels(side orderbookv1.Side, max int) []orderbookv1.LevelView
	Sequence() uint64
}

// Snapshot is a capped-depth view of the book, levels ordered best first.
// The sequence number lets consumers detect missed updates against the
// event stream.
type Snapshot struct {
	Bids      []orderbookv1.LevelView `json:"bids"`
	Asks      []orderbookv1.LevelView `json:"asks"`
	Sequence  uint64                  `json:"sequence"`
	Timestamp int64                   `json:"timestamp"`
}

// Aggregator produces display-oriented depth views from the ledger. It is a
// view transform only; the ledger remains the canonical state.
type Aggregator struct {
	book BookSource
	now  func() time.Time
}

// NewAggregator creates an aggregator over the given book.
func NewAggregator(book BookSource) *Aggregator {
	return &Aggregator{
		book: book,
		now:  time.Now,
	}
}

// Snapshot returns up to levels price levels per side, best first.
func (a *Aggregator) Snapshot(levels int) *Snapshot {
	return &Snapshot{
		Bids:      a.book.Levels(orderbookv1.SideBid, levels),
		Asks:      a.book.Levels(orderbookv1.SideAsk, levels),
		Sequence:  a.book.Sequence(),
		Timestamp: a.now().UnixNano(),
	}
}

// Aggregate re-buckets raw levels into coarser price increments by
// floor-dividing price by bucketSize, summing quantity and order counts per
// bucket. Up to levels buckets per side are returned.
func (a *Aggregator) Aggregate(bucketSize int64, levels int) (*Snapshot, error) {
	if bucketSize <= 0 {
		return nil, fmt.Errorf("bucket size must be positive, got %d", bucketSize)
	}

	return &Snapshot{
		Bids:      bucket(a.book.Levels(orderbookv1.SideBid, 0), bucketSize, levels),
		Asks:      bucket(a.book.Levels(orderbookv1.SideAsk, 0), bucketSize, levels),
		Sequence:  a.book.Sequence(),
		Timestamp: a.now().UnixNano(),
	}, nil
}

// BestBidAsk returns the best level per side, nil when a side is empty.
func (a *Aggregator) BestBidAsk() (*orderbookv1.LevelView, *orderbookv1.LevelView) {
	var bid, ask *orderbookv1.LevelView
	if views := a.book.Levels(orderbookv1.SideBid, 1); len(views) > 0 {
		bid = &views[0]
	}
	if views := a.book.Levels(orderbookv1.SideAsk, 1); len(views) > 0 {
		ask = &views[0]
	}
	return bid, ask
}

// Spread returns best ask minus best bid. The second return is false when
// either side is empty and the spread is undefined.
func (a *Aggregator) Spread() (int64, bool) {
	bid, ask := a.BestBidAsk()
	if bid == nil || ask == nil {
		return 0, false
	}
	return ask.Price - bid.Price, true
}

// bucket folds best-first level views into bucketSize-wide price buckets.
// Views arrive sorted by price, so buckets come out in the same order.
func bucket(views []orderbookv1.LevelView, bucketSize int64, max int) []orderbookv1.LevelView {
	var out []orderbookv1.LevelView
	for _, view := range views {
		price := (view.Price / bucketSize) * bucketSize
		if n := len(out); n > 0 && out[n-1].Price == price {
			out[n-1].Quantity += view.Quantity
			out[n-1].OrderCount += view.OrderCount
			continue
		}
		if max > 0 && len(out) == max {
			break
		}
		out = append(out, orderbookv1.LevelView{
			Price:      price,
			Quantity:   view.Quantity,
			OrderCount: view.OrderCount,
		})
	}
	return out
}
