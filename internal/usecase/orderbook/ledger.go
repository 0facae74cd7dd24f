package orderbook

import (
	"fmt"
	"sort"

	orderbookv1 "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/orderbook/v1"
)

// position locates a resting order inside the ledger for O(1) cancel and
// modify: its side, its level, and its queue entry.
type position struct {
	side  orderbookv1.Side
	level *orderbookv1.Level
	entry *orderbookv1.Entry
}

// Ledger is the side-partitioned, sorted collection of price levels. It does
// not check crossing and it does not lock; the Book owns both concerns.
// Levels are pruned the moment their last order leaves, so the ledger never
// contains an empty level.
type Ledger struct {
	bidLevels map[int64]*orderbookv1.Level
	askLevels map[int64]*orderbookv1.Level

	// price ladders, ascending. Best bid is the last element, best ask the
	// first.
	bidPrices []int64
	askPrices []int64

	positions map[uint64]position
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		bidLevels: make(map[int64]*orderbookv1.Level),
		askLevels: make(map[int64]*orderbookv1.Level),
		positions: make(map[uint64]position),
	}
}

func (l *Ledger) levels(side orderbookv1.Side) map[int64]*orderbookv1.Level {
	if side == orderbookv1.SideBid {
		return l.bidLevels
	}
	return l.askLevels
}

// Insert locates or creates the level for the order's price on its side and
// appends the order to the FIFO tail.
func (l *Ledger) Insert(order *orderbookv1.Order) error {
	if order == nil {
		return fmt.Errorf("order cannot be nil")
	}
	if order.RemainingQuantity <= 0 {
		return fmt.Errorf("order %d has no remaining quantity", order.ID)
	}
	if _, exists := l.positions[order.ID]; exists {
		return fmt.Errorf("order %d already resting", order.ID)
	}

	levels := l.levels(order.Side)
	level, exists := levels[order.Price]
	if !exists {
		level = orderbookv1.NewLevel(order.Price)
		levels[order.Price] = level
		l.insertPrice(order.Side, order.Price)
	}

	entry := level.Append(order)
	l.positions[order.ID] = position{side: order.Side, level: level, entry: entry}
	return nil
}

// Remove takes an order out of its level, pruning the level if it is now
// empty, and returns the removed order.
func (l *Ledger) Remove(orderID uint64) (*orderbookv1.Order, error) {
	pos, exists := l.positions[orderID]
	if !exists {
		return nil, orderbookv1.ErrOrderNotFound
	}

	order := pos.entry.Order
	pos.level.Remove(pos.entry)
	delete(l.positions, orderID)
	l.pruneIfEmpty(pos.side, pos.level)
	return order, nil
}

// Decrement reduces an order's remaining quantity. When it reaches zero the
// order is removed and its level pruned.
func (l *Ledger) Decrement(orderID uint64, quantity int64) error {
	pos, exists := l.positions[orderID]
	if !exists {
		return orderbookv1.ErrOrderNotFound
	}

	pos.level.Reduce(pos.entry, quantity)
	if pos.entry.Order.RemainingQuantity == 0 {
		pos.level.Remove(pos.entry)
		delete(l.positions, orderID)
		l.pruneIfEmpty(pos.side, pos.level)
	}
	return nil
}

// Best returns the level closest to the spread on the given side, or nil if
// the side is empty.
func (l *Ledger) Best(side orderbookv1.Side) *orderbookv1.Level {
	if side == orderbookv1.SideBid {
		if len(l.bidPrices) == 0 {
			return nil
		}
		return l.bidLevels[l.bidPrices[len(l.bidPrices)-1]]
	}
	if len(l.askPrices) == 0 {
		return nil
	}
	return l.askLevels[l.askPrices[0]]
}

// Entry returns a resting order's queue entry.
func (l *Ledger) Entry(orderID uint64) (*orderbookv1.Entry, bool) {
	pos, exists := l.positions[orderID]
	if !exists {
		return nil, false
	}
	return pos.entry, true
}

// Contains reports whether an order is resting in the ledger.
func (l *Ledger) Contains(orderID uint64) bool {
	_, exists := l.positions[orderID]
	return exists
}

// Size returns the number of resting orders across both sides.
func (l *Ledger) Size() int {
	return len(l.positions)
}

// ForEachLevel visits levels on one side in best-first order until visit
// returns false.
func (l *Ledger) ForEachLevel(side orderbookv1.Side, visit func(*orderbookv1.Level) bool) {
	if side == orderbookv1.SideBid {
		for i := len(l.bidPrices) - 1; i >= 0; i-- {
			if !visit(l.bidLevels[l.bidPrices[i]]) {
				return
			}
		}
		return
	}
	for _, price := range l.askPrices {
		if !visit(l.askLevels[price]) {
			return
		}
	}
}

// ForEachOrder visits every resting order on one side, best level first and
// FIFO within a level, until visit returns false.
func (l *Ledger) ForEachOrder(side orderbookv1.Side, visit func(*orderbookv1.Order) bool) {
	l.ForEachLevel(side, func(level *orderbookv1.Level) bool {
		for e := level.Front(); e != nil; e = e.Next() {
			if !visit(e.Order) {
				return false
			}
		}
		return true
	})
}

// Views returns up to max read-only level copies on one side, best first.
// max <= 0 returns all levels.
func (l *Ledger) Views(side orderbookv1.Side, max int) []orderbookv1.LevelView {
	var views []orderbookv1.LevelView
	l.ForEachLevel(side, func(level *orderbookv1.Level) bool {
		views = append(views, level.View())
		return max <= 0 || len(views) < max
	})
	return views
}

// TotalQuantity returns the summed remaining quantity on one side.
func (l *Ledger) TotalQuantity(side orderbookv1.Side) int64 {
	var total int64
	l.ForEachLevel(side, func(level *orderbookv1.Level) bool {
		total += level.TotalQuantity()
		return true
	})
	return total
}

// Validate checks every structural invariant the ledger maintains: ladders
// strictly sorted, no empty levels, every level internally consistent, and
// the position index matching the queues.
func (l *Ledger) Validate() error {
	for i := 1; i < len(l.bidPrices); i++ {
		if l.bidPrices[i-1] >= l.bidPrices[i] {
			return fmt.Errorf("bid ladder not strictly sorted at index %d", i)
		}
	}
	for i := 1; i < len(l.askPrices); i++ {
		if l.askPrices[i-1] >= l.askPrices[i] {
			return fmt.Errorf("ask ladder not strictly sorted at index %d", i)
		}
	}

	count := 0
	for _, side := range []orderbookv1.Side{orderbookv1.SideBid, orderbookv1.SideAsk} {
		var err error
		l.ForEachLevel(side, func(level *orderbookv1.Level) bool {
			if level.Empty() {
				err = fmt.Errorf("empty level %d not pruned", level.Price)
				return false
			}
			if err = level.Validate(); err != nil {
				return false
			}
			count += level.OrderCount()
			return true
		})
		if err != nil {
			return err
		}
	}

	if count != len(l.positions) {
		return fmt.Errorf("position index mismatch: %d resting, %d indexed", count, len(l.positions))
	}
	return nil
}

func (l *Ledger) insertPrice(side orderbookv1.Side, price int64) {
	prices := l.bidPrices
	if side == orderbookv1.SideAsk {
		prices = l.askPrices
	}

	i := sort.Search(len(prices), func(i int) bool { return prices[i] >= price })
	prices = append(prices, 0)
	copy(prices[i+1:], prices[i:])
	prices[i] = price

	if side == orderbookv1.SideBid {
		l.bidPrices = prices
	} else {
		l.askPrices = prices
	}
}

func (l *Ledger) pruneIfEmpty(side orderbookv1.Side, level *orderbookv1.Level) {
	if !level.Empty() {
		return
	}

	delete(l.levels(side), level.Price)

	prices := l.bidPrices
	if side == orderbookv1.SideAsk {
		prices = l.askPrices
	}
	i := sort.Search(len(prices), func(i int) bool { return prices[i] >= level.Price })
	if i < len(prices) && prices[i] == level.Price {
		prices = append(prices[:i], prices[i+1:]...)
	}

	if side == orderbookv1.SideBid {
		l.bidPrices = prices
	} else {
		l.askPrices = prices
	}
}
