package tape

import (
	"sync"

	orderbookv1 "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/orderbook/v1"
)

// Tape is the bounded, append-only record of executed trades for one
// market. When full, the oldest trade is evicted first. It is purely
// observational; balances and positions live elsewhere.
//
// Reads take a read lock and copy out, so paginating queries can run
// concurrently with the matching engine appending.
type Tape struct {
	mu       sync.RWMutex
	trades   []orderbookv1.Trade
	capacity int
	next     int
	full     bool
}

var _ orderbookv1.TradeTape = (*Tape)(nil)

// NewTape creates a tape holding at most capacity trades.
func NewTape(capacity int) *Tape {
	if capacity <= 0 {
		capacity = 1
	}
	return &Tape{
		trades:   make([]orderbookv1.Trade, capacity),
		capacity: capacity,
	}
}

// Append records a trade, evicting the oldest when the tape is full.
func (t *Tape) Append(trade orderbookv1.Trade) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.trades[t.next] = trade
	t.next++
	if t.next == t.capacity {
		t.next = 0
		t.full = true
	}
}

// Len returns the number of trades currently held.
func (t *Tape) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size()
}

// Recent returns up to limit trades, newest first. When since is non-zero,
// only trades with a book sequence strictly greater than since are
// returned, so pollers can page forward without duplicates. limit <= 0
// returns everything held.
func (t *Tape) Recent(limit int, since uint64) []orderbookv1.Trade {
	t.mu.RLock()
	defer t.mu.RUnlock()

	size := t.size()
	if limit <= 0 || limit > size {
		limit = size
	}

	var out []orderbookv1.Trade
	for i := 1; i <= size && len(out) < limit; i++ {
		trade := t.trades[(t.next-i+t.capacity)%t.capacity]
		if since > 0 && trade.Sequence <= since {
			break // older trades can only have lower sequences
		}
		out = append(out, trade)
	}
	return out
}

func (t *Tape) size() int {
	if t.full {
		return t.capacity
	}
	return t.next
}
