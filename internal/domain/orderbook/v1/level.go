package orderbookv1

import (
	"fmt"
)

// Entry is a resting order's position in a level's FIFO queue. The queue is
// an intrusive doubly-linked list so that cancelling a mid-queue order is
// O(1) and never reorders the rest.
type Entry struct {
	Order *Order

	level      *Level
	prev, next *Entry
}

// Level is one price level: every resting order at one discrete price on one
// side of the book, oldest first. Its total quantity is adjusted in lock-step
// with order mutation and is never stored independently of the queue.
type Level struct {
	Price int64

	head, tail *Entry
	count      int
	totalQty   int64
}

// NewLevel creates an empty level at the given price.
func NewLevel(price int64) *Level {
	return &Level{Price: price}
}

// Append adds an order to the back of the FIFO queue and returns its entry.
func (l *Level) Append(order *Order) *Entry {
	e := &Entry{Order: order, level: l, prev: l.tail}
	if l.tail != nil {
		l.tail.next = e
	} else {
		l.head = e
	}
	l.tail = e
	l.count++
	l.totalQty += order.RemainingQuantity
	return e
}

// Remove unlinks an entry from the queue, preserving the relative order of
// the remaining entries. Removing an entry that is not linked to this level
// is a no-op, so the count and total never drift on a repeated remove.
func (l *Level) Remove(e *Entry) {
	if e.level != l {
		return
	}
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.prev, e.next = nil, nil
	e.level = nil
	l.count--
	l.totalQty -= e.Order.RemainingQuantity
}

// Reduce decrements an entry's remaining quantity and the level total
// together. The caller removes the entry when remaining reaches zero.
func (l *Level) Reduce(e *Entry, quantity int64) {
	e.Order.RemainingQuantity -= quantity
	l.totalQty -= quantity
}

// Front returns the oldest entry, or nil if the level is empty.
func (l *Level) Front() *Entry {
	return l.head
}

// Next returns the entry after e in FIFO order.
func (e *Entry) Next() *Entry {
	return e.next
}

// Empty checks if the level has no orders.
func (l *Level) Empty() bool {
	return l.count == 0
}

// OrderCount returns the number of resting orders at this level.
func (l *Level) OrderCount() int {
	return l.count
}

// TotalQuantity returns the sum of remaining quantities at this level.
func (l *Level) TotalQuantity() int64 {
	return l.totalQty
}

// Orders returns a copy of the level's orders in FIFO order.
func (l *Level) Orders() []*Order {
	orders := make([]*Order, 0, l.count)
	for e := l.head; e != nil; e = e.next {
		orders = append(orders, e.Order)
	}
	return orders
}

// View returns a read-only aggregate copy of the level.
func (l *Level) View() LevelView {
	return LevelView{
		Price:      l.Price,
		Quantity:   l.totalQty,
		OrderCount: l.count,
	}
}

// Validate checks the level's internal consistency: positive price, linked
// count, and the queue summing exactly to the stored total.
func (l *Level) Validate() error {
	if l.Price <= 0 {
		return fmt.Errorf("level price must be positive, got %d", l.Price)
	}

	var sum int64
	var n int
	for e := l.head; e != nil; e = e.next {
		if e.Order == nil {
			return fmt.Errorf("nil order in level %d", l.Price)
		}
		if e.Order.RemainingQuantity <= 0 {
			return fmt.Errorf("order %d resting with remaining %d", e.Order.ID, e.Order.RemainingQuantity)
		}
		sum += e.Order.RemainingQuantity
		n++
	}

	if n != l.count {
		return fmt.Errorf("level %d count mismatch: linked %d, stored %d", l.Price, n, l.count)
	}
	if sum != l.totalQty {
		return fmt.Errorf("level %d quantity mismatch: summed %d, stored %d", l.Price, sum, l.totalQty)
	}
	return nil
}
