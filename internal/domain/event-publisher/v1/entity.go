package eventpublisherv1

import (
	"encoding/json"

	orderbookv1 "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/orderbook/v1"
)

// EventType discriminates the notifications emitted after each mutating
// command. The engine emits; a surrounding pub/sub layer broadcasts. The
// engine itself never manages subscriber lists.
type EventType string

const (
	// EventTypeTradeExecuted is emitted once per trade.
	EventTypeTradeExecuted EventType = "trade_executed"
	// EventTypeOrderStatusChanged is emitted when an order's status moves.
	EventTypeOrderStatusChanged EventType = "order_status_changed"
	// EventTypeOrderBookUpdate is emitted after every mutating command with
	// the book's new top-of-depth view.
	EventTypeOrderBookUpdate EventType = "order_book_update"
)

// BookUpdate carries the top of the book after a mutating command.
type BookUpdate struct {
	Bids []orderbookv1.LevelView `json:"bids"`
	Asks []orderbookv1.LevelView `json:"asks"`
}

// Event is one notification on the outbound stream. Exactly one payload
// matching Type is set. Sequence is the book sequence after the command that
// produced the event, so consumers can detect missed updates and request a
// fresh snapshot.
type Event struct {
	Type      EventType `json:"type"`
	Pair      string    `json:"pair"`
	Sequence  uint64    `json:"sequence"`
	Timestamp int64     `json:"timestamp"`

	Trade *orderbookv1.Trade `json:"trade,omitempty"`
	Order *orderbookv1.Order `json:"order,omitempty"`
	Book  *BookUpdate        `json:"book,omitempty"`
}

// ToBytes converts the event to its wire form.
func ToBytes(event *Event) []byte {
	data, err := json.Marshal(event)
	if err != nil {
		return nil
	}
	return data
}

// FromBytes converts a byte array back to an event.
func FromBytes(data []byte) *Event {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil
	}
	return &event
}
