package orderreaderv1

import (
	"encoding/json"

	orderbookv1 "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/orderbook/v1"
)

// CommandType discriminates the payloads carried by a Command.
type CommandType string

const (
	// CommandTypePlace places a new order.
	CommandTypePlace CommandType = "place"
	// CommandTypeCancel cancels a resting order.
	CommandTypeCancel CommandType = "cancel"
	// CommandTypeModify modifies a resting order.
	CommandTypeModify CommandType = "modify"
)

// CancelPayload identifies the order a cancel command targets.
type CancelPayload struct {
	OrderID uint64 `json:"orderID"`
}

// Command is one mutating instruction read from the order stream. Exactly
// one payload matching Type is set.
type Command struct {
	Type      CommandType `json:"type"`
	RequestID string      `json:"requestID,omitempty"`

	Place  *orderbookv1.PlaceOrderRequest  `json:"place,omitempty"`
	Cancel *CancelPayload                  `json:"cancel,omitempty"`
	Modify *orderbookv1.ModifyOrderRequest `json:"modify,omitempty"`

	// Offset is the command's position in the stream, set by the reader.
	Offset int64 `json:"-"`
}

// FromBytes parses a command payload.
func FromBytes(data []byte) (*Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil, err
	}
	return &cmd, nil
}

// ToBytes serializes a command payload.
func ToBytes(cmd *Command) []byte {
	data, err := json.Marshal(cmd)
	if err != nil {
		return nil
	}
	return data
}
