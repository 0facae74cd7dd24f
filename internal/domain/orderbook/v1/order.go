package orderbookv1

// Side represents which side of the book an order rests on.
type Side string

const (
	// SideBid represents a buy order.
	SideBid Side = "bid"
	// SideAsk represents a sell order.
	SideAsk Side = "ask"
)

// Opposite returns the side an incoming order matches against.
func (s Side) Opposite() Side {
	if s == SideBid {
		return SideAsk
	}
	return SideBid
}

// OrderType represents the type of order.
type OrderType string

const (
	// OrderTypeLimit represents a limit order.
	OrderTypeLimit OrderType = "limit"
	// OrderTypeMarket represents a market order. Market orders carry no price.
	OrderTypeMarket OrderType = "market"
	// OrderTypePostOnly represents a limit order that may only add liquidity.
	OrderTypePostOnly OrderType = "post_only"
)

// TimeInForce controls what happens to the unfilled remainder of an order.
type TimeInForce string

const (
	// GoodTillCancelled rests the remainder until it is cancelled.
	GoodTillCancelled TimeInForce = "GTC"
	// ImmediateOrCancel discards the remainder instead of resting it.
	ImmediateOrCancel TimeInForce = "IOC"
	// FillOrKill requires the order to fully fill immediately or be rejected
	// with no side effects.
	FillOrKill TimeInForce = "FOK"
	// GoodTillTime rests the remainder until the order's expiry passes.
	GoodTillTime TimeInForce = "GTT"
)

// SelfTradeBehavior is the policy applied when an incoming order would match
// against a resting order from the same owner.
type SelfTradeBehavior string

const (
	// DecrementAndCancel cancels the smaller-quantity side, or both when
	// equal, without generating a trade.
	DecrementAndCancel SelfTradeBehavior = "decrement_and_cancel"
	// CancelProvide cancels the resting order and continues matching.
	CancelProvide SelfTradeBehavior = "cancel_provide"
	// CancelTake cancels the incoming order and stops matching.
	CancelTake SelfTradeBehavior = "cancel_take"
)

// Status represents an order's position in its lifecycle.
type Status string

const (
	// StatusOpen represents a resting order with no fills.
	StatusOpen Status = "open"
	// StatusPartiallyFilled represents a resting order with some fills.
	StatusPartiallyFilled Status = "partially_filled"
	// StatusFilled represents a fully executed order. Terminal.
	StatusFilled Status = "filled"
	// StatusCancelled represents a cancelled or discarded order. Terminal.
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further mutation is permitted on an order in
// this status.
func (s Status) Terminal() bool {
	return s == StatusFilled || s == StatusCancelled
}

// Order represents a single order in the order book. Price and quantities
// are scaled fixed-point integers; the engine never deals in floats.
type Order struct {
	ID                uint64            `json:"id"`
	ClientOrderID     string            `json:"clientOrderID,omitempty"`
	Owner             string            `json:"owner"`
	Side              Side              `json:"side"`
	Type              OrderType         `json:"type"`
	Price             int64             `json:"price"` // zero for market orders
	OriginalQuantity  int64             `json:"originalQuantity"`
	RemainingQuantity int64             `json:"remainingQuantity"`
	Status            Status            `json:"status"`
	TimeInForce       TimeInForce       `json:"timeInForce"`
	ExpireAt          int64             `json:"expireAt,omitempty"` // unix nanos, GTT only
	SelfTrade         SelfTradeBehavior `json:"selfTrade"`

	// CreatedSeq records admission order. It is used only for FIFO
	// tie-breaking within a price level, never for wall-clock logic.
	CreatedSeq uint64 `json:"createdSeq"`
}

// IsBid checks if the order is a bid (buy) order.
func (o *Order) IsBid() bool {
	return o.Side == SideBid
}

// IsAsk checks if the order is an ask (sell) order.
func (o *Order) IsAsk() bool {
	return o.Side == SideAsk
}

// IsFilled checks if the order has no remaining quantity.
func (o *Order) IsFilled() bool {
	return o.RemainingQuantity == 0
}

// FilledQuantity returns how much of the order has executed so far.
func (o *Order) FilledQuantity() int64 {
	return o.OriginalQuantity - o.RemainingQuantity
}

// PlaceOrderRequest represents a request to place an order in the order book.
type PlaceOrderRequest struct {
	Owner         string            `json:"owner"`
	ClientOrderID string            `json:"clientOrderID,omitempty"`
	Side          Side              `json:"side"`
	Type          OrderType         `json:"type"`
	Price         int64             `json:"price,omitempty"`
	Quantity      int64             `json:"quantity"`
	TimeInForce   TimeInForce       `json:"timeInForce,omitempty"`
	ExpireAt      int64             `json:"expireAt,omitempty"`
	SelfTrade     SelfTradeBehavior `json:"selfTrade,omitempty"`
}

// PlaceOrderResult is the outcome of a place command: the resulting order
// state plus every trade it produced, in execution order. Removed lists
// resting orders the command drove to a terminal state (filled makers,
// self-trade cancels) so the caller can broadcast their status changes.
type PlaceOrderResult struct {
	Order   *Order   `json:"order"`
	Trades  []Trade  `json:"trades"`
	Removed []*Order `json:"removed,omitempty"`
}

// ModifyOrderRequest represents a request to modify a resting order. Nil
// fields are left unchanged.
type ModifyOrderRequest struct {
	OrderID     uint64 `json:"orderID"`
	NewPrice    *int64 `json:"newPrice,omitempty"`
	NewQuantity *int64 `json:"newQuantity,omitempty"`
}

// ModifyOrderResult is the outcome of a modify command. A price change can
// make the order cross, so a modify may produce trades just like a place.
type ModifyOrderResult struct {
	Order   *Order   `json:"order"`
	Trades  []Trade  `json:"trades,omitempty"`
	Removed []*Order `json:"removed,omitempty"`
}

// LevelView is a read-only copy of one price level's aggregate state, safe
// to retain across commands.
type LevelView struct {
	Price      int64 `json:"price"`
	Quantity   int64 `json:"quantity"`
	OrderCount int   `json:"orderCount"`
}
