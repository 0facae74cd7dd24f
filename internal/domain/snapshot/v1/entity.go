package snapshotv1

// BookOrder is one resting order inside a snapshot, flattened to plain
// values so the snapshot format stays independent of engine internals.
type BookOrder struct {
	OrderID           uint64 `json:"orderID"`
	ClientOrderID     string `json:"clientOrderID,omitempty"`
	Owner             string `json:"owner"`
	Side              string `json:"side"`
	Type              string `json:"type"`
	Price             int64  `json:"price"`
	OriginalQuantity  int64  `json:"originalQuantity"`
	RemainingQuantity int64  `json:"remainingQuantity"`
	TimeInForce       string `json:"timeInForce"`
	ExpireAt          int64  `json:"expireAt,omitempty"`
	SelfTrade         string `json:"selfTrade"`
	CreatedSeq        uint64 `json:"createdSeq"`
}

// OrderBookSnapshot is the full resting state of one book.
type OrderBookSnapshot struct {
	Orders      []BookOrder `json:"orders"`
	Sequence    uint64      `json:"sequence"`
	NextOrderID uint64      `json:"nextOrderID"`
}

// Snapshot ties a book snapshot to the command stream offset it was taken
// at, so replay after restore can resume from the right position.
type Snapshot struct {
	CommandOffset     int64             `json:"commandOffset"`
	OrderBookSnapshot OrderBookSnapshot `json:"orderBookSnapshot"`
}
