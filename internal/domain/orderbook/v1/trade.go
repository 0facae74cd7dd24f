package orderbookv1

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Trade represents a single execution between a resting (maker) order and an
// incoming (taker) order. The price is always the maker's price. Immutable
// once created.
type Trade struct {
	ID           string `json:"id"`
	MakerOrderID uint64 `json:"makerOrderID"`
	TakerOrderID uint64 `json:"takerOrderID"`
	Price        int64  `json:"price"`
	Quantity     int64  `json:"quantity"`
	MakerSide    Side   `json:"makerSide"`
	Sequence     uint64 `json:"sequence"`
	Timestamp    int64  `json:"timestamp"` // unix nanos
}

// NewTrade creates a trade record with a fresh ULID.
func NewTrade(maker, taker *Order, quantity int64, sequence uint64, ts time.Time) Trade {
	return Trade{
		ID:           ulid.Make().String(),
		MakerOrderID: maker.ID,
		TakerOrderID: taker.ID,
		Price:        maker.Price,
		Quantity:     quantity,
		MakerSide:    maker.Side,
		Sequence:     sequence,
		Timestamp:    ts.UnixNano(),
	}
}
