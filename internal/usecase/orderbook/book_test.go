package orderbook

import (
	"testing"
	"time"

	orderbookv1 "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/orderbook/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTape captures every trade the book emits.
type recordingTape struct {
	trades []orderbookv1.Trade
}

func (t *recordingTape) Append(trade orderbookv1.Trade) {
	t.trades = append(t.trades, trade)
}

func newTestBook() (*Book, *recordingTape) {
	tape := &recordingTape{}
	book := NewBook(Config{TickSize: 10, MinQuantity: 1}, tape)
	return book, tape
}

func limit(owner string, side orderbookv1.Side, price, qty int64) orderbookv1.PlaceOrderRequest {
	return orderbookv1.PlaceOrderRequest{
		Owner:    owner,
		Side:     side,
		Type:     orderbookv1.OrderTypeLimit,
		Price:    price,
		Quantity: qty,
	}
}

func mustPlace(t *testing.T, book *Book, req orderbookv1.PlaceOrderRequest) *orderbookv1.PlaceOrderResult {
	t.Helper()
	result, err := book.PlaceOrder(req)
	require.NoError(t, err)
	return result
}

// Test 1: A limit order with no opposing liquidity rests open
func TestBook_PlaceOrder_Rests(t *testing.T) {
	book, tape := newTestBook()

	result := mustPlace(t, book, limit("alice", orderbookv1.SideBid, 10_000, 10))

	assert.Equal(t, uint64(1), result.Order.ID)
	assert.Equal(t, orderbookv1.StatusOpen, result.Order.Status)
	assert.Empty(t, result.Trades)
	assert.Empty(t, tape.trades)
	assert.Equal(t, uint64(1), book.Sequence())

	bids := book.Levels(orderbookv1.SideBid, 0)
	require.Len(t, bids, 1)
	assert.Equal(t, int64(10_000), bids[0].Price)
	assert.Equal(t, int64(10), bids[0].Quantity)
	assert.Equal(t, 1, bids[0].OrderCount)
	require.NoError(t, book.Validate())
}

// Test 2: Validation failures leave the book and sequence untouched
func TestBook_PlaceOrder_Rejections(t *testing.T) {
	book, _ := newTestBook()

	cases := []struct {
		name string
		req  orderbookv1.PlaceOrderRequest
		want error
	}{
		{"zero quantity", limit("alice", orderbookv1.SideBid, 10_000, 0), orderbookv1.ErrInvalidQuantity},
		{"negative quantity", limit("alice", orderbookv1.SideBid, 10_000, -5), orderbookv1.ErrInvalidQuantity},
		{"zero price", limit("alice", orderbookv1.SideBid, 0, 10), orderbookv1.ErrInvalidPrice},
		{"negative price", limit("alice", orderbookv1.SideBid, -10, 10), orderbookv1.ErrInvalidPrice},
		{"off tick", limit("alice", orderbookv1.SideBid, 10_005, 10), orderbookv1.ErrPriceNotAligned},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := book.PlaceOrder(tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// good-till-time without an expiry is also rejected
	gtt := limit("alice", orderbookv1.SideBid, 10_000, 10)
	gtt.TimeInForce = orderbookv1.GoodTillTime
	_, err := book.PlaceOrder(gtt)
	assert.Error(t, err)

	assert.Equal(t, uint64(0), book.Sequence())
	assert.Empty(t, book.Levels(orderbookv1.SideBid, 0))
}

// Test 3: Crossing orders trade at the maker's price
func TestBook_Match_MakerPrice(t *testing.T) {
	book, tape := newTestBook()

	resting := mustPlace(t, book, limit("maker", orderbookv1.SideAsk, 10_000, 10))
	result := mustPlace(t, book, limit("taker", orderbookv1.SideBid, 10_100, 4))

	require.Len(t, result.Trades, 1)
	trade := result.Trades[0]
	assert.Equal(t, int64(10_000), trade.Price)
	assert.Equal(t, int64(4), trade.Quantity)
	assert.Equal(t, resting.Order.ID, trade.MakerOrderID)
	assert.Equal(t, result.Order.ID, trade.TakerOrderID)
	assert.Equal(t, orderbookv1.SideAsk, trade.MakerSide)
	assert.NotEmpty(t, trade.ID)

	assert.Equal(t, orderbookv1.StatusFilled, result.Order.Status)
	assert.Equal(t, orderbookv1.StatusPartiallyFilled, resting.Order.Status)
	assert.Equal(t, int64(6), resting.Order.RemainingQuantity)
	assert.Len(t, tape.trades, 1)
	require.NoError(t, book.Validate())
}

// Test 4: FIFO within a level, then the next level
func TestBook_Match_PriceTimePriority(t *testing.T) {
	book, _ := newTestBook()

	first := mustPlace(t, book, limit("maker1", orderbookv1.SideAsk, 10_000, 5))
	second := mustPlace(t, book, limit("maker2", orderbookv1.SideAsk, 10_000, 5))
	worse := mustPlace(t, book, limit("maker3", orderbookv1.SideAsk, 10_100, 5))

	result := mustPlace(t, book, limit("taker", orderbookv1.SideBid, 10_100, 12))

	require.Len(t, result.Trades, 3)
	assert.Equal(t, first.Order.ID, result.Trades[0].MakerOrderID)
	assert.Equal(t, second.Order.ID, result.Trades[1].MakerOrderID)
	assert.Equal(t, worse.Order.ID, result.Trades[2].MakerOrderID)
	assert.Equal(t, int64(10_000), result.Trades[0].Price)
	assert.Equal(t, int64(10_100), result.Trades[2].Price)
	assert.Equal(t, int64(2), result.Trades[2].Quantity)

	// filled makers are reported as removed
	assert.Equal(t, []*orderbookv1.Order{first.Order, second.Order}, result.Removed)
	assert.Equal(t, orderbookv1.StatusFilled, result.Order.Status)
	assert.Equal(t, int64(3), worse.Order.RemainingQuantity)
	require.NoError(t, book.Validate())
}

// Test 5: A partially filled limit remainder rests at its own price
func TestBook_Match_RemainderRests(t *testing.T) {
	book, _ := newTestBook()

	mustPlace(t, book, limit("maker", orderbookv1.SideAsk, 10_000, 4))
	result := mustPlace(t, book, limit("taker", orderbookv1.SideBid, 10_000, 10))

	assert.Equal(t, orderbookv1.StatusPartiallyFilled, result.Order.Status)
	assert.Equal(t, int64(6), result.Order.RemainingQuantity)

	bids := book.Levels(orderbookv1.SideBid, 0)
	require.Len(t, bids, 1)
	assert.Equal(t, int64(6), bids[0].Quantity)
	assert.Empty(t, book.Levels(orderbookv1.SideAsk, 0))
	require.NoError(t, book.Validate())
}

// Test 6: Market orders sweep liquidity and never rest
func TestBook_MarketOrder(t *testing.T) {
	book, _ := newTestBook()

	mustPlace(t, book, limit("maker1", orderbookv1.SideAsk, 10_000, 5))
	mustPlace(t, book, limit("maker2", orderbookv1.SideAsk, 10_200, 5))

	req := orderbookv1.PlaceOrderRequest{
		Owner:    "taker",
		Side:     orderbookv1.SideBid,
		Type:     orderbookv1.OrderTypeMarket,
		Quantity: 12,
	}
	result := mustPlace(t, book, req)

	require.Len(t, result.Trades, 2)
	assert.Equal(t, int64(10_000), result.Trades[0].Price)
	assert.Equal(t, int64(10_200), result.Trades[1].Price)

	// unfilled remainder of a market order is discarded, never rested
	assert.Equal(t, orderbookv1.StatusCancelled, result.Order.Status)
	assert.Equal(t, int64(2), result.Order.RemainingQuantity)
	assert.Empty(t, book.Levels(orderbookv1.SideBid, 0))
	require.NoError(t, book.Validate())
}

// Test 7: IOC fills what it can and discards the rest
func TestBook_ImmediateOrCancel(t *testing.T) {
	book, _ := newTestBook()

	mustPlace(t, book, limit("maker", orderbookv1.SideAsk, 10_000, 4))

	req := limit("taker", orderbookv1.SideBid, 10_000, 10)
	req.TimeInForce = orderbookv1.ImmediateOrCancel
	result := mustPlace(t, book, req)

	require.Len(t, result.Trades, 1)
	assert.Equal(t, int64(4), result.Trades[0].Quantity)
	assert.Equal(t, orderbookv1.StatusCancelled, result.Order.Status)
	assert.Empty(t, book.Levels(orderbookv1.SideBid, 0))
}

// Test 8: FOK executes fully or rejects with zero side effects
func TestBook_FillOrKill(t *testing.T) {
	book, tape := newTestBook()

	mustPlace(t, book, limit("maker1", orderbookv1.SideAsk, 10_000, 5))
	mustPlace(t, book, limit("maker2", orderbookv1.SideAsk, 10_100, 5))
	seqBefore := book.Sequence()

	// 12 > available 10 within the limit, so the whole command is rejected
	req := limit("taker", orderbookv1.SideBid, 10_100, 12)
	req.TimeInForce = orderbookv1.FillOrKill
	_, err := book.PlaceOrder(req)
	assert.ErrorIs(t, err, orderbookv1.ErrFillOrKillUnsatisfiable)
	assert.Equal(t, seqBefore, book.Sequence())
	assert.Empty(t, tape.trades)
	assert.Equal(t, int64(10), book.Levels(orderbookv1.SideAsk, 0)[0].Quantity+book.Levels(orderbookv1.SideAsk, 0)[1].Quantity)

	// exactly the available quantity fills completely
	req.Quantity = 10
	result := mustPlace(t, book, req)
	assert.Equal(t, orderbookv1.StatusFilled, result.Order.Status)
	assert.Len(t, result.Trades, 2)
	assert.Empty(t, book.Levels(orderbookv1.SideAsk, 0))
}

// Test 9: FOK respects the price limit during the dry run
func TestBook_FillOrKill_PriceLimited(t *testing.T) {
	book, _ := newTestBook()

	mustPlace(t, book, limit("maker1", orderbookv1.SideAsk, 10_000, 5))
	mustPlace(t, book, limit("maker2", orderbookv1.SideAsk, 10_200, 5))

	// liquidity exists but not within the 10_000 limit
	req := limit("taker", orderbookv1.SideBid, 10_000, 8)
	req.TimeInForce = orderbookv1.FillOrKill
	_, err := book.PlaceOrder(req)
	assert.ErrorIs(t, err, orderbookv1.ErrFillOrKillUnsatisfiable)
}

// Test 10: Post-only rests or rejects, never trades
func TestBook_PostOnly(t *testing.T) {
	book, _ := newTestBook()

	mustPlace(t, book, limit("maker", orderbookv1.SideAsk, 10_000, 5))

	crossing := orderbookv1.PlaceOrderRequest{
		Owner:    "alice",
		Side:     orderbookv1.SideBid,
		Type:     orderbookv1.OrderTypePostOnly,
		Price:    10_000,
		Quantity: 5,
	}
	_, err := book.PlaceOrder(crossing)
	assert.ErrorIs(t, err, orderbookv1.ErrWouldCross)

	crossing.Price = 9_900
	result := mustPlace(t, book, crossing)
	assert.Equal(t, orderbookv1.StatusOpen, result.Order.Status)
	assert.Empty(t, result.Trades)
	require.NoError(t, book.Validate())
}

// Test 11: DecrementAndCancel cancels the smaller side without trading
func TestBook_SelfTrade_DecrementAndCancel(t *testing.T) {
	book, tape := newTestBook()

	// resting own order smaller than incoming: maker cancelled, matching continues
	small := mustPlace(t, book, limit("alice", orderbookv1.SideAsk, 10_000, 3))
	other := mustPlace(t, book, limit("bob", orderbookv1.SideAsk, 10_000, 10))

	result := mustPlace(t, book, limit("alice", orderbookv1.SideBid, 10_000, 8))

	assert.Equal(t, orderbookv1.StatusCancelled, small.Order.Status)
	assert.Contains(t, result.Removed, small.Order)
	require.Len(t, result.Trades, 1)
	assert.Equal(t, other.Order.ID, result.Trades[0].MakerOrderID)
	assert.Equal(t, int64(8), result.Trades[0].Quantity)
	assert.Len(t, tape.trades, 1)
	require.NoError(t, book.Validate())
}

// Test 12: DecrementAndCancel cancels the incoming side when it is smaller
func TestBook_SelfTrade_DecrementAndCancel_IncomingSmaller(t *testing.T) {
	book, tape := newTestBook()

	big := mustPlace(t, book, limit("alice", orderbookv1.SideAsk, 10_000, 10))
	result := mustPlace(t, book, limit("alice", orderbookv1.SideBid, 10_000, 4))

	assert.Equal(t, orderbookv1.StatusCancelled, result.Order.Status)
	assert.Empty(t, result.Trades)
	assert.Empty(t, tape.trades)

	// the resting order is untouched
	assert.Equal(t, orderbookv1.StatusOpen, big.Order.Status)
	assert.Equal(t, int64(10), book.Levels(orderbookv1.SideAsk, 0)[0].Quantity)
}

// Test 13: DecrementAndCancel cancels both when quantities are equal
func TestBook_SelfTrade_DecrementAndCancel_Equal(t *testing.T) {
	book, _ := newTestBook()

	resting := mustPlace(t, book, limit("alice", orderbookv1.SideAsk, 10_000, 5))
	result := mustPlace(t, book, limit("alice", orderbookv1.SideBid, 10_000, 5))

	assert.Equal(t, orderbookv1.StatusCancelled, resting.Order.Status)
	assert.Equal(t, orderbookv1.StatusCancelled, result.Order.Status)
	assert.Contains(t, result.Removed, resting.Order)
	assert.Empty(t, result.Trades)
	assert.Empty(t, book.Levels(orderbookv1.SideAsk, 0))
	assert.Empty(t, book.Levels(orderbookv1.SideBid, 0))
}

// Test 14: CancelProvide removes own resting orders and keeps matching
func TestBook_SelfTrade_CancelProvide(t *testing.T) {
	book, _ := newTestBook()

	own := mustPlace(t, book, limit("alice", orderbookv1.SideAsk, 10_000, 10))
	other := mustPlace(t, book, limit("bob", orderbookv1.SideAsk, 10_000, 6))

	req := limit("alice", orderbookv1.SideBid, 10_000, 6)
	req.SelfTrade = orderbookv1.CancelProvide
	result := mustPlace(t, book, req)

	assert.Equal(t, orderbookv1.StatusCancelled, own.Order.Status)
	require.Len(t, result.Trades, 1)
	assert.Equal(t, other.Order.ID, result.Trades[0].MakerOrderID)
	assert.Equal(t, orderbookv1.StatusFilled, result.Order.Status)
}

// Test 15: CancelTake cancels the incoming order on first self contact
func TestBook_SelfTrade_CancelTake(t *testing.T) {
	book, _ := newTestBook()

	own := mustPlace(t, book, limit("alice", orderbookv1.SideAsk, 10_000, 2))
	mustPlace(t, book, limit("bob", orderbookv1.SideAsk, 10_100, 10))

	req := limit("alice", orderbookv1.SideBid, 10_100, 8)
	req.SelfTrade = orderbookv1.CancelTake
	result := mustPlace(t, book, req)

	assert.Equal(t, orderbookv1.StatusCancelled, result.Order.Status)
	assert.Empty(t, result.Trades)
	assert.Equal(t, orderbookv1.StatusOpen, own.Order.Status)
	assert.Equal(t, int64(2), book.Levels(orderbookv1.SideAsk, 0)[0].Quantity)
}

// Test 16: FOK dry run accounts for the self-trade policy
func TestBook_FillOrKill_SelfTradeBlocked(t *testing.T) {
	book, _ := newTestBook()

	mustPlace(t, book, limit("alice", orderbookv1.SideAsk, 10_000, 10))

	// the only liquidity is alice's own ask, so her FOK bid can never fill
	req := limit("alice", orderbookv1.SideBid, 10_000, 5)
	req.TimeInForce = orderbookv1.FillOrKill
	_, err := book.PlaceOrder(req)
	assert.ErrorIs(t, err, orderbookv1.ErrFillOrKillUnsatisfiable)

	// with someone else's liquidity behind it, CancelProvide can still fill
	mustPlace(t, book, limit("bob", orderbookv1.SideAsk, 10_000, 5))
	req.SelfTrade = orderbookv1.CancelProvide
	result := mustPlace(t, book, req)
	assert.Equal(t, orderbookv1.StatusFilled, result.Order.Status)
}

// Test 17: Cancel removes a resting order; a second cancel finds nothing
func TestBook_CancelOrder(t *testing.T) {
	book, _ := newTestBook()

	placed := mustPlace(t, book, limit("alice", orderbookv1.SideBid, 10_000, 10))
	seqBefore := book.Sequence()

	order, err := book.CancelOrder(placed.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, orderbookv1.StatusCancelled, order.Status)
	assert.Equal(t, seqBefore+1, book.Sequence())
	assert.Empty(t, book.Levels(orderbookv1.SideBid, 0))

	_, err = book.CancelOrder(placed.Order.ID)
	assert.ErrorIs(t, err, orderbookv1.ErrOrderNotFound)
	assert.Equal(t, seqBefore+1, book.Sequence())
}

// Test 18: Cancel of a never-seen id
func TestBook_CancelOrder_Unknown(t *testing.T) {
	book, _ := newTestBook()

	_, err := book.CancelOrder(42)
	assert.ErrorIs(t, err, orderbookv1.ErrOrderNotFound)
	assert.Equal(t, uint64(0), book.Sequence())
}

// Test 19: Quantity decrease keeps queue priority
func TestBook_ModifyOrder_DecreaseKeepsPriority(t *testing.T) {
	book, _ := newTestBook()

	first := mustPlace(t, book, limit("alice", orderbookv1.SideAsk, 10_000, 10))
	mustPlace(t, book, limit("bob", orderbookv1.SideAsk, 10_000, 10))

	newQty := int64(4)
	result, err := book.ModifyOrder(orderbookv1.ModifyOrderRequest{
		OrderID:     first.Order.ID,
		NewQuantity: &newQty,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), result.Order.RemainingQuantity)
	assert.Equal(t, int64(4), result.Order.OriginalQuantity)
	assert.Empty(t, result.Trades)

	// alice still trades first
	taker := mustPlace(t, book, limit("carol", orderbookv1.SideBid, 10_000, 4))
	require.Len(t, taker.Trades, 1)
	assert.Equal(t, first.Order.ID, taker.Trades[0].MakerOrderID)
}

// Test 20: Quantity increase resets queue priority
func TestBook_ModifyOrder_IncreaseResetsPriority(t *testing.T) {
	book, _ := newTestBook()

	first := mustPlace(t, book, limit("alice", orderbookv1.SideAsk, 10_000, 5))
	second := mustPlace(t, book, limit("bob", orderbookv1.SideAsk, 10_000, 5))

	newQty := int64(8)
	result, err := book.ModifyOrder(orderbookv1.ModifyOrderRequest{
		OrderID:     first.Order.ID,
		NewQuantity: &newQty,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8), result.Order.RemainingQuantity)
	assert.Equal(t, int64(8), result.Order.OriginalQuantity)

	// bob now trades first
	taker := mustPlace(t, book, limit("carol", orderbookv1.SideBid, 10_000, 5))
	require.Len(t, taker.Trades, 1)
	assert.Equal(t, second.Order.ID, taker.Trades[0].MakerOrderID)
	require.NoError(t, book.Validate())
}

// Test 21: A price change that crosses re-runs matching
func TestBook_ModifyOrder_PriceChangeCrosses(t *testing.T) {
	book, _ := newTestBook()

	resting := mustPlace(t, book, limit("alice", orderbookv1.SideBid, 9_900, 5))
	maker := mustPlace(t, book, limit("bob", orderbookv1.SideAsk, 10_000, 5))

	newPrice := int64(10_000)
	result, err := book.ModifyOrder(orderbookv1.ModifyOrderRequest{
		OrderID:  resting.Order.ID,
		NewPrice: &newPrice,
	})
	require.NoError(t, err)
	require.Len(t, result.Trades, 1)
	assert.Equal(t, maker.Order.ID, result.Trades[0].MakerOrderID)
	assert.Equal(t, int64(10_000), result.Trades[0].Price)
	assert.Equal(t, orderbookv1.StatusFilled, result.Order.Status)
	assert.Empty(t, book.Levels(orderbookv1.SideBid, 0))
	assert.Empty(t, book.Levels(orderbookv1.SideAsk, 0))
	require.NoError(t, book.Validate())
}

// Test 22: Modify validations
func TestBook_ModifyOrder_Rejections(t *testing.T) {
	book, _ := newTestBook()

	placed := mustPlace(t, book, limit("alice", orderbookv1.SideBid, 10_000, 10))

	badPrice := int64(-5)
	_, err := book.ModifyOrder(orderbookv1.ModifyOrderRequest{OrderID: placed.Order.ID, NewPrice: &badPrice})
	assert.ErrorIs(t, err, orderbookv1.ErrInvalidPrice)

	offTick := int64(10_005)
	_, err = book.ModifyOrder(orderbookv1.ModifyOrderRequest{OrderID: placed.Order.ID, NewPrice: &offTick})
	assert.ErrorIs(t, err, orderbookv1.ErrPriceNotAligned)

	badQty := int64(0)
	_, err = book.ModifyOrder(orderbookv1.ModifyOrderRequest{OrderID: placed.Order.ID, NewQuantity: &badQty})
	assert.ErrorIs(t, err, orderbookv1.ErrInvalidQuantity)

	_, err = book.ModifyOrder(orderbookv1.ModifyOrderRequest{OrderID: 999})
	assert.ErrorIs(t, err, orderbookv1.ErrOrderNotFound)

	// nothing above mutated the book
	assert.Equal(t, uint64(1), book.Sequence())
	require.NoError(t, book.Validate())
}

// Test 23: A no-op modify does not advance the sequence
func TestBook_ModifyOrder_NoOp(t *testing.T) {
	book, _ := newTestBook()

	placed := mustPlace(t, book, limit("alice", orderbookv1.SideBid, 10_000, 10))
	samePrice, sameQty := int64(10_000), int64(10)

	result, err := book.ModifyOrder(orderbookv1.ModifyOrderRequest{
		OrderID:     placed.Order.ID,
		NewPrice:    &samePrice,
		NewQuantity: &sameQty,
	})
	require.NoError(t, err)
	assert.Equal(t, placed.Order, result.Order)
	assert.Equal(t, uint64(1), book.Sequence())
}

// Test 24: GTT orders expire, others do not
func TestBook_ExpireOrders(t *testing.T) {
	book, _ := newTestBook()

	now := time.Now().UnixNano()

	gtt := limit("alice", orderbookv1.SideBid, 10_000, 10)
	gtt.TimeInForce = orderbookv1.GoodTillTime
	gtt.ExpireAt = now - 1
	expiring := mustPlace(t, book, gtt)

	later := limit("bob", orderbookv1.SideBid, 9_900, 5)
	later.TimeInForce = orderbookv1.GoodTillTime
	later.ExpireAt = now + time.Hour.Nanoseconds()
	mustPlace(t, book, later)

	mustPlace(t, book, limit("carol", orderbookv1.SideAsk, 10_100, 5))

	expired := book.ExpireOrders(now)
	require.Len(t, expired, 1)
	assert.Equal(t, expiring.Order.ID, expired[0].ID)
	assert.Equal(t, orderbookv1.StatusCancelled, expired[0].Status)

	bids := book.Levels(orderbookv1.SideBid, 0)
	require.Len(t, bids, 1)
	assert.Equal(t, int64(9_900), bids[0].Price)

	// nothing to expire on a second sweep
	assert.Empty(t, book.ExpireOrders(now))
	require.NoError(t, book.Validate())
}

// Test 25: Conservation of quantity across a fill
func TestBook_Conservation(t *testing.T) {
	book, _ := newTestBook()

	mustPlace(t, book, limit("maker1", orderbookv1.SideAsk, 10_000, 7))
	mustPlace(t, book, limit("maker2", orderbookv1.SideAsk, 10_100, 9))

	result := mustPlace(t, book, limit("taker", orderbookv1.SideBid, 10_100, 12))

	var traded int64
	for _, trade := range result.Trades {
		traded += trade.Quantity
	}
	assert.Equal(t, result.Order.OriginalQuantity, traded+result.Order.RemainingQuantity)
	assert.Equal(t, traded, result.Order.FilledQuantity())
}

// Test 26: Sequence advances once per successful mutating command
func TestBook_SequenceMonotonic(t *testing.T) {
	book, _ := newTestBook()

	placed := mustPlace(t, book, limit("alice", orderbookv1.SideBid, 10_000, 10))
	assert.Equal(t, uint64(1), book.Sequence())

	mustPlace(t, book, limit("bob", orderbookv1.SideAsk, 10_100, 5))
	assert.Equal(t, uint64(2), book.Sequence())

	_, err := book.PlaceOrder(limit("carol", orderbookv1.SideBid, 10_003, 5))
	require.Error(t, err)
	assert.Equal(t, uint64(2), book.Sequence())

	_, err = book.CancelOrder(placed.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), book.Sequence())
}

// Test 27: Snapshot and restore reproduce the same book
func TestBook_SnapshotRestore(t *testing.T) {
	book, _ := newTestBook()

	mustPlace(t, book, limit("alice", orderbookv1.SideBid, 10_000, 10))
	mustPlace(t, book, limit("bob", orderbookv1.SideBid, 9_900, 5))
	mustPlace(t, book, limit("carol", orderbookv1.SideAsk, 10_100, 7))
	mustPlace(t, book, limit("dave", orderbookv1.SideBid, 10_100, 3)) // partial fill against carol

	snapshot := book.CreateSnapshot()
	require.Len(t, snapshot.OrderBookSnapshot.Orders, 3)

	restored, _ := newTestBook()
	require.NoError(t, restored.Restore(snapshot))

	assert.Equal(t, book.Sequence(), restored.Sequence())
	assert.Equal(t, book.Levels(orderbookv1.SideBid, 0), restored.Levels(orderbookv1.SideBid, 0))
	assert.Equal(t, book.Levels(orderbookv1.SideAsk, 0), restored.Levels(orderbookv1.SideAsk, 0))
	require.NoError(t, restored.Validate())

	// a new order on the restored book gets a fresh id and matches normally
	result := mustPlace(t, restored, limit("erin", orderbookv1.SideBid, 10_100, 4))
	require.Len(t, result.Trades, 1)
	assert.Equal(t, int64(4), result.Trades[0].Quantity)
	assert.Greater(t, result.Order.ID, uint64(4))
}

// Test 28: Restore rejects nil and broken snapshots
func TestBook_Restore_Invalid(t *testing.T) {
	book, _ := newTestBook()
	assert.Error(t, book.Restore(nil))
}

// Test 29: The book never rests crossed through heavy mixed traffic
func TestBook_NoCrossAfterChurn(t *testing.T) {
	book, _ := newTestBook()

	owners := []string{"alice", "bob", "carol"}
	for i := 0; i < 200; i++ {
		side := orderbookv1.SideBid
		price := int64(10_000 - 10*(i%7))
		if i%2 == 1 {
			side = orderbookv1.SideAsk
			price = int64(10_000 + 10*(i%5))
		}
		req := limit(owners[i%len(owners)], side, price, int64(1+i%9))
		if i%11 == 0 {
			req.TimeInForce = orderbookv1.ImmediateOrCancel
		}
		_, err := book.PlaceOrder(req)
		require.NoError(t, err)
		require.NoError(t, book.Validate())
	}
}

// Test 30: Empty client order IDs are replaced with a generated one
func TestBook_ClientOrderIDDefaulted(t *testing.T) {
	book, _ := newTestBook()

	result := mustPlace(t, book, limit("alice", orderbookv1.SideBid, 10_000, 5))
	assert.NotEmpty(t, result.Order.ClientOrderID)

	req := limit("bob", orderbookv1.SideBid, 10_000, 5)
	req.ClientOrderID = "client-42"
	result = mustPlace(t, book, req)
	assert.Equal(t, "client-42", result.Order.ClientOrderID)
}

// Test 31: A price move with a quantity decrease rests with no phantom fills
func TestBook_ModifyOrder_PriceAndQuantityDecrease(t *testing.T) {
	book, _ := newTestBook()

	placed := mustPlace(t, book, limit("alice", orderbookv1.SideBid, 10_000, 10))

	newPrice, newQty := int64(9_990), int64(5)
	result, err := book.ModifyOrder(orderbookv1.ModifyOrderRequest{
		OrderID:     placed.Order.ID,
		NewPrice:    &newPrice,
		NewQuantity: &newQty,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Trades)
	assert.Equal(t, orderbookv1.StatusOpen, result.Order.Status)
	assert.Equal(t, int64(5), result.Order.OriginalQuantity)
	assert.Equal(t, int64(5), result.Order.RemainingQuantity)
	assert.Equal(t, int64(0), result.Order.FilledQuantity())
	require.NoError(t, book.Validate())
}

// Test 32: An in-place decrease after a partial fill keeps the filled amount
func TestBook_ModifyOrder_DecreaseAfterPartialFill(t *testing.T) {
	book, _ := newTestBook()

	maker := mustPlace(t, book, limit("alice", orderbookv1.SideBid, 10_000, 10))
	mustPlace(t, book, limit("bob", orderbookv1.SideAsk, 10_000, 4))

	require.Equal(t, int64(4), maker.Order.FilledQuantity())

	newQty := int64(2)
	result, err := book.ModifyOrder(orderbookv1.ModifyOrderRequest{
		OrderID:     maker.Order.ID,
		NewQuantity: &newQty,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Order.RemainingQuantity)
	assert.Equal(t, int64(6), result.Order.OriginalQuantity)
	assert.Equal(t, int64(4), result.Order.FilledQuantity())
	assert.Equal(t, orderbookv1.StatusPartiallyFilled, result.Order.Status)
	require.NoError(t, book.Validate())
}
