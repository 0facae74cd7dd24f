package orderbookv1

import (
	"github.com/hyyu189/SVM-CLOB-sub000/pkg/errors"
)

// Rejection sentinels for the engine's error taxonomy. Every validation
// error is detected before any ledger mutation; callers branch on these with
// errors.Is. None of them leave the book in a partially applied state.
var (
	// ErrInvalidPrice rejects a non-positive or missing price on an order
	// type that requires one.
	ErrInvalidPrice = errors.New(errors.InvalidPrice, "order price must be positive")

	// ErrInvalidQuantity rejects a non-positive quantity or one below the
	// configured minimum order size.
	ErrInvalidQuantity = errors.New(errors.InvalidQuantity, "order quantity must meet the configured minimum")

	// ErrPriceNotAligned rejects a price that is not a multiple of the
	// configured tick size.
	ErrPriceNotAligned = errors.New(errors.PriceNotAlignedToTickSize, "order price is not a multiple of the tick size")

	// ErrWouldCross rejects a post-only order that would immediately match.
	ErrWouldCross = errors.New(errors.WouldCross, "post-only order would cross the book")

	// ErrOrderNotFound rejects a cancel or modify referencing an unknown id.
	ErrOrderNotFound = errors.New(errors.OrderNotFound, "order not found")

	// ErrOrderNotCancellable rejects a cancel on an order already in a
	// terminal state.
	ErrOrderNotCancellable = errors.New(errors.OrderNotCancellable, "order is no longer cancellable")

	// ErrOrderNotModifiable rejects a modify on an order already in a
	// terminal state.
	ErrOrderNotModifiable = errors.New(errors.OrderNotModifiable, "order is no longer modifiable")

	// ErrFillOrKillUnsatisfiable rejects a fill-or-kill order that cannot
	// fully fill against current liquidity. Zero side effects.
	ErrFillOrKillUnsatisfiable = errors.New(errors.FillOrKillUnsatisfiable, "fill-or-kill order cannot be fully filled")
)
