package internal

import "errors"

// ErrPendingAsyncValue is returned by a wait cell's Value while it has
// no observer, before its first awaitable completes, and, under reset
// semantics, while its current awaitable has not yet completed.
var ErrPendingAsyncValue = errors.New("live-cells: pending async value")

// ErrUninitializedCell is the error a wait cell holds when its source
// cell's value is not an Awaitable.
var ErrUninitializedCell = errors.New("live-cells: cell has not been activated")
