package cells

import (
	"errors"

	"github.com/alex-gutev/live-cells-go/internal"
)

// ErrPendingAsyncValue is returned by a wait cell's Value while it has
// no observer, and while the awaitable it is currently waiting on has
// not yet completed.
var ErrPendingAsyncValue = internal.ErrPendingAsyncValue

// ErrUninitializedCell is the error a wait cell holds when its source
// cell's value is not an awaitable.
var ErrUninitializedCell = internal.ErrUninitializedCell

// ErrStoppedWatch is returned by WatchHandle.Stop when it has already
// been called once.
var ErrStoppedWatch = errors.New("live-cells: watch already stopped")
