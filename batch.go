package cells

import "github.com/alex-gutev/live-cells-go/internal"

// Batch runs fn with every Mutable.Set/SetError inside it coalesced:
// observers see at most one DidUpdate notification per cell, after fn
// returns, instead of one per individual assignment. Nested Batch
// calls flush only when the outermost one exits.
func Batch(fn func()) {
	internal.RunBatch(fn)
}
