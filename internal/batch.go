package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// batchState is the per-goroutine batch coordinator (C9). Nested
// Enter/Exit calls only flush when the outermost scope exits.
type batchState struct {
	depth   int
	pending []*MutableState
	seen    map[*MutableState]struct{}
}

var batches sync.Map // goid.Get() -> *batchState

func currentBatch() *batchState {
	gid := goid.Get()

	if b, ok := batches.Load(gid); ok {
		return b.(*batchState)
	}

	b := &batchState{seen: make(map[*MutableState]struct{})}
	batches.Store(gid, b)
	return b
}

// InBatch reports whether a batch scope is active on the calling
// goroutine.
func InBatch() bool {
	return currentBatch().depth > 0
}

// EnterBatch begins (or nests into) a batch scope on the calling
// goroutine.
func EnterBatch() {
	currentBatch().depth++
}

// ExitBatch ends a batch scope. On the outermost exit it flushes every
// mutable state enrolled by EnrollBatch, in registration order,
// issuing exactly one DidUpdate notification per state.
func ExitBatch() {
	b := currentBatch()
	b.depth--

	if b.depth > 0 {
		return
	}

	pending := b.pending
	b.pending = nil
	b.seen = make(map[*MutableState]struct{})

	for _, state := range pending {
		state.flush()
	}
}

// EnrollBatch adds state to the current batch's flush list, at most
// once per batch.
func EnrollBatch(state *MutableState) {
	b := currentBatch()

	if _, ok := b.seen[state]; ok {
		return
	}

	b.seen[state] = struct{}{}
	b.pending = append(b.pending, state)
}

// RunBatch runs fn with a batch scope active on the calling goroutine.
func RunBatch(fn func()) {
	EnterBatch()
	defer ExitBatch()

	fn()
}
