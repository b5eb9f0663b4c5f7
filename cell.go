package cells

import "github.com/alex-gutev/live-cells-go/internal"

// Cell is a typed handle onto a node in the reactive graph. It is
// implemented only by types in this package; external code never
// implements it directly, the same way a Reaction in the reactive
// core this library is modeled on is never user-implemented.
type Cell[T any] interface {
	// Value returns the cell's current value, or the error from its
	// last (re)computation. Reading a cell this way does not register
	// it as a dependency of anything; use Call for that from inside a
	// Computed or Watch callback.
	Value() (T, error)

	cellHandle() internal.Cell
}

// Context is passed to every Computed and Watch callback. It carries
// no state of its own: dependency tracking is scoped to the calling
// goroutine, not to a particular Context value. It exists so that
// Call reads in a callback body look the same no matter how deeply
// nested they are: x := Call(ctx, a).
type Context struct{}

// Call reads c's value from inside a Computed or Watch callback,
// registering c as one of the caller's dependencies, and panics if c
// currently holds an error so that the error propagates up through
// nested Call()s exactly like an ordinary Go panic unwinds a call
// stack. The enclosing Computed or Watch recovers it at the top.
//
// If c's error is an abort (from a None() somewhere in its own
// computation, however deeply nested), the abort itself propagates
// rather than turning into an ordinary error here: reading an aborted
// cell aborts the caller too, the same way the source language
// re-raises StopComputeException out of a stopped cell's __call__.
func Call[T any](ctx *Context, c Cell[T]) T {
	v, err := internal.Call(c.cellHandle())
	if err != nil {
		if abort, ok := internal.AsAbort(err); ok {
			panic(abortSignal{abort.Default})
		}

		panic(computeError{err})
	}

	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// cellImpl is the concrete Cell[T] carried by every constructor in
// this package except NewMutable (Value, Computed, Peek, Waited,
// OnError, ErrorOf, and the operator helpers all return one).
type cellImpl[T any] struct {
	c internal.Cell
}

func (c cellImpl[T]) Value() (T, error) {
	v, err := c.c.Value()
	if err != nil || v == nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}

func (c cellImpl[T]) cellHandle() internal.Cell { return c.c }

// computeError wraps an ordinary error so it can travel through a
// panic/recover round trip without being confused with a genuine
// uncaught panic (a bug), which is always left to propagate past the
// recover in Computed and Watch.
type computeError struct{ err error }

// abortSignal is the panic payload raised by None, carrying the
// default value to use if the cell has never produced one before.
type abortSignal struct{ deflt any }
