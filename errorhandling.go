package cells

import "github.com/alex-gutev/live-cells-go/internal"

// OnError creates a cell that takes self's value, falling back to
// fallback's value whenever self holds an error that match accepts.
// A nil match accepts every error (the default "type=Exception"
// behavior in the source language; Go has no exception class
// hierarchy to dispatch on, so a predicate is the idiomatic
// replacement). An error self holds that match rejects propagates
// through OnError's own cell unchanged.
func OnError[T any](self, fallback Cell[T], match func(error) bool) Cell[T] {
	key := internal.NewValueKey("on_error",
		self.cellHandle().CellKey(), fallback.cellHandle().CellKey())

	return Computed(func(ctx *Context) T {
		v, err := internal.Call(self.cellHandle())
		if err != nil {
			if match == nil || match(err) {
				return Call(ctx, fallback)
			}

			panic(computeError{err})
		}

		return v.(T)
	}, WithKey(key))
}

// ErrorOf creates a cell holding the error self last raised, or nil
// while self holds a value. An error self holds that match rejects
// propagates unchanged, the same as OnError.
//
// If all is false (the default), the cell instead retains whatever
// error it last saw even after self recomputes to a value: it only
// ever resets to nil once, on the first read before self has ever
// failed. If all is true, it clears to nil every time self
// successfully recomputes.
func ErrorOf[T any](self Cell[T], match func(error) bool, all bool) Cell[error] {
	key := internal.NewValueKey("error_of", self.cellHandle().CellKey(), all)

	return Computed(func(ctx *Context) error {
		_, err := internal.Call(self.cellHandle())
		if err != nil {
			if match == nil || match(err) {
				return err
			}

			panic(computeError{err})
		}

		if !all {
			return None[error]()
		}

		return nil
	}, WithKey(key), ChangesOnly())
}
