package cells

import "github.com/alex-gutev/live-cells-go/internal"

type computedOptions struct {
	key         internal.Key
	changesOnly bool
}

// ComputedOption configures Computed.
type ComputedOption func(*computedOptions)

// WithKey gives the computed cell a structural key so that other
// Computed calls built with an Equal key share its state.
func WithKey(key internal.Key) ComputedOption {
	return func(o *computedOptions) { o.key = key }
}

// ChangesOnly suppresses observer notification for a recomputation
// that produces a value equal to the previous one.
func ChangesOnly() ComputedOption {
	return func(o *computedOptions) { o.changesOnly = true }
}

// Computed creates a derived cell whose dependencies are discovered
// automatically from every Call made inside fn. None, called from
// fn, aborts the current computation and keeps the cell's previous
// value.
func Computed[T any](fn func(*Context) T, opts ...ComputedOption) Cell[T] {
	cfg := computedOptions{key: internal.NewNoKey()}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx := &Context{}

	compute := func() (result any, err error) {
		defer func() {
			if r := recover(); r == nil {
				return
			} else if ce, ok := r.(computeError); ok {
				err = ce.err
			} else if as, ok := r.(abortSignal); ok {
				err = &internal.Abort{Default: as.deflt}
			} else {
				panic(r)
			}
		}()

		return fn(ctx), nil
	}

	c := internal.NewComputed(cfg.key, compute, cfg.changesOnly)
	return cellImpl[T]{c}
}

// None aborts the enclosing Computed or Watch callback, leaving the
// cell at its previous value. If called before the cell has ever
// produced a value, it is seeded with the zero value of T, or with
// deflt[0] if given. Calling it outside a Computed/Watch callback is
// a programming error: the panic it raises propagates uncaught.
func None[T any](deflt ...T) T {
	var d any
	if len(deflt) > 0 {
		d = deflt[0]
	}

	panic(abortSignal{d})
}
