package cells

import (
	"sync"

	"github.com/alex-gutev/live-cells-go/internal"
	"golang.org/x/sync/errgroup"
)

// Awaitable is something a wait cell can wait the completion of: a
// future, an in-flight RPC, anything with an eventual result.
type Awaitable[T any] interface {
	// Done returns a channel closed once the awaitable has completed.
	Done() <-chan struct{}

	// Result returns the completed value or error. Valid only after
	// Done() has been closed.
	Result() (T, error)
}

// awaitableAdapter narrows an Awaitable[T] down to the untyped
// internal.Awaitable the engine's wait-cell machinery understands.
// It exists only because Go's generics erase T at the interface
// boundary: internal.Awaitable.Result returns (any, error), which a
// concrete Awaitable[T] does not itself satisfy for any T other than
// any.
type awaitableAdapter[T any] struct{ a Awaitable[T] }

func (w awaitableAdapter[T]) Done() <-chan struct{} { return w.a.Done() }

func (w awaitableAdapter[T]) Result() (any, error) {
	return w.a.Result()
}

// Future is a settable Awaitable: a producer calls Resolve or Reject
// exactly once, and any number of consumers can await Done().
type Future[T any] struct {
	f *internal.Future
}

// NewFuture creates a pending Future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{f: internal.NewFuture()}
}

// Resolve completes the future successfully. Calls after the first
// are ignored.
func (f *Future[T]) Resolve(v T) { f.f.Resolve(v) }

// Reject completes the future with an error. Calls after the first
// are ignored.
func (f *Future[T]) Reject(err error) { f.f.Reject(err) }

func (f *Future[T]) Done() <-chan struct{} { return f.f.Done() }

func (f *Future[T]) Result() (T, error) {
	v, err := f.f.Result()
	if err != nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}

type waitOptions struct {
	reset bool
	queue bool
}

// WaitOption configures Waited.
type WaitOption func(*waitOptions)

// WithReset selects whether the waited cell's value resets to
// ErrPendingAsyncValue every time its source produces a new
// awaitable, orphaning whatever the previous one eventually resolves
// to. Default true. WithReset(false) selects between "last only"
// (the newest awaitable supersedes any still in flight) and, combined
// with WithQueue(true), delivering every awaitable's result in
// assignment order regardless of completion order.
func WithReset(reset bool) WaitOption {
	return func(o *waitOptions) { o.reset = reset }
}

// WithQueue selects "queue" semantics: every awaitable assigned to
// the source cell is awaited and delivered, in assignment order, even
// if a later one completes first. Only meaningful combined with
// WithReset(false); Waited forces it off whenever WithReset(true) (the
// default) is also in effect, since reset's "discard the superseded
// awaitable" guarantee and queue's "deliver every awaitable" guarantee
// are mutually exclusive.
func WithQueue(queue bool) WaitOption {
	return func(o *waitOptions) { o.queue = queue }
}

// Waited creates a cell that materializes the completion of whatever
// Awaitable src currently holds into a synchronous value (C11). Its
// Value is ErrPendingAsyncValue while the current awaitable is still
// in flight, and also whenever the cell has no observer.
func Waited[T any](src Cell[Awaitable[T]], opts ...WaitOption) Cell[T] {
	cfg := waitOptions{reset: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	// WithQueue only means anything alongside WithReset(false): reset
	// discards a superseded awaitable's result outright, same as
	// waited.py's AwaitCell path ignoring queue entirely, so honoring
	// a stray WithQueue(true) here would let a discarded generation's
	// result slip through delivery instead.
	if cfg.reset {
		cfg.queue = false
	}

	adapted := internal.NewComputed(internal.NewNoKey(), func() (any, error) {
		v, err := internal.Call(src.cellHandle())
		if err != nil {
			return nil, err
		}

		return awaitableAdapter[T]{v.(Awaitable[T])}, nil
	}, false)

	key := internal.NewValueKey("waited", cfg.reset, cfg.queue, src.cellHandle().CellKey())
	return cellImpl[T]{internal.NewWait(key, adapted, cfg.reset, cfg.queue)}
}

// Wait is Waited followed by Call in one step: it registers the waited
// cell as a dependency of the enclosing Computed or Watch and returns
// its value. It does not block: while the awaitable is still in
// flight, Call raises ErrPendingAsyncValue like any other cell error,
// and the enclosing callback runs again once the awaitable completes.
func Wait[T any](ctx *Context, src Cell[Awaitable[T]], opts ...WaitOption) T {
	return Call(ctx, Waited(src, opts...))
}

// WaitAll gathers the awaitables currently held by every cell in srcs
// and waits for all of them to complete, delivering their results
// together as a slice in srcs order. It fails as soon as any one of
// them fails.
//
// The source language's multi-source wait accepts awaitables of
// different, independently typed cells and returns their results as
// a heterogeneous tuple; Go's static typing has no equivalent of
// that without resorting to reflection, so WaitAll requires every
// source to hold the same awaitable type T.
func WaitAll[T any](srcs ...Cell[Awaitable[T]]) Cell[[]T] {
	if len(srcs) == 0 {
		panic("cells: WaitAll requires at least one source")
	}

	keys := make([]any, len(srcs))
	for i, s := range srcs {
		keys[i] = s.cellHandle().CellKey()
	}

	gathered := Computed(func(ctx *Context) Awaitable[[]T] {
		aws := make([]Awaitable[T], len(srcs))
		for i, s := range srcs {
			aws[i] = Call(ctx, s)
		}

		return gatherAwaitables(aws)
	}, WithKey(internal.NewValueKey("wait_all", keys...)))

	return Waited[[]T](gathered)
}

func gatherAwaitables[T any](aws []Awaitable[T]) Awaitable[[]T] {
	fut := NewFuture[[]T]()

	go func() {
		results := make([]T, len(aws))

		var g errgroup.Group
		var mu sync.Mutex

		for i, aw := range aws {
			i, aw := i, aw
			g.Go(func() error {
				<-aw.Done()

				v, err := aw.Result()
				if err != nil {
					fut.Reject(err)
					return err
				}

				mu.Lock()
				results[i] = v
				mu.Unlock()

				return nil
			})
		}

		if err := g.Wait(); err != nil {
			fut.Reject(err)
			return
		}

		fut.Resolve(results)
	}()

	return fut
}
