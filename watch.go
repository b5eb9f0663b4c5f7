package cells

import (
	"log/slog"

	"github.com/alex-gutev/live-cells-go/internal"
)

type watchOptions struct {
	schedule func(func())
	errSink  func(error)
}

// WatchOption configures Watch.
type WatchOption func(*watchOptions)

// WithSchedule defers a watch's re-run, once its dependencies change,
// to schedule instead of running it synchronously on the writing
// goroutine. schedule is handed a thunk that replays the callback
// against the dependency values as of the moment they changed, not
// whatever they have become by the time schedule gets around to
// calling it. A typical schedule posts the thunk to a UI event loop
// or a worker queue.
func WithSchedule(schedule func(func())) WatchOption {
	return func(o *watchOptions) { o.schedule = schedule }
}

// WithErrorSink overrides where a watch callback's panics and errors
// are reported. The default logs them with slog at error level.
func WithErrorSink(sink func(error)) WatchOption {
	return func(o *watchOptions) { o.errSink = sink }
}

func defaultErrorSink(err error) {
	slog.Default().Error("live-cells: watch callback error", "error", err)
}

// WatchHandle controls a running watch started with Watch.
type WatchHandle struct {
	w *internal.Watch
}

// Watch runs fn immediately, discovers its dependencies from the
// cells it Call()s, and re-runs it (by default, synchronously,
// inline with whatever write triggered the change) whenever any of
// them change, until Stop is called. A panic inside fn, or an error
// surfaced by a Call it makes that the watch's own callback does not
// handle with OnError, is reported to the error sink instead of
// propagating out of the write that triggered it.
func Watch(fn func(*Context), opts ...WatchOption) *WatchHandle {
	cfg := watchOptions{errSink: defaultErrorSink}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx := &Context{}

	callback := func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			switch v := r.(type) {
			case computeError:
				panic(v.err)
			case abortSignal:
				// nothing to retain: a watch has no value of its own.
			default:
				panic(r)
			}
		}()

		fn(ctx)
	}

	w := internal.NewWatch(callback, cfg.schedule, cfg.errSink)
	return &WatchHandle{w: w}
}

// Stop unsubscribes the watch from all of its dependencies. Calling
// Stop more than once returns ErrStoppedWatch.
func (h *WatchHandle) Stop() error {
	if h.w.Dead() {
		return ErrStoppedWatch
	}

	h.w.Stop()
	return nil
}
