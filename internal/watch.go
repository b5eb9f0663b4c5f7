package internal

import "fmt"

// Watch is a hidden computed-like consumer that is always active: it
// owns no CellState of its own, but implements Observer directly so
// it can subscribe to the cells its callback reads (C10).
type Watch struct {
	callback func()
	errSink  func(error)
	schedule func(func())

	deps map[Cell]struct{}

	updating bool
	firing   bool
	dead     bool
}

// NewWatch creates and immediately runs callback once to discover its
// dependencies, then subscribes to them.
func NewWatch(callback func(), schedule func(func()), errSink func(error)) *Watch {
	w := &Watch{
		callback: callback,
		schedule: schedule,
		errSink:  errSink,
		deps:     make(map[Cell]struct{}),
	}

	w.run()

	return w
}

// Stop uninstalls every subscription and marks the watch dead; later
// source writes never trigger the callback again.
func (w *Watch) Stop() {
	if w.dead {
		return
	}

	w.dead = true

	for dep := range w.deps {
		dep.RemoveObserver(w)
	}
	w.deps = nil
}

// Dead reports whether Stop has already been called.
func (w *Watch) Dead() bool { return w.dead }

func (w *Watch) run() {
	if w.dead || w.firing {
		return
	}

	w.firing = true
	defer func() { w.firing = false }()

	newDepsList := RunTracked(func() {
		defer func() {
			if r := recover(); r != nil {
				w.report(r)
			}
		}()

		w.callback()
	})

	newDeps := make(map[Cell]struct{}, len(newDepsList))
	for _, d := range newDepsList {
		newDeps[d] = struct{}{}
	}

	for dep := range w.deps {
		if _, ok := newDeps[dep]; !ok {
			dep.RemoveObserver(w)
		}
	}
	for dep := range newDeps {
		if _, ok := w.deps[dep]; !ok {
			dep.AddObserver(w)
		}
	}
	w.deps = newDeps
}

func (w *Watch) report(r any) {
	if w.errSink == nil {
		return
	}

	if err, ok := r.(error); ok {
		w.errSink(err)
		return
	}

	w.errSink(&panicError{r})
}

// WillUpdate implements Observer.
func (w *Watch) WillUpdate(Cell) {
	w.updating = true
}

// DidUpdate implements Observer.
func (w *Watch) DidUpdate(_ Cell, changed bool) {
	if !w.updating {
		return
	}
	w.updating = false

	if !changed || w.dead {
		return
	}

	if w.schedule != nil {
		snap := make(map[Cell]ValueResult, len(w.deps))
		for dep := range w.deps {
			v, err := dep.Value()
			snap[dep] = ValueResult{Value: v, Err: err}
		}

		w.schedule(func() {
			RunWithSnapshot(snap, w.run)
		})

		return
	}

	w.run()
}

type panicError struct{ v any }

func (p *panicError) Error() string {
	return fmt.Sprintf("live-cells: watch callback panicked: %v", p.v)
}
