package internal

// Abort is the abort sentinel (§9): a distinguished error kind raised
// by a compute function to mean "keep the previous cached value". It
// must never be confused with an ordinary computation error, so it is
// its own type rather than a string-matched error.
type Abort struct {
	// Default is used as the initial value when Abort is raised
	// before the cell has ever produced a value.
	Default any
}

func (a *Abort) Error() string { return "cell computation aborted" }

// AsAbort reports whether err is an *Abort.
func AsAbort(err error) (*Abort, bool) {
	a, ok := err.(*Abort)
	return a, ok
}

// ComputeFn computes a cell's value, returning either a value, an
// *Abort (keep previous value), or any other error (stored and
// re-raised on subsequent reads).
type ComputeFn func() (any, error)

// ComputedCell is a derived cell with a dynamically discovered
// dependency set (C7).
type ComputedCell struct {
	*StatefulCell
	compute     ComputeFn
	changesOnly bool
}

// NewComputed creates a computed cell identified by key, running
// compute to produce its value. If changesOnly is true, observers
// only see changed=true when the recomputed value differs from the
// previous one (equality-based suppression).
func NewComputed(key Key, compute ComputeFn, changesOnly bool) *ComputedCell {
	c := &ComputedCell{compute: compute, changesOnly: changesOnly}
	c.StatefulCell = NewStatefulCell(key, func() *CellState {
		return newComputeState(c, key, compute, changesOnly)
	})
	return c
}

// Value implements Cell. While active it returns the cached value,
// lazily recomputing if stale. While inactive it runs compute fresh,
// without subscribing to any dependency, matching the "inactive read"
// rule in §4.6. The raw compute function runs under RunUntracked, so
// the cells it reads are not recorded in the caller's tracking frame;
// a caller that reads this cell through Call still records this cell
// itself as a dependency.
func (c *ComputedCell) Value() (any, error) {
	if st := c.State(); st != nil {
		return st.extra.(*ComputeState).getValue()
	}

	var (
		value any
		err   error
	)
	RunUntracked(func() {
		value, err = c.compute()
	})

	return value, err
}

// ComputeState is the CellState payload of a ComputedCell, and also
// implements Observer so it can be installed directly on its
// dependencies (C2, C7).
type ComputeState struct {
	*CellState
	compute     ComputeFn
	changesOnly bool

	stale    bool
	hasValue bool
	value    any
	err      error

	deps map[Cell]struct{}

	// update-cycle bookkeeping, mirrors the source language's
	// ObserverCellState: at most one WillUpdate/DidUpdate pair is
	// forwarded per propagation wave no matter how many dependencies
	// fire (glitch freedom, invariant 5).
	updating    bool
	pendingDeps int
	anyChanged  bool

	// changes-only bookkeeping: value captured just before recompute.
	hadOldValue bool
	oldValue    any
}

func newComputeState(cell Cell, key Key, compute ComputeFn, changesOnly bool) *CellState {
	base := NewCellState(cell, key)
	s := &ComputeState{
		CellState:   base,
		compute:     compute,
		changesOnly: changesOnly,
		stale:       true,
		deps:        make(map[Cell]struct{}),
	}
	base.extra = s
	base.Init = s.activate
	base.Deinit = s.deactivate

	return base
}

func (s *ComputeState) activate() {
	s.recompute()
}

func (s *ComputeState) deactivate() {
	for dep := range s.deps {
		dep.RemoveObserver(s)
	}
	s.deps = make(map[Cell]struct{})
}

func (s *ComputeState) getValue() (any, error) {
	if s.stale {
		s.recompute()
	}

	return s.value, s.err
}

// recompute runs the compute function inside a fresh tracking frame,
// diffs the discovered dependency set against the previous one, and
// applies the three possible outcomes from §4.6.
func (s *ComputeState) recompute() {
	if s.changesOnly {
		s.hadOldValue = s.hasValue
		s.oldValue = s.value
	}

	var (
		value any
		err   error
	)

	newDepsList := RunTracked(func() {
		value, err = s.compute()
	})

	newDeps := make(map[Cell]struct{}, len(newDepsList))
	for _, d := range newDepsList {
		newDeps[d] = struct{}{}
	}

	for dep := range s.deps {
		if _, ok := newDeps[dep]; !ok {
			dep.RemoveObserver(s)
		}
	}
	for dep := range newDeps {
		if _, ok := s.deps[dep]; !ok {
			dep.AddObserver(s)
		}
	}
	s.deps = newDeps

	s.stale = false

	if abort, ok := AsAbort(err); ok {
		if !s.hasValue {
			s.value = abort.Default
			s.err = nil
			s.hasValue = true
		}
		// retain previous cached value, no error stored.
		return
	}

	if err != nil {
		s.err = err
		s.hasValue = true
		return
	}

	s.value = value
	s.err = nil
	s.hasValue = true
}

// changed reports whether the just-finished recompute should be
// reported to this cell's own observers as changed=true.
func (s *ComputeState) changed() bool {
	if !s.changesOnly {
		return true
	}

	if !s.hadOldValue {
		return true
	}

	if s.err != nil {
		return true
	}

	return !ValuesEqual(s.oldValue, s.value)
}

// WillUpdate implements Observer.
func (s *ComputeState) WillUpdate(source Cell) {
	if !s.updating {
		s.updating = true
		s.anyChanged = false
		s.pendingDeps = 0

		s.NotifyWillUpdate()
		s.stale = true
	}

	s.pendingDeps++
}

// DidUpdate implements Observer.
func (s *ComputeState) DidUpdate(source Cell, changed bool) {
	if !s.updating {
		return
	}

	s.pendingDeps--
	if changed {
		s.anyChanged = true
	}

	if s.pendingDeps > 0 {
		return
	}

	reportChanged := false
	if s.anyChanged {
		s.stale = true
		s.recompute()
		reportChanged = s.changed()
	}

	s.updating = false
	s.NotifyDidUpdate(reportChanged)
}
