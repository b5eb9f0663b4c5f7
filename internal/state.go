package internal

// CellState holds the shared, observer-facing state of a stateful
// cell: the set of observers (reference counted) and the two-phase
// notification machinery (C2, C3). Cells that share a Key share a
// *CellState instance (see GlobalStateMap).
type CellState struct {
	cell Cell
	key  Key

	observers map[Observer]int
	order     []Observer

	disposed bool

	notifyCount int

	// extra holds the variant-specific payload (e.g. *MutableState,
	// *ComputeState) for cell kinds that layer additional state on
	// top of the shared observer bookkeeping.
	extra any

	// Init, if set, is called before the first observer is added.
	Init func()
	// Deinit, if set, is called after the last observer is removed.
	Deinit func()
}

// NewCellState creates the state backing cell, identified by key.
func NewCellState(cell Cell, key Key) *CellState {
	return &CellState{
		cell:      cell,
		key:       key,
		observers: make(map[Observer]int),
	}
}

// Disposed reports whether this state has already been torn down.
func (s *CellState) Disposed() bool {
	return s.disposed
}

// AddObserver registers observer, activating the cell on the first
// call.
func (s *CellState) AddObserver(observer Observer) {
	if len(s.observers) == 0 && s.Init != nil {
		s.Init()
	}

	if s.observers[observer] == 0 {
		s.order = append(s.order, observer)
	}
	s.observers[observer]++
}

// RemoveObserver unregisters one reference of observer, deactivating
// and disposing the cell when the last reference is dropped.
func (s *CellState) RemoveObserver(observer Observer) {
	n, ok := s.observers[observer]
	if !ok {
		return
	}

	if n > 1 {
		s.observers[observer] = n - 1
		return
	}

	delete(s.observers, observer)
	for i, o := range s.order {
		if o == observer {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	if len(s.observers) == 0 {
		s.dispose()
	}
}

// ObserverCount returns the number of distinct observers currently
// registered (invariant 2: a cell is active iff this is > 0).
func (s *CellState) ObserverCount() int {
	return len(s.observers)
}

func (s *CellState) dispose() {
	s.disposed = true

	if s.Deinit != nil {
		s.Deinit()
	}

	globalStates.remove(s.key)
}

// NotifyWillUpdate calls WillUpdate(s.cell) on every observer,
// snapshotting the observer list first so an observer that
// adds/removes observers mid-notification does not corrupt iteration.
func (s *CellState) NotifyWillUpdate() {
	s.notifyCount++

	for _, o := range snapshotObservers(s.order) {
		o.WillUpdate(s.cell)
	}
}

// NotifyDidUpdate calls DidUpdate(s.cell, changed) on every observer.
func (s *CellState) NotifyDidUpdate(changed bool) {
	s.notifyCount--

	for _, o := range snapshotObservers(s.order) {
		o.DidUpdate(s.cell, changed)
	}
}

func snapshotObservers(order []Observer) []Observer {
	return append([]Observer(nil), order...)
}

// globalStateMap holds the shared CellState of every currently-active
// keyed cell. A plain Go map keyed by Key would need to hash it, and
// a ValueKey's Values can themselves hold a slice (e.g. another
// ValueKey's Values, or a user value that isn't itself comparable),
// which makes the key type unhashable; entries are instead kept in a
// slice and matched with Key.Equal, the same way
// CellState.RemoveObserver scans its order slice.
type globalStateMap struct {
	entries []keyedState
}

type keyedState struct {
	key   Key
	state *CellState
}

var globalStates = &globalStateMap{}

// GetOrCreateState returns the shared state for key, creating it via
// create if it does not exist yet. A NoKey never shares state: create
// runs unconditionally.
func GetOrCreateState(key Key, create func() *CellState) *CellState {
	if _, ok := key.(NoKey); ok {
		return create()
	}

	for _, e := range globalStates.entries {
		if e.key.Equal(key) {
			return e.state
		}
	}

	s := create()
	globalStates.entries = append(globalStates.entries, keyedState{key: key, state: s})
	return s
}

func (m *globalStateMap) remove(key Key) {
	if _, ok := key.(NoKey); ok {
		return
	}

	for i, e := range m.entries {
		if e.key.Equal(key) {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return
		}
	}
}
