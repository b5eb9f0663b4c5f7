package internal

// StatefulCell is embedded by every cell variant whose behavior needs
// a CellState created lazily on first observer and shared across
// cells with an equal Key (C3).
type StatefulCell struct {
	key    Key
	state  *CellState
	create func() *CellState
}

// NewStatefulCell wires up a StatefulCell identified by key, whose
// CellState is built by create on demand.
func NewStatefulCell(key Key, create func() *CellState) *StatefulCell {
	return &StatefulCell{key: key, create: create}
}

// CellKey implements Cell.
func (s *StatefulCell) CellKey() Key {
	return s.key
}

// EnsureState returns the cell's state, creating it if necessary.
func (s *StatefulCell) EnsureState() *CellState {
	if s.state == nil || s.state.Disposed() {
		s.state = GetOrCreateState(s.key, s.create)
	}

	return s.state
}

// State returns the cell's state if one has already been created and
// not yet disposed, or nil.
func (s *StatefulCell) State() *CellState {
	if s.state != nil && !s.state.Disposed() {
		return s.state
	}

	return nil
}

// AddObserver implements Cell.
func (s *StatefulCell) AddObserver(observer Observer) {
	s.EnsureState().AddObserver(observer)
}

// RemoveObserver implements Cell.
func (s *StatefulCell) RemoveObserver(observer Observer) {
	if st := s.State(); st != nil {
		st.RemoveObserver(observer)
	}
}
