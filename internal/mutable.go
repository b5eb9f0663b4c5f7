package internal

// Equatable is implemented by values that know how to compare
// themselves for the purposes of a mutable cell's no-op-on-equal-set
// rule and a changes-only computed cell's suppression rule. Values
// that don't implement it fall back to reflect-free `==`, and any
// panic from comparing incomparable values (e.g. slices) is treated
// as "not equal".
type Equatable interface {
	EqualValue(other any) bool
}

// ValuesEqual compares a and b the way the engine compares cell
// values throughout: via Equatable if available, else via ==.
func ValuesEqual(a, b any) (eq bool) {
	if ae, ok := a.(Equatable); ok {
		return ae.EqualValue(b)
	}

	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// MutableCell is a writable leaf cell (C5).
type MutableCell struct {
	*StatefulCell
	initial any
}

// NewMutable creates a mutable cell initialized to value, identified
// by key.
func NewMutable(value any, key Key) *MutableCell {
	c := &MutableCell{initial: value}
	c.StatefulCell = NewStatefulCell(key, func() *CellState {
		return newMutableState(c, key, value)
	})
	return c
}

func (c *MutableCell) Value() (any, error) {
	return c.mutableState().get()
}

// Set assigns a new value, running the will/did-update protocol
// (immediately, or deferred to batch end if a batch is active).
func (c *MutableCell) Set(value any) {
	c.mutableState().set(value)
}

// SetError assigns err as the cell's current error, following the
// same batching rule as Set.
func (c *MutableCell) SetError(err error) {
	c.mutableState().setError(err)
}

func (c *MutableCell) mutableState() *MutableState {
	st := c.EnsureState().extra.(*MutableState)
	return st
}

// MutableState is the CellState payload of a MutableCell.
type MutableState struct {
	*CellState
	value any
	err   error
}

func newMutableState(cell Cell, key Key, value any) *CellState {
	base := NewCellState(cell, key)
	m := &MutableState{CellState: base, value: value}
	base.extra = m
	return base
}

func (m *MutableState) get() (any, error) {
	return m.value, m.err
}

func (m *MutableState) set(value any) {
	if m.Disposed() {
		m.value = value
		m.err = nil
		return
	}

	if m.err == nil && ValuesEqual(m.value, value) {
		return
	}

	m.NotifyWillUpdate()
	m.value = value
	m.err = nil

	if InBatch() {
		EnrollBatch(m)
	} else {
		m.NotifyDidUpdate(true)
	}
}

// setError stores err as the cell's value and notifies observers,
// following the same batching rule as set.
func (m *MutableState) setError(err error) {
	m.NotifyWillUpdate()
	m.err = err

	if InBatch() {
		EnrollBatch(m)
	} else {
		m.NotifyDidUpdate(true)
	}
}

// flush is called by the batch coordinator on scope exit.
func (m *MutableState) flush() {
	m.NotifyDidUpdate(true)
}
