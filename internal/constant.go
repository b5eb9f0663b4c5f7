package internal

// ConstantCell is an immutable value source (C4). It never has a
// state: it has no observers to notify since its value never changes.
type ConstantCell struct {
	value any
	err   error
	key   Key
}

// NewConstant creates a cell whose Value always returns value, nil.
func NewConstant(value any) *ConstantCell {
	return &ConstantCell{value: value, key: NewValueKey("const", value)}
}

// NewConstantError creates a cell whose Value always returns err.
func NewConstantError(err error) *ConstantCell {
	return &ConstantCell{err: err, key: NewNoKey()}
}

func (c *ConstantCell) Value() (any, error) { return c.value, c.err }
func (c *ConstantCell) CellKey() Key        { return c.key }
func (c *ConstantCell) AddObserver(Observer)    {}
func (c *ConstantCell) RemoveObserver(Observer) {}
