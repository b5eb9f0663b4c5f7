package internal

// Key identifies a cell for state-sharing purposes. Two cells whose
// keys compare Equal share the same CellState, and are therefore
// observationally interchangeable.
type Key interface {
	// Equal reports whether this key identifies the same cell state as other.
	Equal(other Key) bool
}

// NoKey is the key of a cell that never shares state with any other
// cell instance.
type NoKey struct {
	id *struct{}
}

// NewNoKey returns a fresh identity key, unique to the caller.
func NewNoKey() NoKey {
	return NoKey{id: new(struct{})}
}

func (k NoKey) Equal(other Key) bool {
	o, ok := other.(NoKey)
	return ok && k.id == o.id
}

// ValueKey is a structural key distinguished from other keys of the
// same Go type by a slice of comparable Values. Expression sugar
// (arithmetic, peek, waited, ...) uses ValueKey so that two
// syntactically identical expressions, built independently from the
// same operand cells, compare equal and share state.
type ValueKey struct {
	Tag    string
	Values []any
}

// NewValueKey builds a ValueKey identified by tag and values. Values
// must either be Keys (NoKey, ValueKey), which are compared with
// Equal, or be comparable with ==; a pair that == cannot compare
// counts as not equal.
func NewValueKey(tag string, values ...any) ValueKey {
	return ValueKey{Tag: tag, Values: values}
}

func (k ValueKey) Equal(other Key) bool {
	o, ok := other.(ValueKey)
	if !ok || k.Tag != o.Tag || len(k.Values) != len(o.Values) {
		return false
	}

	for i := range k.Values {
		if !equalKeyValue(k.Values[i], o.Values[i]) {
			return false
		}
	}

	return true
}

func equalKeyValue(a, b any) (eq bool) {
	if ak, ok := a.(Key); ok {
		bk, ok := b.(Key)
		return ok && ak.Equal(bk)
	}

	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
