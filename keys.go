package cells

import "github.com/alex-gutev/live-cells-go/internal"

// Key identifies a cell for state-sharing purposes: two cells built
// with Equal keys share the same underlying state and are therefore
// observationally interchangeable, even if constructed independently.
type Key = internal.Key

// NewKey builds a structural key distinguished from others of the
// same tag by values, which must themselves be comparable with == (or
// be Keys). Every operator and helper in this package (Add, Peek,
// Waited, OnError, ...) builds one of these from its operand cells'
// own keys, so that two syntactically identical expressions share
// state the way two identical expressions do in the source language.
func NewKey(tag string, values ...any) Key {
	return internal.NewValueKey(tag, values...)
}
