package cells

import "github.com/alex-gutev/live-cells-go/internal"

// Value creates a constant cell holding v. It never changes and has
// no observers of its own.
func Value[T any](v T) Cell[T] {
	return cellImpl[T]{internal.NewConstant(v)}
}

// ValueError creates a constant cell whose every read returns err.
func ValueError[T any](err error) Cell[T] {
	return cellImpl[T]{internal.NewConstantError(err)}
}
