package cells

import "github.com/alex-gutev/live-cells-go/internal"

// Peek wraps c so that reading it inside a Computed or Watch via Call
// keeps c's value available without becoming reactive to it: the
// enclosing cell recomputes only from its other dependencies, even
// though Peek(c) itself still shows up as one of them.
func Peek[T any](c Cell[T]) Cell[T] {
	return cellImpl[T]{internal.NewPeek(c.cellHandle())}
}
