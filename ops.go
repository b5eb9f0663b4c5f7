package cells

import (
	"math"

	"github.com/alex-gutev/live-cells-go/internal"
)

// Numeric is the constraint accepted by the arithmetic operator
// helpers.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Ordered is the constraint accepted by the relational operator
// helpers.
type Ordered interface {
	Numeric | ~string
}

func binOp[T any](tag string, a, b Cell[T], op func(x, y T) T) Cell[T] {
	key := internal.NewValueKey(tag, a.cellHandle().CellKey(), b.cellHandle().CellKey())

	return Computed(func(ctx *Context) T {
		return op(Call(ctx, a), Call(ctx, b))
	}, WithKey(key))
}

func relOp[T any, R any](tag string, a, b Cell[T], op func(x, y T) R) Cell[R] {
	key := internal.NewValueKey(tag, a.cellHandle().CellKey(), b.cellHandle().CellKey())

	return Computed(func(ctx *Context) R {
		return op(Call(ctx, a), Call(ctx, b))
	}, WithKey(key))
}

// Add creates a cell holding a() + b().
func Add[T Numeric](a, b Cell[T]) Cell[T] {
	return binOp("add", a, b, func(x, y T) T { return x + y })
}

// Sub creates a cell holding a() - b().
func Sub[T Numeric](a, b Cell[T]) Cell[T] {
	return binOp("sub", a, b, func(x, y T) T { return x - y })
}

// Mul creates a cell holding a() * b().
func Mul[T Numeric](a, b Cell[T]) Cell[T] {
	return binOp("mul", a, b, func(x, y T) T { return x * y })
}

// Div creates a cell holding a() / b().
func Div[T Numeric](a, b Cell[T]) Cell[T] {
	return binOp("div", a, b, func(x, y T) T { return x / y })
}

// Eq creates a cell holding a() == b().
func Eq[T comparable](a, b Cell[T]) Cell[bool] {
	return relOp[T, bool]("eq", a, b, func(x, y T) bool { return x == y })
}

// Neq creates a cell holding a() != b().
func Neq[T comparable](a, b Cell[T]) Cell[bool] {
	return relOp[T, bool]("neq", a, b, func(x, y T) bool { return x != y })
}

// Lt creates a cell holding a() < b().
func Lt[T Ordered](a, b Cell[T]) Cell[bool] {
	return relOp[T, bool]("lt", a, b, func(x, y T) bool { return x < y })
}

// Lte creates a cell holding a() <= b().
func Lte[T Ordered](a, b Cell[T]) Cell[bool] {
	return relOp[T, bool]("lte", a, b, func(x, y T) bool { return x <= y })
}

// Gt creates a cell holding a() > b().
func Gt[T Ordered](a, b Cell[T]) Cell[bool] {
	return relOp[T, bool]("gt", a, b, func(x, y T) bool { return x > y })
}

// Gte creates a cell holding a() >= b().
func Gte[T Ordered](a, b Cell[T]) Cell[bool] {
	return relOp[T, bool]("gte", a, b, func(x, y T) bool { return x >= y })
}

// Abs creates a cell holding the absolute value of a().
func Abs[T Numeric](a Cell[T]) Cell[T] {
	key := internal.NewValueKey("abs", a.cellHandle().CellKey())

	return Computed(func(ctx *Context) T {
		v := Call(ctx, a)
		if v < 0 {
			return -v
		}

		return v
	}, WithKey(key))
}

// Round creates a cell holding a() rounded to the nearest integer.
func Round(a Cell[float64]) Cell[float64] {
	key := internal.NewValueKey("round", a.cellHandle().CellKey())

	return Computed(func(ctx *Context) float64 {
		return math.Round(Call(ctx, a))
	}, WithKey(key))
}

// LogAnd creates a cell holding a() && b(). Unlike the && operator,
// both operands are always evaluated (and so both are always
// registered as dependencies): short-circuiting would make the
// result's dependency set vary from one recomputation to the next.
func LogAnd(a, b Cell[bool]) Cell[bool] {
	return binOp("log_and", a, b, func(x, y bool) bool { return x && y })
}

// LogOr creates a cell holding a() || b(). See LogAnd for why both
// operands are always evaluated.
func LogOr(a, b Cell[bool]) Cell[bool] {
	return binOp("log_or", a, b, func(x, y bool) bool { return x || y })
}

// LogNot creates a cell holding !a().
func LogNot(a Cell[bool]) Cell[bool] {
	key := internal.NewValueKey("log_not", a.cellHandle().CellKey())

	return Computed(func(ctx *Context) bool {
		return !Call(ctx, a)
	}, WithKey(key))
}

// Select creates a cell that holds ifTrue()'s value when cond() is
// true, and otherwise ifFalse()'s value if given, or T's zero value.
func Select[T any](cond Cell[bool], ifTrue Cell[T], ifFalse ...Cell[T]) Cell[T] {
	keys := []any{cond.cellHandle().CellKey(), ifTrue.cellHandle().CellKey()}
	for _, c := range ifFalse {
		keys = append(keys, c.cellHandle().CellKey())
	}

	return Computed(func(ctx *Context) T {
		if Call(ctx, cond) {
			return Call(ctx, ifTrue)
		}

		if len(ifFalse) > 0 {
			return Call(ctx, ifFalse[0])
		}

		var zero T
		return zero
	}, WithKey(internal.NewValueKey("select", keys...)))
}
