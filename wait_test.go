package cells

import (
	"errors"
	"testing"
	"time"

	"github.com/alex-gutev/live-cells-go/internal"
	"github.com/stretchr/testify/assert"
)

// callResult reads c from inside a Watch callback the way Call does,
// registering c as a dependency, but returns c's error instead of
// panicking with it.
func callResult[T any](c Cell[T]) (T, error) {
	v, err := internal.Call(c.cellHandle())
	if err != nil || v == nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}

func TestWaited(t *testing.T) {
	t.Run("pending then resolved, reset semantics", func(t *testing.T) {
		fut := NewFuture[int]()
		src := NewMutable[Awaitable[int]](fut)

		waited := Waited[int](src)

		var log []string
		h := Watch(func(ctx *Context) {
			v, err := callResult(waited)
			if err != nil {
				log = append(log, "err:"+err.Error())
				return
			}
			log = append(log, "value")
			_ = v
		})
		defer h.Stop()

		assert.Equal(t, []string{"err:" + ErrPendingAsyncValue.Error()}, log)

		fut.Resolve(42)

		var v int
		var err error
		assert.Eventually(t, func() bool {
			v, err = waited.Value()
			return err == nil
		}, time.Second, time.Millisecond)
		assert.Equal(t, 42, v)
	})

	t.Run("reset supersedes an in-flight awaitable", func(t *testing.T) {
		first := NewFuture[int]()
		second := NewFuture[int]()

		src := NewMutable[Awaitable[int]](first)
		waited := Waited[int](src, WithReset(true))

		h := Watch(func(ctx *Context) { Call(ctx, waited) })
		defer h.Stop()

		src.Set(second)

		_, err := waited.Value()
		assert.ErrorIs(t, err, ErrPendingAsyncValue)

		first.Resolve(1)

		_, err = waited.Value()
		assert.ErrorIs(t, err, ErrPendingAsyncValue, "first's result is superseded, not delivered")

		second.Resolve(2)

		var v int
		assert.Eventually(t, func() bool {
			v, err = waited.Value()
			return err == nil
		}, time.Second, time.Millisecond)
		assert.Equal(t, 2, v)
	})

	t.Run("propagates rejection", func(t *testing.T) {
		fut := NewFuture[int]()
		src := NewMutable[Awaitable[int]](fut)
		waited := Waited[int](src)

		h := Watch(func(ctx *Context) { Call(ctx, waited) })
		defer h.Stop()

		fut.Reject(errors.New("network error"))

		var err error
		assert.Eventually(t, func() bool {
			_, err = waited.Value()
			return err != nil
		}, time.Second, time.Millisecond)
		assert.EqualError(t, err, "network error")
	})

	t.Run("queue delivers results in assignment order regardless of completion order", func(t *testing.T) {
		f1 := NewFuture[int]()
		f2 := NewFuture[int]()

		src := NewMutable[Awaitable[int]](f1)
		waited := Waited[int](src, WithReset(false), WithQueue(true))

		var log []int
		h := Watch(func(ctx *Context) {
			v, err := callResult(waited)
			if err == nil {
				log = append(log, v)
			}
		})
		defer h.Stop()

		src.Set(f2)

		f2.Resolve(2)
		f1.Resolve(1)

		assert.Eventually(t, func() bool {
			return len(log) >= 2
		}, time.Second, time.Millisecond)

		assert.Equal(t, []int{1, 2}, log, "f1 was assigned first, so it must be delivered first even though f2 resolved first")
	})

	t.Run("reset forces queue off, discarding a superseded awaitable's result", func(t *testing.T) {
		f1 := NewFuture[int]()
		f2 := NewFuture[int]()

		src := NewMutable[Awaitable[int]](f1)
		waited := Waited[int](src, WithReset(true), WithQueue(true))

		var log []int
		h := Watch(func(ctx *Context) {
			v, err := callResult(waited)
			if err == nil {
				log = append(log, v)
			}
		})
		defer h.Stop()

		src.Set(f2)

		f1.Resolve(1)
		f2.Resolve(2)

		assert.Eventually(t, func() bool {
			return len(log) >= 1
		}, time.Second, time.Millisecond)

		assert.Equal(t, []int{2}, log, "f1's result must never be delivered once reset supersedes it, even with WithQueue(true) requested")
	})
}

func TestWaitAll(t *testing.T) {
	t.Run("gathers results in argument order", func(t *testing.T) {
		f1 := NewFuture[int]()
		f2 := NewFuture[int]()
		f3 := NewFuture[int]()

		s1 := NewMutable[Awaitable[int]](f1)
		s2 := NewMutable[Awaitable[int]](f2)
		s3 := NewMutable[Awaitable[int]](f3)

		all := WaitAll[int](s1, s2, s3)

		h := Watch(func(ctx *Context) { Call(ctx, all) })
		defer h.Stop()

		f2.Resolve(2)
		f1.Resolve(1)
		f3.Resolve(3)

		var v []int
		var err error
		assert.Eventually(t, func() bool {
			v, err = all.Value()
			return err == nil
		}, time.Second, time.Millisecond)
		assert.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, v)
	})
}
