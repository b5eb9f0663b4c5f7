package cells

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestScenarios reproduces the literal end-to-end sequences named in
// the properties section: given cells and a write sequence, the
// observed sequence of recorded/printed values must match exactly.
func TestScenarios(t *testing.T) {
	t.Run("S1 unbatched writes each propagate separately", func(t *testing.T) {
		a := NewMutable(0)
		b := NewMutable(1)

		type pair struct{ a, b int }
		var log []pair

		h := Watch(func(ctx *Context) {
			log = append(log, pair{Call(ctx, a), Call(ctx, b)})
		})
		defer h.Stop()

		a.Set(5)
		b.Set(10)

		assert.Equal(t, []pair{{0, 1}, {5, 1}, {5, 10}}, log)
	})

	t.Run("S2 batched writes coalesce into one entry", func(t *testing.T) {
		a := NewMutable(0)
		b := NewMutable(1)

		type pair struct{ a, b int }
		var log []pair

		h := Watch(func(ctx *Context) {
			log = append(log, pair{Call(ctx, a), Call(ctx, b)})
		})
		defer h.Stop()

		Batch(func() {
			a.Set(15)
			b.Set(3)
		})

		assert.Equal(t, []pair{{0, 1}, {15, 3}}, log)
	})

	t.Run("S3 abort keeps the previous observed value", func(t *testing.T) {
		a := NewMutable(4)

		b := Computed(func(ctx *Context) int {
			v := Call(ctx, a)
			if v < 10 {
				return v
			}
			return None(0)
		})

		var log []int
		h := Watch(func(ctx *Context) {
			log = append(log, Call(ctx, b))
		})
		defer h.Stop()

		a.Set(6)
		a.Set(15)
		a.Set(8)

		assert.Equal(t, []int{4, 6, 6, 8}, log)
	})

	t.Run("S4 logor and select compose", func(t *testing.T) {
		a := NewMutable(false)
		b := NewMutable(false)
		c := NewMutable(1)
		d := NewMutable(2)

		cond := LogOr(a, b)
		cell := Select[int](cond, c, d)

		var log []int
		h := Watch(func(ctx *Context) {
			log = append(log, Call(ctx, cell))
		})
		defer h.Stop()

		a.Set(true)
		a.Set(false)

		assert.Equal(t, []int{2, 1, 2}, log)
	})

	t.Run("S5 on_error falls back and recovers", func(t *testing.T) {
		text := NewMutable("0")

		n := Computed(func(ctx *Context) int {
			v, err := strconv.Atoi(Call(ctx, text))
			if err != nil {
				panic(computeError{err})
			}
			return v
		})

		r := OnError(n, Value(-1), nil)

		var log []int
		h := Watch(func(ctx *Context) {
			log = append(log, Call(ctx, r))
		})
		defer h.Stop()

		text.Set("3")
		text.Set("x")
		text.Set("7")

		assert.Equal(t, []int{0, 3, -1, 7}, log)
	})

	t.Run("S6 wait ordering under reset=true", func(t *testing.T) {
		var mu sync.Mutex
		var log []string
		record := func(v int, pending bool) {
			mu.Lock()
			defer mu.Unlock()
			if pending {
				log = append(log, "Pending")
			} else {
				log = append(log, strconv.Itoa(v))
			}
		}
		snapshot := func() []string {
			mu.Lock()
			defer mu.Unlock()
			return append([]string(nil), log...)
		}

		f1 := NewFuture[int]()
		src := NewMutable[Awaitable[int]](f1)
		waited := Waited[int](src, WithReset(true))

		h := Watch(func(ctx *Context) {
			v, err := callResult(waited)
			record(v, err != nil)
		})
		defer h.Stop()

		f1.Resolve(1)
		assert.Eventually(t, func() bool { return len(snapshot()) >= 2 }, time.Second, time.Millisecond)

		f2 := NewFuture[int]()
		src.Set(f2)
		assert.Eventually(t, func() bool { return len(snapshot()) >= 3 }, time.Second, time.Millisecond)

		f2.Resolve(2)
		assert.Eventually(t, func() bool { return len(snapshot()) >= 4 }, time.Second, time.Millisecond)

		assert.Equal(t, []string{"Pending", "1", "Pending", "2"}, snapshot())
	})

	t.Run("S6 wait ordering under reset=false", func(t *testing.T) {
		var mu sync.Mutex
		var log []string
		record := func(v int, pending bool) {
			mu.Lock()
			defer mu.Unlock()
			if pending {
				log = append(log, "Pending")
			} else {
				log = append(log, strconv.Itoa(v))
			}
		}
		snapshot := func() []string {
			mu.Lock()
			defer mu.Unlock()
			return append([]string(nil), log...)
		}

		f1 := NewFuture[int]()
		src := NewMutable[Awaitable[int]](f1)
		waited := Waited[int](src, WithReset(false))

		h := Watch(func(ctx *Context) {
			v, err := callResult(waited)
			record(v, err != nil)
		})
		defer h.Stop()

		f1.Resolve(1)
		assert.Eventually(t, func() bool { return len(snapshot()) >= 2 }, time.Second, time.Millisecond)

		f2 := NewFuture[int]()
		src.Set(f2)

		f2.Resolve(2)
		assert.Eventually(t, func() bool { return len(snapshot()) >= 3 }, time.Second, time.Millisecond)

		assert.Equal(t, []string{"Pending", "1", "2"}, snapshot(), "reset=false never drops back to Pending on reassignment")
	})
}
