package cells

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnError(t *testing.T) {
	t.Run("falls back on matching error", func(t *testing.T) {
		text := NewMutable("0")

		n := Computed(func(ctx *Context) int {
			v, err := strconv.Atoi(Call(ctx, text))
			if err != nil {
				panic(computeError{err})
			}
			return v
		})

		withFallback := OnError(n, Value(-1), nil)

		v, err := withFallback.Value()
		assert.NoError(t, err)
		assert.Equal(t, 0, v)

		text.Set("not a number")

		v, err = withFallback.Value()
		assert.NoError(t, err)
		assert.Equal(t, -1, v)
	})

	t.Run("re-raises an error the predicate rejects", func(t *testing.T) {
		boom := errors.New("boom")
		self := ValueError[int](boom)

		withFallback := OnError(self, Value(0), func(err error) bool { return false })

		_, err := withFallback.Value()
		assert.ErrorIs(t, err, boom)
	})
}

func TestErrorOf(t *testing.T) {
	t.Run("nil until the first error, then sticky until it changes", func(t *testing.T) {
		text := NewMutable("0")

		n := Computed(func(ctx *Context) int {
			v, err := strconv.Atoi(Call(ctx, text))
			if err != nil {
				panic(computeError{err})
			}
			return v
		})

		errs := ErrorOf(n, nil, false)

		// None's "keep the previous value" semantics only mean anything
		// once something is actively observing the cell; there is
		// nothing to retain for a purely inactive read.
		h := Watch(func(ctx *Context) { Call(ctx, errs) })
		defer h.Stop()

		v, err := errs.Value()
		assert.NoError(t, err)
		assert.Nil(t, v)

		text.Set("bad")

		v, err = errs.Value()
		assert.NoError(t, err)
		assert.Error(t, v)

		text.Set("42")

		v, err = errs.Value()
		assert.NoError(t, err)
		assert.Error(t, v, "keeps showing the last error until self fails again")
	})
}
