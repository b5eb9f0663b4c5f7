package cells

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeek(t *testing.T) {
	t.Run("reads through without becoming reactive", func(t *testing.T) {
		a := NewMutable(1)
		b := NewMutable(10)
		peekedB := Peek[int](b)

		sum := Computed(func(ctx *Context) int {
			return Call(ctx, a) + Call(ctx, peekedB)
		})

		var log []int
		h := Watch(func(ctx *Context) {
			log = append(log, Call(ctx, sum))
		})
		defer h.Stop()

		b.Set(20)
		assert.Equal(t, []int{11}, log, "peeked dependency change must not trigger recomputation")

		a.Set(2)
		assert.Equal(t, []int{11, 22}, log, "recomputing for a real reason picks up peek's latest value")
	})
}
