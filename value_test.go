package cells

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue(t *testing.T) {
	t.Run("constant never changes", func(t *testing.T) {
		c := Value(42)

		v, err := c.Value()
		assert.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("constant error", func(t *testing.T) {
		boom := errors.New("boom")
		c := ValueError[int](boom)

		_, err := c.Value()
		assert.ErrorIs(t, err, boom)
	})
}
