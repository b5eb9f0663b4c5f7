package cells

import "github.com/alex-gutev/live-cells-go/internal"

// Mutable is a writable leaf cell (C5).
type Mutable[T any] struct {
	c *internal.MutableCell
}

type mutableOptions struct {
	key internal.Key
}

// MutableOption configures NewMutable.
type MutableOption func(*mutableOptions)

// WithMutableKey gives the cell a structural key so that other
// NewMutable calls built with an Equal key share its state.
func WithMutableKey(key internal.Key) MutableOption {
	return func(o *mutableOptions) { o.key = key }
}

// NewMutable creates a writable cell initialized to v.
func NewMutable[T any](v T, opts ...MutableOption) *Mutable[T] {
	cfg := mutableOptions{key: internal.NewNoKey()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Mutable[T]{c: internal.NewMutable(v, cfg.key)}
}

// Value returns the cell's current value, or the error last assigned
// with SetError.
func (m *Mutable[T]) Value() (T, error) {
	v, err := m.c.Value()
	if err != nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}

// Set assigns v, notifying observers (immediately, or at batch exit if
// called from inside Batch) unless v equals the current value.
func (m *Mutable[T]) Set(v T) {
	m.c.Set(v)
}

// SetError assigns err as the cell's current error, notifying
// observers the same way Set does.
func (m *Mutable[T]) SetError(err error) {
	m.c.SetError(err)
}

func (m *Mutable[T]) cellHandle() internal.Cell { return m.c }
