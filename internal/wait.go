package internal

import "sync"

// asyncMu is the one deliberate exception to "no internal locking"
// (§5, §9): it serializes a wait cell's asynchronous completion
// delivery, which happens on a goroutine spawned to await an
// Awaitable, with the graph's own single execution context. It is
// held only around the narrow read/mutate of a WaitState's result
// fields, never across a Notify* call, so propagation can safely
// re-enter a different WaitState's deliver from within a Notify chain.
var asyncMu sync.Mutex

// WaitCell observes a source cell holding an Awaitable and
// materializes its completion into a synchronous value (C11).
type WaitCell struct {
	*StatefulCell
	source Cell
	reset  bool
	queue  bool
}

// NewWait creates a wait cell over source, identified by key.
//
// reset selects AwaitCell-style semantics (value resets to pending on
// every source change, orphaning the previous awaitable's eventual
// result). When reset is false, queue selects between "last only"
// (newest awaitable supersedes) and "queue" (await every awaitable, in
// assignment order).
func NewWait(key Key, source Cell, reset, queue bool) *WaitCell {
	c := &WaitCell{source: source, reset: reset, queue: queue}
	c.StatefulCell = NewStatefulCell(key, func() *CellState {
		return newWaitState(c, key, source, reset, queue)
	})
	return c
}

// Value implements Cell. A wait cell read while it has no observer
// raises ErrPendingAsyncValue: unlike a computed cell, it has no
// unsubscribed-inactive fallback, since nothing is awaited without a
// live subscription.
func (c *WaitCell) Value() (any, error) {
	st := c.State()
	if st == nil {
		return nil, ErrPendingAsyncValue
	}

	return st.extra.(*WaitState).getValue()
}

// WaitState is the CellState payload of a WaitCell; it also observes
// the source cell to detect newly-assigned awaitables.
type WaitState struct {
	*CellState
	source Cell
	reset  bool
	queue  bool

	generation int
	pending    bool
	value      any
	err        error

	chain <-chan struct{} // queue mode: previous delivery's completion signal
}

func newWaitState(cell Cell, key Key, source Cell, reset, queue bool) *CellState {
	base := NewCellState(cell, key)
	s := &WaitState{
		CellState: base,
		source:    source,
		reset:     reset,
		queue:     queue,
		pending:   true,
	}
	base.extra = s
	base.Init = s.activate
	base.Deinit = s.deactivate

	return base
}

func (s *WaitState) activate() {
	s.source.AddObserver(s)
	s.onSourceChanged()
}

func (s *WaitState) deactivate() {
	s.source.RemoveObserver(s)
}

// WillUpdate implements Observer. The source changing never directly
// notifies this cell's own observers: only an awaitable's completion
// does (matches WaitCellState.on_will_update being a no-op).
func (s *WaitState) WillUpdate(Cell) {}

// DidUpdate implements Observer.
func (s *WaitState) DidUpdate(_ Cell, changed bool) {
	if changed {
		s.onSourceChanged()
	}
}

func (s *WaitState) onSourceChanged() {
	s.generation++
	gen := s.generation

	value, err := s.source.Value()
	if err != nil {
		s.deliver(nil, err, gen)
		return
	}

	aw, ok := value.(Awaitable)
	if !ok {
		s.deliver(nil, ErrUninitializedCell, gen)
		return
	}

	if s.reset {
		s.setPending()
	}

	if s.queue {
		prev := s.chain
		done := make(chan struct{})
		s.chain = done

		go func() {
			if prev != nil {
				<-prev
			}
			<-aw.Done()

			val, err := aw.Result()
			s.deliver(val, err, gen)

			close(done)
		}()

		return
	}

	go func() {
		<-aw.Done()

		val, err := aw.Result()
		s.deliver(val, err, gen)
	}()
}

func (s *WaitState) setPending() {
	s.NotifyWillUpdate()

	asyncMu.Lock()
	s.pending = true
	s.value = nil
	s.err = nil
	asyncMu.Unlock()

	s.NotifyDidUpdate(true)
}

// deliver applies a completed result, discarding it if it belongs to a
// superseded generation (reset/last-only semantics; queue mode never
// discards).
func (s *WaitState) deliver(value any, err error, gen int) {
	asyncMu.Lock()
	if !s.queue && gen != s.generation {
		asyncMu.Unlock()
		return
	}
	asyncMu.Unlock()

	s.NotifyWillUpdate()

	asyncMu.Lock()
	s.pending = false
	s.value = value
	s.err = err
	asyncMu.Unlock()

	s.NotifyDidUpdate(true)
}

func (s *WaitState) getValue() (any, error) {
	asyncMu.Lock()
	defer asyncMu.Unlock()

	if s.pending {
		return nil, ErrPendingAsyncValue
	}

	return s.value, s.err
}
