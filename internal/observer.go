package internal

// Observer receives the two-phase update protocol from a Cell it is
// observing. Implementations must be comparable, since a CellState
// deduplicates observers registered more than once (add_observer /
// remove_observer are reference counted per observer identity).
type Observer interface {
	// WillUpdate announces that source is about to change. It may be
	// called more than once per propagation wave if source is
	// reachable through multiple paths; a well-behaved observer only
	// reacts to the first call in a wave (see ComputeState.WillUpdate).
	WillUpdate(source Cell)

	// DidUpdate announces that source's change has committed.
	// changed is false when a changes-only computed cell recomputed
	// to an equal value (including a changes-only cell that recovered
	// via the abort sentinel and so kept its value). A computed cell
	// that is not changes-only reports changed=true after an abort.
	DidUpdate(source Cell, changed bool)
}
