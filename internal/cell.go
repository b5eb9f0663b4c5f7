package internal

// Cell is the untyped contract implemented by every cell variant in
// the graph. The generic, type-safe surface in package cells wraps a
// Cell and unwraps the any values it carries.
//
// A Cell that raises an error while computing its value returns it
// from Value rather than panicking; panic/recover is used only as the
// internal control-flow mechanism inside a compute function's own
// call stack (see cells.Computed), never across this interface.
type Cell interface {
	// Value returns the cell's current value, or an error if the last
	// (re)computation failed. For a computed cell this may trigger a
	// lazy, unsubscribed recomputation if the cell is inactive.
	Value() (any, error)

	// AddObserver registers observer. The first AddObserver call
	// activates the cell. Reference counted per observer identity.
	AddObserver(observer Observer)

	// RemoveObserver unregisters one reference of observer. The
	// matching removal that drops the count to zero deactivates the
	// cell.
	RemoveObserver(observer Observer)

	// CellKey identifies this cell for state sharing. Two cells whose
	// keys are Equal share the same CellState.
	CellKey() Key
}

// Call reads cell's value and, if a tracking frame is active on the
// calling goroutine, records cell as one of its dependencies. This is
// the untyped counterpart of Cell.__call__ in the source language:
// argument tracking only fires through Call, never through Value.
func Call(cell Cell) (any, error) {
	TrackArgument(cell)

	if snap, ok := currentSnapshot(); ok {
		if res, present := snap[cell]; present {
			return res.Value, res.Err
		}
	}

	return cell.Value()
}
