package internal

// PeekCell wraps target so that reading through it keeps target
// active (an observer is always installed) while never forwarding
// target's change notifications to whichever cell reads through the
// peek (C8, invariant 5 "peek isolation").
type PeekCell struct {
	target Cell
	key    Key
}

// NewPeek wraps target in a peek cell.
func NewPeek(target Cell) *PeekCell {
	return &PeekCell{
		target: target,
		key:    NewValueKey("peek", target.CellKey()),
	}
}

func (p *PeekCell) Value() (any, error) { return p.target.Value() }
func (p *PeekCell) CellKey() Key        { return p.key }

func (p *PeekCell) AddObserver(observer Observer) {
	p.target.AddObserver(peekObserver{observer})
}

func (p *PeekCell) RemoveObserver(observer Observer) {
	p.target.RemoveObserver(peekObserver{observer})
}

// peekObserver is installed on the peeked target in place of the real
// observer; it never forwards will/did-update.
type peekObserver struct {
	wrapped Observer
}

func (peekObserver) WillUpdate(Cell)         {}
func (peekObserver) DidUpdate(Cell, bool) {}
