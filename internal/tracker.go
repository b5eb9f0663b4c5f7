package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// frame is a single argument-tracking scope: the set of cells `Call`ed
// while it was on top of the stack, in first-seen order.
type frame struct {
	seen map[Cell]struct{}
	deps []Cell
}

func newFrame() *frame {
	return &frame{seen: make(map[Cell]struct{})}
}

func (f *frame) record(c Cell) {
	if _, ok := f.seen[c]; ok {
		return
	}

	f.seen[c] = struct{}{}
	f.deps = append(f.deps, c)
}

// stack is the per-goroutine tracking-frame stack. Compute functions
// that spawn a goroutine and resume asynchronously must carry their
// stack across with Snapshot and Resume so dependency discovery
// survives the suspension boundary.
type stack struct {
	frames []*frame
}

var stacks sync.Map // goid.Get() -> *stack

func currentStack() *stack {
	gid := goid.Get()

	if s, ok := stacks.Load(gid); ok {
		return s.(*stack)
	}

	s := &stack{}
	stacks.Store(gid, s)
	return s
}

// PushFrame starts a new argument-tracking scope on the calling
// goroutine.
func PushFrame() {
	s := currentStack()
	s.frames = append(s.frames, newFrame())
}

// PopFrame ends the innermost argument-tracking scope and returns the
// cells that were Call()ed within it, in first-seen order.
func PopFrame() []Cell {
	s := currentStack()
	n := len(s.frames)

	f := s.frames[n-1]
	s.frames = s.frames[:n-1]

	return f.deps
}

// TrackArgument records cell as a dependency of the innermost active
// tracking frame on the calling goroutine, if any.
func TrackArgument(cell Cell) {
	s := currentStack()
	if n := len(s.frames); n > 0 {
		s.frames[n-1].record(cell)
	}
}

// RunTracked runs fn inside a fresh tracking frame and returns the
// cells it Call()ed.
func RunTracked(fn func()) []Cell {
	PushFrame()
	defer func() {
		if r := recover(); r != nil {
			PopFrame()
			panic(r)
		}
	}()

	fn()
	return PopFrame()
}

// RunUntracked runs fn with tracking suspended on the calling
// goroutine, so that any Call() within fn does not register a
// dependency in an outer frame. Used by lazy inactive-cell reads that
// must still allow *their own* nested Call()s to track normally.
func RunUntracked(fn func()) {
	s := currentStack()
	saved := s.frames
	s.frames = nil

	defer func() { s.frames = saved }()

	fn()
}

// Snapshot captures the calling goroutine's tracking stack so it can
// be restored, with Resume, on another goroutine that continues the
// same compute invocation across a suspension point.
func Snapshot() []*frame {
	s := currentStack()
	return append([]*frame(nil), s.frames...)
}

// Resume runs fn on the calling goroutine with snap installed as its
// tracking stack, restoring whatever stack the goroutine had
// beforehand once fn returns.
func Resume(snap []*frame, fn func()) {
	s := currentStack()
	saved := s.frames
	s.frames = snap

	defer func() { s.frames = saved }()

	fn()
}

// ValueResult is a snapshotted cell outcome: either a value or an
// error, captured at a point in time.
type ValueResult struct {
	Value any
	Err   error
}

var overrideMaps sync.Map // goid.Get() -> map[Cell]ValueResult

// RunWithSnapshot runs fn on the calling goroutine with snap installed
// as a value override: any Call() of a cell present in snap returns
// the snapshotted outcome instead of the cell's current value. Used
// by the watch subsystem's schedule hook (§4.9) so a deferred
// callback observes dependency values as of the moment it was
// scheduled, not whatever they have become by the time it runs.
func RunWithSnapshot(snap map[Cell]ValueResult, fn func()) {
	gid := goid.Get()
	overrideMaps.Store(gid, snap)
	defer overrideMaps.Delete(gid)

	fn()
}

func currentSnapshot() (map[Cell]ValueResult, bool) {
	gid := goid.Get()
	if v, ok := overrideMaps.Load(gid); ok {
		return v.(map[Cell]ValueResult), true
	}
	return nil, false
}
