// Package board wires the scene graph, identity registry, animation engine
// and history stack into one whiteboard. All structural mutation goes
// through Board so that identity and history stay consistent; external
// collaborators only read node attributes.
package board

import (
	"fmt"
	"time"

	"github.com/ivlev/whiteboard/internal/anim"
	"github.com/ivlev/whiteboard/internal/history"
	"github.com/ivlev/whiteboard/internal/identity"
	"github.com/ivlev/whiteboard/internal/notify"
	"github.com/ivlev/whiteboard/internal/scene"
	"github.com/ivlev/whiteboard/internal/source"
)

// Wirer attaches hover/select/drag affordances to a node. The UI layer
// injects its own; headless runs use the board's internal bookkeeping one.
type Wirer interface {
	Wire(n scene.Node)
}

// Board owns the scene state. Single-threaded: every method, including
// Tick, must be called from the same execution context.
type Board struct {
	graph *scene.Graph
	ids   *identity.Registry
	anims *anim.Engine
	hist  *history.Stack
	sink  notify.Sink

	wirer     Wirer
	wired     map[scene.Handle]struct{}
	selection scene.Node
}

// New creates an empty board with one baseline snapshot on the stack, so
// the first mutation can be undone back to the empty scene.
func New(sink notify.Sink, wirer Wirer, historyDepth int) *Board {
	if sink == nil {
		sink = notify.LogSink{}
	}
	b := &Board{
		graph: scene.NewGraph(),
		ids:   identity.NewRegistry(),
		sink:  sink,
		wirer: wirer,
		wired: make(map[scene.Handle]struct{}),
	}
	b.anims = anim.NewEngine(b.graph, b.ids, sink)
	b.hist = history.NewStack(b.graph, b.ids, b.anims, wireAdapter{b}, selAdapter{b}, sink, historyDepth)
	b.hist.Save()
	return b
}

// wireAdapter and selAdapter expose the board's wiring and selection to the
// history stack without a package cycle.
type wireAdapter struct{ b *Board }

func (w wireAdapter) Wire(n scene.Node) { w.b.Wire(n) }

type selAdapter struct{ b *Board }

func (s selAdapter) Clear() { s.b.ClearSelection() }

// Wire marks a node interactive, delegating to the injected wirer when one
// is present. Idempotent.
func (b *Board) Wire(n scene.Node) {
	if _, ok := b.wired[n.Handle()]; ok {
		return
	}
	b.wired[n.Handle()] = struct{}{}
	if b.wirer != nil {
		b.wirer.Wire(n)
	}
}

// Wired reports whether interactivity has been attached to the node.
func (b *Board) Wired(n scene.Node) bool {
	_, ok := b.wired[n.Handle()]
	return ok
}

// attach registers a freshly created node: z-order, identity, wiring, one
// history entry.
func (b *Board) attach(n scene.Node) identity.EID {
	b.graph.Add(n)
	eid := b.ids.Assign(n)
	b.Wire(n)
	b.hist.Save()
	return eid
}

func (b *Board) AddRect(x, y, w, h float64, fill string) identity.EID {
	return b.attach(scene.NewRect(x, y, w, h, fill))
}

func (b *Board) AddEllipse(x, y, rx, ry float64, fill string) identity.EID {
	return b.attach(scene.NewEllipse(x, y, rx, ry, fill))
}

func (b *Board) AddLine(x, y, dx, dy float64, stroke scene.Stroke) identity.EID {
	return b.attach(scene.NewLine(x, y, dx, dy, stroke))
}

func (b *Board) AddPath(x, y float64, points []scene.Point, stroke scene.Stroke) identity.EID {
	return b.attach(scene.NewPath(x, y, points, stroke))
}

func (b *Board) AddText(x, y float64, content string, size float64, fill string) identity.EID {
	return b.attach(scene.NewText(x, y, content, size, fill))
}

// ImportPage places one page of an external source (PDF or picture
// directory) on the board as an image node, scaled to fit maxW.
func (b *Board) ImportPage(src source.Source, page int, x, y, maxW float64) (identity.EID, error) {
	if page < 0 || page >= src.PageCount() {
		return "", fmt.Errorf("page %d out of range (source has %d)", page, src.PageCount())
	}
	w, h, err := src.GetPageDimensions(page)
	if err != nil {
		return "", fmt.Errorf("page dimensions: %w", err)
	}
	if maxW > 0 && w > maxW {
		h = h * maxW / w
		w = maxW
	}
	return b.attach(scene.NewImage(x, y, w, h, src.Path(), page)), nil
}

// settle stops any running animation on the node so the mutation applies
// to the real baseline, not to a transient overlay frame.
func (b *Board) settle(n scene.Node) {
	b.anims.Stop(n)
}

// mutate resolves the EID, settles the node, applies fn and saves. Absent
// EIDs are a normal outcome and report false.
func (b *Board) mutate(eid identity.EID, fn func(scene.Node) bool) bool {
	n, ok := b.ids.Resolve(eid)
	if !ok {
		return false
	}
	b.settle(n)
	if !fn(n) {
		return false
	}
	b.hist.Save()
	return true
}

func (b *Board) Move(eid identity.EID, x, y float64) bool {
	return b.mutate(eid, func(n scene.Node) bool {
		n.SetPosition(x, y)
		return true
	})
}

func (b *Board) Rotate(eid identity.EID, deg float64) bool {
	return b.mutate(eid, func(n scene.Node) bool {
		n.SetRotation(deg)
		return true
	})
}

func (b *Board) SetScale(eid identity.EID, sx, sy float64) bool {
	return b.mutate(eid, func(n scene.Node) bool {
		n.SetScale(sx, sy)
		return true
	})
}

func (b *Board) SetOpacity(eid identity.EID, o float64) bool {
	return b.mutate(eid, func(n scene.Node) bool {
		n.SetOpacity(o)
		return true
	})
}

// SetFill recolors a node. Reports false when the node has no fill channel.
func (b *Board) SetFill(eid identity.EID, color string) bool {
	return b.mutate(eid, func(n scene.Node) bool {
		f, ok := n.(scene.Filler)
		if !ok {
			return false
		}
		f.SetFill(color)
		return true
	})
}

// SetStroke restyles a node's outline. Reports false when the node has no
// stroke channel.
func (b *Board) SetStroke(eid identity.EID, s scene.Stroke) bool {
	return b.mutate(eid, func(n scene.Node) bool {
		st, ok := n.(scene.Stroker)
		if !ok {
			return false
		}
		st.SetStroke(s)
		return true
	})
}

func (b *Board) Raise(eid identity.EID) bool {
	return b.mutate(eid, func(n scene.Node) bool {
		b.graph.MoveToTop(n)
		return true
	})
}

func (b *Board) Lower(eid identity.EID) bool {
	return b.mutate(eid, func(n scene.Node) bool {
		b.graph.MoveToBottom(n)
		return true
	})
}

// Erase permanently destroys the shape. Its EID never resolves again
// (until a restore of an older snapshot rebinds it).
func (b *Board) Erase(eid identity.EID) bool {
	n, ok := b.ids.Resolve(eid)
	if !ok {
		return false
	}
	b.settle(n)
	b.graph.Remove(n)
	delete(b.wired, n.Handle())
	b.ids.Release(eid)
	if b.selection == n {
		b.selection = nil
	}
	b.hist.Save()
	return true
}

// ClearBoard destroys every shape in one undo step.
func (b *Board) ClearBoard() {
	b.anims.StopAll(true)
	for _, eid := range b.ids.EIDs() {
		b.ids.Release(eid)
	}
	b.graph.Clear()
	b.wired = make(map[scene.Handle]struct{})
	b.selection = nil
	b.hist.Save()
}

// StartAnimation starts the named preset on the shape. Absent EIDs and
// inapplicable presets report applied=false.
func (b *Board) StartAnimation(eid identity.EID, kind string) (bool, error) {
	n, ok := b.ids.Resolve(eid)
	if !ok {
		return false, nil
	}
	return b.anims.Start(n, kind)
}

func (b *Board) StopAnimation(eid identity.EID) {
	if n, ok := b.ids.Resolve(eid); ok {
		b.anims.Stop(n)
	}
}

func (b *Board) StopAllAnimations(silent bool) {
	b.anims.StopAll(silent)
}

// Tick advances running animations. Call once per display refresh.
func (b *Board) Tick(now time.Time) {
	b.anims.Tick(now)
}

func (b *Board) Undo() bool {
	ok := b.hist.Undo()
	if ok {
		b.pruneWiring()
	}
	return ok
}

func (b *Board) Redo() bool {
	ok := b.hist.Redo()
	if ok {
		b.pruneWiring()
	}
	return ok
}

// pruneWiring drops wiring bookkeeping for handles destroyed by a restore.
func (b *Board) pruneWiring() {
	live := make(map[scene.Handle]struct{}, b.graph.Len())
	for _, n := range b.graph.Nodes() {
		live[n.Handle()] = struct{}{}
	}
	for h := range b.wired {
		if _, ok := live[h]; !ok {
			delete(b.wired, h)
		}
	}
}

func (b *Board) CanUndo() bool { return b.hist.CanUndo() }
func (b *Board) CanRedo() bool { return b.hist.CanRedo() }

// Batch groups several mutations into a single history entry.
func (b *Board) Batch(fn func()) {
	b.hist.Batch(fn)
}

// Select marks the shape as the current selection.
func (b *Board) Select(eid identity.EID) bool {
	n, ok := b.ids.Resolve(eid)
	if !ok {
		return false
	}
	b.selection = n
	return true
}

// Selection reports the EID of the selected shape.
func (b *Board) Selection() (identity.EID, bool) {
	if b.selection == nil {
		return "", false
	}
	return b.ids.Lookup(b.selection)
}

func (b *Board) ClearSelection() {
	b.selection = nil
}

// Resolve exposes identity lookup to read-only collaborators.
func (b *Board) Resolve(eid identity.EID) (scene.Node, bool) {
	return b.ids.Resolve(eid)
}

// EIDs lists every live shape identifier.
func (b *Board) EIDs() []identity.EID {
	return b.ids.EIDs()
}

// NodeCount reports the number of shapes on the board.
func (b *Board) NodeCount() int {
	return b.graph.Len()
}

// Snapshot serializes the current scene without the identity correlation
// table. This is the whole-board export/import shape.
func (b *Board) Snapshot() *scene.Entry {
	return b.graph.Serialize()
}

// Nodes returns the live nodes in z-order for read-only rendering.
func (b *Board) Nodes() []scene.Node {
	return b.graph.Nodes()
}

// Load replaces the board contents with an exported entry. Fresh EIDs are
// assigned: an exported file carries no correlation table, so imported
// shapes are new logical objects. One undo step.
func (b *Board) Load(e *scene.Entry) error {
	nodes, err := scene.Reconstruct(e)
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}
	b.Batch(func() {
		b.anims.StopAll(true)
		for _, eid := range b.ids.EIDs() {
			b.ids.Release(eid)
		}
		b.graph.Clear()
		b.wired = make(map[scene.Handle]struct{})
		b.selection = nil
		for _, n := range nodes {
			b.graph.Add(n)
			b.ids.Assign(n)
			b.Wire(n)
		}
	})
	return nil
}
