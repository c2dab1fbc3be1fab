// Package history provides linear, bounded undo/redo over the whole scene.
//
// Each entry is a full serialization of the scene graph plus a correlation
// table that maps the serialized position of every node back to its
// external identifier. Restore rebuilds the scene from scratch and uses
// the table to rebind each fresh construction to its original EID, so
// callers holding an EID keep a valid address across undo/redo.
package history

import (
	"log"

	"github.com/ivlev/whiteboard/internal/anim"
	"github.com/ivlev/whiteboard/internal/identity"
	"github.com/ivlev/whiteboard/internal/notify"
	"github.com/ivlev/whiteboard/internal/scene"
)

// DefaultCapacity bounds the stack when the config does not say otherwise.
const DefaultCapacity = 50

// Entry is one snapshot: the serialized scene plus the identity
// correlation table. Keys are positions in Scene.Nodes, valid only against
// the node list reconstructed from this same entry.
type Entry struct {
	Scene       *scene.Entry
	Correlation map[int]identity.EID
}

// Wirer re-attaches interactivity affordances (hover/select/drag) to a
// reconstructed node. Must be idempotent; it is called only after every
// node of the snapshot is attached, because wiring may depend on siblings.
type Wirer interface {
	Wire(n scene.Node)
}

// Selection is the current-selection collaborator. Restore clears it
// because the selected construction no longer exists afterwards.
type Selection interface {
	Clear()
}

// Stack is the undo/redo timeline. Linear only: saving after an undo
// discards the redo branch.
type Stack struct {
	graph *scene.Graph
	ids   *identity.Registry
	anims *anim.Engine
	wirer Wirer
	sel   Selection
	sink  notify.Sink

	entries  []*Entry
	cursor   int
	capacity int

	batching  bool
	restoring bool
}

func NewStack(graph *scene.Graph, ids *identity.Registry, anims *anim.Engine, wirer Wirer, sel Selection, sink notify.Sink, capacity int) *Stack {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if sink == nil {
		sink = notify.LogSink{}
	}
	return &Stack{
		graph:    graph,
		ids:      ids,
		anims:    anims,
		wirer:    wirer,
		sel:      sel,
		sink:     sink,
		cursor:   -1,
		capacity: capacity,
	}
}

// Save snapshots the current scene as a new entry after the cursor. No-op
// while a batch or a restore is in progress. Running animations are left
// running: the serializer substitutes each animated node's baseline, so
// the overlay never reaches a persisted entry, and restore silences the
// animations before the scene is torn down.
func (s *Stack) Save() {
	if s.batching || s.restoring {
		return
	}

	entry := &Entry{
		Scene:       s.graph.Serialize(),
		Correlation: make(map[int]identity.EID),
	}
	for i, n := range s.graph.Nodes() {
		// A node mid-animation serializes at its baseline, not at the
		// transient overlay values of the current frame.
		if bs, ok := s.anims.BaselineState(n); ok {
			entry.Scene.Nodes[i] = bs
		}
		if eid, ok := s.ids.Lookup(n); ok {
			entry.Correlation[i] = eid
		}
	}

	s.entries = append(s.entries[:s.cursor+1], entry)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[1:]
	}
	s.cursor = len(s.entries) - 1
	s.sink.HistoryChanged(s.CanUndo(), s.CanRedo())
}

// Undo steps back one entry. With nothing to undo it reports a notice and
// leaves all state unchanged.
func (s *Stack) Undo() bool {
	if !s.CanUndo() {
		s.sink.Notice("nothing to undo")
		return false
	}
	s.cursor--
	s.restore(s.entries[s.cursor])
	return true
}

// Redo steps forward one entry. Symmetric to Undo.
func (s *Stack) Redo() bool {
	if !s.CanRedo() {
		s.sink.Notice("nothing to redo")
		return false
	}
	s.cursor++
	s.restore(s.entries[s.cursor])
	return true
}

// Batch suppresses intermediate saves for the duration of fn, then saves
// exactly once, so a composite action costs one undo step. A nested call
// is a caller bug: it is logged, its fn still runs, and no extra entry is
// produced.
func (s *Stack) Batch(fn func()) {
	if s.batching {
		log.Printf("[!] nested history batch ignored")
		fn()
		return
	}
	s.batching = true
	// Reset under defer so a panicking fn cannot wedge the stack into
	// dropping every later Save.
	defer func() { s.batching = false }()
	fn()
	s.batching = false
	s.Save()
}

func (s *Stack) CanUndo() bool { return s.cursor > 0 }
func (s *Stack) CanRedo() bool { return s.cursor < len(s.entries)-1 }

// Len reports the number of entries on the stack.
func (s *Stack) Len() int { return len(s.entries) }

// Cursor reports the index of the current entry, -1 when empty.
func (s *Stack) Cursor() int { return s.cursor }

// restore replaces the live scene with the entry's contents. Order
// matters: animations are silenced while their target nodes still exist,
// identities are cleared before the teardown so no mapping ever points at
// a destroyed node, and interactivity is wired only after the full node
// list is attached.
func (s *Stack) restore(e *Entry) {
	s.restoring = true
	defer func() { s.restoring = false }()

	s.anims.StopAll(true)
	s.ids.Clear()
	s.graph.Clear()

	nodes, err := scene.Reconstruct(e.Scene)
	if err != nil {
		log.Printf("[!] history restore: %v", err)
		nodes = nil
	}
	for _, n := range nodes {
		s.graph.Add(n)
	}

	for key, eid := range e.Correlation {
		if key < 0 || key >= len(nodes) {
			// Data-integrity anomaly: the entry references a structural
			// key the reconstruction did not produce. The node stays
			// unbound; the rest of the restore proceeds.
			log.Printf("[!] history restore: correlation key %d for %s has no node", key, eid)
			continue
		}
		s.ids.Rebind(eid, nodes[key])
	}

	if s.wirer != nil {
		for _, n := range nodes {
			s.wirer.Wire(n)
		}
	}
	if s.sel != nil {
		s.sel.Clear()
	}
	s.sink.HistoryChanged(s.CanUndo(), s.CanRedo())
}
