// Package identity issues stable external identifiers for scene nodes.
//
// Graph handles are transient: a restored snapshot produces structurally
// equal but distinct constructions with fresh handles. Callers (tools, UI,
// automated agents) address shapes by EID instead, and the registry is the
// single place that maps an EID to whatever construction currently embodies
// that logical shape.
package identity

import (
	"fmt"

	"github.com/ivlev/whiteboard/internal/scene"
)

// EID is a process-unique, immutable token for one logical shape. It
// survives serialize/restore cycles; the node it resolves to does not.
type EID string

// Registry maps EIDs to live nodes, bidirectionally. Not safe for
// concurrent use; the board runs single-threaded.
type Registry struct {
	byEID    map[EID]scene.Node
	byHandle map[scene.Handle]EID
	nextSeq  uint64
}

func NewRegistry() *Registry {
	return &Registry{
		byEID:    make(map[EID]scene.Node),
		byHandle: make(map[scene.Handle]EID),
	}
}

// Assign issues a fresh EID for the node and records the mapping. Tokens
// come from a monotonic counter and are never reused within a process.
func (r *Registry) Assign(n scene.Node) EID {
	r.nextSeq++
	eid := EID(fmt.Sprintf("el-%d", r.nextSeq))
	r.byEID[eid] = n
	r.byHandle[n.Handle()] = eid
	return eid
}

// Resolve returns the node currently bound to the EID.
func (r *Registry) Resolve(eid EID) (scene.Node, bool) {
	n, ok := r.byEID[eid]
	return n, ok
}

// Lookup returns the EID bound to a live node, if any.
func (r *Registry) Lookup(n scene.Node) (EID, bool) {
	eid, ok := r.byHandle[n.Handle()]
	return eid, ok
}

// Release removes the mapping. Called exactly once, at the point the node
// is permanently destroyed. Unknown EIDs are ignored.
func (r *Registry) Release(eid EID) {
	n, ok := r.byEID[eid]
	if !ok {
		return
	}
	delete(r.byEID, eid)
	delete(r.byHandle, n.Handle())
}

// Rebind points an EID at a new construction of the same logical shape.
// Used during snapshot restore. Any previous mapping for the EID is
// discarded first.
func (r *Registry) Rebind(eid EID, n scene.Node) {
	if old, ok := r.byEID[eid]; ok {
		delete(r.byHandle, old.Handle())
	}
	r.byEID[eid] = n
	r.byHandle[n.Handle()] = eid
}

// Clear drops every mapping. Used when the whole scene is torn down.
func (r *Registry) Clear() {
	r.byEID = make(map[EID]scene.Node)
	r.byHandle = make(map[scene.Handle]EID)
}

// Len reports the number of live mappings.
func (r *Registry) Len() int {
	return len(r.byEID)
}

// EIDs returns every live EID, in no particular order.
func (r *Registry) EIDs() []EID {
	out := make([]EID, 0, len(r.byEID))
	for eid := range r.byEID {
		out = append(out, eid)
	}
	return out
}
