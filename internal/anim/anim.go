// Package anim runs transient attribute animations on scene nodes.
//
// An animation is an overlay: it mutates a node's visible attributes each
// frame but never the persisted baseline. Starting an animation captures
// the baseline; stopping it restores every attribute exactly, so the
// history subsystem can force convergence back to the saved state at any
// time with StopAll.
package anim

import (
	"time"

	"github.com/ivlev/whiteboard/internal/identity"
	"github.com/ivlev/whiteboard/internal/notify"
	"github.com/ivlev/whiteboard/internal/scene"
)

// Baseline is the attribute set captured when an animation starts, after
// the pivot has been centered. PrevOffset and Delta record the centering
// correction so Stop can invert it exactly.
type Baseline struct {
	X, Y           float64
	Rotation       float64
	ScaleX, ScaleY float64
	Opacity        float64
	Fill           string
	HasFill        bool
	Stroke         scene.Stroke
	HasStroke      bool

	PrevOffsetX, PrevOffsetY float64
	DeltaX, DeltaY           float64
}

type record struct {
	node      scene.Node
	preset    Preset
	baseline  Baseline
	startedAt time.Time
}

// Engine owns every running animation record, at most one per live node.
// Records are keyed by the node's graph handle, which only exists while
// the node is live; identity is used for announcements only.
type Engine struct {
	graph   *scene.Graph
	ids     *identity.Registry
	sink    notify.Sink
	records map[scene.Handle]*record
	now     func() time.Time
}

func NewEngine(graph *scene.Graph, ids *identity.Registry, sink notify.Sink) *Engine {
	if sink == nil {
		sink = notify.LogSink{}
	}
	return &Engine{
		graph:   graph,
		ids:     ids,
		sink:    sink,
		records: make(map[scene.Handle]*record),
		now:     time.Now,
	}
}

// Start begins the named animation on the node. If the same type is
// already running on the node this is a toggle: the animation stops, the
// baseline is restored, and no new record is created. A different running
// type is stopped and replaced. Returns false when no record was created,
// either because of a toggle-off or because the preset declined the node.
func (e *Engine) Start(n scene.Node, name string) (bool, error) {
	preset, err := NewPreset(name)
	if err != nil {
		return false, err
	}

	if prev, ok := e.records[n.Handle()]; ok {
		prevName := prev.preset.Name()
		e.stopRecord(prev, false)
		if prevName == name {
			return false, nil
		}
	}

	if !preset.Applicable(n) {
		return false, nil
	}

	b := e.capture(n)
	e.records[n.Handle()] = &record{
		node:      n,
		preset:    preset,
		baseline:  b,
		startedAt: e.now(),
	}
	if eid, ok := e.ids.Lookup(n); ok {
		e.sink.AnimationStarted(eid, name)
	}
	return true, nil
}

// Stop halts the node's animation and restores its baseline. Safe to call
// on a node with no running record and on a node that no longer exists.
func (e *Engine) Stop(n scene.Node) {
	rec, ok := e.records[n.Handle()]
	if !ok {
		return
	}
	e.stopRecord(rec, false)
}

// StopAll stops every running animation. Baselines are always restored;
// silent only suppresses the stop announcements.
func (e *Engine) StopAll(silent bool) {
	for _, rec := range e.records {
		e.stopRecord(rec, silent)
	}
}

// Tick advances every running animation to the given instant. It is called
// once per display refresh by the board's frame loop and never blocks.
func (e *Engine) Tick(now time.Time) {
	for _, rec := range e.records {
		elapsed := now.Sub(rec.startedAt).Seconds()
		rec.preset.Apply(rec.node, rec.baseline, elapsed)
	}
}

// BaselineState returns the node's serialized state with the running
// animation factored out: baseline attributes, centering correction
// inverted, geometry as-is. Reports false when nothing is running on the
// node. The snapshot serializer uses this so animated values never reach
// a persisted entry.
func (e *Engine) BaselineState(n scene.Node) (scene.NodeState, bool) {
	rec, ok := e.records[n.Handle()]
	if !ok {
		return scene.NodeState{}, false
	}
	b := rec.baseline
	s := n.State()
	s.X, s.Y = b.X-b.DeltaX, b.Y-b.DeltaY
	s.Rotation = b.Rotation
	s.ScaleX, s.ScaleY = b.ScaleX, b.ScaleY
	s.Opacity = b.Opacity
	s.OffsetX, s.OffsetY = b.PrevOffsetX, b.PrevOffsetY
	if b.HasFill {
		s.Fill = b.Fill
	}
	if b.HasStroke {
		st := b.Stroke
		s.Stroke = &st
	}
	return s, true
}

// Running reports the animation type currently active on the node.
func (e *Engine) Running(n scene.Node) (string, bool) {
	rec, ok := e.records[n.Handle()]
	if !ok {
		return "", false
	}
	return rec.preset.Name(), true
}

// Count reports the number of running records.
func (e *Engine) Count() int {
	return len(e.records)
}

// capture centers the node's pivot on its bounding box, compensating the
// position so the visible placement does not move, then snapshots every
// mutable attribute.
func (e *Engine) capture(n scene.Node) Baseline {
	w, h := n.Bounds()
	cx, cy := w/2, h/2
	ox, oy := n.Offset()
	dx, dy := cx-ox, cy-oy
	x, y := n.Position()
	n.SetOffset(cx, cy)
	n.SetPosition(x+dx, y+dy)

	b := Baseline{
		Rotation:    n.Rotation(),
		Opacity:     n.Opacity(),
		PrevOffsetX: ox,
		PrevOffsetY: oy,
		DeltaX:      dx,
		DeltaY:      dy,
	}
	b.X, b.Y = n.Position()
	b.ScaleX, b.ScaleY = n.Scale()
	if f, ok := n.(scene.Filler); ok {
		b.Fill = f.Fill()
		b.HasFill = true
	}
	if s, ok := n.(scene.Stroker); ok {
		b.Stroke = s.Stroke()
		b.HasStroke = true
	}
	return b
}

// stopRecord restores the baseline, inverts the centering correction and
// removes the record. The liveness check keeps Stop safe when the node was
// destroyed out from under a running animation.
func (e *Engine) stopRecord(rec *record, silent bool) {
	delete(e.records, rec.node.Handle())

	if e.graph.Contains(rec.node) {
		n := rec.node
		b := rec.baseline
		n.SetPosition(b.X, b.Y)
		n.SetRotation(b.Rotation)
		n.SetScale(b.ScaleX, b.ScaleY)
		n.SetOpacity(b.Opacity)
		if b.HasFill {
			n.(scene.Filler).SetFill(b.Fill)
		}
		if b.HasStroke {
			n.(scene.Stroker).SetStroke(b.Stroke)
		}
		n.SetOffset(b.PrevOffsetX, b.PrevOffsetY)
		n.SetPosition(b.X-b.DeltaX, b.Y-b.DeltaY)
	}

	if !silent {
		if eid, ok := e.ids.Lookup(rec.node); ok {
			e.sink.AnimationStopped(eid, rec.preset.Name())
		}
	}
}
