package scene

import (
	"path/filepath"
	"reflect"
	"testing"
)

func sampleGraph() *Graph {
	g := NewGraph()
	r := NewRect(10, 20, 100, 50, "#4fc3f7")
	r.SetRotation(15)
	r.SetStroke(Stroke{Color: "#000000", Width: 2})
	g.Add(r)

	e := NewEllipse(200, 80, 40, 30, "#ffb74d")
	e.SetOpacity(0.5)
	g.Add(e)

	g.Add(NewLine(0, 0, 120, 80, Stroke{Color: "#555555", Width: 4}))
	g.Add(NewPath(300, 300, []Point{{0, 0}, {10, 20}, {30, 5}}, Stroke{Color: "#e57373", Width: 3}))
	g.Add(NewText(50, 400, "hello", 24, "#333333"))
	g.Add(NewImage(400, 100, 200, 150, "slides.pdf", 2))
	return g
}

func TestSerializeReconstructRoundTrip(t *testing.T) {
	g := sampleGraph()
	entry := g.Serialize()

	if len(entry.Nodes) != g.Len() {
		t.Fatalf("entry has %d nodes, graph has %d", len(entry.Nodes), g.Len())
	}

	nodes, err := Reconstruct(entry)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if len(nodes) != g.Len() {
		t.Fatalf("reconstructed %d nodes, want %d", len(nodes), g.Len())
	}

	orig := g.Nodes()
	for i, n := range nodes {
		if n == orig[i] {
			t.Errorf("node %d: reconstruction returned the same construction", i)
		}
		if n.Kind() != orig[i].Kind() {
			t.Errorf("node %d: kind %q, want %q (z-order not preserved)", i, n.Kind(), orig[i].Kind())
		}
		if !reflect.DeepEqual(n.State(), orig[i].State()) {
			t.Errorf("node %d (%s): state mismatch\n got %+v\nwant %+v", i, n.Kind(), n.State(), orig[i].State())
		}
	}
}

func TestPathPointsSurviveRoundTrip(t *testing.T) {
	g := NewGraph()
	pts := []Point{{0, 0}, {5, 12}, {40, 3}}
	g.Add(NewPath(10, 10, pts, Stroke{Color: "#000000", Width: 1}))

	nodes, err := Reconstruct(g.Serialize())
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	p, ok := nodes[0].(*Path)
	if !ok {
		t.Fatalf("reconstructed node is %T, want *Path", nodes[0])
	}
	if len(p.Points) != len(pts) {
		t.Fatalf("got %d points, want %d", len(p.Points), len(pts))
	}
	for i := range pts {
		if p.Points[i] != pts[i] {
			t.Errorf("point %d: %+v, want %+v", i, p.Points[i], pts[i])
		}
	}
}

func TestReconstructUnknownKind(t *testing.T) {
	entry := &Entry{Version: "1.0", Nodes: []NodeState{{Kind: "blob"}}}
	if _, err := Reconstruct(entry); err == nil {
		t.Fatal("Reconstruct accepted an unknown kind")
	}
}

func TestZOrderOps(t *testing.T) {
	g := NewGraph()
	a := NewRect(0, 0, 10, 10, "#111111")
	b := NewRect(0, 0, 10, 10, "#222222")
	c := NewRect(0, 0, 10, 10, "#333333")
	g.Add(a)
	g.Add(b)
	g.Add(c)

	g.MoveToTop(a)
	if nodes := g.Nodes(); nodes[2] != a {
		t.Error("MoveToTop did not raise the node to the front")
	}
	g.MoveToBottom(c)
	if nodes := g.Nodes(); nodes[0] != c {
		t.Error("MoveToBottom did not lower the node to the back")
	}
}

func TestHandlesNotReusedAfterClear(t *testing.T) {
	g := NewGraph()
	a := NewRect(0, 0, 10, 10, "#111111")
	h1 := g.Add(a)
	g.Clear()
	b := NewRect(0, 0, 10, 10, "#222222")
	h2 := g.Add(b)
	if h2 == h1 {
		t.Errorf("handle %d reused after Clear", h1)
	}
}

func TestBoardFileRoundTrip(t *testing.T) {
	g := sampleGraph()
	entry := g.Serialize()

	path := filepath.Join(t.TempDir(), "board.yaml")
	if err := WriteBoard(entry, path); err != nil {
		t.Fatalf("WriteBoard: %v", err)
	}
	got, err := ReadBoard(path)
	if err != nil {
		t.Fatalf("ReadBoard: %v", err)
	}
	if got.Version != entry.Version {
		t.Errorf("version %q, want %q", got.Version, entry.Version)
	}
	if len(got.Nodes) != len(entry.Nodes) {
		t.Fatalf("read %d nodes, want %d", len(got.Nodes), len(entry.Nodes))
	}
	for i := range entry.Nodes {
		if got.Nodes[i].Kind != entry.Nodes[i].Kind {
			t.Errorf("node %d kind %q, want %q", i, got.Nodes[i].Kind, entry.Nodes[i].Kind)
		}
	}
}

func TestPathBoundsSpanNegativePoints(t *testing.T) {
	p := NewPath(100, 100, []Point{{X: -30, Y: -10}, {X: 0, Y: 0}, {X: 50, Y: 20}}, Stroke{Color: "#000000", Width: 2})

	w, h := p.Bounds()
	if w != 80 || h != 30 {
		t.Errorf("bounds = %vx%v, want 80x30", w, h)
	}

	empty := NewPath(0, 0, nil, Stroke{})
	if w, h := empty.Bounds(); w != 0 || h != 0 {
		t.Errorf("empty path bounds = %vx%v, want 0x0", w, h)
	}
}
