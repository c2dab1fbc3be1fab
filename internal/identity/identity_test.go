package identity

import (
	"testing"

	"github.com/ivlev/whiteboard/internal/scene"
)

func TestAssignResolve(t *testing.T) {
	g := scene.NewGraph()
	r := NewRegistry()

	n := scene.NewRect(10, 10, 50, 50, "#ff0000")
	g.Add(n)

	eid := r.Assign(n)
	if eid == "" {
		t.Fatal("Assign returned empty EID")
	}

	got, ok := r.Resolve(eid)
	if !ok {
		t.Fatalf("Resolve(%s) reported absent", eid)
	}
	if got != n {
		t.Errorf("Resolve(%s) returned a different node", eid)
	}

	back, ok := r.Lookup(n)
	if !ok || back != eid {
		t.Errorf("Lookup returned %q (ok=%v), want %q", back, ok, eid)
	}
}

func TestAssignNeverReuses(t *testing.T) {
	g := scene.NewGraph()
	r := NewRegistry()

	seen := make(map[EID]bool)
	for i := 0; i < 100; i++ {
		n := scene.NewRect(0, 0, 10, 10, "#000000")
		g.Add(n)
		eid := r.Assign(n)
		if seen[eid] {
			t.Fatalf("EID %s issued twice", eid)
		}
		seen[eid] = true
		// Releasing must not allow the token to come back.
		r.Release(eid)
	}
}

func TestReleaseAbsentIsNoop(t *testing.T) {
	r := NewRegistry()
	r.Release("el-999") // must not panic
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestResolveAbsent(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Resolve("el-1"); ok {
		t.Error("Resolve reported a mapping in an empty registry")
	}
}

func TestRebind(t *testing.T) {
	g := scene.NewGraph()
	r := NewRegistry()

	old := scene.NewRect(0, 0, 10, 10, "#000000")
	g.Add(old)
	eid := r.Assign(old)

	// A restored snapshot produces a distinct construction for the same
	// logical shape.
	fresh := scene.NewRect(0, 0, 10, 10, "#000000")
	g.Add(fresh)
	r.Rebind(eid, fresh)

	got, ok := r.Resolve(eid)
	if !ok || got != fresh {
		t.Fatal("Rebind did not move the mapping to the new construction")
	}
	if _, ok := r.Lookup(old); ok {
		t.Error("old construction still resolves to an EID after Rebind")
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestClear(t *testing.T) {
	g := scene.NewGraph()
	r := NewRegistry()
	for i := 0; i < 5; i++ {
		n := scene.NewRect(0, 0, 10, 10, "#000000")
		g.Add(n)
		r.Assign(n)
	}
	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", r.Len())
	}
	if len(r.EIDs()) != 0 {
		t.Errorf("EIDs after Clear = %v, want empty", r.EIDs())
	}
}
