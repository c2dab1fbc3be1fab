package system

import (
	"image"
	"testing"
)

func TestSuggestHistoryDepthClamped(t *testing.T) {
	depth := SuggestHistoryDepth(50, 500)
	if depth < 50 || depth > 500 {
		t.Errorf("depth %d outside [50, 500]", depth)
	}
	t.Logf("suggested history depth: %d", depth)
}

func TestFramePoolReuse(t *testing.T) {
	p := NewFramePool()
	rect := image.Rect(0, 0, 64, 64)

	a := p.Get(rect)
	if a.Rect != rect {
		t.Fatalf("got buffer with rect %v", a.Rect)
	}
	p.Put(a)

	b := p.Get(rect)
	if b.Rect != rect {
		t.Fatalf("got buffer with rect %v", b.Rect)
	}

	// Different sizes never share a pool.
	c := p.Get(image.Rect(0, 0, 32, 32))
	if c.Rect == rect {
		t.Error("mixed-size buffers share a pool")
	}
	p.Put(b)
	p.Put(c)
}
