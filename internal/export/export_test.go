package export

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/ivlev/whiteboard/internal/scene"
)

func testEntry() *scene.Entry {
	g := scene.NewGraph()
	g.Add(scene.NewRect(10, 10, 40, 30, "#ff0000"))
	g.Add(scene.NewLine(60, 10, 40, 40, scene.Stroke{Color: "#0000ff", Width: 3}))
	g.Add(scene.NewText(10, 60, "hi", 13, "#000000"))
	return g.Serialize()
}

func TestRenderBackgroundAndShapes(t *testing.T) {
	r := NewRenderer(120, 100, "#ffffff", 72)
	img := r.Render(testEntry())
	defer r.Release(img)

	if got := img.Bounds(); got.Dx() != 120 || got.Dy() != 100 {
		t.Fatalf("rendered %dx%d, want 120x100", got.Dx(), got.Dy())
	}

	// Background where nothing is drawn.
	if c := img.RGBAAt(119, 99); c != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("background pixel = %+v, want white", c)
	}
	// Inside the red rect.
	if c := img.RGBAAt(30, 25); c != (color.RGBA{0xff, 0x00, 0x00, 0xff}) {
		t.Errorf("rect pixel = %+v, want red", c)
	}
}

func TestRenderHonorsOpacity(t *testing.T) {
	g := scene.NewGraph()
	n := scene.NewRect(0, 0, 50, 50, "#000000")
	n.SetOpacity(0.5)
	g.Add(n)

	r := NewRenderer(50, 50, "#ffffff", 72)
	img := r.Render(g.Serialize())
	defer r.Release(img)

	c := img.RGBAAt(25, 25)
	if c.R < 0x70 || c.R > 0x90 {
		t.Errorf("half-opaque black over white gave R=%#x, want about 0x80", c.R)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff0000", color.NRGBA{0xff, 0x00, 0x00, 0xff}},
		{"#0f0", color.NRGBA{0x00, 0xff, 0x00, 0xff}},
		{"#4fc3f7", color.NRGBA{0x4f, 0xc3, 0xf7, 0xff}},
		{"garbage", color.NRGBA{0x00, 0x00, 0x00, 0xff}},
	}
	for _, tt := range tests {
		if got := parseHex(tt.in); got != tt.want {
			t.Errorf("parseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestWritePNGAndThumbnail(t *testing.T) {
	r := NewRenderer(200, 100, "#ffffff", 72)
	img := r.Render(testEntry())
	defer r.Release(img)

	dir := t.TempDir()
	still := filepath.Join(dir, "board.png")
	if err := WritePNG(img, still); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	if fi, err := os.Stat(still); err != nil || fi.Size() == 0 {
		t.Fatalf("still not written: %v", err)
	}

	thumb := Thumbnail(img, 64)
	if got := thumb.Bounds(); got.Dx() != 64 || got.Dy() != 32 {
		t.Errorf("thumbnail %dx%d, want 64x32", got.Dx(), got.Dy())
	}
}

func TestWriteFrames(t *testing.T) {
	r := NewRenderer(80, 60, "#ffffff", 72)
	entries := make([]*scene.Entry, 6)
	for i := range entries {
		g := scene.NewGraph()
		g.Add(scene.NewRect(float64(i)*5, 10, 20, 20, "#00ff00"))
		entries[i] = g.Serialize()
	}

	dir := filepath.Join(t.TempDir(), "frames")
	if err := r.WriteFrames(entries, dir, 3); err != nil {
		t.Fatalf("WriteFrames: %v", err)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != len(entries) {
		t.Fatalf("%d frame files, want %d", len(files), len(entries))
	}
	if files[0].Name() != "frame_000001.png" {
		t.Errorf("first frame named %s", files[0].Name())
	}
}

func TestWriteShareQR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "share_qr.png")
	if err := WriteShareQR("https://example.com/board/abc", path, 128); err != nil {
		t.Fatalf("WriteShareQR: %v", err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Fatalf("QR not written: %v", err)
	}
}
