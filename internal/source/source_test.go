package source

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestImageSourceSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.png")
	writeTestPNG(t, path, 40, 30)

	src, err := NewImageSource(path)
	if err != nil {
		t.Fatalf("open source: %v", err)
	}
	defer src.Close()

	if src.PageCount() != 1 {
		t.Fatalf("page count = %d, want 1", src.PageCount())
	}
	w, h, err := src.GetPageDimensions(0)
	if err != nil {
		t.Fatalf("dimensions: %v", err)
	}
	if w != 40 || h != 30 {
		t.Errorf("dimensions = %vx%v, want 40x30", w, h)
	}
	img, err := src.RenderPage(0, 72)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if img.Bounds().Dx() != 40 {
		t.Errorf("rendered width = %d, want 40", img.Bounds().Dx())
	}
}

func TestImageSourceDirectoryOrder(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "b.png"), 20, 20)
	writeTestPNG(t, filepath.Join(dir, "a.png"), 10, 10)

	src, err := NewImageSource(dir)
	if err != nil {
		t.Fatalf("open source: %v", err)
	}
	defer src.Close()

	if src.PageCount() != 2 {
		t.Fatalf("page count = %d, want 2", src.PageCount())
	}
	w, _, err := src.GetPageDimensions(0)
	if err != nil {
		t.Fatalf("dimensions: %v", err)
	}
	if w != 10 {
		t.Errorf("page 0 width = %v, want 10 (name order)", w)
	}
}

// A board file can carry a page index the source no longer has, e.g. when
// the source directory shrank after the board was saved. That must come
// back as an error, never a panic.
func TestImageSourcePageOutOfRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "only.png")
	writeTestPNG(t, path, 8, 8)

	src, err := NewImageSource(path)
	if err != nil {
		t.Fatalf("open source: %v", err)
	}
	defer src.Close()

	if _, err := src.RenderPage(3, 72); err == nil {
		t.Error("RenderPage(3) on a 1-page source returned no error")
	}
	if _, err := src.RenderPage(-1, 72); err == nil {
		t.Error("RenderPage(-1) returned no error")
	}
	if _, _, err := src.GetPageDimensions(3); err == nil {
		t.Error("GetPageDimensions(3) on a 1-page source returned no error")
	}
	if _, _, err := src.GetPageDimensions(-1); err == nil {
		t.Error("GetPageDimensions(-1) returned no error")
	}
}

func TestImageSourceEmptyDirectory(t *testing.T) {
	if _, err := NewImageSource(t.TempDir()); err == nil {
		t.Error("empty directory opened without error")
	}
}
