// Package export rasterizes board snapshots to images: single PNG/JPEG
// stills, scaled thumbnails, numbered frame sequences of a running
// animation, and a share QR code. It renders serialized entries, never
// live nodes, so frame rendering can fan out across workers while the
// board keeps mutating.
package export

import (
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/whiteboard/internal/scene"
	"github.com/ivlev/whiteboard/internal/source"
	"github.com/ivlev/whiteboard/internal/system"
)

// Renderer turns serialized scene entries into raster images.
type Renderer struct {
	Width      int
	Height     int
	Background string
	// ImportDPI is used when an image node needs its PDF page re-rendered.
	ImportDPI int

	pool *system.FramePool
}

func NewRenderer(width, height int, background string, importDPI int) *Renderer {
	if importDPI <= 0 {
		importDPI = 150
	}
	return &Renderer{
		Width:      width,
		Height:     height,
		Background: background,
		ImportDPI:  importDPI,
		pool:       system.NewFramePool(),
	}
}

// Render rasterizes the entry in z-order onto a fresh background. The
// returned buffer comes from the frame pool; hand it back with Release
// when writing frame sequences.
func (r *Renderer) Render(e *scene.Entry) *image.RGBA {
	dst := r.pool.Get(image.Rect(0, 0, r.Width, r.Height))
	bg := parseHex(r.Background)
	draw.Draw(dst, dst.Rect, image.NewUniform(bg), image.Point{}, draw.Src)
	for _, s := range e.Nodes {
		r.drawNode(dst, s)
	}
	return dst
}

// Release returns a rendered frame to the pool.
func (r *Renderer) Release(img *image.RGBA) {
	r.pool.Put(img)
}

func (r *Renderer) drawImageNode(dst *image.RGBA, s scene.NodeState, ox, oy float64) {
	if s.Source == "" {
		return
	}
	src, err := source.Open(s.Source)
	if err != nil {
		// Missing source files degrade to an empty slot, not a failed
		// export; the reference is still in the board file.
		return
	}
	defer src.Close()
	img, err := src.RenderPage(s.Page, r.ImportDPI)
	if err != nil {
		return
	}
	target := image.Rect(int(ox), int(oy), int(ox+s.W*s.ScaleX), int(oy+s.H*s.ScaleY))
	xdraw.ApproxBiLinear.Scale(dst, target, img, img.Bounds(), xdraw.Over, nil)
}

// WritePNG encodes a still to path.
func WritePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// WriteJPEG encodes a still to path with the given quality (1-100).
func WriteJPEG(img image.Image, path string, quality int) error {
	if quality <= 0 {
		quality = 85
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
}

// Thumbnail scales the image down to maxW, preserving aspect ratio, with
// CatmullRom resampling.
func Thumbnail(img image.Image, maxW int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxW {
		return img
	}
	h := b.Dy() * maxW / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxW, h))
	xdraw.CatmullRom.Scale(dst, dst.Rect, img, b, xdraw.Src, nil)
	return dst
}

// WriteFrames rasterizes a sequence of snapshots to numbered PNGs in dir
// (frame_000001.png, ...), fanning rendering out over workers. Entries
// are pure data, so workers never touch shared scene state.
func (r *Renderer) WriteFrames(entries []*scene.Entry, dir string, workers int) error {
	if workers <= 0 {
		workers = 1
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			img := r.Render(e)
			defer r.Release(img)
			path := filepath.Join(dir, fmt.Sprintf("frame_%06d.png", i+1))
			if err := WritePNG(img, path); err != nil {
				return fmt.Errorf("frame %d: %w", i+1, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// WriteShareQR writes a QR code PNG carrying the given payload, typically
// a link to a published board file.
func WriteShareQR(payload, path string, size int) error {
	if size <= 0 {
		size = 256
	}
	return qrcode.WriteFile(payload, qrcode.Medium, size, path)
}
