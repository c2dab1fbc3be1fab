package export

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/whiteboard/internal/scene"
)

// parseHex decodes #rgb and #rrggbb colors. Unknown strings come back as
// opaque black, which keeps a bad color visible instead of invisible.
func parseHex(s string) color.NRGBA {
	c := color.NRGBA{A: 0xff}
	hex := func(b byte) uint8 {
		switch {
		case b >= '0' && b <= '9':
			return b - '0'
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10
		}
		return 0
	}
	switch len(s) {
	case 4: // #rgb
		c.R = hex(s[1]) * 17
		c.G = hex(s[2]) * 17
		c.B = hex(s[3]) * 17
	case 7: // #rrggbb
		c.R = hex(s[1])<<4 | hex(s[2])
		c.G = hex(s[3])<<4 | hex(s[4])
		c.B = hex(s[5])<<4 | hex(s[6])
	}
	return c
}

func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(float64(c.A) * opacity)
	return c
}

// blend paints src over the pixel at (x, y) honoring src alpha.
func blend(dst *image.RGBA, x, y int, src color.NRGBA) {
	if !(image.Point{x, y}).In(dst.Rect) {
		return
	}
	if src.A == 0xff {
		dst.SetRGBA(x, y, color.RGBA{src.R, src.G, src.B, 0xff})
		return
	}
	if src.A == 0 {
		return
	}
	old := dst.RGBAAt(x, y)
	a := uint32(src.A)
	inv := 255 - a
	dst.SetRGBA(x, y, color.RGBA{
		R: uint8((uint32(src.R)*a + uint32(old.R)*inv) / 255),
		G: uint8((uint32(src.G)*a + uint32(old.G)*inv) / 255),
		B: uint8((uint32(src.B)*a + uint32(old.B)*inv) / 255),
		A: 0xff,
	})
}

func fillRect(dst *image.RGBA, x0, y0, x1, y1 float64, c color.NRGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := int(y0); y < int(y1); y++ {
		for x := int(x0); x < int(x1); x++ {
			blend(dst, x, y, c)
		}
	}
}

func fillEllipse(dst *image.RGBA, cx, cy, rx, ry float64, c color.NRGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	for y := int(cy - ry); y <= int(cy+ry); y++ {
		for x := int(cx - rx); x <= int(cx+rx); x++ {
			dx := (float64(x) - cx) / rx
			dy := (float64(y) - cy) / ry
			if dx*dx+dy*dy <= 1 {
				blend(dst, x, y, c)
			}
		}
	}
}

// drawSegment draws a stroked line by stamping square caps along it.
func drawSegment(dst *image.RGBA, x0, y0, x1, y1, width float64, c color.NRGBA) {
	if width < 1 {
		width = 1
	}
	steps := int(math.Hypot(x1-x0, y1-y0)) + 1
	half := width / 2
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		px := x0 + (x1-x0)*t
		py := y0 + (y1-y0)*t
		fillRect(dst, px-half, py-half, px+half, py+half, c)
	}
}

func drawLabel(dst *image.RGBA, x, y float64, text string, c color.NRGBA) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(x), int(y)+basicfont.Face7x13.Ascent),
	}
	d.DrawString(text)
}

// drawNode rasterizes one serialized node. The preview renderer applies
// position, offset, scale and opacity; rotation is not rasterized.
func (r *Renderer) drawNode(dst *image.RGBA, s scene.NodeState) {
	ox := s.X - s.OffsetX*s.ScaleX
	oy := s.Y - s.OffsetY*s.ScaleY

	switch s.Kind {
	case scene.KindRect:
		fill := withOpacity(parseHex(s.Fill), s.Opacity)
		fillRect(dst, ox, oy, ox+s.W*s.ScaleX, oy+s.H*s.ScaleY, fill)
		if s.Stroke != nil && s.Stroke.Width > 0 {
			sc := withOpacity(parseHex(s.Stroke.Color), s.Opacity)
			w := s.Stroke.Width
			x1, y1 := ox+s.W*s.ScaleX, oy+s.H*s.ScaleY
			drawSegment(dst, ox, oy, x1, oy, w, sc)
			drawSegment(dst, x1, oy, x1, y1, w, sc)
			drawSegment(dst, x1, y1, ox, y1, w, sc)
			drawSegment(dst, ox, y1, ox, oy, w, sc)
		}
	case scene.KindEllipse:
		fill := withOpacity(parseHex(s.Fill), s.Opacity)
		cx := ox + s.W/2*s.ScaleX
		cy := oy + s.H/2*s.ScaleY
		fillEllipse(dst, cx, cy, s.W/2*s.ScaleX, s.H/2*s.ScaleY, fill)
	case scene.KindLine:
		if s.Stroke != nil {
			sc := withOpacity(parseHex(s.Stroke.Color), s.Opacity)
			drawSegment(dst, ox, oy, ox+s.W*s.ScaleX, oy+s.H*s.ScaleY, s.Stroke.Width, sc)
		}
	case scene.KindPath:
		if s.Stroke != nil {
			sc := withOpacity(parseHex(s.Stroke.Color), s.Opacity)
			for i := 1; i < len(s.Points); i++ {
				p0, p1 := s.Points[i-1], s.Points[i]
				drawSegment(dst,
					ox+p0.X*s.ScaleX, oy+p0.Y*s.ScaleY,
					ox+p1.X*s.ScaleX, oy+p1.Y*s.ScaleY,
					s.Stroke.Width, sc)
			}
		}
	case scene.KindText:
		drawLabel(dst, ox, oy, s.Text, withOpacity(parseHex(s.Fill), s.Opacity))
	case scene.KindImage:
		r.drawImageNode(dst, s, ox, oy)
	}
}
