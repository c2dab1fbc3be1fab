package scene

import "fmt"

// Kind tags used in serialized snapshots.
const (
	KindRect    = "rect"
	KindEllipse = "ellipse"
	KindLine    = "line"
	KindPath    = "path"
	KindText    = "text"
	KindImage   = "image"
)

// Point is a vertex of a freehand path, relative to the node position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Rect is an axis-aligned rectangle with fill and stroke.
type Rect struct {
	base
	W, H   float64
	fill   string
	stroke Stroke
}

func NewRect(x, y, w, h float64, fill string) *Rect {
	return &Rect{base: newBase(x, y), W: w, H: h, fill: fill}
}

func (r *Rect) Kind() string { return KindRect }
func (r *Rect) Bounds() (float64, float64) { return r.W, r.H }
func (r *Rect) Fill() string { return r.fill }
func (r *Rect) SetFill(c string)              { r.fill = c }
func (r *Rect) Stroke() Stroke { return r.stroke }
func (r *Rect) SetStroke(s Stroke)            { r.stroke = s }

func (r *Rect) State() NodeState {
	s := NodeState{Kind: KindRect, W: r.W, H: r.H, Fill: r.fill}
	if r.stroke != (Stroke{}) {
		st := r.stroke
		s.Stroke = &st
	}
	r.fillState(&s)
	return s
}

// Ellipse is positioned by the top-left of its bounding box, like every
// other kind, with the given radii.
type Ellipse struct {
	base
	RX, RY float64
	fill   string
	stroke Stroke
}

func NewEllipse(x, y, rx, ry float64, fill string) *Ellipse {
	return &Ellipse{base: newBase(x, y), RX: rx, RY: ry, fill: fill}
}

func (e *Ellipse) Kind() string { return KindEllipse }
func (e *Ellipse) Bounds() (float64, float64) { return e.RX * 2, e.RY * 2 }
func (e *Ellipse) Fill() string { return e.fill }
func (e *Ellipse) SetFill(c string)           { e.fill = c }
func (e *Ellipse) Stroke() Stroke { return e.stroke }
func (e *Ellipse) SetStroke(s Stroke)         { e.stroke = s }

func (e *Ellipse) State() NodeState {
	s := NodeState{Kind: KindEllipse, W: e.RX * 2, H: e.RY * 2, Fill: e.fill}
	if e.stroke != (Stroke{}) {
		st := e.stroke
		s.Stroke = &st
	}
	e.fillState(&s)
	return s
}

// Line is a straight segment from the node position to (position + DX, DY).
type Line struct {
	base
	DX, DY float64
	stroke Stroke
}

func NewLine(x, y, dx, dy float64, stroke Stroke) *Line {
	return &Line{base: newBase(x, y), DX: dx, DY: dy, stroke: stroke}
}

func (l *Line) Kind() string { return KindLine }
func (l *Line) Stroke() Stroke { return l.stroke }
func (l *Line) SetStroke(s Stroke) { l.stroke = s }

func (l *Line) Bounds() (float64, float64) {
	w, h := l.DX, l.DY
	if w < 0 {
		w = -w
	}
	if h < 0 {
		h = -h
	}
	return w, h
}

func (l *Line) State() NodeState {
	st := l.stroke
	s := NodeState{Kind: KindLine, W: l.DX, H: l.DY, Stroke: &st}
	l.fillState(&s)
	return s
}

// Path is a freehand stroke: a polyline of points relative to the node
// position.
type Path struct {
	base
	Points []Point
	stroke Stroke
}

func NewPath(x, y float64, points []Point, stroke Stroke) *Path {
	return &Path{base: newBase(x, y), Points: points, stroke: stroke}
}

func (p *Path) Kind() string { return KindPath }
func (p *Path) Stroke() Stroke { return p.stroke }
func (p *Path) SetStroke(s Stroke) { p.stroke = s }

// Bounds spans the extent of the points on both axes, so strokes drawn
// left or above the origin still get a correct pivot.
func (p *Path) Bounds() (float64, float64) {
	if len(p.Points) == 0 {
		return 0, 0
	}
	minX, minY := p.Points[0].X, p.Points[0].Y
	maxX, maxY := minX, minY
	for _, pt := range p.Points[1:] {
		if pt.X < minX {
			minX = pt.X
		}
		if pt.X > maxX {
			maxX = pt.X
		}
		if pt.Y < minY {
			minY = pt.Y
		}
		if pt.Y > maxY {
			maxY = pt.Y
		}
	}
	return maxX - minX, maxY - minY
}

func (p *Path) State() NodeState {
	st := p.stroke
	pts := make([]Point, len(p.Points))
	copy(pts, p.Points)
	s := NodeState{Kind: KindPath, Points: pts, Stroke: &st}
	p.fillState(&s)
	return s
}

// Text is a single-run text label. Width is approximated from the glyph
// count; the preview rasterizer does not shape text.
type Text struct {
	base
	Content string
	Size    float64
	fill    string
}

func NewText(x, y float64, content string, size float64, fill string) *Text {
	if size <= 0 {
		size = 16
	}
	return &Text{base: newBase(x, y), Content: content, Size: size, fill: fill}
}

func (t *Text) Kind() string { return KindText }
func (t *Text) Fill() string { return t.fill }
func (t *Text) SetFill(c string) { t.fill = c }

func (t *Text) Bounds() (float64, float64) {
	return float64(len([]rune(t.Content))) * t.Size * 0.6, t.Size
}

func (t *Text) State() NodeState {
	s := NodeState{Kind: KindText, Text: t.Content, TextSize: t.Size, Fill: t.fill}
	t.fillState(&s)
	return s
}

// Image is an imported raster page (PDF page or picture file). Only the
// source reference is serialized; pixels are re-rendered on demand.
type Image struct {
	base
	W, H   float64
	Source string
	Page   int
}

func NewImage(x, y, w, h float64, source string, page int) *Image {
	return &Image{base: newBase(x, y), W: w, H: h, Source: source, Page: page}
}

func (i *Image) Kind() string { return KindImage }
func (i *Image) Bounds() (float64, float64) { return i.W, i.H }

func (i *Image) State() NodeState {
	s := NodeState{Kind: KindImage, W: i.W, H: i.H, Source: i.Source, Page: i.Page}
	i.fillState(&s)
	return s
}

// FromState reconstructs a node of the tagged kind. The returned node is
// structurally equal to the serialized one but is a distinct construction
// with no handle until attached to a graph.
func FromState(s NodeState) (Node, error) {
	var n Node
	switch s.Kind {
	case KindRect:
		r := NewRect(s.X, s.Y, s.W, s.H, s.Fill)
		if s.Stroke != nil {
			r.stroke = *s.Stroke
		}
		n = r
	case KindEllipse:
		e := NewEllipse(s.X, s.Y, s.W/2, s.H/2, s.Fill)
		if s.Stroke != nil {
			e.stroke = *s.Stroke
		}
		n = e
	case KindLine:
		var st Stroke
		if s.Stroke != nil {
			st = *s.Stroke
		}
		n = NewLine(s.X, s.Y, s.W, s.H, st)
	case KindPath:
		var st Stroke
		if s.Stroke != nil {
			st = *s.Stroke
		}
		pts := make([]Point, len(s.Points))
		copy(pts, s.Points)
		n = NewPath(s.X, s.Y, pts, st)
	case KindText:
		n = NewText(s.X, s.Y, s.Text, s.TextSize, s.Fill)
	case KindImage:
		n = NewImage(s.X, s.Y, s.W, s.H, s.Source, s.Page)
	default:
		return nil, fmt.Errorf("unknown node kind: %q", s.Kind)
	}
	applyCommon(n, s)
	return n, nil
}

func applyCommon(n Node, s NodeState) {
	n.SetPosition(s.X, s.Y)
	n.SetRotation(s.Rotation)
	n.SetScale(s.ScaleX, s.ScaleY)
	n.SetOpacity(s.Opacity)
	n.SetOffset(s.OffsetX, s.OffsetY)
}
