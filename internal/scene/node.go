package scene

// Handle identifies a live node construction. Handles are assigned by the
// Graph when a node is attached and are not stable across a
// serialize/reconstruct cycle; use the identity registry for stable
// addressing.
type Handle int64

// Stroke describes the outline/shadow channel of a node.
type Stroke struct {
	Color string  `yaml:"color"`
	Width float64 `yaml:"width"`
	Blur  float64 `yaml:"blur,omitempty"`
}

// Node is a drawable object on the board. Geometry is owned by the
// concrete kind; the interface exposes only the bounded attribute set
// that animation and snapshotting operate on.
type Node interface {
	Handle() Handle
	Kind() string

	Position() (x, y float64)
	SetPosition(x, y float64)
	Rotation() float64
	SetRotation(deg float64)
	Scale() (sx, sy float64)
	SetScale(sx, sy float64)
	Opacity() float64
	SetOpacity(o float64)

	// Offset is the rotation/scale pivot, in local coordinates.
	Offset() (ox, oy float64)
	SetOffset(ox, oy float64)

	// Bounds reports the local, untransformed width and height.
	Bounds() (w, h float64)

	State() NodeState

	setHandle(h Handle)
}

// Filler is implemented by kinds that carry a fill color.
type Filler interface {
	Fill() string
	SetFill(color string)
}

// Stroker is implemented by kinds that carry a stroke/shadow descriptor.
type Stroker interface {
	Stroke() Stroke
	SetStroke(s Stroke)
}

// base holds the attribute set common to every kind.
type base struct {
	handle   Handle
	x, y     float64
	rotation float64
	scaleX   float64
	scaleY   float64
	opacity  float64
	offsetX  float64
	offsetY  float64
}

func newBase(x, y float64) base {
	return base{x: x, y: y, scaleX: 1, scaleY: 1, opacity: 1}
}

func (b *base) Handle() Handle { return b.handle }
func (b *base) setHandle(h Handle)         { b.handle = h }
func (b *base) Position() (float64, float64) { return b.x, b.y }
func (b *base) SetPosition(x, y float64)   { b.x, b.y = x, y }
func (b *base) Rotation() float64          { return b.rotation }
func (b *base) SetRotation(deg float64)    { b.rotation = deg }
func (b *base) Scale() (float64, float64) { return b.scaleX, b.scaleY }
func (b *base) SetScale(sx, sy float64)    { b.scaleX, b.scaleY = sx, sy }
func (b *base) Opacity() float64           { return b.opacity }
func (b *base) SetOpacity(o float64)       { b.opacity = o }
func (b *base) Offset() (float64, float64) { return b.offsetX, b.offsetY }
func (b *base) SetOffset(ox, oy float64)   { b.offsetX, b.offsetY = ox, oy }

func (b *base) fillState(s *NodeState) {
	s.X, s.Y = b.x, b.y
	s.Rotation = b.rotation
	s.ScaleX, s.ScaleY = b.scaleX, b.scaleY
	s.Opacity = b.opacity
	s.OffsetX, s.OffsetY = b.offsetX, b.offsetY
}

func (b *base) applyState(s NodeState) {
	b.x, b.y = s.X, s.Y
	b.rotation = s.Rotation
	b.scaleX, b.scaleY = s.ScaleX, s.ScaleY
	b.opacity = s.Opacity
	b.offsetX, b.offsetY = s.OffsetX, s.OffsetY
}
