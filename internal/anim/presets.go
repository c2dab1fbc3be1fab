package anim

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/ivlev/whiteboard/internal/scene"
)

// Preset names accepted by NewPreset.
const (
	Pulse   = "pulse"
	Spin    = "spin"
	Flash   = "flash"
	Shake   = "shake"
	Breathe = "breathe"
)

// Preset computes a node's animated attributes from a captured baseline
// and the elapsed time since the animation started. Apply must be a pure
// function of (baseline, elapsed) apart from the per-tick randomness of
// jitter presets; it never reads the node's current attributes.
type Preset interface {
	Name() string
	// Applicable reports whether the preset can run on the node at all.
	// Declining is a normal outcome, not an error.
	Applicable(n scene.Node) bool
	Apply(n scene.Node, b Baseline, elapsed float64)
}

// NewPreset creates a fresh preset instance. Instances are per-start:
// jitter presets seed their own randomness here.
func NewPreset(name string) (Preset, error) {
	switch name {
	case Pulse:
		return &pulsePreset{period: 1.0, amount: 0.15}, nil
	case Spin:
		return &spinPreset{degPerSec: 180}, nil
	case Flash:
		return &flashPreset{period: 0.6, accent: "#ffd54f"}, nil
	case Shake:
		return &shakePreset{
			amplitude: 3,
			rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		}, nil
	case Breathe:
		return &breathePreset{period: 2.0, floor: 0.35}, nil
	default:
		return nil, fmt.Errorf("unknown animation preset: %q", name)
	}
}

// pulsePreset scales the node up and back around its baseline size.
type pulsePreset struct {
	period float64
	amount float64
}

func (p *pulsePreset) Name() string { return Pulse }
func (p *pulsePreset) Applicable(scene.Node) bool { return true }

func (p *pulsePreset) Apply(n scene.Node, b Baseline, elapsed float64) {
	t := easeInOutCubic(triangle(elapsed / p.period))
	s := lerp(1, 1+p.amount, t)
	n.SetScale(b.ScaleX*s, b.ScaleY*s)
}

// spinPreset rotates the node at a constant rate around its pivot.
type spinPreset struct {
	degPerSec float64
}

func (p *spinPreset) Name() string { return Spin }
func (p *spinPreset) Applicable(scene.Node) bool { return true }

func (p *spinPreset) Apply(n scene.Node, b Baseline, elapsed float64) {
	n.SetRotation(math.Mod(b.Rotation+p.degPerSec*elapsed, 360))
}

// flashPreset blinks the fill between the baseline color and an accent.
// Requires the fill capability.
type flashPreset struct {
	period float64
	accent string
}

func (p *flashPreset) Name() string { return Flash }

func (p *flashPreset) Applicable(n scene.Node) bool {
	_, ok := n.(scene.Filler)
	return ok
}

func (p *flashPreset) Apply(n scene.Node, b Baseline, elapsed float64) {
	f, ok := n.(scene.Filler)
	if !ok {
		return
	}
	phase := math.Mod(elapsed, p.period)
	if phase < p.period/2 {
		f.SetFill(p.accent)
	} else {
		f.SetFill(b.Fill)
	}
}

// shakePreset jitters the node position around its baseline each tick.
type shakePreset struct {
	amplitude float64
	rng       *rand.Rand
}

func (p *shakePreset) Name() string { return Shake }
func (p *shakePreset) Applicable(scene.Node) bool { return true }

func (p *shakePreset) Apply(n scene.Node, b Baseline, elapsed float64) {
	dx := (p.rng.Float64()*2 - 1) * p.amplitude
	dy := (p.rng.Float64()*2 - 1) * p.amplitude
	n.SetPosition(b.X+dx, b.Y+dy)
}

// breathePreset fades opacity down to a floor and back.
type breathePreset struct {
	period float64
	floor  float64
}

func (p *breathePreset) Name() string { return Breathe }
func (p *breathePreset) Applicable(scene.Node) bool { return true }

func (p *breathePreset) Apply(n scene.Node, b Baseline, elapsed float64) {
	t := easeInOutCubic(triangle(elapsed / p.period))
	n.SetOpacity(lerp(b.Opacity, b.Opacity*p.floor, t))
}
