package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NodeState is the serialized form of one node. W/H double as DX/DY for
// lines and as radius*2 for ellipses.
type NodeState struct {
	Kind     string  `yaml:"kind"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation,omitempty"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Opacity  float64 `yaml:"opacity"`
	OffsetX  float64 `yaml:"offset_x,omitempty"`
	OffsetY  float64 `yaml:"offset_y,omitempty"`
	Fill     string  `yaml:"fill,omitempty"`
	Stroke   *Stroke `yaml:"stroke,omitempty"`
	W        float64 `yaml:"w,omitempty"`
	H        float64 `yaml:"h,omitempty"`
	Points   []Point `yaml:"points,omitempty"`
	Text     string  `yaml:"text,omitempty"`
	TextSize float64 `yaml:"text_size,omitempty"`
	Source   string  `yaml:"source,omitempty"`
	Page     int     `yaml:"page,omitempty"`
}

// Entry is one serialized scene graph, ordered back to front. This is the
// shape shared by history snapshots and whole-board files; history wraps it
// with an identity correlation table, board files do not.
type Entry struct {
	Version string      `yaml:"version"`
	Nodes   []NodeState `yaml:"nodes"`
}

const entryVersion = "1.0"

// Serialize captures the graph in z-order. The index of each NodeState in
// the entry is the structural key used for identity correlation; it is
// valid only against the node list produced by reconstructing this same
// entry.
func (g *Graph) Serialize() *Entry {
	e := &Entry{Version: entryVersion, Nodes: make([]NodeState, 0, len(g.nodes))}
	for _, n := range g.nodes {
		e.Nodes = append(e.Nodes, n.State())
	}
	return e
}

// Reconstruct builds fresh nodes from the entry, preserving z-order. The
// returned slice is index-aligned with e.Nodes. Nodes are not attached to
// any graph.
func Reconstruct(e *Entry) ([]Node, error) {
	nodes := make([]Node, 0, len(e.Nodes))
	for i, s := range e.Nodes {
		n, err := FromState(s)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// WriteBoard writes an entry to a YAML board file.
func WriteBoard(e *Entry, path string) error {
	data, err := yaml.Marshal(e)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadBoard reads an entry from a YAML board file.
func ReadBoard(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var e Entry
	if err := yaml.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
