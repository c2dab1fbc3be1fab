package scene

// Graph is the scene graph: a single ordered list of nodes. Slice order is
// z-order, back to front. Handles are assigned on attach and never reused
// within a process.
type Graph struct {
	nodes      []Node
	nextHandle Handle
}

func NewGraph() *Graph {
	return &Graph{}
}

// Add attaches a node at the top of the z-order and assigns its handle.
func (g *Graph) Add(n Node) Handle {
	g.nextHandle++
	n.setHandle(g.nextHandle)
	g.nodes = append(g.nodes, n)
	return g.nextHandle
}

// Remove detaches the node. Reports whether it was attached.
func (g *Graph) Remove(n Node) bool {
	for i, cur := range g.nodes {
		if cur == n {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
			return true
		}
	}
	return false
}

// Clear detaches every node.
func (g *Graph) Clear() {
	g.nodes = nil
}

// Len reports the number of attached nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns the nodes in z-order, back to front. The slice is a copy;
// the nodes are live.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Contains reports whether the node is currently attached.
func (g *Graph) Contains(n Node) bool {
	for _, cur := range g.nodes {
		if cur == n {
			return true
		}
	}
	return false
}

// MoveToTop raises the node to the front of the z-order.
func (g *Graph) MoveToTop(n Node) {
	if g.Remove(n) {
		g.nodes = append(g.nodes, n)
	}
}

// MoveToBottom lowers the node to the back of the z-order.
func (g *Graph) MoveToBottom(n Node) {
	if g.Remove(n) {
		g.nodes = append([]Node{n}, g.nodes...)
	}
}
