// Package flow holds the editable node/edge representation a visual
// editor manipulates, the transcoder that keeps it synchronized with the
// canonical graph.Config, and the single-writer editing session.
package flow

import "github.com/ravi-parthasarathy/flowkit/pkg/graph"

// Synthetic node ids for the start/end markers. They exist only in the
// editable graph; the canonical config uses the "START"/"END" strings.
const (
	StartNodeID = "__start__"
	EndNodeID   = "__end__"
)

// Node kinds used by the editor for the two synthetic markers.
const (
	startKind = "start"
	endKind   = "end"
)

// EdgeKind tells the renderer how to draw an edge.
type EdgeKind string

const (
	EdgeKindDefault     EdgeKind = "default"
	EdgeKindConditional EdgeKind = "conditional"
)

// Node is one editable node. For user nodes, Data carries the full
// canonical node so that reverse transcoding never drops fields the
// editor did not touch. The two synthetic nodes carry no Data and are
// not deletable.
type Node struct {
	ID        string
	Kind      string // node type, or "start"/"end" for synthetic nodes
	Label     string
	Position  graph.Position
	Deletable bool
	Data      graph.Node

	// autoPlaced marks a node whose position is a transcoder fallback
	// rather than a stored coordinate; reverse transcoding keeps the
	// stored position absent until the user actually moves the node.
	autoPlaced bool
}

// Edge is one editable edge. Data carries the canonical edge config
// unchanged; Kind and Animated are rendering hints derived from whether
// a condition is present.
type Edge struct {
	ID       string
	Source   string
	Target   string
	Kind     EdgeKind
	Animated bool
	Label    string
	Data     graph.Edge
}

// Graph is the editable graph: exactly two system nodes (start and end
// markers) plus the user nodes and edges. The split keeps marker
// protection in one place instead of id checks scattered through every
// mutation.
type Graph struct {
	start Node
	end   Node
	users []Node
	edges []Edge
}

// NewGraph returns an empty editable graph containing only the two
// system nodes at the given positions.
func NewGraph(startPos, endPos graph.Position) *Graph {
	return &Graph{
		start: Node{ID: StartNodeID, Kind: startKind, Label: "Start", Position: startPos},
		end:   Node{ID: EndNodeID, Kind: endKind, Label: "End", Position: endPos},
	}
}

// Nodes returns all nodes for rendering: start marker, user nodes in
// insertion order, end marker.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.users)+2)
	out = append(out, g.start)
	out = append(out, g.users...)
	out = append(out, g.end)
	return out
}

// UserNodes returns only the real workflow nodes, in insertion order.
func (g *Graph) UserNodes() []Node {
	out := make([]Node, len(g.users))
	copy(out, g.users)
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Node returns the node with the given id (system or user), or nil.
func (g *Graph) Node(id string) *Node {
	switch id {
	case StartNodeID:
		return &g.start
	case EndNodeID:
		return &g.end
	}
	for i := range g.users {
		if g.users[i].ID == id {
			return &g.users[i]
		}
	}
	return nil
}

// Edge returns the edge with the given synthetic id, or nil.
func (g *Graph) Edge(id string) *Edge {
	for i := range g.edges {
		if g.edges[i].ID == id {
			return &g.edges[i]
		}
	}
	return nil
}

// addUserNode appends a user node. Caller guarantees a unique id.
func (g *Graph) addUserNode(n Node) {
	n.Deletable = true
	g.users = append(g.users, n)
}

// removeUserNode deletes a user node and every edge touching it.
// Removing a system node is a no-op.
func (g *Graph) removeUserNode(id string) bool {
	if id == StartNodeID || id == EndNodeID {
		return false
	}
	idx := -1
	for i := range g.users {
		if g.users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	g.users = append(g.users[:idx], g.users[idx+1:]...)

	kept := g.edges[:0]
	for _, e := range g.edges {
		if e.Source != id && e.Target != id {
			kept = append(kept, e)
		}
	}
	g.edges = kept
	return true
}

// addEdge appends an edge.
func (g *Graph) addEdge(e Edge) {
	g.edges = append(g.edges, e)
}

// removeEdge deletes the edge with the given synthetic id.
func (g *Graph) removeEdge(id string) bool {
	for i := range g.edges {
		if g.edges[i].ID == id {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			return true
		}
	}
	return false
}
