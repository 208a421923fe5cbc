package flow

import (
	"fmt"

	"github.com/ravi-parthasarathy/flowkit/pkg/graph"
)

// Fixed layout constants for the two system nodes and for nodes loaded
// without a stored position.
var (
	defaultStartPos = graph.Position{X: 100, Y: 100}
	defaultEndPos   = graph.Position{X: 700, Y: 100}
)

const (
	fallbackBaseX = 250.0
	fallbackStepX = 180.0
	fallbackY     = 100.0
)

// ConfigToFlow converts a canonical config into the editable graph. A
// nil config, or one missing its node or edge list, yields the minimal
// two-marker graph so editing is always possible. Nodes without a stored
// position get a deterministic fallback: a running horizontal offset in
// list order at a fixed vertical coordinate.
func ConfigToFlow(cfg *graph.Config) *Graph {
	g := NewGraph(defaultStartPos, defaultEndPos)
	if cfg == nil || cfg.Nodes == nil || cfg.Edges == nil {
		return g
	}

	offset := 0
	for _, n := range cfg.Nodes {
		label := n.Name
		if label == "" {
			label = n.ID
		}
		var pos graph.Position
		auto := n.Position == nil
		if auto {
			pos = graph.Position{X: fallbackBaseX + float64(offset)*fallbackStepX, Y: fallbackY}
			offset++
		} else {
			pos = *n.Position
		}
		g.addUserNode(Node{
			ID:         n.ID,
			Kind:       string(n.Type),
			Label:      label,
			Position:   pos,
			Data:       n.Clone(),
			autoPlaced: auto,
		})
	}

	for i, e := range cfg.Edges {
		source := e.FromNode
		if source == graph.StartMarker {
			source = StartNodeID
		}
		target := e.ToNode
		if target == graph.EndMarker {
			target = EndNodeID
		}
		kind := EdgeKindDefault
		if e.Conditional() {
			kind = EdgeKindConditional
		}
		g.addEdge(Edge{
			ID:       fmt.Sprintf("e%d-%s-%s", i, source, target),
			Source:   source,
			Target:   target,
			Kind:     kind,
			Animated: e.Conditional(),
			Label:    e.Label,
			Data:     e.Clone(),
		})
	}

	return g
}

// FlowToConfig converts the editable graph back into a canonical config.
// prior is the config the session was loaded from; every top-level field
// the editor does not model is copied from it verbatim, or defaulted for
// a brand-new graph with no prior config.
func FlowToConfig(g *Graph, prior *graph.Config) *graph.Config {
	cfg := &graph.Config{}
	if prior != nil {
		cfg.Version = prior.Version
		cfg.ExitPoints = prior.ExitPoints
		cfg.StateSchema = prior.StateSchema
		cfg.CustomStateFields = prior.CustomStateFields
		cfg.ToolConfig = prior.ToolConfig
		cfg.PromptTemplates = prior.PromptTemplates
		cfg.Metadata = prior.Metadata
		cfg.MaxExecutionTimeSeconds = prior.MaxExecutionTimeSeconds
		cfg.EnableCheckpoints = prior.EnableCheckpoints
	} else {
		enable := true
		cfg.Version = graph.DefaultVersion
		cfg.ExitPoints = []string{graph.EndMarker}
		cfg.StateSchema = map[string]graph.StateField{}
		cfg.MaxExecutionTimeSeconds = graph.DefaultMaxExecutionTime
		cfg.EnableCheckpoints = &enable
	}

	users := g.UserNodes()
	cfg.Nodes = make([]graph.Node, 0, len(users))
	for _, n := range users {
		cn := n.Data.Clone()
		cn.ID = n.ID
		cn.Type = graph.NodeType(n.Kind)
		// An unnamed node shows its id as the label; writing that back
		// would invent a name the config never had.
		if !(cn.Name == "" && n.Label == n.ID) {
			cn.Name = n.Label
		}
		if n.autoPlaced {
			cn.Position = nil
		} else {
			pos := n.Position
			cn.Position = &pos
		}
		cfg.Nodes = append(cfg.Nodes, cn)
	}

	cfg.Edges = make([]graph.Edge, 0, len(g.edges))
	for _, e := range g.Edges() {
		ce := e.Data.Clone()
		ce.FromNode = unmapEndpoint(e.Source)
		ce.ToNode = unmapEndpoint(e.Target)
		if e.Label != "" {
			ce.Label = e.Label
		}
		cfg.Edges = append(cfg.Edges, ce)
	}

	cfg.EntryPoint = entryPoint(cfg, prior)
	return cfg
}

// unmapEndpoint translates the synthetic marker ids back to the reserved
// config strings; real node ids pass through.
func unmapEndpoint(id string) string {
	switch id {
	case StartNodeID:
		return graph.StartMarker
	case EndNodeID:
		return graph.EndMarker
	}
	return id
}

// entryPoint recomputes the entry point: the target of the edge leaving
// START, else the prior entry point if it still names a node, else the
// first node in list order. An editor must always produce some entry
// point once at least one node exists.
func entryPoint(cfg *graph.Config, prior *graph.Config) string {
	for _, e := range cfg.Edges {
		if e.FromNode == graph.StartMarker {
			return e.ToNode
		}
	}
	if prior != nil && prior.EntryPoint != "" && cfg.FindNode(prior.EntryPoint) != nil {
		return prior.EntryPoint
	}
	if len(cfg.Nodes) > 0 {
		return cfg.Nodes[0].ID
	}
	return ""
}
