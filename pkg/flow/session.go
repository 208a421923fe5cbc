package flow

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/ravi-parthasarathy/flowkit/pkg/graph"
)

// Session is a single-writer editing session over one workflow. Every
// mutation is a synchronous transformation of the in-memory editable
// graph; Config() re-runs the reverse transcoder over the current state.
// Callers that observe every change should debounce OnChange themselves.
type Session struct {
	g        *Graph
	prior    *graph.Config
	onChange func(*graph.Config)
}

// NewSession loads a config (possibly nil) into a fresh editing session.
func NewSession(cfg *graph.Config) *Session {
	return &Session{g: ConfigToFlow(cfg), prior: cfg}
}

// OnChange registers a callback invoked synchronously with a fresh
// config snapshot after every mutation.
func (s *Session) OnChange(fn func(*graph.Config)) {
	s.onChange = fn
}

// Graph returns the live editable graph.
func (s *Session) Graph() *Graph { return s.g }

// Config returns a snapshot of the current state as a canonical config.
// The snapshot is not validated; callers decide when to validate.
func (s *Session) Config() *graph.Config {
	return FlowToConfig(s.g, s.prior)
}

// Validate runs the structural validator over the current snapshot.
func (s *Session) Validate() []graph.LintError {
	return graph.Validate(s.Config())
}

func (s *Session) notify() {
	if s.onChange != nil {
		s.onChange(s.Config())
	}
}

// AddNode creates a node of the given type with its default config and
// returns the assigned id. A nil position staggers the node after the
// existing ones.
func (s *Session) AddNode(t graph.NodeType, pos *graph.Position) string {
	id := fmt.Sprintf("%s_%s", t, uuid.NewString()[:8])
	label := graph.MetaFor(t).Label

	var p graph.Position
	if pos != nil {
		p = *pos
	} else {
		p = graph.Position{
			X: fallbackBaseX + float64(len(s.g.users))*fallbackStepX,
			Y: fallbackY,
		}
	}

	stored := p
	s.g.addUserNode(Node{
		ID:       id,
		Kind:     string(t),
		Label:    label,
		Position: p,
		Data: graph.Node{
			ID:       id,
			Name:     label,
			Type:     t,
			Position: &stored,
			Config:   graph.DefaultNodeConfig(t),
		},
	})
	slog.Debug("node added", "id", id, "type", t)
	s.notify()
	return id
}

// UpdateNode shallow-merges a partial update into a node's config. The
// keys "name" and "position" address the node itself (a name update also
// updates the editable label); every other key addresses a field of the
// type-specific config by its wire name. Unknown node ids are ignored.
func (s *Session) UpdateNode(id string, updates map[string]any) error {
	n := s.g.Node(id)
	if n == nil || !n.Deletable {
		return nil
	}

	rest := make(map[string]any, len(updates))
	for k, v := range updates {
		switch k {
		case "name":
			if name, ok := v.(string); ok {
				n.Data.Name = name
				n.Label = name
			}
		case "position":
			if pos, ok := decodePosition(v); ok {
				n.Position = pos
				stored := pos
				n.Data.Position = &stored
				n.autoPlaced = false
			}
		default:
			rest[k] = v
		}
	}

	if len(rest) > 0 && n.Data.Config != nil {
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           n.Data.Config,
		})
		if err != nil {
			return fmt.Errorf("node %q: %w", id, err)
		}
		if err := dec.Decode(rest); err != nil {
			return fmt.Errorf("node %q: merge update: %w", id, err)
		}
	}

	slog.Debug("node updated", "id", id, "keys", len(updates))
	s.notify()
	return nil
}

// MoveNode updates a node's editor position.
func (s *Session) MoveNode(id string, pos graph.Position) {
	n := s.g.Node(id)
	if n == nil || !n.Deletable {
		return
	}
	n.Position = pos
	stored := pos
	n.Data.Position = &stored
	n.autoPlaced = false
	s.notify()
}

// DeleteNode removes a node and every edge touching it. Deleting one of
// the two system nodes is a no-op.
func (s *Session) DeleteNode(id string) {
	if !s.g.removeUserNode(id) {
		return
	}
	slog.Debug("node deleted", "id", id)
	s.notify()
}

// Connect adds an edge between two editable-node ids with no condition
// and priority 0, returning its synthetic id.
func (s *Session) Connect(source, target string) string {
	id := "e_" + uuid.NewString()[:8]
	s.g.addEdge(Edge{
		ID:     id,
		Source: source,
		Target: target,
		Kind:   EdgeKindDefault,
		Data: graph.Edge{
			FromNode: unmapEndpoint(source),
			ToNode:   unmapEndpoint(target),
		},
	})
	slog.Debug("edge connected", "id", id, "source", source, "target", target)
	s.notify()
	return id
}

// Disconnect removes the edge with the given synthetic id.
func (s *Session) Disconnect(edgeID string) {
	if !s.g.removeEdge(edgeID) {
		return
	}
	slog.Debug("edge disconnected", "id", edgeID)
	s.notify()
}

// SetEdgeCondition replaces an edge's condition (nil clears it) and
// updates its rendering hints.
func (s *Session) SetEdgeCondition(edgeID string, cond *graph.EdgeCondition, priority int) {
	e := s.g.Edge(edgeID)
	if e == nil {
		return
	}
	e.Data.Condition = cond
	e.Data.Priority = priority
	if cond != nil {
		e.Kind = EdgeKindConditional
		e.Animated = true
	} else {
		e.Kind = EdgeKindDefault
		e.Animated = false
	}
	s.notify()
}

// SetToolEnabled toggles one capability on a tool node's filter. Nodes
// of other types are ignored.
func (s *Session) SetToolEnabled(nodeID, toolID string, enabled bool) {
	s.updateFilter(nodeID, func(f graph.ToolFilter) graph.ToolFilter {
		return f.SetEnabled(toolID, enabled)
	})
}

// SetToolGroupEnabled toggles a whole capability group on a tool node's
// filter.
func (s *Session) SetToolGroupEnabled(nodeID, group string, enabled bool) {
	s.updateFilter(nodeID, func(f graph.ToolFilter) graph.ToolFilter {
		return f.SetGroupEnabled(group, enabled)
	})
}

func (s *Session) updateFilter(nodeID string, apply func(graph.ToolFilter) graph.ToolFilter) {
	n := s.g.Node(nodeID)
	if n == nil {
		return
	}
	tc, ok := n.Data.Config.(*graph.ToolConfig)
	if !ok {
		return
	}
	tc.ToolFilter = apply(tc.ToolFilter)
	s.notify()
}

func decodePosition(v any) (graph.Position, bool) {
	switch p := v.(type) {
	case graph.Position:
		return p, true
	case *graph.Position:
		if p != nil {
			return *p, true
		}
	case map[string]any:
		x, xok := toNumber(p["x"])
		y, yok := toNumber(p["y"])
		if xok && yok {
			return graph.Position{X: x, Y: y}, true
		}
	}
	return graph.Position{}, false
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
