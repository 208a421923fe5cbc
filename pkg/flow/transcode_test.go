package flow_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ravi-parthasarathy/flowkit/pkg/flow"
	"github.com/ravi-parthasarathy/flowkit/pkg/graph"
)

func diffConfigs(a, b *graph.Config) string {
	return cmp.Diff(a, b, cmpopts.EquateEmpty())
}

// ─── Forward direction ────────────────────────────────────────────────────────

func TestConfigToFlow_NilConfig(t *testing.T) {
	for _, cfg := range []*graph.Config{
		nil,
		{}, // missing both lists
		{Nodes: []graph.Node{{ID: "n1"}}}, // missing edges
	} {
		g := flow.ConfigToFlow(cfg)
		nodes := g.Nodes()
		if len(nodes) != 2 {
			t.Fatalf("nodes = %d, want only the two markers", len(nodes))
		}
		if nodes[0].ID != flow.StartNodeID || nodes[1].ID != flow.EndNodeID {
			t.Errorf("marker ids = %q, %q", nodes[0].ID, nodes[1].ID)
		}
		if len(g.Edges()) != 0 {
			t.Errorf("edges = %d, want 0", len(g.Edges()))
		}
	}
}

func TestConfigToFlow_MarkersFirstAndProtected(t *testing.T) {
	g := flow.ConfigToFlow(graph.TemplateLinear())
	nodes := g.Nodes()
	if len(nodes) != 4 {
		t.Fatalf("nodes = %d, want 4", len(nodes))
	}
	if nodes[0].ID != flow.StartNodeID {
		t.Errorf("first node = %q, want start marker", nodes[0].ID)
	}
	if nodes[len(nodes)-1].ID != flow.EndNodeID {
		t.Errorf("last node = %q, want end marker", nodes[len(nodes)-1].ID)
	}
	if nodes[0].Deletable || nodes[len(nodes)-1].Deletable {
		t.Error("markers must not be deletable")
	}
	if !nodes[1].Deletable {
		t.Error("user nodes must be deletable")
	}
}

func TestConfigToFlow_FallbackPositions(t *testing.T) {
	cfg := &graph.Config{
		Nodes: []graph.Node{
			{ID: "a", Type: graph.NodeTypeTransform, Config: &graph.TransformConfig{}},
			{ID: "b", Type: graph.NodeTypeTransform, Config: &graph.TransformConfig{},
				Position: &graph.Position{X: 42, Y: 7}},
			{ID: "c", Type: graph.NodeTypeTransform, Config: &graph.TransformConfig{}},
		},
		Edges: []graph.Edge{},
	}
	g := flow.ConfigToFlow(cfg)
	users := g.UserNodes()

	if users[1].Position.X != 42 || users[1].Position.Y != 7 {
		t.Errorf("stored position not honored: %+v", users[1].Position)
	}
	if users[0].Position == users[2].Position {
		t.Error("fallback positions must not stack nodes on top of one another")
	}
	if users[0].Position.Y != users[2].Position.Y {
		t.Error("fallback positions share a fixed vertical coordinate")
	}
	if users[2].Position.X <= users[0].Position.X {
		t.Error("fallback offset must increase in list order")
	}
}

func TestConfigToFlow_EdgeEndpointRemapping(t *testing.T) {
	cfg := &graph.Config{
		Nodes: []graph.Node{
			{ID: "n1", Type: graph.NodeTypeLLM, Config: &graph.LLMConfig{}},
		},
		Edges: []graph.Edge{
			{FromNode: graph.StartMarker, ToNode: "n1"},
			{FromNode: "n1", ToNode: graph.EndMarker},
		},
	}
	g := flow.ConfigToFlow(cfg)
	edges := g.Edges()
	if edges[0].Source != flow.StartNodeID || edges[0].Target != "n1" {
		t.Errorf("edge 0 = %s -> %s", edges[0].Source, edges[0].Target)
	}
	if edges[1].Source != "n1" || edges[1].Target != flow.EndNodeID {
		t.Errorf("edge 1 = %s -> %s", edges[1].Source, edges[1].Target)
	}

	// And back again.
	back := flow.FlowToConfig(g, cfg)
	if back.Edges[0].FromNode != graph.StartMarker {
		t.Errorf("from_node = %q, want START", back.Edges[0].FromNode)
	}
	if back.Edges[1].ToNode != graph.EndMarker {
		t.Errorf("to_node = %q, want END", back.Edges[1].ToNode)
	}
}

func TestConfigToFlow_ConditionalRenderingHints(t *testing.T) {
	g := flow.ConfigToFlow(graph.TemplateRouter())
	edges := g.Edges()

	var conditional, plain int
	for _, e := range edges {
		switch e.Kind {
		case flow.EdgeKindConditional:
			conditional++
			if !e.Animated {
				t.Error("conditional edges should be animated")
			}
		case flow.EdgeKindDefault:
			plain++
			if e.Animated {
				t.Error("plain edges should not be animated")
			}
		}
	}
	if conditional != 1 || plain != 3 {
		t.Errorf("conditional/plain = %d/%d, want 1/3", conditional, plain)
	}
}

// ─── Round trip ───────────────────────────────────────────────────────────────

func TestRoundTrip_Identity(t *testing.T) {
	for name, cfg := range map[string]*graph.Config{
		"linear": graph.TemplateLinear(),
		"router": graph.TemplateRouter(),
	} {
		t.Run(name, func(t *testing.T) {
			got := flow.FlowToConfig(flow.ConfigToFlow(cfg), cfg)
			if diff := diffConfigs(cfg, got); diff != "" {
				t.Errorf("round trip changed the config (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTrip_PreservesPassThroughFields(t *testing.T) {
	enable := false
	cfg := graph.TemplateLinear()
	cfg.Version = "2.3"
	cfg.PromptTemplates = map[string]string{"greet": "hi {{ name }}"}
	cfg.Metadata = map[string]any{"name": "My Flow", "owner": "qa"}
	cfg.MaxExecutionTimeSeconds = 900
	cfg.EnableCheckpoints = &enable
	cfg.CustomStateFields = map[string]graph.StateField{
		"score": {Type: "float", Default: 0.0, Reducer: graph.ReducerAdd},
	}
	cfg.ToolConfig = &graph.ToolConfig{ToolFilter: graph.ExactTools("web_search")}
	cfg.ExitPoints = []string{"act"}

	got := flow.FlowToConfig(flow.ConfigToFlow(cfg), cfg)
	if diff := diffConfigs(cfg, got); diff != "" {
		t.Errorf("pass-through fields changed (-want +got):\n%s", diff)
	}
}

func TestRoundTrip_NodeWithoutStoredPosition(t *testing.T) {
	cfg := &graph.Config{
		Version:    "1.0",
		EntryPoint: "n1",
		Nodes: []graph.Node{
			{ID: "n1", Type: graph.NodeTypeHuman, Config: &graph.HumanConfig{Prompt: "approve?"}},
		},
		Edges: []graph.Edge{
			{FromNode: graph.StartMarker, ToNode: "n1"},
		},
	}
	got := flow.FlowToConfig(flow.ConfigToFlow(cfg), cfg)
	if diff := diffConfigs(cfg, got); diff != "" {
		t.Errorf("round trip changed the config (-want +got):\n%s", diff)
	}
	if got.Nodes[0].Position != nil {
		t.Error("a fallback position must not be written back as a stored position")
	}
}

// ─── Reverse-direction specifics ──────────────────────────────────────────────

func TestFlowToConfig_EntryPointFromStartEdge(t *testing.T) {
	cfg := graph.TemplateRouter()
	got := flow.FlowToConfig(flow.ConfigToFlow(cfg), cfg)
	if got.EntryPoint != "agent" {
		t.Errorf("entry_point = %q, want %q", got.EntryPoint, "agent")
	}
}

func TestFlowToConfig_EntryPointFallsBackToFirstNode(t *testing.T) {
	cfg := &graph.Config{
		Nodes: []graph.Node{
			{ID: "n1", Type: graph.NodeTypeTransform, Config: &graph.TransformConfig{}},
		},
		Edges: []graph.Edge{},
	}
	got := flow.FlowToConfig(flow.ConfigToFlow(cfg), cfg)
	if got.EntryPoint != "n1" {
		t.Errorf("entry_point = %q, want %q", got.EntryPoint, "n1")
	}
}

func TestFlowToConfig_DefaultsForBrandNewGraph(t *testing.T) {
	got := flow.FlowToConfig(flow.ConfigToFlow(nil), nil)

	if got.Version != "1.0" {
		t.Errorf("version = %q, want 1.0", got.Version)
	}
	if len(got.ExitPoints) != 1 || got.ExitPoints[0] != graph.EndMarker {
		t.Errorf("exit_points = %v, want [END]", got.ExitPoints)
	}
	if got.MaxExecutionTimeSeconds != 300 {
		t.Errorf("max_execution_time_seconds = %d, want 300", got.MaxExecutionTimeSeconds)
	}
	if got.EnableCheckpoints == nil || !*got.EnableCheckpoints {
		t.Error("enable_checkpoints should default to true")
	}
	if got.StateSchema == nil {
		t.Error("state schema should default to empty, not absent")
	}
	if got.EntryPoint != "" {
		t.Errorf("entry_point = %q, want empty for a graph with no nodes", got.EntryPoint)
	}
	if len(got.Nodes) != 0 || len(got.Edges) != 0 {
		t.Errorf("nodes/edges = %d/%d, want 0/0", len(got.Nodes), len(got.Edges))
	}
}

func TestFlowToConfig_LabelRenameFlowsIntoName(t *testing.T) {
	cfg := graph.TemplateLinear()
	g := flow.ConfigToFlow(cfg)
	g.Node("generate").Label = "Drafting step"

	got := flow.FlowToConfig(g, cfg)
	if got.Nodes[0].Name != "Drafting step" {
		t.Errorf("name = %q, want the edited label", got.Nodes[0].Name)
	}
}
