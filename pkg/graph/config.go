// Package graph defines the canonical, serializable specification of an
// agent workflow: typed nodes, conditional edges, state schema, and the
// capability filter, plus the structural validator over it.
package graph

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NodeType identifies the kind of work a node performs.
type NodeType string

const (
	NodeTypeLLM       NodeType = "llm"
	NodeTypeTool      NodeType = "tool"
	NodeTypeRouter    NodeType = "router"
	NodeTypeSubagent  NodeType = "subagent"
	NodeTypeTransform NodeType = "transform"
	NodeTypeParallel  NodeType = "parallel"
	NodeTypeHuman     NodeType = "human"
	NodeTypeComponent NodeType = "component"
)

// ReservedNodeTypes lists every node type identifier the schema recognizes.
var ReservedNodeTypes = []NodeType{
	NodeTypeLLM,
	NodeTypeTool,
	NodeTypeRouter,
	NodeTypeSubagent,
	NodeTypeTransform,
	NodeTypeParallel,
	NodeTypeHuman,
	NodeTypeComponent,
}

// Reserved endpoint markers used in edge from_node/to_node fields.
const (
	StartMarker = "START"
	EndMarker   = "END"
)

// Reducer names the strategy for combining writes to a state field.
type Reducer string

const (
	ReducerReplace  Reducer = "replace"
	ReducerAppend   Reducer = "append"
	ReducerMerge    Reducer = "merge"
	ReducerAdd      Reducer = "add"
	ReducerMessages Reducer = "messages"
)

// StateField declares one entry of the workflow state schema.
type StateField struct {
	Type    string  `json:"type,omitempty"`
	Default any     `json:"default,omitempty"`
	Reducer Reducer `json:"reducer,omitempty"`
}

// Position is a 2D coordinate assigned by the visual editor.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Config is the canonical, serializable specification of an agent workflow.
// It is a value type: producers build it, editors transform it, the
// execution engine consumes it. Nothing here executes anything.
type Config struct {
	Version                 string                `json:"version,omitempty"`
	Nodes                   []Node                `json:"nodes"`
	Edges                   []Edge                `json:"edges"`
	EntryPoint              string                `json:"entry_point,omitempty"`
	ExitPoints              []string              `json:"exit_points,omitempty"`
	StateSchema             map[string]StateField `json:"state_schema,omitempty"`
	CustomStateFields       map[string]StateField `json:"custom_state_fields,omitempty"`
	ToolConfig              *ToolConfig           `json:"tool_config,omitempty"`
	PromptTemplates         map[string]string     `json:"prompt_templates,omitempty"`
	Metadata                map[string]any        `json:"metadata,omitempty"`
	MaxExecutionTimeSeconds int                   `json:"max_execution_time_seconds,omitempty"`
	EnableCheckpoints       *bool                 `json:"enable_checkpoints,omitempty"`
}

// FindNode returns the node with the given id, or nil.
func (c *Config) FindNode(id string) *Node {
	for i := range c.Nodes {
		if c.Nodes[i].ID == id {
			return &c.Nodes[i]
		}
	}
	return nil
}

// OutgoingEdges returns all edges leaving nodeID, in definition order.
func (c *Config) OutgoingEdges(nodeID string) []Edge {
	var out []Edge
	for _, e := range c.Edges {
		if e.FromNode == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// Legacy reports whether the config uses the pre-1.0 schema, where
// termination is declared through exit_points instead of END edges.
func (c *Config) Legacy() bool {
	return c.Version == "" || strings.HasPrefix(c.Version, "0.")
}

// TerminalNodes returns the ids of nodes that terminate the graph: the
// declared exit_points for legacy configs, otherwise the sources of
// edges targeting END.
func (c *Config) TerminalNodes() []string {
	if c.Legacy() {
		out := make([]string, len(c.ExitPoints))
		copy(out, c.ExitPoints)
		return out
	}
	var out []string
	seen := make(map[string]bool)
	for _, e := range c.Edges {
		if e.ToNode == EndMarker && !seen[e.FromNode] {
			seen[e.FromNode] = true
			out = append(out, e.FromNode)
		}
	}
	return out
}

// NodeConfig is the type-specific configuration payload of a node.
// Exactly one concrete variant exists per node type; a Node carries the
// variant matching its Type, which JSON encoding maps to the matching
// <type>_config wire field.
type NodeConfig interface {
	nodeType() NodeType
}

// LLMConfig configures a model-invocation node.
type LLMConfig struct {
	Model          string   `json:"model,omitempty"`
	PromptTemplate string   `json:"prompt_template,omitempty"`
	SystemPrompt   string   `json:"system_prompt,omitempty"`
	OutputKey      string   `json:"output_key,omitempty"`
	Temperature    *float64 `json:"temperature,omitempty"`
	MaxTokens      int      `json:"max_tokens,omitempty"`
	ToolsEnabled   bool     `json:"tools_enabled,omitempty"`
}

// ToolConfig configures a tool-invocation node. It also appears at the
// Config root as the workflow-wide capability filter.
type ToolConfig struct {
	ToolFilter     ToolFilter `json:"tool_filter"`
	OutputKey      string     `json:"output_key,omitempty"`
	ParallelCalls  bool       `json:"parallel_calls,omitempty"`
	TimeoutSeconds int        `json:"timeout_seconds,omitempty"`
}

// RouterConfig configures a conditional-routing node.
type RouterConfig struct {
	StateKey      string          `json:"state_key,omitempty"`
	Conditions    []EdgeCondition `json:"conditions,omitempty"`
	DefaultTarget string          `json:"default_target,omitempty"`
}

// SubagentConfig configures a delegated-agent node.
type SubagentConfig struct {
	AgentID       string `json:"agent_id,omitempty"`
	InputTemplate string `json:"input_template,omitempty"`
	OutputKey     string `json:"output_key,omitempty"`
}

// ParallelConfig configures a fan-out node.
type ParallelConfig struct {
	BranchNodes []string `json:"branch_nodes,omitempty"`
	WaitAll     bool     `json:"wait_all,omitempty"`
	MergeKey    string   `json:"merge_key,omitempty"`
}

// TransformConfig configures a pure state-transformation node.
type TransformConfig struct {
	Expression string `json:"expression,omitempty"`
	InputKey   string `json:"input_key,omitempty"`
	OutputKey  string `json:"output_key,omitempty"`
}

// HumanConfig configures a wait-for-human node.
type HumanConfig struct {
	Prompt         string   `json:"prompt,omitempty"`
	Choices        []string `json:"choices,omitempty"`
	TimeoutSeconds int      `json:"timeout_seconds,omitempty"`
}

func (*LLMConfig) nodeType() NodeType       { return NodeTypeLLM }
func (*ToolConfig) nodeType() NodeType      { return NodeTypeTool }
func (*RouterConfig) nodeType() NodeType    { return NodeTypeRouter }
func (*SubagentConfig) nodeType() NodeType  { return NodeTypeSubagent }
func (*ParallelConfig) nodeType() NodeType  { return NodeTypeParallel }
func (*TransformConfig) nodeType() NodeType { return NodeTypeTransform }
func (*HumanConfig) nodeType() NodeType     { return NodeTypeHuman }

// configKey maps a node type to its wire field name.
func configKey(t NodeType) string {
	switch t {
	case NodeTypeLLM:
		return "llm_config"
	case NodeTypeTool:
		return "tool_config"
	case NodeTypeRouter:
		return "router_config"
	case NodeTypeSubagent:
		return "subagent_config"
	case NodeTypeParallel:
		return "parallel_config"
	case NodeTypeTransform:
		return "transform_config"
	case NodeTypeHuman:
		return "human_config"
	}
	return ""
}

// Node represents a single vertex in the workflow graph. ID is unique
// within a Config and is the only identifier other structures reference.
type Node struct {
	ID       string
	Name     string
	Type     NodeType
	Position *Position
	Config   NodeConfig
}

// nodeWire is the flat JSON shape of a Node: one optional config field
// per type, of which exactly one is expected to be populated.
type nodeWire struct {
	ID              string           `json:"id"`
	Name            string           `json:"name,omitempty"`
	Type            NodeType         `json:"type"`
	Position        *Position        `json:"position,omitempty"`
	LLMConfig       *LLMConfig       `json:"llm_config,omitempty"`
	ToolConfig      *ToolConfig      `json:"tool_config,omitempty"`
	RouterConfig    *RouterConfig    `json:"router_config,omitempty"`
	SubagentConfig  *SubagentConfig  `json:"subagent_config,omitempty"`
	ParallelConfig  *ParallelConfig  `json:"parallel_config,omitempty"`
	TransformConfig *TransformConfig `json:"transform_config,omitempty"`
	HumanConfig     *HumanConfig     `json:"human_config,omitempty"`
}

// MarshalJSON writes the node with its config under the wire field
// matching its type.
func (n Node) MarshalJSON() ([]byte, error) {
	w := nodeWire{ID: n.ID, Name: n.Name, Type: n.Type, Position: n.Position}
	switch c := n.Config.(type) {
	case nil:
	case *LLMConfig:
		w.LLMConfig = c
	case *ToolConfig:
		w.ToolConfig = c
	case *RouterConfig:
		w.RouterConfig = c
	case *SubagentConfig:
		w.SubagentConfig = c
	case *ParallelConfig:
		w.ParallelConfig = c
	case *TransformConfig:
		w.TransformConfig = c
	case *HumanConfig:
		w.HumanConfig = c
	default:
		return nil, fmt.Errorf("node %q: unknown config variant %T", n.ID, n.Config)
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads the flat wire shape and keeps only the config
// field matching the declared type. A missing matching field leaves
// Config nil; the validator reports it.
func (n *Node) UnmarshalJSON(data []byte) error {
	var w nodeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	n.ID = w.ID
	n.Name = w.Name
	n.Type = w.Type
	n.Position = w.Position
	switch w.Type {
	case NodeTypeLLM:
		if w.LLMConfig != nil {
			n.Config = w.LLMConfig
		}
	case NodeTypeTool:
		if w.ToolConfig != nil {
			n.Config = w.ToolConfig
		}
	case NodeTypeRouter:
		if w.RouterConfig != nil {
			n.Config = w.RouterConfig
		}
	case NodeTypeSubagent:
		if w.SubagentConfig != nil {
			n.Config = w.SubagentConfig
		}
	case NodeTypeParallel:
		if w.ParallelConfig != nil {
			n.Config = w.ParallelConfig
		}
	case NodeTypeTransform:
		if w.TransformConfig != nil {
			n.Config = w.TransformConfig
		}
	case NodeTypeHuman:
		if w.HumanConfig != nil {
			n.Config = w.HumanConfig
		}
	}
	return nil
}

// Clone returns a deep copy of the node, so edits through one copy never
// leak into another.
func (n Node) Clone() Node {
	out := n
	if n.Position != nil {
		pos := *n.Position
		out.Position = &pos
	}
	switch c := n.Config.(type) {
	case nil:
	case *LLMConfig:
		cc := *c
		if c.Temperature != nil {
			t := *c.Temperature
			cc.Temperature = &t
		}
		out.Config = &cc
	case *ToolConfig:
		cc := *c
		out.Config = &cc
	case *RouterConfig:
		cc := *c
		cc.Conditions = append([]EdgeCondition(nil), c.Conditions...)
		out.Config = &cc
	case *SubagentConfig:
		cc := *c
		out.Config = &cc
	case *ParallelConfig:
		cc := *c
		cc.BranchNodes = append([]string(nil), c.BranchNodes...)
		out.Config = &cc
	case *TransformConfig:
		cc := *c
		out.Config = &cc
	case *HumanConfig:
		cc := *c
		cc.Choices = append([]string(nil), c.Choices...)
		out.Config = &cc
	}
	return out
}

// Edge is a directed connection between two nodes. FromNode and ToNode
// are node ids or the reserved markers "START"/"END". Priority breaks
// ties between conditional edges leaving the same node; higher wins.
type Edge struct {
	FromNode  string         `json:"from_node"`
	ToNode    string         `json:"to_node"`
	Condition *EdgeCondition `json:"condition,omitempty"`
	Priority  int            `json:"priority,omitempty"`
	Label     string         `json:"label,omitempty"`
}

// Conditional reports whether traversal of this edge is gated.
func (e Edge) Conditional() bool { return e.Condition != nil }

// Clone returns a deep copy of the edge.
func (e Edge) Clone() Edge {
	out := e
	if e.Condition != nil {
		cond := *e.Condition
		out.Condition = &cond
	}
	return out
}
