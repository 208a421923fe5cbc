package graph

// Defaults applied to a freshly created LLM node.
const (
	DefaultPromptTemplate   = "{{ state.messages }}"
	DefaultOutputKey        = "response"
	DefaultVersion          = "1.0"
	DefaultMaxExecutionTime = 300
)

// DefaultNodeConfig returns the config variant a newly created node of
// the given type starts with. Types without a config variant (component,
// unrecognized) return nil.
func DefaultNodeConfig(t NodeType) NodeConfig {
	switch t {
	case NodeTypeLLM:
		return &LLMConfig{
			PromptTemplate: DefaultPromptTemplate,
			OutputKey:      DefaultOutputKey,
			ToolsEnabled:   true,
		}
	case NodeTypeTool:
		return &ToolConfig{ToolFilter: AllTools(), OutputKey: "tool_result"}
	case NodeTypeRouter:
		return &RouterConfig{}
	case NodeTypeSubagent:
		return &SubagentConfig{OutputKey: DefaultOutputKey}
	case NodeTypeParallel:
		return &ParallelConfig{WaitAll: true}
	case NodeTypeTransform:
		return &TransformConfig{OutputKey: DefaultOutputKey}
	case NodeTypeHuman:
		return &HumanConfig{}
	}
	return nil
}
