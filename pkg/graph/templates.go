package graph

// Scaffolded configs used by the CLI and by hosts that need a valid
// starting point. Both templates pass Validate.

// TemplateLinear returns a minimal two-step workflow: an LLM call
// followed by a tool call, then END.
func TemplateLinear() *Config {
	enable := true
	return &Config{
		Version:    DefaultVersion,
		EntryPoint: "generate",
		Nodes: []Node{
			{
				ID:   "generate",
				Name: "Generate",
				Type: NodeTypeLLM,
				Config: &LLMConfig{
					PromptTemplate: DefaultPromptTemplate,
					OutputKey:      DefaultOutputKey,
					ToolsEnabled:   true,
				},
			},
			{
				ID:   "act",
				Name: "Act",
				Type: NodeTypeTool,
				Config: &ToolConfig{
					ToolFilter: AllTools(),
					OutputKey:  "tool_result",
				},
			},
		},
		Edges: []Edge{
			{FromNode: StartMarker, ToNode: "generate"},
			{FromNode: "generate", ToNode: "act"},
			{FromNode: "act", ToNode: EndMarker},
		},
		StateSchema: map[string]StateField{
			"messages": {Type: "list", Reducer: ReducerMessages},
			"response": {Type: "string", Reducer: ReducerReplace},
		},
		ExitPoints:              []string{EndMarker},
		MaxExecutionTimeSeconds: DefaultMaxExecutionTime,
		EnableCheckpoints:       &enable,
	}
}

// TemplateRouter returns an agent loop: an LLM node routed back through
// a tool node while it keeps requesting tool calls, END otherwise.
func TemplateRouter() *Config {
	enable := true
	return &Config{
		Version:    DefaultVersion,
		EntryPoint: "agent",
		Nodes: []Node{
			{
				ID:   "agent",
				Name: "Agent",
				Type: NodeTypeLLM,
				Config: &LLMConfig{
					PromptTemplate: DefaultPromptTemplate,
					OutputKey:      DefaultOutputKey,
					ToolsEnabled:   true,
				},
			},
			{
				ID:   "tools",
				Name: "Tools",
				Type: NodeTypeTool,
				Config: &ToolConfig{
					ToolFilter: AllTools(),
					OutputKey:  "tool_result",
				},
			},
		},
		Edges: []Edge{
			{FromNode: StartMarker, ToNode: "agent"},
			{
				FromNode:  "agent",
				ToNode:    "tools",
				Condition: &EdgeCondition{Type: CondHasToolCalls},
				Priority:  1,
			},
			{FromNode: "agent", ToNode: EndMarker},
			{FromNode: "tools", ToNode: "agent"},
		},
		StateSchema: map[string]StateField{
			"messages":   {Type: "list", Reducer: ReducerMessages},
			"tool_calls": {Type: "list", Reducer: ReducerReplace},
			"response":   {Type: "string", Reducer: ReducerReplace},
		},
		ExitPoints:              []string{EndMarker},
		MaxExecutionTimeSeconds: DefaultMaxExecutionTime,
		EnableCheckpoints:       &enable,
	}
}
