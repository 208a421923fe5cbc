package graph

// TypeMeta is the display metadata needed to render a node generically.
type TypeMeta struct {
	Label       string
	Description string
	Color       string
	Icon        string
}

// typeMeta is a closed table, one entry per node type. Unrecognized
// types fall back to defaultMeta so the editor can always render a node.
var typeMeta = map[NodeType]TypeMeta{
	NodeTypeLLM: {
		Label:       "LLM",
		Description: "Invoke a language model with a prompt template",
		Color:       "#8b5cf6",
		Icon:        "sparkles",
	},
	NodeTypeTool: {
		Label:       "Tool",
		Description: "Invoke external capabilities",
		Color:       "#f59e0b",
		Icon:        "wrench",
	},
	NodeTypeRouter: {
		Label:       "Router",
		Description: "Route to the next node based on state",
		Color:       "#3b82f6",
		Icon:        "git-branch",
	},
	NodeTypeSubagent: {
		Label:       "Subagent",
		Description: "Delegate to another agent",
		Color:       "#ec4899",
		Icon:        "bot",
	},
	NodeTypeTransform: {
		Label:       "Transform",
		Description: "Reshape state with a pure expression",
		Color:       "#10b981",
		Icon:        "function-square",
	},
	NodeTypeParallel: {
		Label:       "Parallel",
		Description: "Fan out to branches and join results",
		Color:       "#06b6d4",
		Icon:        "split",
	},
	NodeTypeHuman: {
		Label:       "Human",
		Description: "Pause for human input",
		Color:       "#ef4444",
		Icon:        "user",
	},
	NodeTypeComponent: {
		Label:       "Component",
		Description: "Embedded reusable component",
		Color:       "#6b7280",
		Icon:        "package",
	},
}

var defaultMeta = TypeMeta{
	Label:       "Node",
	Description: "Workflow node",
	Color:       "#6b7280",
	Icon:        "circle",
}

// MetaFor returns the display metadata for a node type, falling back to
// a generic entry for unrecognized types.
func MetaFor(t NodeType) TypeMeta {
	if m, ok := typeMeta[t]; ok {
		return m
	}
	return defaultMeta
}
