package graph

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	gographviz "github.com/awalterschulze/gographviz"
)

// RenderDOT produces a Graphviz DOT rendering of a workflow config.
// Conditional edges are dashed and labeled; node colors come from the
// type metadata table.
func RenderDOT(c *Config) (string, error) {
	g := gographviz.NewGraph()
	name := "workflow"
	if c != nil && c.Metadata != nil {
		if n, ok := c.Metadata["name"].(string); ok && n != "" {
			name = n
		}
	}
	if err := g.SetName(dotID(name)); err != nil {
		return "", fmt.Errorf("dot graph name: %w", err)
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}
	if c == nil {
		return g.String(), nil
	}

	addMarker := func(id string) error {
		return g.AddNode(dotID(name), dotID(id), map[string]string{
			"shape": "circle",
			"label": dotID(strings.ToLower(id)),
		})
	}
	if err := addMarker(StartMarker); err != nil {
		return "", err
	}

	for _, n := range c.Nodes {
		meta := MetaFor(n.Type)
		label := n.Name
		if label == "" {
			label = n.ID
		}
		attrs := map[string]string{
			"shape":     "box",
			"style":     dotID("rounded,filled"),
			"fillcolor": dotID(meta.Color),
			"label":     dotID(fmt.Sprintf("%s\n(%s)", label, n.Type)),
		}
		if err := g.AddNode(dotID(name), dotID(n.ID), attrs); err != nil {
			return "", fmt.Errorf("dot node %q: %w", n.ID, err)
		}
	}

	if err := addMarker(EndMarker); err != nil {
		return "", err
	}

	for _, e := range c.Edges {
		attrs := map[string]string{}
		if e.Condition != nil {
			attrs["style"] = "dashed"
			attrs["label"] = dotID(conditionLabel(e))
		} else if e.Label != "" {
			attrs["label"] = dotID(e.Label)
		}
		if err := g.AddEdge(dotID(e.FromNode), dotID(e.ToNode), true, attrs); err != nil {
			return "", fmt.Errorf("dot edge %s -> %s: %w", e.FromNode, e.ToNode, err)
		}
	}

	return g.String(), nil
}

// conditionLabel summarizes an edge condition for display.
func conditionLabel(e Edge) string {
	if e.Label != "" {
		return e.Label
	}
	c := e.Condition
	if c.Type != "" {
		return c.Type
	}
	switch c.Operator {
	case OpTruthy, OpFalsy:
		return fmt.Sprintf("%s %s", c.StateKey, c.Operator)
	}
	return fmt.Sprintf("%s %s %v", c.StateKey, c.Operator, c.Value)
}

// dotID quotes a string for use as a DOT identifier.
func dotID(s string) string {
	return strconv.Quote(s)
}

// RenderText produces a human-readable text summary of a config.
func RenderText(c *Config) string {
	var sb strings.Builder
	if c == nil {
		return "empty workflow\n"
	}

	fmt.Fprintf(&sb, "Workflow v%s  (%d nodes, %d edges)\n", c.Version, len(c.Nodes), len(c.Edges))
	if c.EntryPoint != "" {
		fmt.Fprintf(&sb, "Entry: %s\n", c.EntryPoint)
	}

	maxIDLen := 4
	for _, n := range c.Nodes {
		if len(n.ID) > maxIDLen {
			maxIDLen = len(n.ID)
		}
	}

	fmt.Fprintf(&sb, "\nNodes:\n")
	for _, n := range c.Nodes {
		fmt.Fprintf(&sb, "  %-*s  %-10s  %s\n", maxIDLen, n.ID, string(n.Type), n.Name)
	}

	fmt.Fprintf(&sb, "\nEdges:\n")
	maxFromLen := 4
	for _, e := range c.Edges {
		if len(e.FromNode) > maxFromLen {
			maxFromLen = len(e.FromNode)
		}
	}
	for _, e := range c.Edges {
		if e.Condition != nil {
			fmt.Fprintf(&sb, "  %-*s  ->  %s  [%s]\n", maxFromLen, e.FromNode, e.ToNode, conditionLabel(e))
		} else {
			fmt.Fprintf(&sb, "  %-*s  ->  %s\n", maxFromLen, e.FromNode, e.ToNode)
		}
	}

	if len(c.StateSchema) > 0 {
		fmt.Fprintf(&sb, "\nState:\n")
		keys := make([]string, 0, len(c.StateSchema))
		for k := range c.StateSchema {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			f := c.StateSchema[k]
			fmt.Fprintf(&sb, "  %s  %s (%s)\n", k, f.Type, f.Reducer)
		}
	}

	return sb.String()
}
