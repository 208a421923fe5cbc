package graph

import (
	"fmt"
	"strings"
)

// LintError describes a structural problem in a workflow config.
type LintError struct {
	NodeID  string
	Message string
}

func (e LintError) Error() string {
	if e.NodeID != "" {
		return fmt.Sprintf("node %q: %s", e.NodeID, e.Message)
	}
	return e.Message
}

// Validate checks a config for structural correctness and returns all
// discovered errors, not just the first. It does not check reachability,
// cycles, or condition expressions; the editor must tolerate in-progress
// graphs, so those checks belong to the execution engine.
func Validate(c *Config) []LintError {
	var errs []LintError
	if c == nil {
		return []LintError{{Message: "config must not be nil"}}
	}

	ids := make(map[string]bool, len(c.Nodes))
	for _, n := range c.Nodes {
		ids[n.ID] = true
	}

	// Entry point must name an existing node.
	if c.EntryPoint != "" && !ids[c.EntryPoint] {
		errs = append(errs, LintError{
			Message: fmt.Sprintf("entry_point references unknown node %q", c.EntryPoint),
		})
	}

	// Edge endpoints must be real node ids or the reserved markers.
	endpointOK := func(id string) bool {
		return id == StartMarker || id == EndMarker || ids[id]
	}
	for _, e := range c.Edges {
		if !endpointOK(e.FromNode) {
			errs = append(errs, LintError{
				Message: fmt.Sprintf("edge references unknown source node %q", e.FromNode),
			})
		}
		if !endpointOK(e.ToNode) {
			errs = append(errs, LintError{
				Message: fmt.Sprintf("edge references unknown target node %q", e.ToNode),
			})
		}
	}

	// Every node must carry the config variant matching its type.
	for _, n := range c.Nodes {
		key := configKey(n.Type)
		if key == "" {
			// Types without a config variant have nothing to check.
			continue
		}
		if n.Config == nil {
			errs = append(errs, LintError{
				NodeID:  n.ID,
				Message: fmt.Sprintf("missing required %s for node type %q", key, n.Type),
			})
			continue
		}
		if got := n.Config.nodeType(); got != n.Type {
			errs = append(errs, LintError{
				NodeID:  n.ID,
				Message: fmt.Sprintf("config variant %s does not match node type %q", configKey(got), n.Type),
			})
		}
	}

	return errs
}

// ValidateErr calls Validate and returns nil if the config is valid, or
// a combined error listing every violation.
func ValidateErr(c *Config) error {
	errs := Validate(c)
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("workflow validation failed:\n  %s", strings.Join(msgs, "\n  "))
}
