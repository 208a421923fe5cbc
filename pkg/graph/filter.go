package graph

import "encoding/json"

// Built-in capability identifiers a workflow node may invoke.
const (
	ToolWebSearch       = "web_search"
	ToolWebFetch        = "web_fetch"
	ToolKnowledgeList   = "knowledge_list"
	ToolKnowledgeRead   = "knowledge_read"
	ToolKnowledgeWrite  = "knowledge_write"
	ToolKnowledgeSearch = "knowledge_search"
	ToolGenerateImage   = "generate_image"
	ToolReadImage       = "read_image"
	ToolMemorySearch    = "memory_search"
)

// BuiltinTools is the statically known capability universe, in canonical
// order. Materialized allow-lists preserve this order.
var BuiltinTools = []string{
	ToolWebSearch,
	ToolWebFetch,
	ToolKnowledgeList,
	ToolKnowledgeRead,
	ToolKnowledgeWrite,
	ToolKnowledgeSearch,
	ToolGenerateImage,
	ToolReadImage,
	ToolMemorySearch,
}

// ToolGroups partitions grouped capabilities under the names the toggle
// UI presents. memory_search is an ungrouped singleton.
var ToolGroups = map[string][]string{
	"web":       {ToolWebSearch, ToolWebFetch},
	"knowledge": {ToolKnowledgeList, ToolKnowledgeRead, ToolKnowledgeWrite, ToolKnowledgeSearch},
	"image":     {ToolGenerateImage, ToolReadImage},
}

// ToolFilter is the tri-state capability filter: either "all built-in
// capabilities available" (the zero value, wire form null) or an explicit
// allow-list (wire form array, possibly empty). It is an immutable value;
// Set operations return a new filter.
type ToolFilter struct {
	ids   []string
	exact bool
}

// AllTools returns the maximally permissive filter (wire form null).
func AllTools() ToolFilter { return ToolFilter{} }

// ExactTools returns a filter allowing exactly the given ids.
func ExactTools(ids ...string) ToolFilter {
	out := make([]string, len(ids))
	copy(out, ids)
	return ToolFilter{ids: out, exact: true}
}

// AllowsAll reports whether the filter is the implicit all-enabled state.
func (f ToolFilter) AllowsAll() bool { return !f.exact }

// IDs returns a copy of the explicit allow-list, or nil for the
// all-enabled state.
func (f ToolFilter) IDs() []string {
	if !f.exact {
		return nil
	}
	out := make([]string, len(f.ids))
	copy(out, f.ids)
	return out
}

// IsEnabled reports whether the capability id may be invoked.
func (f ToolFilter) IsEnabled(id string) bool {
	if !f.exact {
		return true
	}
	for _, v := range f.ids {
		if v == id {
			return true
		}
	}
	return false
}

// IsGroupEnabled reports whether any member of the named group is
// enabled. This drives the group toggle's UI state; it never gates an
// individual capability.
func (f ToolFilter) IsGroupEnabled(group string) bool {
	if !f.exact {
		return true
	}
	for _, id := range ToolGroups[group] {
		if f.IsEnabled(id) {
			return true
		}
	}
	return false
}

// SetEnabled returns a filter with id enabled or disabled, leaving every
// other capability's status unchanged. Disabling under the all-enabled
// state materializes the allow-list as the universe minus id.
func (f ToolFilter) SetEnabled(id string, enabled bool) ToolFilter {
	return f.set([]string{id}, enabled)
}

// SetGroupEnabled applies SetEnabled semantics to every member of the
// named group at once. An unknown group name is a no-op.
func (f ToolFilter) SetGroupEnabled(group string, enabled bool) ToolFilter {
	members, ok := ToolGroups[group]
	if !ok {
		return f
	}
	return f.set(members, enabled)
}

func (f ToolFilter) set(targets []string, enabled bool) ToolFilter {
	drop := func(id string) bool {
		for _, t := range targets {
			if t == id {
				return true
			}
		}
		return false
	}

	if !f.exact {
		if enabled {
			// Already maximally permissive.
			return f
		}
		// Materialize: universe minus targets.
		var ids []string
		for _, id := range BuiltinTools {
			if !drop(id) {
				ids = append(ids, id)
			}
		}
		return ToolFilter{ids: ids, exact: true}
	}

	if enabled {
		ids := make([]string, len(f.ids), len(f.ids)+len(targets))
		copy(ids, f.ids)
		for _, t := range targets {
			present := false
			for _, v := range ids {
				if v == t {
					present = true
					break
				}
			}
			if !present {
				ids = append(ids, t)
			}
		}
		return ToolFilter{ids: ids, exact: true}
	}

	ids := make([]string, 0, len(f.ids))
	for _, v := range f.ids {
		if !drop(v) {
			ids = append(ids, v)
		}
	}
	return ToolFilter{ids: ids, exact: true}
}

// Equal reports whether two filters allow exactly the same wire form.
func (f ToolFilter) Equal(other ToolFilter) bool {
	if f.exact != other.exact {
		return false
	}
	if len(f.ids) != len(other.ids) {
		return false
	}
	for i := range f.ids {
		if f.ids[i] != other.ids[i] {
			return false
		}
	}
	return true
}

// MarshalJSON writes null for the all-enabled state and an array (never
// null) for an explicit allow-list.
func (f ToolFilter) MarshalJSON() ([]byte, error) {
	if !f.exact {
		return []byte("null"), nil
	}
	if f.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(f.ids)
}

// UnmarshalJSON reads null as all-enabled and an array as an explicit
// allow-list.
func (f *ToolFilter) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ToolFilter{}
		return nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	if ids == nil {
		ids = []string{}
	}
	*f = ToolFilter{ids: ids, exact: true}
	return nil
}
