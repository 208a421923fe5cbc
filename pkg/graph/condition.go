package graph

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
)

// Operator is a comparison applied to a state value by an edge condition.
type Operator string

const (
	OpEq          Operator = "eq"
	OpNeq         Operator = "neq"
	OpContains    Operator = "contains"
	OpNotContains Operator = "not_contains"
	OpGt          Operator = "gt"
	OpGte         Operator = "gte"
	OpLt          Operator = "lt"
	OpLte         Operator = "lte"
	OpIn          Operator = "in"
	OpNotIn       Operator = "not_in"
	OpTruthy      Operator = "truthy"
	OpFalsy       Operator = "falsy"
	OpMatches     Operator = "matches"
)

// Operators lists every recognized comparison operator.
var Operators = []Operator{
	OpEq, OpNeq, OpContains, OpNotContains,
	OpGt, OpGte, OpLt, OpLte,
	OpIn, OpNotIn, OpTruthy, OpFalsy, OpMatches,
}

// EdgeCondition gates traversal of an edge. Either Type names a built-in
// condition (current schema, e.g. "has_tool_calls"), or StateKey/Operator/
// Value describe a structured comparison. Value is required for every
// operator except truthy/falsy.
type EdgeCondition struct {
	Type     string   `json:"type,omitempty"`
	StateKey string   `json:"state_key,omitempty"`
	Operator Operator `json:"operator,omitempty"`
	Value    any      `json:"value,omitempty"`
	Target   string   `json:"target,omitempty"`
}

// Named condition types recognized by the current schema.
const (
	CondHasToolCalls = "has_tool_calls"
	CondNoToolCalls  = "no_tool_calls"
	CondAlways       = "always"
)

// Matches evaluates the condition against a state snapshot.
func (c EdgeCondition) Matches(state map[string]any) (bool, error) {
	if c.Type != "" {
		switch c.Type {
		case CondAlways:
			return true, nil
		case CondHasToolCalls:
			return truthy(state["tool_calls"]), nil
		case CondNoToolCalls:
			return !truthy(state["tool_calls"]), nil
		}
		return false, fmt.Errorf("unknown condition type %q", c.Type)
	}

	val := state[c.StateKey]
	switch c.Operator {
	case OpTruthy:
		return truthy(val), nil
	case OpFalsy:
		return !truthy(val), nil
	}
	if c.Value == nil {
		return false, fmt.Errorf("operator %q requires a comparison value", c.Operator)
	}

	switch c.Operator {
	case OpEq:
		return looseEqual(val, c.Value), nil
	case OpNeq:
		return !looseEqual(val, c.Value), nil
	case OpContains:
		return contains(val, c.Value), nil
	case OpNotContains:
		return !contains(val, c.Value), nil
	case OpGt, OpGte, OpLt, OpLte:
		a, aok := toFloat(val)
		b, bok := toFloat(c.Value)
		if !aok || !bok {
			return false, fmt.Errorf("operator %q requires numeric operands", c.Operator)
		}
		switch c.Operator {
		case OpGt:
			return a > b, nil
		case OpGte:
			return a >= b, nil
		case OpLt:
			return a < b, nil
		default:
			return a <= b, nil
		}
	case OpIn:
		return member(c.Value, val), nil
	case OpNotIn:
		return !member(c.Value, val), nil
	case OpMatches:
		pattern, ok := c.Value.(string)
		if !ok {
			return false, fmt.Errorf("operator %q requires a string pattern", OpMatches)
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false, fmt.Errorf("operator %q: %w", OpMatches, err)
		}
		return re.MatchString(fmt.Sprintf("%v", val)), nil
	}
	return false, fmt.Errorf("unknown operator %q", c.Operator)
}

// PickEdge selects which of a node's outgoing edges to traverse given a
// state snapshot: the highest-priority conditional edge whose condition
// matches, falling back to the highest-priority unconditional edge.
// Definition order breaks remaining ties. Returns nil if no edge applies.
func PickEdge(edges []Edge, state map[string]any) (*Edge, error) {
	ordered := make([]Edge, len(edges))
	copy(ordered, edges)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	var fallback *Edge
	for i := range ordered {
		e := ordered[i]
		if e.Condition == nil {
			if fallback == nil {
				fallback = &ordered[i]
			}
			continue
		}
		ok, err := e.Condition.Matches(state)
		if err != nil {
			return nil, err
		}
		if ok {
			return &ordered[i], nil
		}
	}
	return fallback, nil
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	if f, ok := toFloat(v); ok {
		return f != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	}
	return true
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

// looseEqual compares numerics numerically and everything else by its
// printed form, matching how JSON-decoded state values behave.
func looseEqual(a, b any) bool {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf
		}
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

// contains reports whether haystack (a string or a slice) contains needle.
func contains(haystack, needle any) bool {
	if s, ok := haystack.(string); ok {
		return strings.Contains(s, fmt.Sprintf("%v", needle))
	}
	return member(haystack, needle)
}

// member reports whether list (a slice) has an element loosely equal to v.
func member(list, v any) bool {
	rv := reflect.ValueOf(list)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if looseEqual(rv.Index(i).Interface(), v) {
			return true
		}
	}
	return false
}
