package model

import (
	"github.com/keboola/go-utils/pkg/orderedmap"
)

// Context is the synthesized contextual framing of a group's integrated example.
// The mapping assigns a concrete value to changeable-area keys, shared
// across the group's plans, key order follows the model output.
type Context struct {
	Mapping         *orderedmap.OrderedMap `json:"changeable_areas_mapping"`
	ContextualGoals map[string]string      `json:"contextual_goals"`
	PreExplanation  string                 `json:"pre_explanation"`
}

// MappingValue returns the mapped value for the key, or "" when missing or empty.
func (c *Context) MappingValue(key string) string {
	if c == nil || c.Mapping == nil {
		return ""
	}
	raw, found := c.Mapping.Get(key)
	if !found {
		return ""
	}
	value, ok := raw.(string)
	if !ok {
		return ""
	}
	return value
}

// GoalFor returns the contextual goal for the plan, or the fallback.
func (c *Context) GoalFor(planName, fallback string) string {
	if c == nil || c.ContextualGoals == nil {
		return fallback
	}
	if goal, found := c.ContextualGoals[planName]; found && goal != "" {
		return goal
	}
	return fallback
}

// ContextualExample is a cached synthesis result for one group:
// the model's context plus the document rendered from it.
type ContextualExample struct {
	Context    *Context `json:"context"`
	RSTContent string   `json:"rstContent"`
}

// ContextualExamples maps a group name to its cached example.
type ContextualExamples map[string]*ContextualExample
