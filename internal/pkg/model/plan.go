// Package model defines the plan collection data model.
// JSON field names match the original export format, so stores created
// by older versions of the tool load without conversion.
package model

import (
	jsonlib "encoding/json"

	"github.com/spf13/cast"

	"github.com/purpose-first/plans-as-code/internal/pkg/utils/errors"
)

// UngroupedSentinel marks a plan that is not a member of any real group.
// Plans whose legacy group equals the sentinel and whose association list
// is empty are hidden from group resolution.
const UngroupedSentinel = "Ungrouped"

// TestsGroup is the default group of newly created test pages.
const TestsGroup = "Tests"

// ID is a plan identifier, unique across the store.
// Legacy stores may contain ids as strings, so decoding is tolerant.
type ID int

func (v *ID) UnmarshalJSON(data []byte) error {
	var raw any
	if err := jsonlib.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	n, err := cast.ToIntE(raw)
	if err != nil {
		return errors.Errorf(`invalid plan id "%v"`, raw)
	}
	*v = ID(n)
	return nil
}

// GroupAssociation is a plan's membership record in one group.
// Order is a row index, several plans may share one value.
type GroupAssociation struct {
	Group string `json:"group"`
	Order int    `json:"order"`
}

// PlanMetadata is the narrative part of a plan page.
type PlanMetadata struct {
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Instruction string `json:"instruction"`
}

// CodeTemplate is a code skeleton with named changeable areas,
// marked in lines as @@key@@.
type CodeTemplate struct {
	Lines           []string          `json:"lines"`
	ChangeableAreas *AreaMap          `json:"changeable_areas"`
	Annotations     map[string]string `json:"changeable_areas_annotations,omitempty"`
	Colors          map[string]string `json:"changeable_areas_colors,omitempty"`
}

// Plan is a template unit: a parameterized code skeleton plus attached questions.
// The singular Group/Order pair is a legacy representation kept for backward
// compatibility, group membership is defined by GroupAssociations.
type Plan struct {
	ID                ID                 `json:"id"`
	Name              string             `json:"plan_name"`
	Goal              string             `json:"goal,omitempty"`
	CodeTemplate      CodeTemplate       `json:"code_template"`
	Metadata          *PlanMetadata      `json:"plan_metadata,omitempty"`
	Questions         Questions          `json:"questions,omitempty"`
	IsTest            bool               `json:"isTest,omitempty"`
	Preamble          string             `json:"preamble,omitempty"`
	Group             string             `json:"group,omitempty"`
	Order             *int               `json:"order,omitempty"`
	GroupAssociations []GroupAssociation `json:"groupAssociations,omitempty"`

	// hasID distinguishes a missing id from id 0 during import.
	hasID bool
}

// Plans is the plan collection.
type Plans []*Plan

// UnmarshalJSON decodes the collection tolerantly: a plan that cannot
// be decoded at all is skipped, the valid rest of the import still
// loads.
func (v *Plans) UnmarshalJSON(data []byte) error {
	var raws []jsonlib.RawMessage
	if err := jsonlib.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(Plans, 0, len(raws))
	for _, raw := range raws {
		plan := &Plan{}
		if err := jsonlib.Unmarshal(raw, plan); err != nil {
			continue
		}
		plan.hasID = hasIDField(raw)
		out = append(out, plan)
	}
	*v = out
	return nil
}

func hasIDField(raw jsonlib.RawMessage) bool {
	var probe struct {
		ID *jsonlib.RawMessage `json:"id"`
	}
	if err := jsonlib.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.ID != nil && string(*probe.ID) != "null"
}

// HasID reports whether the plan carried an id when it was decoded.
// Plans created in code always have one.
func (p *Plan) HasID() bool {
	return p.hasID
}

// SetID assigns the id and marks it as present.
func (p *Plan) SetID(id ID) {
	p.ID = id
	p.hasID = true
}

// AssociationFor returns the index of the association for the group, or -1.
func (p *Plan) AssociationFor(group string) int {
	for i, assoc := range p.GroupAssociations {
		if assoc.Group == group {
			return i
		}
	}
	return -1
}

// OrderIn returns the plan's row order in the group and whether it is defined.
// The association order wins over the legacy order field.
func (p *Plan) OrderIn(group string) (int, bool) {
	if i := p.AssociationFor(group); i >= 0 {
		return p.GroupAssociations[i].Order, true
	}
	if p.Order != nil {
		return *p.Order, true
	}
	return 0, false
}

// LegacyOrder returns the legacy order field value, or the sentinel
// for plans without one, so they sort last.
func (p *Plan) LegacyOrder() int {
	if p.Order == nil {
		return int(^uint(0) >> 1) // max int
	}
	return *p.Order
}

// Clone returns a deep copy of the plan.
func (p *Plan) Clone() *Plan {
	out := *p
	out.CodeTemplate.Lines = append([]string(nil), p.CodeTemplate.Lines...)
	out.CodeTemplate.ChangeableAreas = p.CodeTemplate.ChangeableAreas.Clone()
	out.CodeTemplate.Annotations = cloneStringMap(p.CodeTemplate.Annotations)
	out.CodeTemplate.Colors = cloneStringMap(p.CodeTemplate.Colors)
	if p.Metadata != nil {
		metadata := *p.Metadata
		out.Metadata = &metadata
	}
	if p.Order != nil {
		order := *p.Order
		out.Order = &order
	}
	out.GroupAssociations = append([]GroupAssociation(nil), p.GroupAssociations...)
	out.Questions = p.Questions.Clone()
	return &out
}

// Clone returns a deep copy of the collection.
func (v Plans) Clone() Plans {
	if v == nil {
		return nil
	}
	out := make(Plans, len(v))
	for i, p := range v {
		out[i] = p.Clone()
	}
	return out
}

// ByID returns the plan with the given id, or nil.
func (v Plans) ByID(id ID) *Plan {
	for _, p := range v {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// MaxOrderIn returns the highest association order in the group, or -1
// when the group has no member.
func (v Plans) MaxOrderIn(group string) int {
	max := -1
	for _, p := range v {
		if i := p.AssociationFor(group); i >= 0 && p.GroupAssociations[i].Order > max {
			max = p.GroupAssociations[i].Order
		}
	}
	return max
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func intPtr(v int) *int {
	return &v
}

// SetOrder sets the legacy order field.
func (p *Plan) SetOrder(order int) {
	p.Order = intPtr(order)
}
