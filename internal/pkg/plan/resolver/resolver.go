// Package resolver derives the effective groups from the plan collection.
// Group membership is a pure projection of the plans, recomputed on read
// and memoized by a content hash of the collection.
package resolver

import (
	"sync"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/purpose-first/plans-as-code/internal/pkg/encoding/json"
	"github.com/purpose-first/plans-as-code/internal/pkg/model"
)

// Result is the derived group view.
// GroupedPlans values are copies, each carrying the order of the
// association that placed it in the bucket.
type Result struct {
	GroupedPlans map[string]model.Plans
	AllGroups    []string
}

// PlansIn returns the bucket for the group, or nil.
func (r *Result) PlansIn(group string) model.Plans {
	return r.GroupedPlans[group]
}

// IsEmpty reports whether the group has no member plan.
func (r *Result) IsEmpty(group string) bool {
	return len(r.GroupedPlans[group]) == 0
}

// ResolveGroups buckets plans by their group associations.
// A plan with associations appears once per listed group, the copy's
// legacy order field is overwritten by the association order. A plan
// without associations falls back to its legacy group field, unless
// that is empty or the "Ungrouped" sentinel, which hides the plan.
// AllGroups is createdGroups followed by groups discovered while
// bucketing, de-duplicated by first occurrence.
func ResolveGroups(plans model.Plans, createdGroups []string) *Result {
	out := &Result{GroupedPlans: make(map[string]model.Plans)}
	seen := make(map[string]bool)
	for _, group := range createdGroups {
		if !seen[group] {
			seen[group] = true
			out.AllGroups = append(out.AllGroups, group)
		}
	}

	addToBucket := func(group string, plan *model.Plan) {
		out.GroupedPlans[group] = append(out.GroupedPlans[group], plan)
		if !seen[group] {
			seen[group] = true
			out.AllGroups = append(out.AllGroups, group)
		}
	}

	for _, plan := range plans {
		if len(plan.GroupAssociations) > 0 {
			for _, assoc := range plan.GroupAssociations {
				group := assoc.Group
				if group == "" {
					group = model.UngroupedSentinel
				}
				copied := plan.Clone()
				copied.SetOrder(assoc.Order)
				addToBucket(group, copied)
			}
			continue
		}
		// Legacy fallback, the sentinel hides plans removed from all groups.
		if plan.Group != "" && plan.Group != model.UngroupedSentinel {
			addToBucket(plan.Group, plan.Clone())
		}
	}
	return out
}

// Memoized caches the last resolution and reuses it while the inputs
// hash to the same value.
type Memoized struct {
	lock   sync.Mutex
	key    uint64
	cached *Result
}

func NewMemoized() *Memoized {
	return &Memoized{}
}

func (m *Memoized) ResolveGroups(plans model.Plans, createdGroups []string) *Result {
	m.lock.Lock()
	defer m.lock.Unlock()
	key, err := contentHash(plans, createdGroups)
	if err != nil {
		// Unhashable input, skip memoization.
		return ResolveGroups(plans, createdGroups)
	}
	if m.cached != nil && m.key == key {
		return m.cached
	}
	m.cached = ResolveGroups(plans, createdGroups)
	m.key = key
	return m.cached
}

// contentHash hashes the canonical JSON form of the inputs.
// The JSON codec serializes ordered maps and questions deterministically,
// so equal content always produces an equal key.
func contentHash(plans model.Plans, createdGroups []string) (uint64, error) {
	content, err := json.EncodeString([]any{plans, createdGroups}, false)
	if err != nil {
		return 0, err
	}
	return hashstructure.Hash(content, hashstructure.FormatV2, nil)
}
