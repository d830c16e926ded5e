package rst

import (
	"sort"

	"github.com/purpose-first/plans-as-code/internal/pkg/model"
)

// GroupsByLegacyField buckets non-test plans by the legacy single group
// field. Integrated examples intentionally use this narrower view
// instead of the multi-association resolver, the divergence is kept for
// compatibility with existing stores. Group order is first seen, plans
// within a group are sorted by the legacy order field, plans without
// one sort last, ties keep input order.
func GroupsByLegacyField(plans model.Plans) ([]string, map[string]model.Plans) {
	var groups []string
	buckets := make(map[string]model.Plans)
	for _, plan := range plans {
		if plan.Group == "" || plan.IsTest {
			continue
		}
		if _, found := buckets[plan.Group]; !found {
			groups = append(groups, plan.Group)
		}
		buckets[plan.Group] = append(buckets[plan.Group], plan)
	}
	for _, group := range groups {
		bucket := buckets[group]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].LegacyOrder() < bucket[j].LegacyOrder()
		})
	}
	return groups, buckets
}
