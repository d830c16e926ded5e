// Package ordering computes row placement when a plan is dropped at
// a position within a group. It operates only on order integers and
// mutates nothing, the caller receives an updated copy of the plans.
package ordering

import (
	"github.com/purpose-first/plans-as-code/internal/pkg/model"
	"github.com/purpose-first/plans-as-code/internal/pkg/utils/errors"
)

// Reorder places the dragged plan at targetOrder within the group and
// returns the updated plan collection.
//
// A drop on an occupied row (isEmptyDropZone false and another plan of
// the group already sits at targetOrder) makes the dragged plan a
// sibling in that row, no other plan moves. A drop on an empty zone
// opens a new row: every other member of the group with order greater
// than or equal to targetOrder is shifted by one, then the dragged plan
// takes targetOrder. Shifts are computed against a snapshot of the
// original orders, so the result does not depend on iteration order.
//
// Only the association for the group is rewritten (created when
// missing), the new order is also mirrored into the legacy order field
// of every updated plan.
func Reorder(plans model.Plans, group string, draggedID model.ID, targetOrder int, isEmptyDropZone bool) (model.Plans, error) {
	if targetOrder < 0 {
		return nil, errors.Errorf(`target order must not be negative, found %d`, targetOrder)
	}
	dragged := plans.ByID(draggedID)
	if dragged == nil {
		return nil, errors.Errorf(`plan "%d" not found`, draggedID)
	}

	currentOrder, inGroup := memberOrder(dragged, group)

	// Idempotent drop on the plan's own row.
	if !isEmptyDropZone && inGroup && currentOrder == targetOrder {
		return plans, nil
	}

	occupied := false
	if !isEmptyDropZone {
		for _, p := range plans {
			if p.ID == draggedID {
				continue
			}
			if order, ok := memberOrder(p, group); ok && order == targetOrder {
				occupied = true
				break
			}
		}
	}

	out := plans.Clone()
	if occupied {
		setGroupOrder(out.ByID(draggedID), group, targetOrder)
		return out, nil
	}

	// Snapshot of original orders, written back only after all
	// placements are decided.
	type shift struct {
		id    model.ID
		order int
	}
	var shifts []shift
	for _, p := range plans {
		if p.ID == draggedID {
			continue
		}
		if order, ok := memberOrder(p, group); ok && order >= targetOrder {
			shifts = append(shifts, shift{id: p.ID, order: order + 1})
		}
	}
	for _, s := range shifts {
		setGroupOrder(out.ByID(s.id), group, s.order)
	}
	setGroupOrder(out.ByID(draggedID), group, targetOrder)
	return out, nil
}

// memberOrder returns the plan's order in the group and whether the
// plan is a member, by association or by the legacy fallback.
func memberOrder(p *model.Plan, group string) (int, bool) {
	if i := p.AssociationFor(group); i >= 0 {
		return p.GroupAssociations[i].Order, true
	}
	if len(p.GroupAssociations) == 0 && p.Group == group && group != model.UngroupedSentinel {
		if p.Order != nil {
			return *p.Order, true
		}
		return 0, true
	}
	return 0, false
}

func setGroupOrder(p *model.Plan, group string, order int) {
	if i := p.AssociationFor(group); i >= 0 {
		p.GroupAssociations[i].Order = order
	} else {
		p.GroupAssociations = append(p.GroupAssociations, model.GroupAssociation{Group: group, Order: order})
	}
	p.SetOrder(order)
}
