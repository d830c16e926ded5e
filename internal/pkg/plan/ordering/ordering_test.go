package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purpose-first/plans-as-code/internal/pkg/model"
)

func plansFixture() model.Plans {
	return model.Plans{
		{ID: 1, GroupAssociations: []model.GroupAssociation{{Group: "Selection", Order: 0}, {Group: "Iteration", Order: 3}}},
		{ID: 2, GroupAssociations: []model.GroupAssociation{{Group: "Selection", Order: 1}}},
		{ID: 3, GroupAssociations: []model.GroupAssociation{{Group: "Selection", Order: 2}}},
	}
}

func orderIn(t *testing.T, plans model.Plans, id model.ID, group string) int {
	t.Helper()
	p := plans.ByID(id)
	require.NotNil(t, p)
	i := p.AssociationFor(group)
	require.GreaterOrEqual(t, i, 0)
	return p.GroupAssociations[i].Order
}

func TestReorderOccupiedRow(t *testing.T) {
	t.Parallel()
	plans := plansFixture()
	out, err := Reorder(plans, "Selection", 3, 0, false)
	require.NoError(t, err)

	// The dragged plan becomes a sibling, nothing else moves
	assert.Equal(t, 0, orderIn(t, out, 3, "Selection"))
	assert.Equal(t, 0, orderIn(t, out, 1, "Selection"))
	assert.Equal(t, 1, orderIn(t, out, 2, "Selection"))

	// Legacy order mirror
	assert.Equal(t, 0, *out.ByID(3).Order)

	// Unrelated associations are untouched
	assert.Equal(t, 3, orderIn(t, out, 1, "Iteration"))

	// Input is not mutated
	assert.Equal(t, 2, orderIn(t, plans, 3, "Selection"))
}

func TestReorderEmptyZoneShifts(t *testing.T) {
	t.Parallel()
	plans := plansFixture()
	out, err := Reorder(plans, "Selection", 3, 1, true)
	require.NoError(t, err)

	assert.Equal(t, 1, orderIn(t, out, 3, "Selection"))
	assert.Equal(t, 0, orderIn(t, out, 1, "Selection"))
	assert.Equal(t, 2, orderIn(t, out, 2, "Selection"))
}

func TestReorderEmptyZoneOnOwnOrder(t *testing.T) {
	t.Parallel()
	// Plans 2 and 3 both at order 0, dropping 2 on the empty zone at 0
	// must open a new row for it and push 3 down.
	plans := model.Plans{
		{ID: 2, GroupAssociations: []model.GroupAssociation{{Group: "Selection", Order: 0}}},
		{ID: 3, GroupAssociations: []model.GroupAssociation{{Group: "Selection", Order: 0}}},
	}
	out, err := Reorder(plans, "Selection", 2, 0, true)
	require.NoError(t, err)
	assert.Equal(t, 0, orderIn(t, out, 2, "Selection"))
	assert.Equal(t, 1, orderIn(t, out, 3, "Selection"))
}

func TestReorderNoOpOnSelf(t *testing.T) {
	t.Parallel()
	plans := plansFixture()
	out, err := Reorder(plans, "Selection", 2, 1, false)
	require.NoError(t, err)
	assert.Equal(t, plans, out)
}

func TestReorderCreatesAssociation(t *testing.T) {
	t.Parallel()
	plans := model.Plans{
		{ID: 1, GroupAssociations: []model.GroupAssociation{{Group: "Selection", Order: 0}}},
		{ID: 2, GroupAssociations: []model.GroupAssociation{{Group: "Iteration", Order: 5}}},
	}
	out, err := Reorder(plans, "Selection", 2, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 0, orderIn(t, out, 2, "Selection"))
	assert.Equal(t, 5, orderIn(t, out, 2, "Iteration"))
	// Occupied row, plan 1 stays in place
	assert.Equal(t, 0, orderIn(t, out, 1, "Selection"))
}

func TestReorderLegacyMember(t *testing.T) {
	t.Parallel()
	// A legacy plan with no associations is still a group member and shifts.
	plans := model.Plans{
		{ID: 1, Group: "Selection", Order: intPtr(0)},
		{ID: 2, GroupAssociations: []model.GroupAssociation{{Group: "Selection", Order: 1}}},
	}
	out, err := Reorder(plans, "Selection", 2, 0, true)
	require.NoError(t, err)
	assert.Equal(t, 0, orderIn(t, out, 2, "Selection"))
	assert.Equal(t, 1, orderIn(t, out, 1, "Selection"))
}

func TestReorderErrors(t *testing.T) {
	t.Parallel()
	plans := plansFixture()
	_, err := Reorder(plans, "Selection", 9, 0, false)
	require.Error(t, err)
	assert.Equal(t, `plan "9" not found`, err.Error())

	_, err = Reorder(plans, "Selection", 1, -1, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")
}

func intPtr(v int) *int {
	return &v
}
