// Package store holds the canonical plan collection and its mutation
// operations. The store is pure data, loading and saving are the
// storage package's concern.
package store

import (
	"go.uber.org/zap"

	"github.com/purpose-first/plans-as-code/internal/pkg/model"
	"github.com/purpose-first/plans-as-code/internal/pkg/plan/ordering"
	"github.com/purpose-first/plans-as-code/internal/pkg/plan/resolver"
	"github.com/purpose-first/plans-as-code/internal/pkg/utils/errors"
)

// historyLimit caps the undo history depth.
const historyLimit = 10

type dependencies interface {
	Logger() *zap.SugaredLogger
}

// Store is the canonical set of plans plus user-created group names.
// All mutations snapshot the previous plans, Undo restores the most
// recent snapshot.
type Store struct {
	logger        *zap.SugaredLogger
	plans         model.Plans
	createdGroups []string
	history       []model.Plans
	resolver      *resolver.Memoized
}

func New(d dependencies) *Store {
	return &Store{logger: d.Logger(), resolver: resolver.NewMemoized()}
}

// Plans returns the live plan collection. Callers must not mutate it.
func (s *Store) Plans() model.Plans {
	return s.plans
}

// CreatedGroups returns the explicitly created group names.
func (s *Store) CreatedGroups() []string {
	return append([]string(nil), s.createdGroups...)
}

// ResolveGroups derives the current group view, memoized by content.
func (s *Store) ResolveGroups() *resolver.Result {
	return s.resolver.ResolveGroups(s.plans, s.createdGroups)
}

// Load replaces the whole collection with imported plans.
// The import is normalized first and the undo history is reset.
func (s *Store) Load(plans model.Plans) {
	s.history = nil
	s.plans = Normalize(plans, s.logger)
	s.createdGroups = nil
	for _, group := range s.ResolveGroups().AllGroups {
		s.createdGroups = append(s.createdGroups, group)
	}
}

// AddPlan appends the plan, assigning the next free id.
func (s *Store) AddPlan(plan *model.Plan) model.ID {
	s.snapshot()
	plan.SetID(s.nextID())
	s.plans = append(s.plans, plan)
	return plan.ID
}

// AddTestPage creates a named test page in the default tests group.
func (s *Store) AddTestPage(name string) model.ID {
	page := &model.Plan{
		Name:   name,
		Goal:   "Exercise Page",
		IsTest: true,
		Group:  model.TestsGroup,
		CodeTemplate: model.CodeTemplate{
			Lines:           []string{},
			ChangeableAreas: model.NewAreaMap(),
		},
	}
	id := s.AddPlan(page)
	s.addCreatedGroup(model.TestsGroup)
	return id
}

// UpdatePlan replaces the plan with the same id.
func (s *Store) UpdatePlan(plan *model.Plan) error {
	for i, existing := range s.plans {
		if existing.ID == plan.ID {
			s.snapshot()
			s.plans[i] = plan
			return nil
		}
	}
	return errors.Errorf(`plan "%d" not found`, plan.ID)
}

// DeletePlan removes the plan from the collection entirely.
func (s *Store) DeletePlan(id model.ID) error {
	for i, plan := range s.plans {
		if plan.ID == id {
			s.snapshot()
			s.plans = append(s.plans[:i], s.plans[i+1:]...)
			return nil
		}
	}
	return errors.Errorf(`plan "%d" not found`, id)
}

// RemoveFromGroup drops the plan's association with the group, keeping
// other memberships. The legacy group field is reset to the sentinel
// when it pointed at the removed group or no association remains.
func (s *Store) RemoveFromGroup(id model.ID, group string) error {
	plan := s.plans.ByID(id)
	if plan == nil {
		return errors.Errorf(`plan "%d" not found`, id)
	}
	s.snapshot()
	if len(plan.GroupAssociations) > 0 {
		kept := plan.GroupAssociations[:0:0]
		for _, assoc := range plan.GroupAssociations {
			if assoc.Group != group {
				kept = append(kept, assoc)
			}
		}
		plan.GroupAssociations = kept
		if plan.Group == group || len(kept) == 0 {
			plan.Group = model.UngroupedSentinel
		}
		return nil
	}
	if plan.Group == group {
		plan.Group = model.UngroupedSentinel
		plan.GroupAssociations = []model.GroupAssociation{}
	}
	return nil
}

// AddToGroup appends an association with order after the group's last
// row. Dropping a plan onto a group it is already in is a no-op.
func (s *Store) AddToGroup(id model.ID, group string) error {
	plan := s.plans.ByID(id)
	if plan == nil {
		return errors.Errorf(`plan "%d" not found`, id)
	}
	if plan.AssociationFor(group) >= 0 {
		return nil
	}
	s.snapshot()
	order := s.plans.MaxOrderIn(group) + 1
	plan.GroupAssociations = append(plan.GroupAssociations, model.GroupAssociation{Group: group, Order: order})
	plan.Group = group
	s.addCreatedGroup(group)
	return nil
}

// ClonePlan copies the plan into the target group under a fresh id,
// placed after the group's last row.
func (s *Store) ClonePlan(id model.ID, targetGroup string) (model.ID, error) {
	plan := s.plans.ByID(id)
	if plan == nil {
		return 0, errors.Errorf(`plan "%d" not found`, id)
	}
	s.snapshot()
	clone := plan.Clone()
	clone.SetID(s.nextID())
	clone.Group = targetGroup
	order := s.plans.MaxOrderIn(targetGroup) + 1
	if i := clone.AssociationFor(targetGroup); i >= 0 {
		clone.GroupAssociations[i].Order = order
	} else {
		clone.GroupAssociations = append(clone.GroupAssociations, model.GroupAssociation{Group: targetGroup, Order: order})
	}
	s.plans = append(s.plans, clone)
	s.addCreatedGroup(targetGroup)
	return clone.ID, nil
}

// Reorder moves the plan to targetOrder within the group, see the
// ordering package for the row semantics.
func (s *Store) Reorder(group string, draggedID model.ID, targetOrder int, isEmptyDropZone bool) error {
	updated, err := ordering.Reorder(s.plans, group, draggedID, targetOrder, isEmptyDropZone)
	if err != nil {
		return err
	}
	s.snapshot()
	s.plans = updated
	return nil
}

// CreateGroup registers an empty group.
func (s *Store) CreateGroup(name string) error {
	if name == "" {
		return errors.New("group name must not be empty")
	}
	s.addCreatedGroup(name)
	return nil
}

// DeleteGroup removes a group that has no member plan.
func (s *Store) DeleteGroup(name string) error {
	if !s.ResolveGroups().IsEmpty(name) {
		return errors.Errorf(`group "%s" is not empty, remove its plans first`, name)
	}
	for i, group := range s.createdGroups {
		if group == name {
			s.createdGroups = append(s.createdGroups[:i], s.createdGroups[i+1:]...)
			return nil
		}
	}
	return nil
}

// Undo restores the most recent snapshot.
func (s *Store) Undo() bool {
	if len(s.history) == 0 {
		return false
	}
	s.plans = s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	return true
}

// HistoryLen returns the number of undoable snapshots.
func (s *Store) HistoryLen() int {
	return len(s.history)
}

// Clear drops all plans, groups and history.
func (s *Store) Clear() {
	s.plans = nil
	s.createdGroups = nil
	s.history = nil
}

func (s *Store) snapshot() {
	s.history = append(s.history, s.plans.Clone())
	if len(s.history) > historyLimit {
		s.history = s.history[len(s.history)-historyLimit:]
	}
}

func (s *Store) nextID() model.ID {
	next := model.ID(0)
	for _, plan := range s.plans {
		if plan.ID >= next {
			next = plan.ID + 1
		}
	}
	return next
}

func (s *Store) addCreatedGroup(name string) {
	for _, group := range s.createdGroups {
		if group == name {
			return
		}
	}
	s.createdGroups = append(s.createdGroups, name)
}
