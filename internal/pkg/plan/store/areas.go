package store

import (
	"strings"

	"github.com/purpose-first/plans-as-code/internal/pkg/model"
	"github.com/purpose-first/plans-as-code/internal/pkg/naming"
	"github.com/purpose-first/plans-as-code/internal/pkg/utils/errors"
)

// AddArea declares a changeable area from selected text. The key is
// derived from the text and de-duplicated against existing keys, the
// first candidate is the text itself.
func (s *Store) AddArea(id model.ID, selectedText string) (string, error) {
	plan := s.plans.ByID(id)
	if plan == nil {
		return "", errors.Errorf(`plan "%d" not found`, id)
	}
	if strings.TrimSpace(selectedText) == "" {
		return "", errors.New("selected text must not be empty")
	}
	s.snapshot()
	if plan.CodeTemplate.ChangeableAreas == nil {
		plan.CodeTemplate.ChangeableAreas = model.NewAreaMap()
	}
	areas := plan.CodeTemplate.ChangeableAreas
	key := naming.UniqueAreaKey(naming.AreaKey(selectedText), func(candidate string) bool {
		_, found := areas.Get(candidate)
		return found
	})
	areas.Set(key, []string{selectedText})
	for i, line := range plan.CodeTemplate.Lines {
		plan.CodeTemplate.Lines[i] = strings.Replace(line, selectedText, model.Marker(key), 1)
	}
	return key, nil
}

// RemoveArea drops the area, its markers in code lines are replaced by
// the first candidate value.
func (s *Store) RemoveArea(id model.ID, key string) error {
	plan := s.plans.ByID(id)
	if plan == nil {
		return errors.Errorf(`plan "%d" not found`, id)
	}
	areas := plan.CodeTemplate.ChangeableAreas
	if _, found := areas.Get(key); !found {
		return errors.Errorf(`changeable area "%s" not found in plan "%d"`, key, id)
	}
	s.snapshot()
	replacement := areas.First(key)
	for i, line := range plan.CodeTemplate.Lines {
		plan.CodeTemplate.Lines[i] = strings.ReplaceAll(line, model.Marker(key), replacement)
	}
	areas.Delete(key)
	delete(plan.CodeTemplate.Annotations, key)
	delete(plan.CodeTemplate.Colors, key)
	return nil
}

// RenameArea moves the area to a new key and rewrites its markers.
// Renaming onto an existing key is rejected without any change.
func (s *Store) RenameArea(id model.ID, oldKey, newKey string) error {
	plan := s.plans.ByID(id)
	if plan == nil {
		return errors.Errorf(`plan "%d" not found`, id)
	}
	if newKey == "" {
		return errors.New("new area key must not be empty")
	}
	areas := plan.CodeTemplate.ChangeableAreas
	if _, found := areas.Get(oldKey); !found {
		return errors.Errorf(`changeable area "%s" not found in plan "%d"`, oldKey, id)
	}
	if _, found := areas.Get(newKey); found {
		return errors.Errorf(`changeable area "%s" already exists in plan "%d"`, newKey, id)
	}
	s.snapshot()
	areas.Rename(oldKey, newKey)
	for i, line := range plan.CodeTemplate.Lines {
		plan.CodeTemplate.Lines[i] = strings.ReplaceAll(line, model.Marker(oldKey), model.Marker(newKey))
	}
	if v, found := plan.CodeTemplate.Annotations[oldKey]; found {
		delete(plan.CodeTemplate.Annotations, oldKey)
		plan.CodeTemplate.Annotations[newKey] = v
	}
	if v, found := plan.CodeTemplate.Colors[oldKey]; found {
		delete(plan.CodeTemplate.Colors, oldKey)
		plan.CodeTemplate.Colors[newKey] = v
	}
	return nil
}

// AddCandidate appends a candidate value to the area.
func (s *Store) AddCandidate(id model.ID, key, value string) error {
	plan := s.plans.ByID(id)
	if plan == nil {
		return errors.Errorf(`plan "%d" not found`, id)
	}
	if _, found := plan.CodeTemplate.ChangeableAreas.Get(key); !found {
		return errors.Errorf(`changeable area "%s" not found in plan "%d"`, key, id)
	}
	s.snapshot()
	plan.CodeTemplate.ChangeableAreas.Append(key, value)
	return nil
}

// RemoveCandidate drops one candidate value from the area.
func (s *Store) RemoveCandidate(id model.ID, key, value string) error {
	plan := s.plans.ByID(id)
	if plan == nil {
		return errors.Errorf(`plan "%d" not found`, id)
	}
	candidates, found := plan.CodeTemplate.ChangeableAreas.Get(key)
	if !found {
		return errors.Errorf(`changeable area "%s" not found in plan "%d"`, key, id)
	}
	for i, candidate := range candidates {
		if candidate == value {
			s.snapshot()
			kept := append(append([]string(nil), candidates[:i]...), candidates[i+1:]...)
			plan.CodeTemplate.ChangeableAreas.Set(key, kept)
			return nil
		}
	}
	return errors.Errorf(`value "%s" not found in changeable area "%s"`, value, key)
}

// SetAnnotation stores the area's free-text annotation.
func (s *Store) SetAnnotation(id model.ID, key, annotation string) error {
	plan := s.plans.ByID(id)
	if plan == nil {
		return errors.Errorf(`plan "%d" not found`, id)
	}
	if _, found := plan.CodeTemplate.ChangeableAreas.Get(key); !found {
		return errors.Errorf(`changeable area "%s" not found in plan "%d"`, key, id)
	}
	s.snapshot()
	if plan.CodeTemplate.Annotations == nil {
		plan.CodeTemplate.Annotations = make(map[string]string)
	}
	plan.CodeTemplate.Annotations[key] = annotation
	return nil
}

// SetColor stores the area's display color.
func (s *Store) SetColor(id model.ID, key, color string) error {
	plan := s.plans.ByID(id)
	if plan == nil {
		return errors.Errorf(`plan "%d" not found`, id)
	}
	if _, found := plan.CodeTemplate.ChangeableAreas.Get(key); !found {
		return errors.Errorf(`changeable area "%s" not found in plan "%d"`, key, id)
	}
	s.snapshot()
	if plan.CodeTemplate.Colors == nil {
		plan.CodeTemplate.Colors = make(map[string]string)
	}
	plan.CodeTemplate.Colors[key] = color
	return nil
}
