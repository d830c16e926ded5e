// Package storage persists the tool's state in logical slots inside
// a state directory: the plan collection, the collaborator credential,
// the per-group cached examples, the per-group tags and the undo
// history of the plan collection.
package storage

import (
	"strings"

	"github.com/purpose-first/plans-as-code/internal/pkg/filesystem"
	"github.com/purpose-first/plans-as-code/internal/pkg/model"
	"github.com/purpose-first/plans-as-code/internal/pkg/utils/errors"
)

const (
	plansFile      = "plans.json"
	credentialFile = "credential"
	examplesFile   = "cached_examples.json"
	tagsFile       = "group_tags.json"
	historyFile    = "plans_history.json"

	// historyLimit caps the persisted undo history.
	historyLimit = 10
)

type dependencies interface {
	Fs() filesystem.Fs
}

// Storage reads and writes the state slots through the filesystem
// abstraction, so it runs against the OS or an in-memory backend.
type Storage struct {
	fs filesystem.Fs
}

func New(d dependencies) *Storage {
	return &Storage{fs: d.Fs()}
}

// LoadPlans reads the plan collection slot, an absent slot is an empty
// collection.
func (s *Storage) LoadPlans() (model.Plans, error) {
	if !s.fs.Exists(plansFile) {
		return model.Plans{}, nil
	}
	var plans model.Plans
	if err := s.fs.ReadJSONFileTo(plansFile, "plans", &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// SavePlans writes the plan collection slot.
func (s *Storage) SavePlans(plans model.Plans) error {
	return s.fs.WriteJSONFile(plansFile, plans)
}

// LoadCredential reads the saved "<key>|<endpoint-url>" string, or "".
func (s *Storage) LoadCredential() (string, error) {
	if !s.fs.Exists(credentialFile) {
		return "", nil
	}
	file, err := s.fs.ReadFile(credentialFile, "credential")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(file.Content), nil
}

// SaveCredential writes the credential slot.
func (s *Storage) SaveCredential(credential string) error {
	return s.fs.WriteFile(filesystem.NewFile(credentialFile, credential+"\n").SetDesc("credential"))
}

// LoadExamples reads the per-group cached examples, an absent slot is
// an empty cache.
func (s *Storage) LoadExamples() (model.ContextualExamples, error) {
	if !s.fs.Exists(examplesFile) {
		return model.ContextualExamples{}, nil
	}
	var examples model.ContextualExamples
	if err := s.fs.ReadJSONFileTo(examplesFile, "cached examples", &examples); err != nil {
		return nil, err
	}
	return examples, nil
}

// SaveExamples writes the cached examples slot.
func (s *Storage) SaveExamples(examples model.ContextualExamples) error {
	return s.fs.WriteJSONFile(examplesFile, examples)
}

// RemoveExample drops one group's cached example.
func (s *Storage) RemoveExample(group string) error {
	examples, err := s.LoadExamples()
	if err != nil {
		return err
	}
	if _, found := examples[group]; !found {
		return errors.Errorf(`no cached example for group "%s"`, group)
	}
	delete(examples, group)
	return s.SaveExamples(examples)
}

// LoadTags reads the per-group display labels, an absent slot is an
// empty map.
func (s *Storage) LoadTags() (map[string]string, error) {
	if !s.fs.Exists(tagsFile) {
		return map[string]string{}, nil
	}
	var tags map[string]string
	if err := s.fs.ReadJSONFileTo(tagsFile, "group tags", &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// SaveTags writes the group tags slot.
func (s *Storage) SaveTags(tags map[string]string) error {
	return s.fs.WriteJSONFile(tagsFile, tags)
}

// PushHistory appends a snapshot of the plan collection to the undo
// history, the oldest snapshots beyond the limit are dropped.
func (s *Storage) PushHistory(plans model.Plans) error {
	history, err := s.loadHistory()
	if err != nil {
		return err
	}
	history = append(history, plans)
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	return s.fs.WriteJSONFile(historyFile, history)
}

// PopHistory removes and returns the most recent snapshot.
// The second return value is false when the history is empty.
func (s *Storage) PopHistory() (model.Plans, bool, error) {
	history, err := s.loadHistory()
	if err != nil {
		return nil, false, err
	}
	if len(history) == 0 {
		return nil, false, nil
	}
	last := history[len(history)-1]
	if err := s.fs.WriteJSONFile(historyFile, history[:len(history)-1]); err != nil {
		return nil, false, err
	}
	return last, true, nil
}

func (s *Storage) loadHistory() ([]model.Plans, error) {
	if !s.fs.Exists(historyFile) {
		return nil, nil
	}
	var history []model.Plans
	if err := s.fs.ReadJSONFileTo(historyFile, "history", &history); err != nil {
		return nil, err
	}
	return history, nil
}

// Clear wipes all slots.
func (s *Storage) Clear() error {
	errs := errors.NewMultiError()
	for _, path := range []string{plansFile, credentialFile, examplesFile, tagsFile, historyFile} {
		if s.fs.Exists(path) {
			if err := s.fs.Remove(path); err != nil {
				errs.Append(err)
			}
		}
	}
	return errs.ErrorOrNil()
}
