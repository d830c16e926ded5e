// Package synthesis asks an external text-generation collaborator for
// a contextual substitution mapping and narrative per group of plans.
package synthesis

import (
	"context"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/purpose-first/plans-as-code/internal/pkg/model"
	"github.com/purpose-first/plans-as-code/internal/pkg/rst"
	"github.com/purpose-first/plans-as-code/internal/pkg/utils/errors"
)

type Dependencies interface {
	Logger() *zap.SugaredLogger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Synthesizer calls the collaborator endpoint and parses its response.
// It is stateless per call, caching is the caller's concern. Repeated
// calls for one group are blocked while one is in flight, different
// groups may run concurrently.
type Synthesizer struct {
	logger     *zap.SugaredLogger
	client     *resty.Client
	credential Credential

	lock     sync.Mutex
	inFlight map[string]bool
}

func New(d Dependencies, credential Credential) *Synthesizer {
	return &Synthesizer{
		logger:     d.Logger(),
		client:     createHTTPClient(),
		credential: credential,
		inFlight:   make(map[string]bool),
	}
}

// Synthesize produces the contextual substitution map and narrative for
// one group. Missing structural fields are defaulted, a transport or
// parse failure is returned as an error and the caller falls back to
// the non-contextual rendering.
func (s *Synthesizer) Synthesize(ctx context.Context, group string, groupPlans model.Plans, userHint string) (*model.Context, error) {
	if !s.credential.IsSet() {
		return nil, errors.New("missing credential, set it first")
	}
	if err := s.acquire(group); err != nil {
		return nil, err
	}
	defer s.release(group)

	response := chatResponse{}
	httpResponse, err := s.client.R().
		SetContext(ctx).
		SetHeader("api-key", s.credential.APIKey).
		SetBody(chatRequest{
			Model:       "gpt-4",
			Messages:    []chatMessage{{Role: "user", Content: buildPrompt(group, groupPlans, userHint)}},
			Temperature: 0.7,
		}).
		SetResult(&response).
		Post(s.credential.Endpoint)
	if err != nil {
		return nil, errors.PrefixErrorf(err, `synthesis request for group "%s" failed`, group)
	}
	if httpResponse.IsError() {
		return nil, errors.Errorf(`synthesis request for group "%s" failed, HTTP status "%d"`, group, httpResponse.StatusCode())
	}
	if len(response.Choices) == 0 {
		return nil, errors.Errorf(`synthesis response for group "%s" contains no choices`, group)
	}

	content := strings.TrimSpace(response.Choices[0].Message.Content)
	jsonText, warnings := extractJSON(content)
	for _, warning := range warnings {
		s.logger.Warnf(`group "%s": %s`, group, warning)
	}
	return parseContext(jsonText)
}

// ContextFor adapts the synthesizer to the generator's fallback source.
func (s *Synthesizer) ContextFor(ctx context.Context, group string, groupPlans model.Plans) (*model.Context, error) {
	return s.Synthesize(ctx, group, groupPlans, "")
}

// SynthesizeAll generates a contextual example for every group of the
// legacy-group view and renders the cached document next to each. A
// failed group is logged and skipped, the rest still completes.
func (s *Synthesizer) SynthesizeAll(ctx context.Context, plans model.Plans, userHint string) (model.ContextualExamples, error) {
	groups, buckets := rst.GroupsByLegacyField(plans)
	examples := make(model.ContextualExamples)

	grp, ctx := errgroup.WithContext(ctx)
	var lock sync.Mutex
	for _, group := range groups {
		group := group
		grp.Go(func() error {
			result, err := s.Synthesize(ctx, group, buckets[group], userHint)
			if err != nil {
				s.logger.Warnf(`cannot generate contextual example for group "%s": %s`, group, err)
				return nil
			}
			lock.Lock()
			defer lock.Unlock()
			GrowVocabulary(plans, buckets[group], result)
			examples[group] = &model.ContextualExample{
				Context:    result,
				RSTContent: rst.GenerateGroupDocument(group, buckets[group], result),
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return examples, nil
}

// GrowVocabulary appends each mapped value to the candidate list of the
// original plan's area, when the area's marker occurs in the code and
// the value is new. Contextual examples grow the vocabulary of future
// renders.
func GrowVocabulary(originals model.Plans, groupPlans model.Plans, context *model.Context) {
	for _, plan := range groupPlans {
		original := originals.ByID(plan.ID)
		if original == nil || original.CodeTemplate.ChangeableAreas == nil {
			continue
		}
		for _, key := range plan.CodeTemplate.ChangeableAreas.Keys() {
			value := context.MappingValue(key)
			if value == "" || !markerOccurs(plan.CodeTemplate.Lines, key) {
				continue
			}
			candidates, found := original.CodeTemplate.ChangeableAreas.Get(key)
			if !found {
				continue
			}
			known := false
			for _, candidate := range candidates {
				if candidate == value {
					known = true
					break
				}
			}
			if !known {
				original.CodeTemplate.ChangeableAreas.Append(key, value)
			}
		}
	}
}

func markerOccurs(lines []string, key string) bool {
	for _, line := range lines {
		if strings.Contains(line, model.Marker(key)) {
			return true
		}
	}
	return false
}

func (s *Synthesizer) acquire(group string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.inFlight[group] {
		return errors.Errorf(`synthesis for group "%s" is already in progress`, group)
	}
	s.inFlight[group] = true
	return nil
}

func (s *Synthesizer) release(group string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.inFlight, group)
}
