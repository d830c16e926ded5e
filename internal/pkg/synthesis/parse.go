package synthesis

import (
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/umisama/go-regexpcache"

	"github.com/purpose-first/plans-as-code/internal/pkg/encoding/json"
	"github.com/purpose-first/plans-as-code/internal/pkg/model"
	"github.com/purpose-first/plans-as-code/internal/pkg/utils/errors"
)

// extractJSON pulls the JSON payload out of the collaborator response.
// A "```json" fence is preferred, then any "```" fence, otherwise the
// raw text is used and a warning is returned.
func extractJSON(responseText string) (string, []string) {
	var warnings []string
	jsonText := strings.TrimSpace(responseText)

	if match := regexpcache.MustCompile("```json\\n?([\\s\\S]*?)\\n?```").FindStringSubmatch(responseText); match != nil {
		jsonText = strings.TrimSpace(match[1])
	} else if match := regexpcache.MustCompile("```\\n?([\\s\\S]*?)\\n?```").FindStringSubmatch(responseText); match != nil {
		jsonText = strings.TrimSpace(match[1])
	} else {
		warnings = append(warnings, "response was not properly formatted with code blocks")
	}

	return jsonText, warnings
}

// parseContext decodes the context shape, individually defaulting
// missing fields instead of failing the whole call.
func parseContext(jsonText string) (*model.Context, error) {
	var raw struct {
		Mapping         *orderedmap.OrderedMap `json:"changeable_areas_mapping"`
		ContextualGoals map[string]string      `json:"contextual_goals"`
		PreExplanation  string                 `json:"pre_explanation"`
	}
	if err := json.DecodeString(jsonText, &raw); err != nil {
		return nil, errors.PrefixError(err, "response is not valid JSON")
	}
	out := &model.Context{
		Mapping:         raw.Mapping,
		ContextualGoals: raw.ContextualGoals,
		PreExplanation:  raw.PreExplanation,
	}
	if out.Mapping == nil {
		out.Mapping = orderedmap.New()
	}
	if out.ContextualGoals == nil {
		out.ContextualGoals = make(map[string]string)
	}
	return out, nil
}
