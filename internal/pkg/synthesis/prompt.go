package synthesis

import (
	"fmt"
	"strings"

	"github.com/purpose-first/plans-as-code/internal/pkg/model"
)

// buildPrompt assembles the collaborator prompt from the group's plans
// and an optional user-provided context hint.
func buildPrompt(groupName string, plans model.Plans, userContext string) string {
	planBlocks := make([]string, 0, len(plans))
	for _, plan := range plans {
		var areaLines []string
		for _, key := range plan.CodeTemplate.ChangeableAreas.Keys() {
			candidates, _ := plan.CodeTemplate.ChangeableAreas.Get(key)
			areaLines = append(areaLines, fmt.Sprintf("%s: %s", key, strings.Join(candidates, " or ")))
		}
		planBlocks = append(planBlocks, fmt.Sprintf(
			"Plan name: %s\nGoal: %s\nCode template:\n%s\nChangeable areas:\n%s\n",
			plan.Name,
			plan.Goal,
			strings.Join(plan.CodeTemplate.Lines, "\n"),
			strings.Join(areaLines, "\n"),
		))
	}

	contextPrompt := ""
	if userContext != "" {
		contextPrompt = fmt.Sprintf(
			"\nUser-provided context for this example:\n%s\n\nCreate the example in the context described above.",
			userContext,
		)
	}

	return fmt.Sprintf(`Generate a JSON output (and nothing else) to create a contextual integrated example that combines multiple programming plans.

The example should situate these plans in a specific, real-world context that demonstrates how they work together.

Group name: %s
Plans to integrate:
%s%s

Your output should be a JSON object with these fields:
- changeable_areas_mapping: An object where keys are the changeable area names and values are the contextually appropriate replacements
- contextual_goals: An object mapping each plan name to a more specific, contextualized goal
- pre_explanation: A detailed explanation of the problem context that will appear above the code. This can include:
  * The specific problem or scenario being solved
  * Any example data or setup needed
  * Placeholders for figures using format: image[alt text]
  * Tables should be in RST format, for example:
    +------------+------------+-----------+
    | Header 1   | Header 2   | Header 3  |
    +============+============+===========+
    | cell 1     | cell 2     | cell 3    |
    +------------+------------+-----------+
    | cell 4     | cell 5     | cell 6    |
    +------------+------------+-----------+
  * Multiple paragraphs if needed

Make sure all the replacements and context are cohesive and make sense together.`,
		groupName,
		strings.Join(planBlocks, "\n\n"),
		contextPrompt,
	)
}
