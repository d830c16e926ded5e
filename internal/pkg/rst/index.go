package rst

import (
	"fmt"
	"strings"

	"github.com/purpose-first/plans-as-code/internal/pkg/model"
	"github.com/purpose-first/plans-as-code/internal/pkg/naming"
)

// generateIndex renders the tutorial entry page: a fixed preamble, the
// integrated-example contents, all non-test plans and, when present,
// the test pages.
func generateIndex(plans model.Plans, groups []string) string {
	var b strings.Builder
	b.WriteString("Programming Plans Tutorial\n")
	b.WriteString(strings.Repeat("=", 30) + "\n\n")

	b.WriteString("Goal of this Tutorial\n")
	b.WriteString(strings.Repeat("-", 30) + "\n\n")
	b.WriteString("This tutorial introduces you to common programming plans - reusable code patterns that help solve specific programming tasks. ")
	b.WriteString("Each plan comes with examples, explanations, and interactive exercises to help you master its usage.\n\n")

	b.WriteString(".. admonition:: Learning Approach\n")
	b.WriteString("   :class: note\n\n")
	b.WriteString("   Each programming plan is presented with:\n")
	b.WriteString("   * A clear explanation of its purpose and when to use it\n")
	b.WriteString("   * Code examples showing how to implement it\n")
	b.WriteString("   * Interactive exercises to practice applying the plan\n")
	b.WriteString("   * Common variations and edge cases to consider\n\n")

	b.WriteString("Integrated Examples\n")
	b.WriteString(strings.Repeat(":", 30) + "\n\n")
	b.WriteString(".. toctree::\n")
	b.WriteString("   :maxdepth: 1\n\n")
	for _, group := range groups {
		fmt.Fprintf(&b, "   %s\n", naming.IntegratedFile(group))
	}
	b.WriteString("\n")

	b.WriteString("List of Plans\n")
	b.WriteString(strings.Repeat("-", 20) + "\n\n")
	b.WriteString(".. toctree::\n")
	b.WriteString("   :maxdepth: 1\n\n")
	for _, plan := range plans {
		if !plan.IsTest {
			fmt.Fprintf(&b, "   %s\n", naming.FileBase(plan.Name))
		}
	}
	b.WriteString("\n")

	var testPages model.Plans
	for _, plan := range plans {
		if plan.IsTest {
			testPages = append(testPages, plan)
		}
	}
	if len(testPages) > 0 {
		b.WriteString("Exercises\n")
		b.WriteString(strings.Repeat("-", 20) + "\n\n")
		b.WriteString(".. toctree::\n")
		b.WriteString("   :maxdepth: 1\n\n")
		for _, test := range testPages {
			fmt.Fprintf(&b, "   %s\n", naming.PlanFile(test.Name))
		}
		b.WriteString("\n")
	}

	return b.String()
}
