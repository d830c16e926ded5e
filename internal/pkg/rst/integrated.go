package rst

import (
	"fmt"
	"sort"
	"strings"

	"github.com/purpose-first/plans-as-code/internal/pkg/model"
	"github.com/purpose-first/plans-as-code/internal/pkg/naming"
)

// generateIntegrated renders one group's integrated-example document.
// With a context the plans' markers are substituted contextually, the
// fallback concatenates the plans verbatim under plan-name headers.
func generateIntegrated(group string, groupPlans model.Plans, context *model.Context) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Integrated Example - %s\n%s\n\n", group, strings.Repeat("=", len(group)+30))

	if context != nil {
		fmt.Fprintf(&b, "%s\n\n", context.PreExplanation)
		fmt.Fprintf(&b, ".. activecode:: %s\n", naming.IntegratedID(group))
		b.WriteString("   :language: sql\n\n")
		writeContextualCode(&b, groupPlans, context)
	} else {
		fmt.Fprintf(&b, "This example demonstrates the integration of multiple programming plans from the \"%s\" group.\n\n", group)
		fmt.Fprintf(&b, ".. activecode:: %s\n", naming.IntegratedID(group))
		b.WriteString("   :language: python\n\n")
		for _, plan := range groupPlans {
			fmt.Fprintf(&b, "   # %s\n", plan.Name)
			fmt.Fprintf(&b, "   %s\n\n", strings.Join(plan.CodeTemplate.Lines, "\n   "))
		}
	}

	writePlanLinks(&b, groupPlans)
	return b.String()
}

// GenerateGroupDocument renders the group document cached next to a
// fresh synthesis result. It differs from the in-tree integrated
// example only by the code language tag.
func GenerateGroupDocument(group string, groupPlans model.Plans, context *model.Context) string {
	sorted := sortByLegacyOrder(groupPlans)

	var b strings.Builder
	fmt.Fprintf(&b, "Integrated Example - %s\n%s\n\n", group, strings.Repeat("=", len(group)+30))
	fmt.Fprintf(&b, "%s\n\n", context.PreExplanation)
	fmt.Fprintf(&b, ".. activecode:: %s\n", naming.IntegratedID(group))
	b.WriteString("   :language: python\n\n")
	writeContextualCode(&b, sorted, context)
	writePlanLinks(&b, sorted)
	return b.String()
}

// writeContextualCode emits each plan's code with a goal header,
// markers of areas with a non-empty mapping value are substituted.
func writeContextualCode(b *strings.Builder, groupPlans model.Plans, context *model.Context) {
	for _, plan := range groupPlans {
		fmt.Fprintf(b, "   # %s\n", plan.Goal)
		lines := make([]string, len(plan.CodeTemplate.Lines))
		for i, line := range plan.CodeTemplate.Lines {
			for _, key := range plan.CodeTemplate.ChangeableAreas.Keys() {
				if value := context.MappingValue(key); value != "" {
					line = strings.ReplaceAll(line, model.Marker(key), value)
				}
			}
			lines[i] = line
		}
		fmt.Fprintf(b, "   %s\n\n", strings.Join(lines, "\n   "))
	}
}

func writePlanLinks(b *strings.Builder, groupPlans model.Plans) {
	b.WriteString("This example uses the following programming plans:\n\n")
	b.WriteString(".. toctree::\n")
	b.WriteString("   :maxdepth: 1\n")
	for _, plan := range groupPlans {
		fmt.Fprintf(b, "   %s\n", naming.FileBase(plan.Name))
	}
	b.WriteString("\n")

	for _, plan := range groupPlans {
		fmt.Fprintf(b, ".. plandisplay:: plans.json%s_code\n", naming.FileBase(plan.Name))
		fmt.Fprintf(b, "   :plan: %s\n\n", plan.Name)
	}
	b.WriteString("\n")
}

func sortByLegacyOrder(plans model.Plans) model.Plans {
	out := append(model.Plans(nil), plans...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LegacyOrder() < out[j].LegacyOrder()
	})
	return out
}
