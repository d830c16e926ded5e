package rst

import (
	"fmt"
	"strings"

	"github.com/purpose-first/plans-as-code/internal/pkg/model"
	"github.com/purpose-first/plans-as-code/internal/pkg/naming"
)

// indexFooter closes every plan and test document.
const indexFooter = ".. note:: \n" +
	"      \n" +
	"      .. raw:: html\n" +
	"\n" +
	"       <a href=\"/index.html\" >Click here to go back to the main page</a>\n" +
	"    "

// generatePlanPage renders the document of one regular plan:
// numbering setup, the plan's code display, metadata sections and one
// block per question.
func (g *Generator) generatePlanPage(plan *model.Plan) string {
	file := naming.FileBase(plan.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "..  shortname:: %s\n\n", file)
	fmt.Fprintf(&b, "..  description:: %s\n\n", goalOrDefault(plan))
	b.WriteString(numberingSetup("p2"))

	fmt.Fprintf(&b, "Plan: %s\n%s\n\n", plan.Name, strings.Repeat("=", len(plan.Name)+10))

	fmt.Fprintf(&b, ".. plandisplay:: plans.json%s_code\n", file)
	fmt.Fprintf(&b, "   :plan: %s\n", plan.Name)
	b.WriteString("\n")

	metadata := plan.Metadata
	if metadata == nil {
		metadata = &model.PlanMetadata{}
	}
	fmt.Fprintf(&b, "%s\n\n", metadata.Description)
	fmt.Fprintf(&b, "Plan I - When to use this plan?\n%s\n", strings.Repeat("-", 32))
	fmt.Fprintf(&b, "%s\n\n", metadata.Usage)
	fmt.Fprintf(&b, "Plan I - What parts can be customized to use this plan?\n%s\n", strings.Repeat("-", 55))
	fmt.Fprintf(&b, "%s\n\n", metadata.Instruction)
	fmt.Fprintf(&b, "Plan I - Exercises\n%s\n", strings.Repeat("-", 20))

	g.writeQuestions(&b, plan, file)
	b.WriteString(indexFooter)
	return b.String()
}

// generateTestPage renders the document of one test page: numbering
// setup with the exercise prefix, title, preamble and questions, no
// code display or metadata sections.
func (g *Generator) generateTestPage(plan *model.Plan) string {
	file := naming.FileBase(plan.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "..  shortname:: %s\n\n", file)
	fmt.Fprintf(&b, "..  description:: %s\n\n", goalOrDefault(plan))
	b.WriteString(numberingSetup("ex"))

	fmt.Fprintf(&b, "%s\n%s\n\n", plan.Name, strings.Repeat("=", len(plan.Name)))
	if plan.Preamble != "" {
		fmt.Fprintf(&b, "%s\n\n", plan.Preamble)
	}

	g.writeQuestions(&b, plan, file)
	b.WriteString(indexFooter)
	return b.String()
}

// writeQuestions renders the plan's questions in order. Document ids
// are positional, "{file}_q{n}".
func (g *Generator) writeQuestions(b *strings.Builder, plan *model.Plan, file string) {
	for i, question := range plan.Questions {
		questionID := fmt.Sprintf("%s_q%d", file, i+1)
		content, ok := renderQuestion(questionID, question, plan)
		if !ok {
			g.logger.Warnf(`skipped question "%s" of unknown type "%s"`, questionID, question.QuestionType())
			continue
		}
		b.WriteString(content)
	}
}

func numberingSetup(prefix string) string {
	return fmt.Sprintf("\n.. setup for automatic question numbering.\n\n.. qnum::\n   :start: 1\n   :prefix: %s-\n\n", prefix)
}

func goalOrDefault(plan *model.Plan) string {
	if plan.Goal != "" {
		return plan.Goal
	}
	return "Exercise Page"
}
