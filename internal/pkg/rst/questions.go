package rst

import (
	"fmt"
	"strings"

	"github.com/purpose-first/plans-as-code/internal/pkg/encoding/json"
	"github.com/purpose-first/plans-as-code/internal/pkg/model"
)

// renderQuestion dispatches to the renderer for the question kind.
// Unknown kinds render nothing, the caller logs them.
func renderQuestion(questionID string, q model.Question, plan *model.Plan) (string, bool) {
	switch question := q.(type) {
	case *model.MultipleChoice:
		return renderMultipleChoice(questionID, question), true
	case *model.TrueFalse:
		return renderTrueFalse(questionID, question), true
	case *model.FillInTheBlank:
		return renderFillInTheBlank(questionID, question, plan), true
	case *model.ParsonsProblem:
		return renderParsonsProblem(questionID, question), true
	case *model.ClickableAreas:
		return renderClickableAreas(questionID, question, plan), true
	case *model.ActiveCode:
		return renderActiveCode(questionID, question), true
	default:
		return "", false
	}
}

func renderMultipleChoice(questionID string, q *model.MultipleChoice) string {
	var b strings.Builder
	fmt.Fprintf(&b, ".. mchoice:: %s\n", questionID)
	b.WriteString("   :random: \n")
	fmt.Fprintf(&b, "   :answer_a: %s\n", q.Correct)
	b.WriteString("   :feedback_a: Correct!\n")
	for i, distractor := range q.Distractors {
		letter := string(rune('b' + i))
		feedback := "Try again."
		if i < len(q.Feedback) && q.Feedback[i] != "" {
			feedback = q.Feedback[i]
		}
		fmt.Fprintf(&b, "   :answer_%s: %s\n", letter, distractor)
		fmt.Fprintf(&b, "   :feedback_%s: %s\n", letter, feedback)
	}
	b.WriteString("   :correct: a\n\n")
	fmt.Fprintf(&b, "   %s\n\n", q.QStem)
	return b.String()
}

func renderTrueFalse(questionID string, q *model.TrueFalse) string {
	wrongFeedback := q.Feedback
	if wrongFeedback == "" {
		wrongFeedback = "Try again."
	}
	feedbackTrue, feedbackFalse, correct := wrongFeedback, "Correct!", "b"
	if q.Label == "True" {
		feedbackTrue, feedbackFalse, correct = "Correct!", wrongFeedback, "a"
	}

	var b strings.Builder
	fmt.Fprintf(&b, ".. mchoice:: %s\n", questionID)
	b.WriteString("   :answer_a: True\n")
	fmt.Fprintf(&b, "   :feedback_a: %s\n", feedbackTrue)
	b.WriteString("   :answer_b: False\n")
	fmt.Fprintf(&b, "   :feedback_b: %s\n", feedbackFalse)
	fmt.Fprintf(&b, "   :correct: %s\n\n", correct)
	fmt.Fprintf(&b, "   %s\n\n", q.QStem)
	return b.String()
}

// renderFillInTheBlank blanks the first occurrence of the target area
// on each line, other markers are substituted by their first candidate.
// The full candidate list of the target area is the correct answer.
func renderFillInTheBlank(questionID string, q *model.FillInTheBlank, plan *model.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, ".. fillintheblank:: %s\n", questionID)
	b.WriteString("   :code_template: |\n")

	areas := plan.CodeTemplate.ChangeableAreas
	for _, line := range plan.CodeTemplate.Lines {
		processed := strings.Replace(line, model.Marker(q.Area), "@@blank1@@", 1)
		for _, key := range areas.Keys() {
			if key != q.Area {
				processed = strings.ReplaceAll(processed, model.Marker(key), areas.First(key))
			}
		}
		fmt.Fprintf(&b, "      %s\n", processed)
	}

	candidates, _ := areas.Get(q.Area)
	if candidates == nil {
		candidates = []string{}
	}
	fmt.Fprintf(&b, "   :correct: %s\n", json.MustEncodeString(candidates, false))
	fmt.Fprintf(&b, "   :feedback: [\"Try using one of these values: %s\"]\n", strings.Join(candidates, ", "))
	b.WriteString("   :placeholder: [\"Enter the appropriate value\"]\n\n")
	fmt.Fprintf(&b, "   %s\n\n", q.QStem)
	return b.String()
}

// renderParsonsProblem emits correct blocks in correctOrder sequence,
// then all never-referenced blocks as distractors. Duplicate or
// out-of-range indices are dropped.
func renderParsonsProblem(questionID string, q *model.ParsonsProblem) string {
	var b strings.Builder
	fmt.Fprintf(&b, ".. parsonsprob:: %s\n\n", questionID)
	fmt.Fprintf(&b, "   %s\n\n", q.QStem)
	fmt.Fprintf(&b, "   %s\n\n", strings.Repeat("-", 5))

	referenced := make(map[int]bool)
	var items []string
	for _, i := range q.CorrectOrder {
		if i < 0 || i >= len(q.Blocks) || referenced[i] {
			continue
		}
		referenced[i] = true
		items = append(items, q.Blocks[i].Text)
	}
	for i, block := range q.Blocks {
		if !referenced[i] {
			items = append(items, block.Text+" #distractor")
		}
	}

	for i, item := range items {
		if i > 0 {
			fmt.Fprintf(&b, "   %s\n", strings.Repeat("=", 5))
		}
		fmt.Fprintf(&b, "   %s\n", item)
	}
	b.WriteString("\n")
	return b.String()
}

// renderClickableAreas wraps each code line so every occurrence of a
// listed area is a correct click and the rest of the line an incorrect
// one. Non-listed markers are substituted by their first candidate.
func renderClickableAreas(questionID string, q *model.ClickableAreas, plan *model.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, ".. clickablearea:: %s\n", questionID)
	fmt.Fprintf(&b, "   :question: %s\n", q.QStem)
	b.WriteString("   :iscode:\n\n")

	listed := make(map[string]bool)
	for _, area := range q.Areas {
		listed[area] = true
	}

	areas := plan.CodeTemplate.ChangeableAreas
	for _, line := range plan.CodeTemplate.Lines {
		wrapped := ":click-incorrect:" + line + ":endclick:"
		for _, area := range q.Areas {
			wrapped = strings.ReplaceAll(
				wrapped,
				model.Marker(area),
				":endclick::click-correct:"+areas.First(area)+":endclick::click-incorrect:",
			)
		}
		for _, key := range areas.Keys() {
			if !listed[key] {
				wrapped = strings.ReplaceAll(wrapped, model.Marker(key), areas.First(key))
			}
		}
		fmt.Fprintf(&b, "   %s\n", wrapped)
	}
	b.WriteString("\n")
	return b.String()
}

// renderActiveCode emits a sandbox, or an autograded exercise when test
// cases are present. Test lines without the "->" arrow are skipped.
func renderActiveCode(questionID string, q *model.ActiveCode) string {
	var b strings.Builder
	fmt.Fprintf(&b, ".. activecode:: %s\n", questionID)
	b.WriteString("   :language: python\n")

	if q.TestCases != "" {
		b.WriteString("   :autograde: unittest\n\n")
		fmt.Fprintf(&b, "   %s\n\n", q.QStem)
		b.WriteString("   ~~~~\n")
		fmt.Fprintf(&b, "   %s\n\n", q.InitialCode)
		b.WriteString("   ====\n")
		b.WriteString("   from unittest.gui import TestCaseGui\n\n")
		b.WriteString("   class myTests(TestCaseGui):\n")
		b.WriteString("       def testOne(self):\n")

		n := 0
		for _, test := range strings.Split(q.TestCases, "\n") {
			if strings.TrimSpace(test) == "" {
				continue
			}
			expr, expected, found := strings.Cut(test, "->")
			if !found {
				continue
			}
			n++
			fmt.Fprintf(&b, "           self.assertEqual(%s, %s, 'Test %d')\n",
				strings.TrimSpace(expr), strings.TrimSpace(expected), n)
		}
		b.WriteString("   myTests().main()\n\n")
	} else {
		fmt.Fprintf(&b, "\n   %s\n\n", q.QStem)
		b.WriteString("   ~~~~\n")
		fmt.Fprintf(&b, "   %s\n\n", q.InitialCode)
	}

	if q.SolutionCode != "" {
		b.WriteString("   .. solution:: \n\n")
		fmt.Fprintf(&b, "      %s\n\n", strings.Join(strings.Split(q.SolutionCode, "\n"), "\n      "))
	}

	return b.String()
}
