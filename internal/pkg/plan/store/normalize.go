package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/purpose-first/plans-as-code/internal/pkg/model"
	"github.com/purpose-first/plans-as-code/internal/pkg/naming"
	"github.com/purpose-first/plans-as-code/internal/pkg/utils/errors"
	"github.com/purpose-first/plans-as-code/internal/pkg/validator"
)

// Normalize prepares imported plans for the store:
//   - plans without an id get one from their array position,
//   - a legacy single group field is converted to an association list,
//     unless it is empty or the "Ungrouped" sentinel,
//   - questions without an id get a stable "{type}_{n}" id from their
//     position, existing ids are never renumbered.
func Normalize(plans model.Plans, logger *zap.SugaredLogger) model.Plans {
	seenIDs := make(map[model.ID]bool)
	for i, plan := range plans {
		if !plan.HasID() {
			plan.SetID(model.ID(i))
		}
		if seenIDs[plan.ID] {
			logger.Warnf(`duplicate plan id "%d" found on import`, plan.ID)
		}
		seenIDs[plan.ID] = true

		if len(plan.GroupAssociations) == 0 && plan.Group != "" && plan.Group != model.UngroupedSentinel {
			order := 0
			if plan.Order != nil {
				order = *plan.Order
			}
			plan.GroupAssociations = []model.GroupAssociation{{Group: plan.Group, Order: order}}
		}

		if plan.CodeTemplate.ChangeableAreas == nil {
			plan.CodeTemplate.ChangeableAreas = model.NewAreaMap()
		}

		plan.Questions = AssignQuestionIDs(plan.Questions)
	}
	return plans
}

// AssignQuestionIDs fills in missing question ids. The id of a question
// is "{type}_{n}" where n counts same-typed questions up to and
// including its position.
func AssignQuestionIDs(questions model.Questions) model.Questions {
	counts := make(map[string]int)
	out := make(model.Questions, len(questions))
	for i, q := range questions {
		counts[q.QuestionType()]++
		if q.QuestionID() == "" {
			out[i] = q.WithQuestionID(naming.QuestionID(q.QuestionType(), counts[q.QuestionType()]))
		} else {
			out[i] = q
		}
	}
	return out
}

// importedPlan carries the validation rules applied on import.
// Violations are reported as warnings, the plan still loads.
type importedPlan struct {
	Name      string             `json:"plan_name" validate:"required"`
	Questions []importedQuestion `json:"questions" validate:"dive"`
}

type importedQuestion struct {
	Stem string `json:"stem" validate:"required"`
}

// ValidateImport checks the imported plans and returns one error per
// problem, or nil. Callers surface the result as warnings.
func ValidateImport(ctx context.Context, plans model.Plans) error {
	errs := errors.NewMultiError()
	for _, plan := range plans {
		checked := importedPlan{Name: plan.Name}
		for _, q := range plan.Questions {
			checked.Questions = append(checked.Questions, importedQuestion{Stem: q.Stem()})
		}
		if err := validator.Validate(ctx, checked); err != nil {
			errs.AppendWithPrefixf(err, `plan "%d" is incomplete`, plan.ID)
		}
	}
	return errs.ErrorOrNil()
}
