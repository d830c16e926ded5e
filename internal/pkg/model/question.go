package model

import (
	jsonlib "encoding/json"
)

// Question type names, stored in the "type" JSON field.
const (
	QuestionTypeMultipleChoice = "MCQ"
	QuestionTypeTrueFalse      = "True/False"
	QuestionTypeFillInTheBlank = "Fill in the Blank"
	QuestionTypeParsons        = "Parsons Problem"
	QuestionTypeClickableAreas = "Clickable Areas"
	QuestionTypeActiveCode     = "Active Code"
)

// Question is one quiz item attached to a plan.
// The concrete types form a closed set, questions of an unrecognized
// type survive a load and save cycle unchanged via UnknownQuestion.
type Question interface {
	// QuestionType returns the value of the "type" JSON field.
	QuestionType() string
	// Stem returns the question text shown to the student.
	Stem() string
	// QuestionID returns the stable id, or "" when it is not assigned yet.
	QuestionID() string
	// WithQuestionID returns a copy with the id set.
	WithQuestionID(id string) Question
}

// MultipleChoice is a single-answer choice question.
// Feedback entries are parallel to Distractors.
type MultipleChoice struct {
	ID          string   `json:"question_id,omitempty"`
	QStem       string   `json:"stem"`
	Correct     string   `json:"correct"`
	Distractors []string `json:"distractors"`
	Feedback    []string `json:"feedback,omitempty"`
}

func (q *MultipleChoice) QuestionType() string { return QuestionTypeMultipleChoice }
func (q *MultipleChoice) Stem() string         { return q.QStem }
func (q *MultipleChoice) QuestionID() string   { return q.ID }
func (q *MultipleChoice) WithQuestionID(id string) Question {
	out := *q
	out.ID = id
	return &out
}

// TrueFalse is a statement judged true or false.
// Feedback is shown only on the wrong answer.
type TrueFalse struct {
	ID       string `json:"question_id,omitempty"`
	QStem    string `json:"stem"`
	Label    string `json:"label"`
	Feedback string `json:"feedback,omitempty"`
}

func (q *TrueFalse) QuestionType() string { return QuestionTypeTrueFalse }
func (q *TrueFalse) Stem() string         { return q.QStem }
func (q *TrueFalse) QuestionID() string   { return q.ID }
func (q *TrueFalse) WithQuestionID(id string) Question {
	out := *q
	out.ID = id
	return &out
}

// FillInTheBlank asks the student to fill one changeable area of the
// plan's code, the area's candidate list is the implicit correct answer.
type FillInTheBlank struct {
	ID    string `json:"question_id,omitempty"`
	QStem string `json:"stem"`
	Area  string `json:"area"`
}

func (q *FillInTheBlank) QuestionType() string { return QuestionTypeFillInTheBlank }
func (q *FillInTheBlank) Stem() string         { return q.QStem }
func (q *FillInTheBlank) QuestionID() string   { return q.ID }
func (q *FillInTheBlank) WithQuestionID(id string) Question {
	out := *q
	out.ID = id
	return &out
}

// ParsonsBlock is one draggable code block of a Parsons problem.
type ParsonsBlock struct {
	Text         string `json:"text"`
	IsDistractor bool   `json:"isDistractor,omitempty"`
}

// ParsonsProblem asks the student to arrange code blocks into the
// correct order. CorrectOrder holds indexes into Blocks, blocks never
// referenced by it are rendered as distractors.
type ParsonsProblem struct {
	ID           string         `json:"question_id,omitempty"`
	QStem        string         `json:"stem"`
	Blocks       []ParsonsBlock `json:"blocks"`
	CorrectOrder []int          `json:"correctOrder"`
}

func (q *ParsonsProblem) QuestionType() string { return QuestionTypeParsons }
func (q *ParsonsProblem) Stem() string         { return q.QStem }
func (q *ParsonsProblem) QuestionID() string   { return q.ID }
func (q *ParsonsProblem) WithQuestionID(id string) Question {
	out := *q
	out.ID = id
	return &out
}

// ClickableAreas asks the student to click the listed changeable areas
// in the plan's code.
type ClickableAreas struct {
	ID    string   `json:"question_id,omitempty"`
	QStem string   `json:"stem"`
	Areas []string `json:"areas"`
}

func (q *ClickableAreas) QuestionType() string { return QuestionTypeClickableAreas }
func (q *ClickableAreas) Stem() string         { return q.QStem }
func (q *ClickableAreas) QuestionID() string   { return q.ID }
func (q *ClickableAreas) WithQuestionID(id string) Question {
	out := *q
	out.ID = id
	return &out
}

// ActiveCode is a runnable coding exercise, optionally autograded.
// TestCases is newline-delimited, each line "expression -> expected",
// lines without the arrow are skipped.
type ActiveCode struct {
	ID           string `json:"question_id,omitempty"`
	QStem        string `json:"stem"`
	InitialCode  string `json:"initialCode,omitempty"`
	SolutionCode string `json:"solutionCode,omitempty"`
	TestCases    string `json:"testCases,omitempty"`
}

func (q *ActiveCode) QuestionType() string { return QuestionTypeActiveCode }
func (q *ActiveCode) Stem() string         { return q.QStem }
func (q *ActiveCode) QuestionID() string   { return q.ID }
func (q *ActiveCode) WithQuestionID(id string) Question {
	out := *q
	out.ID = id
	return &out
}

// UnknownQuestion preserves a question of an unrecognized type,
// so it is not lost on save. Generators skip it with a warning.
type UnknownQuestion struct {
	Type string
	Raw  jsonlib.RawMessage
}

func (q *UnknownQuestion) QuestionType() string { return q.Type }
func (q *UnknownQuestion) Stem() string {
	var probe struct {
		Stem string `json:"stem"`
	}
	_ = jsonlib.Unmarshal(q.Raw, &probe)
	return probe.Stem
}
func (q *UnknownQuestion) QuestionID() string {
	var probe struct {
		ID string `json:"question_id"`
	}
	_ = jsonlib.Unmarshal(q.Raw, &probe)
	return probe.ID
}
func (q *UnknownQuestion) WithQuestionID(id string) Question {
	var fields map[string]jsonlib.RawMessage
	if err := jsonlib.Unmarshal(q.Raw, &fields); err != nil {
		return q
	}
	idValue, err := jsonlib.Marshal(id)
	if err != nil {
		return q
	}
	fields["question_id"] = idValue
	raw, err := jsonlib.Marshal(fields)
	if err != nil {
		return q
	}
	return &UnknownQuestion{Type: q.Type, Raw: raw}
}

// Questions is a plan's question list with a polymorphic JSON codec.
// Each item is an object with a "type" discriminator field.
type Questions []Question

func (v Questions) Clone() Questions {
	if v == nil {
		return nil
	}
	out := make(Questions, len(v))
	copy(out, v)
	return out
}

func (v Questions) MarshalJSON() ([]byte, error) {
	items := make([]jsonlib.RawMessage, 0, len(v))
	for _, q := range v {
		raw, err := marshalQuestion(q)
		if err != nil {
			return nil, err
		}
		items = append(items, raw)
	}
	return jsonlib.Marshal(items)
}

func marshalQuestion(q Question) (jsonlib.RawMessage, error) {
	if unknown, ok := q.(*UnknownQuestion); ok {
		return unknown.Raw, nil
	}
	body, err := jsonlib.Marshal(q)
	if err != nil {
		return nil, err
	}
	var fields map[string]jsonlib.RawMessage
	if err := jsonlib.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	typeValue, err := jsonlib.Marshal(q.QuestionType())
	if err != nil {
		return nil, err
	}
	fields["type"] = typeValue
	return jsonlib.Marshal(fields)
}

func (v *Questions) UnmarshalJSON(data []byte) error {
	var raws []jsonlib.RawMessage
	if err := jsonlib.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(Questions, 0, len(raws))
	for _, raw := range raws {
		out = append(out, unmarshalQuestion(raw))
	}
	*v = out
	return nil
}

// unmarshalQuestion decodes one question. A question with a missing or
// unrecognized type, or a payload that does not match its type, is
// preserved as UnknownQuestion: a partially invalid import still loads
// and the question round-trips unchanged, generators skip it.
func unmarshalQuestion(raw jsonlib.RawMessage) Question {
	preserved := &UnknownQuestion{Raw: append(jsonlib.RawMessage(nil), raw...)}
	var envelope struct {
		Type string `json:"type"`
	}
	if err := jsonlib.Unmarshal(raw, &envelope); err != nil {
		return preserved
	}
	preserved.Type = envelope.Type

	var q Question
	switch envelope.Type {
	case QuestionTypeMultipleChoice:
		q = &MultipleChoice{}
	case QuestionTypeTrueFalse:
		q = &TrueFalse{}
	case QuestionTypeFillInTheBlank:
		q = &FillInTheBlank{}
	case QuestionTypeParsons:
		q = &ParsonsProblem{}
	case QuestionTypeClickableAreas:
		q = &ClickableAreas{}
	case QuestionTypeActiveCode:
		q = &ActiveCode{}
	default:
		return preserved
	}

	if err := jsonlib.Unmarshal(raw, q); err != nil {
		return preserved
	}
	return q
}
