package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purpose-first/plans-as-code/internal/pkg/encoding/json"
)

func TestPlansUnmarshal(t *testing.T) {
	t.Parallel()
	content := `[
		{
			"plan_name": "Filter Rows",
			"goal": "Filter rows by a condition",
			"code_template": {
				"lines": ["SELECT @@columns@@", "FROM @@table@@"],
				"changeable_areas": {"columns": ["*", "name"], "table": ["users"]}
			},
			"group": "SQL Basics",
			"order": 2,
			"id": "7"
		},
		{
			"plan_name": "No Id Plan",
			"code_template": {"lines": [], "changeable_areas": {}},
			"groupAssociations": [{"group": "SQL Basics", "order": 0}]
		}
	]`

	var plans Plans
	require.NoError(t, json.DecodeString(content, &plans))
	require.Len(t, plans, 2)

	// String id is accepted
	assert.Equal(t, ID(7), plans[0].ID)
	assert.True(t, plans[0].HasID())
	assert.False(t, plans[1].HasID())

	// Area order is preserved
	assert.Equal(t, []string{"columns", "table"}, plans[0].CodeTemplate.ChangeableAreas.Keys())
	assert.Equal(t, "*", plans[0].CodeTemplate.ChangeableAreas.First("columns"))

	// Association order wins over the legacy order field
	order, found := plans[1].OrderIn("SQL Basics")
	assert.True(t, found)
	assert.Equal(t, 0, order)
	order, found = plans[0].OrderIn("SQL Basics")
	assert.True(t, found)
	assert.Equal(t, 2, order)
}

func TestPlansUnmarshalSkipsMalformed(t *testing.T) {
	t.Parallel()
	content := `[
		{"plan_name": "Kept", "code_template": {"lines": [], "changeable_areas": {}}},
		{"plan_name": "Bad Id", "id": "abc"},
		"not an object"
	]`

	var plans Plans
	require.NoError(t, json.DecodeString(content, &plans))
	require.Len(t, plans, 1)
	assert.Equal(t, "Kept", plans[0].Name)
}

func TestAreaMapRoundTrip(t *testing.T) {
	t.Parallel()
	m := NewAreaMap()
	m.Set("zebra", []string{"z1", "z2"})
	m.Set("alpha", []string{"a1"})
	m.Set("empty", nil)

	content, err := json.EncodeString(m, false)
	require.NoError(t, err)
	assert.Equal(t, `{"zebra":["z1","z2"],"alpha":["a1"],"empty":[]}`, content)

	decoded := NewAreaMap()
	require.NoError(t, json.DecodeString(content, decoded))
	assert.Equal(t, []string{"zebra", "alpha", "empty"}, decoded.Keys())
	assert.Equal(t, "a1", decoded.First("alpha"))
}

func TestAreaMapMutations(t *testing.T) {
	t.Parallel()
	m := NewAreaMap()
	m.Set("a", []string{"1"})
	m.Set("b", []string{"2"})

	m.Append("a", "3")
	v, _ := m.Get("a")
	assert.Equal(t, []string{"1", "3"}, v)

	assert.True(t, m.Rename("a", "c"))
	assert.Equal(t, []string{"c", "b"}, m.Keys())
	assert.False(t, m.Rename("missing", "x"))

	m.Delete("b")
	assert.Equal(t, []string{"c"}, m.Keys())
	_, found := m.Get("b")
	assert.False(t, found)
}

func TestQuestionsCodec(t *testing.T) {
	t.Parallel()
	content := `[
		{"type": "MCQ", "stem": "Pick one", "correct": "A", "distractors": ["B", "C"], "feedback": ["no"]},
		{"type": "True/False", "stem": "Is it?", "label": "False", "feedback": "nope"},
		{"type": "Fill in the Blank", "stem": "Fill it", "area": "table"},
		{"type": "Parsons Problem", "stem": "Arrange", "blocks": [{"text": "a"}, {"text": "b", "isDistractor": true}], "correctOrder": [0]},
		{"type": "Clickable Areas", "stem": "Click", "areas": ["table"]},
		{"type": "Active Code", "stem": "Write", "initialCode": "x = 1", "testCases": "x -> 1", "solutionCode": "x = 1"},
		{"type": "Matching", "stem": "Match", "pairs": [["a", "b"]]}
	]`

	var questions Questions
	require.NoError(t, json.DecodeString(content, &questions))
	require.Len(t, questions, 7)

	mcq, ok := questions[0].(*MultipleChoice)
	require.True(t, ok)
	assert.Equal(t, "A", mcq.Correct)

	tf, ok := questions[1].(*TrueFalse)
	require.True(t, ok)
	assert.Equal(t, "False", tf.Label)

	parsons, ok := questions[3].(*ParsonsProblem)
	require.True(t, ok)
	assert.True(t, parsons.Blocks[1].IsDistractor)

	// Unknown type survives the round trip
	unknown, ok := questions[6].(*UnknownQuestion)
	require.True(t, ok)
	assert.Equal(t, "Matching", unknown.Type)
	assert.Equal(t, "Match", unknown.Stem())

	encoded, err := json.EncodeString(questions, false)
	require.NoError(t, err)

	var decoded Questions
	require.NoError(t, json.DecodeString(encoded, &decoded))
	require.Len(t, decoded, 7)
	assert.IsType(t, &UnknownQuestion{}, decoded[6])
}

func TestQuestionsMissingTypePreserved(t *testing.T) {
	t.Parallel()
	var questions Questions
	require.NoError(t, json.DecodeString(`[{"stem": "No type here"}, {"type": "True/False", "stem": "Still typed", "label": "True"}]`, &questions))
	require.Len(t, questions, 2)

	// The typeless question loads as an unknown kind and keeps its payload
	unknown, ok := questions[0].(*UnknownQuestion)
	require.True(t, ok)
	assert.Equal(t, "", unknown.Type)
	assert.Equal(t, "No type here", unknown.Stem())
	assert.IsType(t, &TrueFalse{}, questions[1])

	encoded, err := json.EncodeString(questions, false)
	require.NoError(t, err)
	assert.Contains(t, encoded, `"stem":"No type here"`)
}

func TestQuestionsInvalidPayloadPreserved(t *testing.T) {
	t.Parallel()
	var questions Questions
	require.NoError(t, json.DecodeString(`[{"type": "MCQ", "stem": "Bad", "distractors": "not a list"}]`, &questions))
	require.Len(t, questions, 1)

	// A payload that does not match its type survives as an unknown kind
	unknown, ok := questions[0].(*UnknownQuestion)
	require.True(t, ok)
	assert.Equal(t, QuestionTypeMultipleChoice, unknown.Type)
	assert.Equal(t, "Bad", unknown.Stem())
}

func TestQuestionWithQuestionID(t *testing.T) {
	t.Parallel()
	q := Question(&FillInTheBlank{QStem: "Fill it", Area: "table"})
	withID := q.WithQuestionID("Fill in the Blank_1")
	assert.Equal(t, "Fill in the Blank_1", withID.QuestionID())
	// Original is untouched
	assert.Equal(t, "", q.QuestionID())

	unknown := Question(&UnknownQuestion{Type: "Matching", Raw: []byte(`{"stem": "Match"}`)})
	withID = unknown.WithQuestionID("Matching_1")
	assert.Equal(t, "Matching_1", withID.QuestionID())
	assert.Equal(t, "", unknown.QuestionID())
}

func TestPlanClone(t *testing.T) {
	t.Parallel()
	areas := NewAreaMap()
	areas.Set("table", []string{"users"})
	plan := &Plan{
		Name:         "Filter Rows",
		CodeTemplate: CodeTemplate{Lines: []string{"FROM @@table@@"}, ChangeableAreas: areas},
		Metadata:     &PlanMetadata{Description: "d"},
		Order:        intPtr(1),
		GroupAssociations: []GroupAssociation{
			{Group: "SQL Basics", Order: 1},
		},
	}
	plan.SetID(3)

	clone := plan.Clone()
	clone.CodeTemplate.Lines[0] = "changed"
	clone.CodeTemplate.ChangeableAreas.Set("table", []string{"orders"})
	clone.Metadata.Description = "changed"
	clone.GroupAssociations[0].Order = 9
	*clone.Order = 9

	assert.Equal(t, "FROM @@table@@", plan.CodeTemplate.Lines[0])
	assert.Equal(t, "users", plan.CodeTemplate.ChangeableAreas.First("table"))
	assert.Equal(t, "d", plan.Metadata.Description)
	assert.Equal(t, 1, plan.GroupAssociations[0].Order)
	assert.Equal(t, 1, *plan.Order)
	assert.True(t, clone.HasID())
}

func TestPlansHelpers(t *testing.T) {
	t.Parallel()
	plans := Plans{
		{ID: 1, GroupAssociations: []GroupAssociation{{Group: "A", Order: 2}}},
		{ID: 2, GroupAssociations: []GroupAssociation{{Group: "A", Order: 5}, {Group: "B", Order: 0}}},
	}
	assert.Equal(t, plans[1], plans.ByID(2))
	assert.Nil(t, plans.ByID(9))
	assert.Equal(t, 5, plans.MaxOrderIn("A"))
	assert.Equal(t, 0, plans.MaxOrderIn("B"))
	assert.Equal(t, -1, plans.MaxOrderIn("C"))
}
