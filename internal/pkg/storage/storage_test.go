package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purpose-first/plans-as-code/internal/pkg/filesystem"
	"github.com/purpose-first/plans-as-code/internal/pkg/model"
)

type testDeps struct {
	fs filesystem.Fs
}

func (d *testDeps) Fs() filesystem.Fs {
	return d.fs
}

func newTestStorage(t *testing.T) (*Storage, filesystem.Fs) {
	t.Helper()
	fs := filesystem.NewMemoryFs()
	return New(&testDeps{fs: fs}), fs
}

func TestPlansRoundTrip(t *testing.T) {
	t.Parallel()
	s, _ := newTestStorage(t)

	// Absent slot reads as an empty collection
	plans, err := s.LoadPlans()
	require.NoError(t, err)
	assert.Empty(t, plans)

	plan := &model.Plan{Name: "Counting Loop", Goal: "Repeat a fixed number of times"}
	plan.SetID(1)
	require.NoError(t, s.SavePlans(model.Plans{plan}))

	loaded, err := s.LoadPlans()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Counting Loop", loaded[0].Name)
	assert.Equal(t, model.ID(1), loaded[0].ID)
	assert.True(t, loaded[0].HasID())
}

func TestPlansInvalidFile(t *testing.T) {
	t.Parallel()
	s, fs := newTestStorage(t)
	require.NoError(t, fs.WriteFile(filesystem.NewFile("plans.json", "{not json")))

	_, err := s.LoadPlans()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `plans file "plans.json" is invalid`)
}

func TestCredentialRoundTrip(t *testing.T) {
	t.Parallel()
	s, _ := newTestStorage(t)

	credential, err := s.LoadCredential()
	require.NoError(t, err)
	assert.Empty(t, credential)

	require.NoError(t, s.SaveCredential("abc123|https://llm.example.com/chat"))
	credential, err = s.LoadCredential()
	require.NoError(t, err)
	assert.Equal(t, "abc123|https://llm.example.com/chat", credential)
}

func TestExamplesRoundTrip(t *testing.T) {
	t.Parallel()
	s, _ := newTestStorage(t)

	examples, err := s.LoadExamples()
	require.NoError(t, err)
	assert.Empty(t, examples)

	require.NoError(t, s.SaveExamples(model.ContextualExamples{
		"Iteration": {RSTContent: "Integrated Example - Iteration\n"},
	}))

	examples, err = s.LoadExamples()
	require.NoError(t, err)
	require.Contains(t, examples, "Iteration")
	assert.Equal(t, "Integrated Example - Iteration\n", examples["Iteration"].RSTContent)
}

func TestRemoveExample(t *testing.T) {
	t.Parallel()
	s, _ := newTestStorage(t)
	require.NoError(t, s.SaveExamples(model.ContextualExamples{
		"Iteration": {RSTContent: "a"},
		"Selection": {RSTContent: "b"},
	}))

	require.NoError(t, s.RemoveExample("Iteration"))
	examples, err := s.LoadExamples()
	require.NoError(t, err)
	assert.NotContains(t, examples, "Iteration")
	assert.Contains(t, examples, "Selection")

	err = s.RemoveExample("Iteration")
	require.Error(t, err)
	assert.Equal(t, `no cached example for group "Iteration"`, err.Error())
}

func TestTagsRoundTrip(t *testing.T) {
	t.Parallel()
	s, _ := newTestStorage(t)

	tags, err := s.LoadTags()
	require.NoError(t, err)
	assert.Empty(t, tags)

	require.NoError(t, s.SaveTags(map[string]string{"Iteration": "Unit 2"}))
	tags, err = s.LoadTags()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Iteration": "Unit 2"}, tags)
}

func TestHistory(t *testing.T) {
	t.Parallel()
	s, _ := newTestStorage(t)

	// Empty history
	_, found, err := s.PopHistory()
	require.NoError(t, err)
	assert.False(t, found)

	plan := &model.Plan{Name: "Counting Loop"}
	plan.SetID(1)
	require.NoError(t, s.PushHistory(model.Plans{plan}))
	require.NoError(t, s.PushHistory(model.Plans{}))

	snapshot, found, err := s.PopHistory()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, snapshot)

	snapshot, found, err = s.PopHistory()
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, snapshot, 1)
	assert.Equal(t, "Counting Loop", snapshot[0].Name)

	_, found, err = s.PopHistory()
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHistoryLimit(t *testing.T) {
	t.Parallel()
	s, _ := newTestStorage(t)
	for i := 0; i < 15; i++ {
		plan := &model.Plan{Name: "Plan"}
		plan.SetID(model.ID(i))
		require.NoError(t, s.PushHistory(model.Plans{plan}))
	}

	// Only the 10 most recent snapshots survive
	var ids []model.ID
	for {
		snapshot, found, err := s.PopHistory()
		require.NoError(t, err)
		if !found {
			break
		}
		ids = append(ids, snapshot[0].ID)
	}
	assert.Equal(t, []model.ID{14, 13, 12, 11, 10, 9, 8, 7, 6, 5}, ids)
}

func TestClear(t *testing.T) {
	t.Parallel()
	s, fs := newTestStorage(t)
	require.NoError(t, s.SavePlans(model.Plans{}))
	require.NoError(t, s.SaveCredential("abc|https://llm.example.com"))
	require.NoError(t, s.SaveExamples(model.ContextualExamples{}))
	require.NoError(t, s.SaveTags(map[string]string{"Iteration": "Unit 2"}))
	require.NoError(t, s.PushHistory(model.Plans{}))

	require.NoError(t, s.Clear())
	for _, path := range []string{"plans.json", "credential", "cached_examples.json", "group_tags.json", "plans_history.json"} {
		assert.False(t, fs.Exists(path), path)
	}

	// Clearing an already empty state is not an error
	require.NoError(t, s.Clear())
}
