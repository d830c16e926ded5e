package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileBase(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "counting_loop", FileBase("Counting Loop"))
	assert.Equal(t, "sum_it_up_", FileBase("Sum it up!"))
	assert.Equal(t, "a_b_c", FileBase("a - b -- c"))
	assert.Equal(t, "", FileBase(""))
}

func TestFileNames(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "counting_loop.rst", PlanFile("Counting Loop"))
	assert.Equal(t, "integrated_iteration.rst", IntegratedFile("Iteration"))
	assert.Equal(t, "integrated_iteration", IntegratedID("Iteration"))
}

func TestQuestionID(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "MCQ_1", QuestionID("MCQ", 1))
	assert.Equal(t, "True/False_2", QuestionID("True/False", 2))
}

func TestAreaKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "range_10_", AreaKey(" range(10) "))
	assert.Equal(t, "aaaaaaaaaaaaaaaaaaaa", AreaKey("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
}

func TestUniqueAreaKey(t *testing.T) {
	t.Parallel()
	used := map[string]bool{"n": true, "n_1": true}
	exists := func(key string) bool { return used[key] }
	assert.Equal(t, "n_2", UniqueAreaKey("n", exists))
	assert.Equal(t, "m", UniqueAreaKey("m", exists))
}
