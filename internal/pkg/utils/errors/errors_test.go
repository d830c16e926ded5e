package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixError(t *testing.T) {
	t.Parallel()
	err := PrefixError(New("file not found"), "cannot load plans")
	assert.Equal(t, "cannot load plans: file not found", err.Error())
	assert.True(t, Is(err, err))

	err = PrefixErrorf(New("boom"), `cannot read "%s"`, "plans.json")
	assert.Equal(t, `cannot read "plans.json": boom`, err.Error())
}

func TestPrefixErrorMultiLine(t *testing.T) {
	t.Parallel()
	errs := NewMultiError()
	errs.Append(New("first"))
	errs.Append(New("second"))
	err := PrefixError(errs.ErrorOrNil(), "import failed")
	assert.Equal(t, "import failed:\n  - first\n  - second", err.Error())
}

func TestMultiError(t *testing.T) {
	t.Parallel()
	errs := NewMultiError()
	assert.Nil(t, errs.ErrorOrNil())
	assert.Equal(t, 0, errs.Len())

	errs.Append(nil)
	assert.Nil(t, errs.ErrorOrNil())

	errs.Append(New("only one"))
	require.Error(t, errs.ErrorOrNil())
	assert.Equal(t, "only one", errs.Error())

	errs.AppendWithPrefixf(New("bad value"), `plan "%d"`, 3)
	assert.Equal(t, "- only one\n- plan \"3\": bad value", errs.Error())
}

func TestMultiErrorFlattens(t *testing.T) {
	t.Parallel()
	inner := NewMultiError()
	inner.Append(New("a"))
	inner.Append(New("b"))

	outer := NewMultiError()
	outer.Append(inner)
	assert.Equal(t, 2, outer.Len())
	assert.Equal(t, "- a\n- b", outer.Error())
}
