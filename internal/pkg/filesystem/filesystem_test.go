package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFsReadWrite(t *testing.T) {
	t.Parallel()
	fs := NewMemoryFs()
	assert.Equal(t, "memory", fs.Name())
	assert.False(t, fs.Exists("plans.json"))

	require.NoError(t, fs.WriteFile(NewFile("plans.json", "[]").SetDesc("plans")))
	assert.True(t, fs.Exists("plans.json"))
	assert.True(t, fs.IsFile("plans.json"))

	file, err := fs.ReadFile("plans.json", "plans")
	require.NoError(t, err)
	assert.Equal(t, "[]", file.Content)
}

func TestReadFileMissing(t *testing.T) {
	t.Parallel()
	fs := NewMemoryFs()
	_, err := fs.ReadFile("missing.json", "plans")
	require.Error(t, err)
	assert.Equal(t, `missing plans file "missing.json"`, err.Error())
}

func TestWriteFileCreatesDirs(t *testing.T) {
	t.Parallel()
	fs := NewMemoryFs()
	require.NoError(t, fs.WriteFile(NewFile(Join("nested", "dir", "file.rst"), "content")))
	assert.True(t, fs.Exists(Join("nested", "dir", "file.rst")))
}

func TestJSONFileRoundTrip(t *testing.T) {
	t.Parallel()
	fs := NewMemoryFs()
	require.NoError(t, fs.WriteJSONFile("state.json", map[string]string{"key": "value"}))

	var target map[string]string
	require.NoError(t, fs.ReadJSONFileTo("state.json", "state", &target))
	assert.Equal(t, map[string]string{"key": "value"}, target)
}

func TestReadJSONFileInvalid(t *testing.T) {
	t.Parallel()
	fs := NewMemoryFs()
	require.NoError(t, fs.WriteFile(NewFile("state.json", "{not json")))

	var target map[string]string
	err := fs.ReadJSONFileTo("state.json", "state", &target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `state file "state.json" is invalid`)
}

func TestRemove(t *testing.T) {
	t.Parallel()
	fs := NewMemoryFs()
	require.NoError(t, fs.WriteFile(NewFile("file.txt", "x")))
	require.NoError(t, fs.Remove("file.txt"))
	assert.False(t, fs.Exists("file.txt"))
}

func TestLocalFsCreatesBaseDir(t *testing.T) {
	t.Parallel()
	base := Join(t.TempDir(), "state")
	fs, err := NewLocalFs(base)
	require.NoError(t, err)
	assert.Equal(t, "local", fs.Name())
	assert.Equal(t, base, fs.BasePath())

	require.NoError(t, fs.WriteFile(NewFile("plans.json", "[]")))
	file, err := fs.ReadFile("plans.json", "plans")
	require.NoError(t, err)
	assert.Equal(t, "[]", file.Content)
}
