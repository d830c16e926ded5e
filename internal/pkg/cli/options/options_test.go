package options

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	o := New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.BindPersistentFlags(flags)
	require.NoError(t, flags.Parse([]string{}))
	require.NoError(t, o.Load(flags))

	assert.Equal(t, ".", o.StateDir)
	assert.Equal(t, "build", o.OutputDir)
	assert.False(t, o.Verbose)
	assert.NotEmpty(t, o.WorkingDirectory)
}

func TestLoadFlags(t *testing.T) {
	o := New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.BindPersistentFlags(flags)
	require.NoError(t, flags.Parse([]string{"--state-dir", "/tmp/state", "--verbose", "--credential", " abc|https://llm.example.com "}))
	require.NoError(t, o.Load(flags))

	assert.Equal(t, "/tmp/state", o.StateDir)
	assert.True(t, o.Verbose)
	assert.Equal(t, "abc|https://llm.example.com", o.Credential)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("PAC_OUTPUT_DIR", "/tmp/out")
	o := New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.BindPersistentFlags(flags)
	require.NoError(t, flags.Parse([]string{}))
	require.NoError(t, o.Load(flags))
	assert.Equal(t, "/tmp/out", o.OutputDir)
}

func TestEnvNamingConvention(t *testing.T) {
	t.Parallel()
	o := New()
	assert.Equal(t, "PAC_STATE_DIR", o.GetEnvName("state-dir"))
	assert.Equal(t, "PAC_VERBOSE", o.GetEnvName("verbose"))
}

func TestDumpHidesCredential(t *testing.T) {
	t.Parallel()
	o := New()
	o.Credential = "secret-key-123|https://llm.example.com"
	dump := o.Dump()
	assert.Contains(t, dump, `Credential:"secr*****|https://llm.example.com"`)
	assert.NotContains(t, dump, "secret-key-123")
}
