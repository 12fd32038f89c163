package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearGoalsimEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GOALSIM_LOG_LEVEL", "GOALSIM_PRETTY_LOG", "GOALSIM_REDIS_ADDR", "GOALSIM_OUTPUT_DIR", "GOALSIM_FORMAT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadEnvironment_Defaults(t *testing.T) {
	clearGoalsimEnv(t)

	env, err := LoadEnvironment(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, Environment{LogLevel: "warn", Format: "console"}, env)
}

func TestLoadEnvironment_FileAndProcess(t *testing.T) {
	clearGoalsimEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GOALSIM_REDIS_ADDR=localhost:6379\nGOALSIM_LOG_LEVEL=DEBUG\nGOALSIM_PRETTY_LOG=true\n"), 0644))
	t.Setenv("GOALSIM_LOG_LEVEL", "error")

	env, err := LoadEnvironment(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", env.RedisAddr)
	assert.Equal(t, "error", env.LogLevel, "process environment wins over the file")
	assert.True(t, env.PrettyLog)
	_, set := os.LookupEnv("GOALSIM_REDIS_ADDR")
	assert.False(t, set, "file values must not leak into the process environment")
}

func TestLoadEnvironment_BadBool(t *testing.T) {
	clearGoalsimEnv(t)
	t.Setenv("GOALSIM_PRETTY_LOG", "sometimes")

	_, err := LoadEnvironment(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
