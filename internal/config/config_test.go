package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/decli/internal/colors"
)

func reset() {
	mu.Lock()
	defer mu.Unlock()
	config = nil
	defaults = nil
}

// isolate points every directory at a temp dir so the user's real config
// is never read.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("DECLI_CONFIG_PATH", "")
	t.Cleanup(reset)
	return dir
}

func captureWarnings(t *testing.T) *bytes.Buffer {
	t.Helper()
	var errOut bytes.Buffer
	colors.SetOutput(nil, &errOut)
	t.Cleanup(func() { colors.SetOutput(nil, os.Stderr) })
	return &errOut
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaults(t *testing.T) {
	dir := isolate(t)

	Load("migrations")

	assert.Equal(t, filepath.Join(dir, "config", "migrations"), Get("config_dir", ""))
	assert.Equal(t, filepath.Join(dir, "state", "migrations"), Get("state_dir", ""))
	assert.Equal(t, filepath.Join(dir, "state", "migrations", "migrations.db"), Get("db_path", ""))
	assert.Equal(t, "memory", Get("storage_backend", ""))
	assert.Equal(t, "auto", Get("color", ""))
	assert.False(t, GetBool("logging_enabled", true))
	assert.Equal(t, 10, GetInt("logging_max_files", 0))
}

func TestEnvironmentWinsOverFile(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, `
storage_backend = "sqlite"
logging_max_files = 3
verbose_errors = true
color = "never"
`)
	t.Setenv("DECLI_CONFIG_PATH", path)
	t.Setenv("DECLI_COLOR", "always")

	Load("calculator")

	assert.Equal(t, "sqlite", Get("storage_backend", ""))
	assert.Equal(t, 3, GetInt("logging_max_files", 0))
	assert.True(t, GetBool("verbose_errors", false))
	assert.Equal(t, "always", Get("color", ""), "environment should override the config file")
}

func TestDefaultFileLocation(t *testing.T) {
	dir := isolate(t)
	configDir := filepath.Join(dir, "config", "calculator")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	writeConfig(t, configDir, `logging_level = "DEBUG"`)

	Load("calculator")

	assert.Equal(t, "debug", Get("logging_level", ""))
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	isolate(t)
	warnings := captureWarnings(t)
	t.Setenv("DECLI_STORAGE_BACKEND", "postgres")
	t.Setenv("DECLI_LOGGING_MAX_FILES", "-1")
	t.Setenv("DECLI_LOGGING_ENABLED", "maybe")

	Load("migrations")

	assert.Equal(t, "memory", Get("storage_backend", ""))
	assert.Equal(t, 10, GetInt("logging_max_files", 0))
	assert.False(t, GetBool("logging_enabled", true))
	assert.Contains(t, warnings.String(), "invalid storage_backend value 'postgres': must be one of: memory, sqlite; using default: memory")
	assert.Contains(t, warnings.String(), "invalid logging_max_files value '-1'")
	assert.Contains(t, warnings.String(), "invalid boolean value for logging_enabled: 'maybe'")
}

func TestMalformedFileIsIgnored(t *testing.T) {
	dir := isolate(t)
	warnings := captureWarnings(t)
	t.Setenv("DECLI_CONFIG_PATH", writeConfig(t, dir, `color = `))

	Load("calculator")

	assert.Equal(t, "auto", Get("color", ""))
	assert.Contains(t, warnings.String(), "unable to parse config file")
}

func TestExplicitDBPathIsKept(t *testing.T) {
	isolate(t)
	t.Setenv("DECLI_DB_PATH", "/tmp/custom.db")

	Load("migrations")

	assert.Equal(t, "/tmp/custom.db", Get("db_path", ""))
}

func TestBoolSpellings(t *testing.T) {
	for _, spelling := range []string{"1", "true", "YES", "on"} {
		t.Run(spelling, func(t *testing.T) {
			isolate(t)
			t.Setenv("DECLI_VERBOSE_ERRORS", spelling)

			Load("calculator")

			assert.Equal(t, "true", Get("verbose_errors", ""))
		})
	}
}

func TestRegisterValidatorTwicePanics(t *testing.T) {
	assert.Panics(t, func() {
		RegisterValidator("color", EnumValidator("auto"))
	})
}

func TestGettersWithoutLoad(t *testing.T) {
	reset()
	assert.Equal(t, "fallback", Get("missing", "fallback"))
	assert.Equal(t, 7, GetInt("missing", 7))
	assert.True(t, GetBool("missing", true))

	Set("missing", "set")
	t.Cleanup(reset)
	assert.Equal(t, "set", Get("missing", ""))
}
