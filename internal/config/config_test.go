package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFlags returns a flag set with every flag registered, parsed from args.
func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

// inTempDir runs the test from an empty working directory so stray
// .dotenv-prompt.* files in the repository are never picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load(newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, ".env", cfg.EnvFile)
	assert.Equal(t, ".env.sample", cfg.SampleFile)
	assert.Empty(t, cfg.Names)
	assert.False(t, cfg.AssumeYes)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, OutputText, cfg.Output)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoad_Flags(t *testing.T) {
	inTempDir(t)

	cfg, err := Load(newFlags(t, "-e", "temp/.2env", "--sample-file", "temp/.2env.sample", "-y", "--dry-run", "-o", "json", "-v"))
	require.NoError(t, err)

	assert.Equal(t, "temp/.2env", cfg.EnvFile)
	assert.Equal(t, "temp/.2env.sample", cfg.SampleFile)
	assert.True(t, cfg.AssumeYes)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, OutputJSON, cfg.Output)
	assert.Equal(t, "debug", cfg.LogLevel, "--verbose implies debug")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	inTempDir(t)
	t.Setenv("DOTENV_PROMPT_ENV_FILE", "from-env/.env")
	t.Setenv("DOTENV_PROMPT_NAMES", "VAR1,VAR2 VAR3")
	t.Setenv("DOTENV_PROMPT_YES", "true")
	t.Setenv("DOTENV_PROMPT_OUTPUT", "yaml")

	cfg, err := Load(newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, "from-env/.env", cfg.EnvFile)
	assert.Equal(t, []string{"VAR1", "VAR2", "VAR3"}, cfg.Names)
	assert.True(t, cfg.AssumeYes)
	assert.Equal(t, OutputYAML, cfg.Output)
}

func TestLoad_FlagBeatsEnvironment(t *testing.T) {
	inTempDir(t)
	t.Setenv("DOTENV_PROMPT_ENV_FILE", "from-env/.env")

	cfg, err := Load(newFlags(t, "--env-file", "from-flag/.env"))
	require.NoError(t, err)
	assert.Equal(t, "from-flag/.env", cfg.EnvFile)
}

// TestLoad_JSONCConfigFile verifies comments and trailing commas are
// accepted in the JSON config, and that it is found without --config.
func TestLoad_JSONCConfigFile(t *testing.T) {
	dir := inTempDir(t)
	content := `{
		// where the real secrets live
		"env-file": "config/.env",
		"sample-file": "config/.env.sample",
		"names": ["DB_HOST", "DB_PORT",],
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".dotenv-prompt.json"), []byte(content), 0o644))

	cfg, err := Load(newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, ".dotenv-prompt.json", cfg.ConfigFile)
	assert.Equal(t, "config/.env", cfg.EnvFile)
	assert.Equal(t, "config/.env.sample", cfg.SampleFile)
	assert.Equal(t, []string{"DB_HOST", "DB_PORT"}, cfg.Names)
}

func TestLoad_YAMLConfigFile(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "settings.yaml")
	content := "env-file: yaml/.env\nyes: true\noutput: json\nnames:\n  - VAR1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(newFlags(t, "--config", path))
	require.NoError(t, err)

	assert.Equal(t, path, cfg.ConfigFile)
	assert.Equal(t, "yaml/.env", cfg.EnvFile)
	assert.True(t, cfg.AssumeYes)
	assert.Equal(t, OutputJSON, cfg.Output)
	assert.Equal(t, []string{"VAR1"}, cfg.Names)
}

// TestLoad_Precedence: environment beats the config file, and an explicit
// flag beats both.
func TestLoad_Precedence(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".dotenv-prompt.yaml"),
		[]byte("env-file: file/.env\nsample-file: file/.env.sample\noutput: yaml\n"), 0o644))
	t.Setenv("DOTENV_PROMPT_SAMPLE_FILE", "env/.env.sample")

	cfg, err := Load(newFlags(t, "-o", "text"))
	require.NoError(t, err)

	assert.Equal(t, "file/.env", cfg.EnvFile)
	assert.Equal(t, "env/.env.sample", cfg.SampleFile)
	assert.Equal(t, OutputText, cfg.Output)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit config", func(t *testing.T) {
		inTempDir(t)
		_, err := Load(newFlags(t, "--config", "nope.json"))
		assert.Error(t, err)
	})

	t.Run("unsupported config extension", func(t *testing.T) {
		dir := inTempDir(t)
		path := filepath.Join(dir, "settings.toml")
		require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o644))
		_, err := Load(newFlags(t, "--config", path))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		dir := inTempDir(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".dotenv-prompt.json"), []byte("{ not json"), 0o644))
		_, err := Load(newFlags(t))
		assert.Error(t, err)
	})

	t.Run("invalid output format", func(t *testing.T) {
		inTempDir(t)
		_, err := Load(newFlags(t, "-o", "xml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "xml")
	})
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected OutputFormat
		hasError bool
	}{
		{"text", OutputText, false},
		{"JSON", OutputJSON, false},
		{"yaml", OutputYAML, false},
		{"yml", OutputYAML, false},
		{"", "", true},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSplitNames(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, splitNames([]string{"A,B", " C ", ""}))
	assert.Nil(t, splitNames(nil))
}
