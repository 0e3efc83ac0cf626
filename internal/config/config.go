// Package config resolves dotenv-prompt settings from command-line flags,
// DOTENV_PROMPT_* environment variables, and an optional config file.
//
// Precedence, highest first: flags set on the command line, environment
// variables, the config file, flag defaults.
//
// Config files may be JSON (comments and trailing commas allowed, as in
// devcontainer.json) or YAML. Without --config, the first existing file of
// DefaultConfigFiles in the working directory is used.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/dotenv-prompt/internal/source"
)

// EnvPrefix prefixes every environment variable the tool reads.
const EnvPrefix = "DOTENV_PROMPT"

// Setting keys. Flag names, config file keys, and (upper-cased, with "-"
// replaced by "_") environment variable suffixes all use these.
const (
	KeyEnvFile    = "env-file"
	KeySampleFile = "sample-file"
	KeyNames      = "names"
	KeyYes        = "yes"
	KeyDryRun     = "dry-run"
	KeyOutput     = "output"
	KeyLogLevel   = "log-level"
	KeyVerbose    = "verbose"
	KeyConfig     = "config"
)

// DefaultConfigFiles are looked up in the working directory, in order.
var DefaultConfigFiles = []string{
	".dotenv-prompt.json",
	".dotenv-prompt.jsonc",
	".dotenv-prompt.yaml",
	".dotenv-prompt.yml",
}

// OutputFormat selects how the run summary is printed.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// ParseOutputFormat converts a string to an OutputFormat.
// Returns an error if the string does not match any valid format.
func ParseOutputFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case OutputText, OutputJSON, OutputYAML:
		return f, nil
	case "yml":
		return OutputYAML, nil
	}
	return "", fmt.Errorf("invalid output format: %q (valid: text, json, yaml)", s)
}

// Config is the resolved set of settings for one invocation.
type Config struct {
	EnvFile    string
	SampleFile string
	Names      []string
	AssumeYes  bool
	DryRun     bool
	Output     OutputFormat
	LogLevel   string

	// ConfigFile is the config file that was read, or "" if none.
	ConfigFile string
}

// RegisterFlags defines every flag Load understands on flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP(KeyEnvFile, "e", source.DefaultPrimaryPath, "Path of the .env file to reconcile")
	flags.StringP(KeySampleFile, "s", source.DefaultSamplePath, "Path of the sample template")
	flags.BoolP(KeyYes, "y", false, "Accept every default without prompting")
	flags.Bool(KeyDryRun, false, "Compute the result without writing the .env file")
	flags.StringP(KeyOutput, "o", string(OutputText), "Summary format: text, json, or yaml")
	flags.String(KeyLogLevel, "warn", "Log level: trace, debug, info, warn, error, off")
	flags.BoolP(KeyVerbose, "v", false, "Enable debug logging (same as --log-level=debug)")
	flags.String(KeyConfig, "", "Config file (default: .dotenv-prompt.{json,jsonc,yaml,yml} if present)")
}

// Load resolves settings from flags (set up with RegisterFlags), the
// environment, and the config file. A nil flags uses defaults only.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	configFile, err := findConfigFile(v.GetString(KeyConfig))
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		if err := readConfigFile(v, configFile); err != nil {
			return nil, err
		}
	}

	output, err := ParseOutputFormat(v.GetString(KeyOutput))
	if err != nil {
		return nil, err
	}

	level := v.GetString(KeyLogLevel)
	if v.GetBool(KeyVerbose) {
		level = "debug"
	}

	return &Config{
		EnvFile:    v.GetString(KeyEnvFile),
		SampleFile: v.GetString(KeySampleFile),
		Names:      splitNames(v.GetStringSlice(KeyNames)),
		AssumeYes:  v.GetBool(KeyYes),
		DryRun:     v.GetBool(KeyDryRun),
		Output:     output,
		LogLevel:   level,
		ConfigFile: configFile,
	}, nil
}

// findConfigFile returns explicit when set (it must exist), else the first
// of DefaultConfigFiles that exists, else "".
func findConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	for _, name := range DefaultConfigFiles {
		info, err := os.Stat(name)
		if err == nil && !info.IsDir() {
			return name, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("config file %s: %w", name, err)
		}
	}
	return "", nil
}

// readConfigFile merges path into v. JSON files are passed through jsonc
// first so they may carry comments.
func readConfigFile(v *viper.Viper, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		v.SetConfigType("json")
		raw = jsonc.ToJSON(raw)
	case ".yaml", ".yml":
		v.SetConfigType("yaml")
	default:
		return fmt.Errorf("unsupported config file type %q (use .json, .jsonc, .yaml, or .yml)", filepath.Ext(path))
	}

	if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// splitNames flattens names that arrived comma- or space-separated (as
// from DOTENV_PROMPT_NAMES) and drops empty entries.
func splitNames(raw []string) []string {
	var names []string
	for _, item := range raw {
		for _, name := range strings.FieldsFunc(item, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		}) {
			names = append(names, name)
		}
	}
	return names
}
