package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/dotenv-prompt/internal/config"
	"github.com/shinji-kodama/dotenv-prompt/internal/model"
	"github.com/shinji-kodama/dotenv-prompt/internal/reconcile"
)

// printResult writes the run summary to w. JSON and YAML carry the same
// fields and never include variable values. In text mode a dry run also
// prints the content that would have been written.
func printResult(w io.Writer, format config.OutputFormat, result *reconcile.Result, samplePath string) error {
	switch format {
	case config.OutputJSON:
		// MarshalIndent produces human-readable JSON with 2-space indentation.
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case config.OutputYAML:
		return encodeYAML(w, result)

	default:
		if _, err := fmt.Fprintln(w, Summarize(result, samplePath)); err != nil {
			return err
		}
		if result.DryRun && result.Content != "" {
			_, err := io.WriteString(w, result.Content)
			return err
		}
		return nil
	}
}

// Summarize returns the one-line, human-readable description of result.
//
// Example:
//
//	patched, [DB_HOST DB_PORT] → "Updated .env (DB_HOST, DB_PORT)"
//	copied-sample              → "Created .env from .env.sample"
//	unchanged                  → ".env is up to date"
func Summarize(result *reconcile.Result, samplePath string) string {
	switch result.Action {
	case reconcile.ActionPatched:
		verb := "Updated"
		if result.DryRun {
			verb = "Would update"
		}
		return fmt.Sprintf("%s %s (%s)", verb, result.EnvPath, strings.Join(result.Changed, ", "))

	case reconcile.ActionCopiedSample:
		verb := "Created"
		if result.DryRun {
			verb = "Would create"
		}
		return fmt.Sprintf("%s %s from %s", verb, result.EnvPath, samplePath)

	default:
		return fmt.Sprintf("%s is up to date", result.EnvPath)
	}
}

// errorBody is the structured form of an error in JSON and YAML output.
type errorBody struct {
	Code    int    `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
	Detail  string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// printError writes err to w as "Error: ..." text, or as an
// {"error": {...}} object in JSON or YAML output mode.
func printError(w io.Writer, format config.OutputFormat, err *model.CLIError) {
	body := errorBody{Code: int(err.Code), Message: err.Message}
	if err.Err != nil {
		body.Detail = err.Err.Error()
	}
	wrapped := map[string]errorBody{"error": body}

	// Errors go to stderr (w) even in JSON or YAML mode, because stdout is
	// reserved for the result of a successful run.
	switch format {
	case config.OutputJSON:
		// Marshalling a map of plain strings and ints cannot fail.
		data, _ := json.MarshalIndent(wrapped, "", "  ")
		fmt.Fprintln(w, string(data))
	case config.OutputYAML:
		_ = encodeYAML(w, wrapped)
	default:
		// Text format: "Error: <message>" with the cause appended.
		if err.Err != nil {
			fmt.Fprintf(w, "Error: %s: %v\n", err.Message, err.Err)
		} else {
			fmt.Fprintf(w, "Error: %s\n", err.Message)
		}
	}
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return enc.Close()
}

// toCLIError maps an error from a run onto a CLIError carrying the exit
// code. Errors that already are CLIErrors keep their code.
func toCLIError(err error) *model.CLIError {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	// Order matters: a cancelled prompt can wrap a context error, and
	// loader and writer errors both wrap *fs.PathError.
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, model.ErrNothingToPrompt):
		return model.WrapCLIError(model.ExitNothingToPrompt,
			"nothing to reconcile: pass variable names or create the .env or sample file", err)
	case errors.Is(err, model.ErrInvalidName):
		return model.WrapCLIError(model.ExitInvalidConfig, "invalid variable name", err)
	case errors.Is(err, model.ErrPromptCancelled), errors.Is(err, context.Canceled):
		return model.WrapCLIError(model.ExitUserCancelled, "cancelled, the .env file was not modified", err)
	case errors.As(err, &pathErr):
		return model.WrapCLIError(model.ExitIOError, "file access failed", err)
	default:
		return model.NewCLIError(model.ExitGeneralError, err.Error())
	}
}
