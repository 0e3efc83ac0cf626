package reconcile

import (
	"context"
	"fmt"

	"github.com/shinji-kodama/dotenv-prompt/internal/logging"
	"github.com/shinji-kodama/dotenv-prompt/internal/prompt"
	"github.com/shinji-kodama/dotenv-prompt/internal/source"
)

// Options configures a single run. Zero values select the conventional
// file names and "prompt every baseline key".
type Options struct {
	// EnvPath is the .env file to reconcile (default ".env").
	EnvPath string

	// SamplePath is the template file (default ".env.sample").
	SamplePath string

	// Names lists the variables to prompt for, in order.
	Names []string

	// DryRun computes the result without writing.
	DryRun bool
}

// Result reports what a run did.
type Result struct {
	EnvPath            string   `json:"envFile" yaml:"envFile"`
	Action             Action   `json:"action" yaml:"action"`
	Changed            []string `json:"changed" yaml:"changed"`
	BaselineFromSample bool     `json:"baselineFromSample" yaml:"baselineFromSample"`
	DryRun             bool     `json:"dryRun" yaml:"dryRun"`

	// Content is the text that was (or, for a dry run, would be) written.
	// Empty for ActionUnchanged. It may hold secrets, so it is left out of
	// JSON and YAML output; text output prints it only for a dry run, where
	// the user asked to see it.
	Content string `json:"-" yaml:"-"`
}

// Run reconciles the .env file at opts.EnvPath against opts.SamplePath,
// asking p for every resolved name.
//
// Errors from loading, name resolution (model.ErrNothingToPrompt), the
// prompter, or the final write are returned as-is or wrapped with %w.
// The file is written at most once, and only after every answer is in.
func Run(ctx context.Context, opts Options, p prompt.Prompter) (*Result, error) {
	log := logging.FromContext(ctx)

	src, err := source.Load(ctx, opts.EnvPath, opts.SamplePath)
	if err != nil {
		return nil, err
	}

	baseline := SelectBaseline(src)
	log.Debug().
		Bool("from_sample", baseline.FromSample).
		Strs("keys", baseline.Env.Keys()).
		Msg("baseline selected")

	names, err := ResolveNames(opts.Names, baseline.Env)
	if err != nil {
		return nil, err
	}

	questions := BuildQuestions(names, baseline.Env)
	answers, err := p.Ask(ctx, questions)
	if err != nil {
		return nil, fmt.Errorf("failed to collect answers: %w", err)
	}

	changes := Diff(names, baseline.Env, answers)
	plan := Plan(baseline, changes)
	log.Debug().
		Str("action", plan.Action.String()).
		Strs("changed", changes.Names()).
		Msg("plan computed")

	result := &Result{
		EnvPath:            src.PrimaryPath,
		Action:             plan.Action,
		Changed:            changes.Names(),
		BaselineFromSample: baseline.FromSample,
		DryRun:             opts.DryRun,
		Content:            plan.Content,
	}

	if opts.DryRun {
		return result, nil
	}

	if err := Apply(src.PrimaryPath, plan); err != nil {
		return nil, err
	}
	if plan.Writes() {
		log.Info().Str("path", src.PrimaryPath).Str("action", plan.Action.String()).Msg("file written")
	}

	return result, nil
}

// Reconcile is Run without a result, for callers that only care whether it
// succeeded.
func Reconcile(ctx context.Context, envPath, samplePath string, names []string, p prompt.Prompter) error {
	_, err := Run(ctx, Options{EnvPath: envPath, SamplePath: samplePath, Names: names}, p)
	return err
}
