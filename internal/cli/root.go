// Package cli implements the cobra-based command line for dotenv-prompt.
//
// dotenv-prompt has a single command: the root command reconciles a .env
// file against its sample, prompting for each variable. This file defines
// that command and the process-level error handling. Rendering of results
// and errors lives in output.go.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/dotenv-prompt/internal/config"
	"github.com/shinji-kodama/dotenv-prompt/internal/logging"
	"github.com/shinji-kodama/dotenv-prompt/internal/model"
	"github.com/shinji-kodama/dotenv-prompt/internal/prompt"
	"github.com/shinji-kodama/dotenv-prompt/internal/reconcile"
)

// outputFormat is the format selected for the current invocation. Execute
// reads it to render errors the same way results are rendered.
var outputFormat = config.OutputText

// Version, Commit, and Date are set from the main package, which receives
// them through ldflags at build time.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates the dotenv-prompt command.
func NewRootCommand() *cobra.Command {
	outputFormat = config.OutputText

	rootCmd := &cobra.Command{
		Use:   "dotenv-prompt [flags] [NAME...]",
		Short: "Fill in a .env file from its sample by prompting for values",
		Long: `dotenv-prompt asks for the value of each variable in your .env file,
offering the current value (or the one from .env.sample when .env does not
exist yet) as the default. Only the variables you actually change are
rewritten; comments, ordering, and every other line stay as they were.

With NAME arguments, only those variables are prompted. Otherwise every
variable defined in the file is.

Examples:
  dotenv-prompt
  dotenv-prompt DB_HOST DB_PASSWORD
  dotenv-prompt -e config/.env -s config/.env.sample
  dotenv-prompt --yes --output json`,

		// Every positional argument is a variable name to prompt for.
		Args: cobra.ArbitraryArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		// A failed write or a cancelled prompt is not a usage mistake.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// Execute prints them itself, as text, JSON, or YAML to match
		// --output.
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// RunE returns an error to Execute, which maps it to an exit code.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args)
		},
	}

	// Flags are registered by the config package so that flag names,
	// config file keys, and DOTENV_PROMPT_* variables stay in sync.
	config.RegisterFlags(rootCmd.Flags())

	return rootCmd
}

// runRoot resolves settings, runs one reconciliation, and prints the result.
func runRoot(cmd *cobra.Command, args []string) error {
	// Step 1: Resolve settings. Any failure here is the user's input
	// (a bad flag value or config file), hence ExitInvalidConfig.
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return model.WrapCLIError(model.ExitInvalidConfig, "invalid configuration", err)
	}
	outputFormat = cfg.Output

	// Step 2: Build the logger. Logs go to stderr so that stdout carries
	// only the result, which scripts may parse with --output json.
	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: "auto",
		Output: cmd.ErrOrStderr(),
	})
	ctx := logging.WithLogger(cmd.Context(), &logger)

	if cfg.ConfigFile != "" {
		logger.Debug().Str("path", cfg.ConfigFile).Msg("config file loaded")
	}

	// Step 3: Positional names win over the "names" setting.
	names := args
	if len(names) == 0 {
		names = cfg.Names
	}

	// Step 4: Reconcile. Errors are returned as-is; their sentinels stay
	// in the %w chain so that Execute can tell them apart with errors.Is.
	result, err := reconcile.Run(ctx, reconcile.Options{
		EnvPath:    cfg.EnvFile,
		SamplePath: cfg.SampleFile,
		Names:      names,
		DryRun:     cfg.DryRun,
	}, newPrompter(cmd, cfg.AssumeYes))
	if err != nil {
		return err
	}

	return printResult(cmd.OutOrStdout(), cfg.Output, result, cfg.SampleFile)
}

// newPrompter picks the prompter for the command's input. A real file goes
// through prompt.ForTerminal so a TTY gets the interactive prompt; any
// other reader (tests, embedding) is read line by line.
func newPrompter(cmd *cobra.Command, assumeYes bool) prompt.Prompter {
	if in, ok := cmd.InOrStdin().(*os.File); ok {
		return prompt.ForTerminal(in, os.Stderr, assumeYes)
	}
	if assumeYes {
		return prompt.Defaults{}
	}
	return prompt.NewLine(cmd.InOrStdin(), cmd.ErrOrStderr())
}

// Execute runs the root command and exits the process with the exit code
// matching the error, if any. SIGINT and SIGTERM cancel the run's context.
func Execute(rootCmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err == nil {
		return
	}

	// Every error becomes a CLIError so it carries an exit code. Scripts
	// rely on the code to tell "nothing to do" (2) from a real failure.
	cliErr := toCLIError(err)
	printError(rootCmd.ErrOrStderr(), outputFormat, cliErr)
	os.Exit(int(cliErr.Code))
}
