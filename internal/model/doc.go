// Package model defines the domain types and value objects for the
// dotenv-prompt CLI.
//
// This package contains pure data structures with no external dependencies.
// EnvMap, Question, AnswerSet, and ChangeSet are ephemeral: they are built
// fresh for each reconciliation run from the raw .env and sample texts and
// discarded afterwards. Nothing is persisted except the rewritten file.
//
// The package also defines exit codes (ExitCode), a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling,
// and the sentinel errors the reconciliation core reports.
package model
