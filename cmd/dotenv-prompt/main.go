// Package main is the entry point for the dotenv-prompt CLI.
//
// All behavior lives in internal/cli. Build-time variables (version,
// commit, date) are injected via ldflags during the release build and
// default to "dev", "none", and "unknown".
package main

import (
	"github.com/shinji-kodama/dotenv-prompt/internal/cli"
)

// Set at build time, e.g.
//
//	go build -ldflags "-X main.version=1.2.0 -X main.commit=$(git rev-parse --short HEAD)"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewRootCommand())
}
