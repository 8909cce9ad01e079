package main

import (
	"context"
	"os"

	"github.com/rpggio/quotedesk/internal/cli"
)

// Set with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version, cli.Commit, cli.Date = version, commit, date
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
