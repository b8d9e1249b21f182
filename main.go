package main

import "github.com/dpshade/srs-wizard/internal/cli"

// Set via -ldflags "-X main.version=... -X main.commit=... -X main.buildDate=..."
var (
	version   = "0.1.0"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.BuildDate = buildDate
	cli.Execute()
}
