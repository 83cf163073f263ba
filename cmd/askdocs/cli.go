package main

import (
	"context"
	"io"

	"github.com/askdocs/askdocs"
	"github.com/askdocs/askdocs/ingest"
	"github.com/rs/zerolog"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Config askdocs.Config
	Logger zerolog.Logger

	Pipeline *ingest.Pipeline
	Asker    askdocs.Asker
	History  askdocs.RunHistory
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Ingest IngestCmd `cmd:"" help:"Crawl a documentation site and index it"`
	Ask    AskCmd    `cmd:"" help:"Ask a question about the indexed documentation"`
	Serve  ServeCmd  `cmd:"" help:"Run the question answering HTTP API"`
	Runs   RunsCmd   `cmd:"" help:"List recent ingestion runs"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	URL     string `arg:"" optional:"" help:"Seed URL to crawl (defaults to BASE_URL)"`
	Archive string `short:"a" help:"Also save converted pages as markdown files in this directory"`
	Strict  bool   `help:"Abort the run on the first page or batch failure"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about the documentation"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Port int `short:"p" help:"Port to listen on (defaults to PORT)"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Limit int `short:"n" default:"10" help:"Number of runs to show"`
}
