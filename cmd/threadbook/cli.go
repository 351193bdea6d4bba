package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/threadbook/threadbook"
	"github.com/threadbook/threadbook/convert"
)

// Dependencies holds all services and configuration for command
// execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Archive   threadbook.ArchiveService
	Converter threadbook.Converter

	// NewPipeline builds a conversion pipeline from per-command
	// flags. Tests substitute a factory with mock collaborators.
	NewPipeline func(cfg PipelineConfig) *convert.Pipeline
}

// PipelineConfig carries the fetch/parse/clean flags shared by the
// thread-fetching commands.
type PipelineConfig struct {
	BaseURL         string
	DateLayout      string
	TimeLayout      string
	KeepSpoilers    bool
	KeepQuotes      bool
	PostsPerChapter int
	Concurrency     int
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable informational logging"`

	Convert ConvertCmd `cmd:"" help:"Convert a thread into an EPUB"`
	Authors AuthorsCmd `cmd:"" help:"List a thread's authors ranked by post count"`
	Show    ShowCmd    `cmd:"" help:"Print one cleaned post"`
	Archive ArchiveCmd `cmd:"" help:"Fetch a thread and save it to the archive"`
	List    ListCmd    `cmd:"" help:"List archived threads"`
	Export  ExportCmd  `cmd:"" help:"Export an archived thread as a markdown file"`
}

// fetchFlags are shared by every command that retrieves a thread.
type fetchFlags struct {
	Forum      string `env:"THREADBOOK_FORUM" required:"" help:"Forum base URL (scheme and host)"`
	DateFormat string `help:"Go reference layout for absolute post dates"`
	TimeFormat string `help:"Go reference layout for post times"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	Ref string `arg:"" help:"Thread id or thread URL"`
	fetchFlags
	Output          string `short:"o" help:"Output file (defaults to thread-<id>.epub)"`
	KeepSpoilers    bool   `help:"Keep spoiler text inline instead of removing it"`
	KeepQuotes      bool   `help:"Keep quoted text inline instead of removing it"`
	PostsPerChapter int    `default:"25" help:"Posts grouped into one chapter"`
	Concurrency     int    `short:"c" default:"4" help:"Concurrent post cleaning limit"`
	Save            bool   `help:"Also save the thread to the archive"`
}

// AuthorsCmd is the "authors" subcommand.
type AuthorsCmd struct {
	Ref string `arg:"" help:"Thread id or thread URL"`
	fetchFlags
	Exclude []string `short:"x" help:"Author names to leave out (repeatable)"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Ref   string `arg:"" help:"Thread id or thread URL"`
	Index int    `arg:"" help:"Post index (negative counts from the end)"`
	fetchFlags
	KeepSpoilers bool `help:"Keep spoiler text inline instead of removing it"`
	KeepQuotes   bool `help:"Keep quoted text inline instead of removing it"`
	Markdown     bool `short:"m" help:"Render the post's original markup as Markdown instead of cleaning it"`
}

// ArchiveCmd is the "archive" subcommand.
type ArchiveCmd struct {
	Ref string `arg:"" help:"Thread id or thread URL"`
	fetchFlags
	KeepSpoilers bool `help:"Keep spoiler text inline instead of removing it"`
	KeepQuotes   bool `help:"Keep quoted text inline instead of removing it"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Thread int    `arg:"" help:"Forum thread id of an archived thread"`
	Dir    string `default:"." help:"Output directory"`
}

func (f fetchFlags) pipelineConfig() PipelineConfig {
	return PipelineConfig{
		BaseURL:    f.Forum,
		DateLayout: f.DateFormat,
		TimeLayout: f.TimeFormat,
	}
}
