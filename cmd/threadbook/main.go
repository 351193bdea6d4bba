// Command threadbook converts vBulletin forum threads into ebooks.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/threadbook/threadbook"
	"github.com/threadbook/threadbook/convert"
	tbgoquery "github.com/threadbook/threadbook/goquery"
	"github.com/threadbook/threadbook/htmltomarkdown"
	tbhttp "github.com/threadbook/threadbook/http"
	"github.com/threadbook/threadbook/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Archive database path. Set before calling Run().
	DBPath string

	// SQLite database backing the archive.
	DB *sqlite.DB

	// Archive for end-to-end testing.
	Archive threadbook.ArchiveService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("threadbook"),
		kong.Description("Absorb a forum thread and turn it into an ebook."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'threadbook --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open archive database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set THREADBOOK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.Archive = sqlite.NewArchiveService(m.DB)
	deps.Archive = m.Archive
	deps.Converter = htmltomarkdown.NewConverter()

	deps.NewPipeline = func(cfg PipelineConfig) *convert.Pipeline {
		var popts []tbgoquery.ParserOption
		if cfg.DateLayout != "" {
			popts = append(popts, tbgoquery.WithDateLayout(cfg.DateLayout))
		}
		if cfg.TimeLayout != "" {
			popts = append(popts, tbgoquery.WithTimeLayout(cfg.TimeLayout))
		}

		opts := threadbook.DefaultCleanOptions()
		if cfg.KeepSpoilers {
			opts.Spoilers = threadbook.SpoilerFlatten
		}
		if cfg.KeepQuotes {
			opts.Quotes = threadbook.QuoteFlatten
		}

		return &convert.Pipeline{
			Fetcher: tbhttp.NewFetcher(cfg.BaseURL,
				tbhttp.WithLogger(deps.Logger),
				tbhttp.WithRequestsPerSecond(1)),
			Parser:          tbgoquery.NewParser(popts...),
			Cleaner:         tbgoquery.NewCleaner(),
			Archive:         deps.Archive,
			Options:         opts,
			PostsPerChapter: cfg.PostsPerChapter,
			Concurrency:     cfg.Concurrency,
			Logger:          deps.Logger,
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("THREADBOOK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "threadbook.db"
	}
	dir := filepath.Join(home, ".threadbook")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "threadbook.db")
}
