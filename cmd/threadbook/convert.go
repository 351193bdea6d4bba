package main

import (
	"fmt"
	"os"

	"github.com/threadbook/threadbook"
	"github.com/threadbook/threadbook/convert"
	"github.com/threadbook/threadbook/epub"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	threadID, err := threadbook.ParseReference(c.Ref)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", threadbook.ErrorMessage(err))
		return err
	}

	cfg := c.pipelineConfig()
	cfg.KeepSpoilers = c.KeepSpoilers
	cfg.KeepQuotes = c.KeepQuotes
	cfg.PostsPerChapter = c.PostsPerChapter
	cfg.Concurrency = c.Concurrency

	pipeline := deps.NewPipeline(cfg)
	defer pipeline.Fetcher.Close()

	thread, err := pipeline.Fetch(deps.Ctx, threadID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", threadbook.ErrorMessage(err))
		return err
	}

	book, err := pipeline.BuildBook(deps.Ctx, thread, func(e convert.ProgressEvent) {
		fmt.Fprintf(deps.Stderr, "\rcleaning posts %d/%d", e.Completed, e.Total)
	})
	fmt.Fprintln(deps.Stderr)
	if err != nil {
		return err
	}

	output := c.Output
	if output == "" {
		output = fmt.Sprintf("thread-%d.epub", threadID)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := epub.NewWriter().WriteBook(deps.Ctx, book, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if c.Save {
		rec, err := pipeline.ArchiveThread(deps.Ctx, thread)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Archived as %s\n", rec.ID)
	}

	fmt.Fprintf(deps.Stdout, "Wrote %q (%d posts, %d chapters) to %s\n",
		book.Title, thread.Len(), len(book.Chapters), output)
	return nil
}
