package main

import (
	"fmt"

	"github.com/threadbook/threadbook"
)

// Run executes the archive command.
func (c *ArchiveCmd) Run(deps *Dependencies) error {
	threadID, err := threadbook.ParseReference(c.Ref)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", threadbook.ErrorMessage(err))
		return err
	}

	cfg := c.pipelineConfig()
	cfg.KeepSpoilers = c.KeepSpoilers
	cfg.KeepQuotes = c.KeepQuotes

	pipeline := deps.NewPipeline(cfg)
	defer pipeline.Fetcher.Close()

	thread, err := pipeline.Fetch(deps.Ctx, threadID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", threadbook.ErrorMessage(err))
		return err
	}

	rec, err := pipeline.ArchiveThread(deps.Ctx, thread)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Archived thread %d (%d posts) as %s\n", rec.ThreadID, rec.PostCount, rec.ID)
	return nil
}
