package main

import (
	"fmt"

	"github.com/threadbook/threadbook"
)

// Run executes the authors command.
func (c *AuthorsCmd) Run(deps *Dependencies) error {
	threadID, err := threadbook.ParseReference(c.Ref)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", threadbook.ErrorMessage(err))
		return err
	}

	pipeline := deps.NewPipeline(c.pipelineConfig())
	defer pipeline.Fetcher.Close()

	thread, err := pipeline.Fetch(deps.Ctx, threadID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", threadbook.ErrorMessage(err))
		return err
	}

	for _, a := range thread.RankAuthors(c.Exclude...) {
		marker := ""
		if a.IsOriginalPoster() {
			marker = "  (OP)"
		}
		fmt.Fprintf(deps.Stdout, "%5d  %s%s\n", a.PostCount(), a.Name(), marker)
	}
	return nil
}
