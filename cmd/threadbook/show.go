package main

import (
	"fmt"

	"github.com/threadbook/threadbook"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
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

	post, err := thread.Post(c.Index)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", threadbook.ErrorMessage(err))
		return err
	}

	var text string
	if c.Markdown {
		text, err = deps.Converter.Convert(post.RawContent())
	} else {
		text, err = post.CleanContent(pipeline.Cleaner, pipeline.Options)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "#%d %s\n\n%s\n", post.Number(), post.Author().Name(), text)
	return nil
}
