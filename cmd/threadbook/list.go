package main

import (
	"fmt"

	"github.com/threadbook/threadbook"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	recs, err := deps.Archive.FindThreads(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", threadbook.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No archived threads. Use 'threadbook archive' to create one.")
		return nil
	}

	for _, r := range recs {
		fmt.Fprintf(deps.Stdout, "%s  %d  %q  %d posts  %s\n",
			r.ID, r.ThreadID, r.Title, r.PostCount, r.FetchedAt.Format("2006-01-02"))
	}
	return nil
}
