package main

import (
	"fmt"
	"path/filepath"

	"github.com/threadbook/threadbook"
	"github.com/threadbook/threadbook/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	rec, err := deps.Archive.FindThreadByThreadID(deps.Ctx, c.Thread)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", threadbook.ErrorMessage(err))
		return err
	}

	posts, err := deps.Archive.FindPostRecords(deps.Ctx, threadbook.PostRecordFilter{
		ThreadRecordID: &rec.ID,
	})
	if err != nil {
		return err
	}

	writer := fs.NewWriter(c.Dir)
	if err := writer.WriteThread(deps.Ctx, rec, posts); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s\n", filepath.Join(c.Dir, fs.ThreadPath(rec)))
	return nil
}
