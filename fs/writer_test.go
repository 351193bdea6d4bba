package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadbook/threadbook"
	"github.com/threadbook/threadbook/fs"
)

func testThreadRecord() (*threadbook.ThreadRecord, []*threadbook.PostRecord) {
	rec := &threadbook.ThreadRecord{
		ID:        "rec-1",
		ThreadID:  42,
		Title:     "The Great Journey",
		PostCount: 2,
		FetchedAt: time.Date(2014, time.June, 10, 15, 30, 0, 0, time.UTC),
	}
	posts := []*threadbook.PostRecord{
		{
			ID:             "post-1",
			ThreadRecordID: "rec-1",
			Number:         1,
			Author:         "alice",
			PostedAt:       "2014-06-02T20:15:00Z",
			Content:        "It begins here.",
		},
		{
			ID:             "post-2",
			ThreadRecordID: "rec-1",
			Number:         2,
			Author:         "bob",
			Content:        "Subscribed.",
		},
	}
	return rec, posts
}

func TestFormatThread(t *testing.T) {
	t.Parallel()

	rec, posts := testThreadRecord()

	out := fs.FormatThread(rec, posts)

	assert.Contains(t, out, "title: The Great Journey")
	assert.Contains(t, out, "thread: 42")
	assert.Contains(t, out, "fetched: 2014-06-10")
	assert.Contains(t, out, "## 1. alice (2014-06-02T20:15:00Z)")
	assert.Contains(t, out, "It begins here.")
	assert.Contains(t, out, "## 2. bob\n", "posts without a timestamp omit the parenthetical")
}

func TestWriter_WriteThread(t *testing.T) {
	t.Parallel()

	t.Run("writes the thread file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		rec, posts := testThreadRecord()

		w := fs.NewWriter(dir)
		require.NoError(t, w.WriteThread(context.Background(), rec, posts))

		b, err := os.ReadFile(filepath.Join(dir, "thread-42.md"))
		require.NoError(t, err)
		assert.Equal(t, fs.FormatThread(rec, posts), string(b))
	})

	t.Run("rejects invalid records", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())

		err := w.WriteThread(context.Background(), &threadbook.ThreadRecord{}, nil)
		require.Error(t, err)
		assert.Equal(t, threadbook.EINVALID, threadbook.ErrorCode(err))
	})
}
