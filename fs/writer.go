// Package fs provides file-based export of archived threads.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/threadbook/threadbook"
)

// Ensure Writer implements threadbook.ThreadWriter at compile time.
var _ threadbook.ThreadWriter = (*Writer)(nil)

// Writer writes archived threads as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// ThreadPath returns the relative file name for an archived thread.
func ThreadPath(rec *threadbook.ThreadRecord) string {
	return fmt.Sprintf("thread-%d.md", rec.ThreadID)
}

// FormatThread formats an archived thread with YAML frontmatter and
// one section per post.
func FormatThread(rec *threadbook.ThreadRecord, posts []*threadbook.PostRecord) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: ")
	b.WriteString(rec.Title)
	b.WriteString("\nthread: ")
	fmt.Fprintf(&b, "%d", rec.ThreadID)
	b.WriteString("\nfetched: ")
	b.WriteString(rec.FetchedAt.Format("2006-01-02"))
	b.WriteString("\n---\n")

	for _, p := range posts {
		fmt.Fprintf(&b, "\n## %d. %s", p.Number, p.Author)
		if p.PostedAt != "" {
			fmt.Fprintf(&b, " (%s)", p.PostedAt)
		}
		b.WriteString("\n\n")
		b.WriteString(p.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// WriteThread writes an archived thread to disk as a markdown file.
func (w *Writer) WriteThread(ctx context.Context, rec *threadbook.ThreadRecord, posts []*threadbook.PostRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, ThreadPath(rec))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatThread(rec, posts)), 0644)
}
