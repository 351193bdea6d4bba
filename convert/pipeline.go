// Package convert orchestrates thread-to-book conversion: fetch the
// thread markup, parse it into a Thread, clean every post, and
// assemble the cleaned posts into book chapters.
package convert

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/threadbook/threadbook"
	"golang.org/x/sync/errgroup"
)

// DefaultPostsPerChapter groups this many posts into one chapter.
const DefaultPostsPerChapter = 25

// DefaultConcurrency bounds concurrent post cleaning.
const DefaultConcurrency = 4

// Pipeline converts forum threads into books.
type Pipeline struct {
	Fetcher threadbook.Fetcher
	Parser  threadbook.ThreadParser
	Cleaner threadbook.Cleaner

	// Archive, when set, receives a snapshot of every converted
	// thread.
	Archive threadbook.ArchiveService

	// Options configure post cleaning. The pipeline adds b/i/u to
	// IgnoreTags so emphasis survives into chapter markup.
	Options threadbook.CleanOptions

	PostsPerChapter int
	Concurrency     int

	Logger *slog.Logger
}

// ProgressEvent reports progress while posts are cleaned.
type ProgressEvent struct {
	Completed int
	Total     int
	Post      int
}

// ProgressFunc is a callback for reporting conversion progress.
type ProgressFunc func(event ProgressEvent)

// Fetch retrieves and parses a thread.
func (p *Pipeline) Fetch(ctx context.Context, threadID int) (*threadbook.Thread, error) {
	markup, err := p.Fetcher.FetchThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	thread, err := p.Parser.ParseThread(markup, threadID)
	if err != nil {
		return nil, err
	}
	p.logger().Info("thread parsed",
		"thread_id", threadID,
		"title", thread.Title(),
		"posts", thread.Len(),
		"authors", len(thread.Authors()))
	return thread, nil
}

// Run fetches, parses and converts a thread into a Book.
func (p *Pipeline) Run(ctx context.Context, threadID int, progress ProgressFunc) (*threadbook.Book, error) {
	thread, err := p.Fetch(ctx, threadID)
	if err != nil {
		return nil, err
	}
	return p.BuildBook(ctx, thread, progress)
}

// BuildBook cleans every post and assembles the book. Posts are
// cleaned concurrently; each Post caches its own result, and the
// Thread itself is read-only here, so no further coordination is
// needed.
func (p *Pipeline) BuildBook(ctx context.Context, thread *threadbook.Thread, progress ProgressFunc) (*threadbook.Book, error) {
	posts := thread.Posts()
	opts := p.cleanOptions()

	texts := make([]string, len(posts))
	var completed int

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency())
	done := make(chan int, len(posts))

	for i, post := range posts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := post.CleanContent(p.Cleaner, opts)
			if err != nil {
				return fmt.Errorf("clean post %d: %w", post.Number(), err)
			}
			texts[i] = text
			done <- post.Number()
			return nil
		})
	}

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for number := range done {
			completed++
			if progress != nil {
				progress(ProgressEvent{Completed: completed, Total: len(posts), Post: number})
			}
		}
	}()

	err := g.Wait()
	close(done)
	<-finished
	if err != nil {
		return nil, err
	}

	book := &threadbook.Book{
		ID:        uuid.New().String(),
		Title:     bookTitle(thread),
		ThreadID:  thread.ID(),
		CreatedAt: time.Now().UTC(),
	}
	for _, a := range thread.RankAuthors() {
		book.Authors = append(book.Authors, a.Name())
	}

	per := p.postsPerChapter()
	for start := 0; start < len(posts); start += per {
		end := min(start+per, len(posts))

		var body strings.Builder
		for i := start; i < end; i++ {
			writePostSection(&body, posts[i], texts[i], opts.IgnoreTags)
		}

		number := len(book.Chapters) + 1
		book.Chapters = append(book.Chapters, threadbook.Chapter{
			Number: number,
			Title:  fmt.Sprintf("Posts %d–%d", posts[start].Number(), posts[end-1].Number()),
			Body:   body.String(),
		})
	}

	p.logger().Info("book assembled",
		"thread_id", thread.ID(),
		"chapters", len(book.Chapters),
		"posts", len(posts))
	return book, nil
}

// ArchiveThread snapshots a converted thread into the archive. The
// posts' clean content is served from their caches when BuildBook ran
// first.
func (p *Pipeline) ArchiveThread(ctx context.Context, thread *threadbook.Thread) (*threadbook.ThreadRecord, error) {
	if p.Archive == nil {
		return nil, threadbook.Errorf(threadbook.EINVALID, "no archive configured")
	}

	opts := p.cleanOptions()
	rec := &threadbook.ThreadRecord{
		ThreadID: thread.ID(),
		Title:    bookTitle(thread),
	}

	var records []*threadbook.PostRecord
	for _, post := range thread.Posts() {
		text, err := post.CleanContent(p.Cleaner, opts)
		if err != nil {
			return nil, fmt.Errorf("clean post %d: %w", post.Number(), err)
		}
		r := &threadbook.PostRecord{
			Number:  post.Number(),
			Author:  post.Author().Name(),
			Content: text,
		}
		if at, ok := post.Timestamp().DateTime(time.UTC); ok {
			r.PostedAt = at.Format(time.RFC3339)
		}
		records = append(records, r)
	}

	if err := p.Archive.CreateThread(ctx, rec, records); err != nil {
		return nil, err
	}
	return rec, nil
}

func (p *Pipeline) cleanOptions() threadbook.CleanOptions {
	opts := p.Options
	for _, tag := range []string{"b", "i", "u"} {
		if !containsFold(opts.IgnoreTags, tag) {
			opts.IgnoreTags = append(opts.IgnoreTags, tag)
		}
	}
	return opts
}

func (p *Pipeline) concurrency() int {
	if p.Concurrency > 0 {
		return p.Concurrency
	}
	return DefaultConcurrency
}

func (p *Pipeline) postsPerChapter() int {
	if p.PostsPerChapter > 0 {
		return p.PostsPerChapter
	}
	return DefaultPostsPerChapter
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func bookTitle(thread *threadbook.Thread) string {
	if t := thread.Title(); t != "" {
		return t
	}
	return fmt.Sprintf("Thread %d", thread.ID())
}

func containsFold(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// writePostSection renders one cleaned post as an XHTML section. The
// cleaned text is escaped wholesale, then the literal markers kept by
// IgnoreTags are unescaped back into markup and newlines become line
// breaks.
func writePostSection(b *strings.Builder, post *threadbook.Post, text string, ignoreTags []string) {
	fmt.Fprintf(b, "<h3>#%d — %s</h3>\n<p>", post.Number(), html.EscapeString(post.Author().Name()))

	escaped := html.EscapeString(text)
	for _, tag := range ignoreTags {
		tag = strings.ToLower(tag)
		escaped = strings.ReplaceAll(escaped, html.EscapeString("<"+tag+">"), "<"+tag+">")
		escaped = strings.ReplaceAll(escaped, html.EscapeString("</"+tag+">"), "</"+tag+">")
	}
	escaped = strings.ReplaceAll(escaped, "\n", "<br/>\n")

	b.WriteString(escaped)
	b.WriteString("</p>\n")
}
