package threadbook

import (
	"context"
	"io"
	"time"
)

// Book is the assembled ebook content for one thread, ready for
// packaging.
type Book struct {
	// ID is the book's unique identifier (a UUID), used as the
	// package identifier by ebook writers.
	ID string

	// Title is the thread title, or a fallback derived from the
	// thread id.
	Title string

	// ThreadID is the source thread's external identifier.
	ThreadID int

	// Authors lists contributing author names in ranked order.
	Authors []string

	Chapters  []Chapter
	CreatedAt time.Time
}

// Chapter is one chapter of a Book.
type Chapter struct {
	// Number is the 1-based chapter number.
	Number int

	Title string

	// Body is the chapter content as an XHTML fragment.
	Body string
}

// Validate returns an error if the book cannot be packaged.
func (b *Book) Validate() error {
	if b.ID == "" {
		return Errorf(EINVALID, "book ID required")
	}
	if b.Title == "" {
		return Errorf(EINVALID, "book title required")
	}
	if len(b.Chapters) == 0 {
		return Errorf(EINVALID, "book has no chapters")
	}
	return nil
}

// BookWriter packages a Book into an ebook format.
type BookWriter interface {
	// WriteBook writes the packaged book to w.
	WriteBook(ctx context.Context, book *Book, w io.Writer) error
}
