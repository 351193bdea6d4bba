package mock

import (
	"context"
	"io"

	"github.com/threadbook/threadbook"
)

var _ threadbook.BookWriter = (*BookWriter)(nil)

// BookWriter is a mock implementation of threadbook.BookWriter.
type BookWriter struct {
	WriteBookFn func(ctx context.Context, book *threadbook.Book, w io.Writer) error
}

func (b *BookWriter) WriteBook(ctx context.Context, book *threadbook.Book, w io.Writer) error {
	return b.WriteBookFn(ctx, book, w)
}
