package mock

import (
	"context"

	"github.com/threadbook/threadbook"
)

var _ threadbook.ThreadWriter = (*ThreadWriter)(nil)

// ThreadWriter is a mock implementation of threadbook.ThreadWriter.
type ThreadWriter struct {
	WriteThreadFn func(ctx context.Context, rec *threadbook.ThreadRecord, posts []*threadbook.PostRecord) error
}

func (w *ThreadWriter) WriteThread(ctx context.Context, rec *threadbook.ThreadRecord, posts []*threadbook.PostRecord) error {
	return w.WriteThreadFn(ctx, rec, posts)
}
