// Package mock provides mock implementations of threadbook interfaces
// for testing.
package mock

import (
	"context"

	"github.com/threadbook/threadbook"
)

var _ threadbook.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of threadbook.Fetcher.
type Fetcher struct {
	FetchThreadFn func(ctx context.Context, threadID int) (string, error)
	CloseFn       func() error
}

func (f *Fetcher) FetchThread(ctx context.Context, threadID int) (string, error) {
	return f.FetchThreadFn(ctx, threadID)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
