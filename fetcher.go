package threadbook

import "context"

// Fetcher retrieves the full rendered markup for a forum thread, with
// all posts inlined. Implementations request the forum's print view
// with a large page-size parameter to avoid pagination; one thread is
// one retrieval.
type Fetcher interface {
	// FetchThread returns the raw markup for the thread. Retrieval
	// failures are EUNAVAILABLE errors. The context controls timeout
	// and cancellation.
	FetchThread(ctx context.Context, threadID int) (string, error)

	// Close releases client resources.
	Close() error
}

// ThreadParser parses thread markup into a Thread.
type ThreadParser interface {
	// ParseThread locates every post element in rawHTML, in document
	// order, and assembles the Thread and its author ledger. Markup
	// with zero recognizable posts is EPARSE, as is any post missing
	// a required structural element; a single malformed post
	// invalidates the whole parse.
	ParseThread(rawHTML string, threadID int) (*Thread, error)
}
