package threadbook

import (
	"context"
	"time"
)

// ThreadRecord is an archived snapshot of a parsed thread.
type ThreadRecord struct {
	ID        string    `json:"id"`
	ThreadID  int       `json:"threadId"`
	Title     string    `json:"title"`
	PostCount int       `json:"postCount"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *ThreadRecord) Validate() error {
	if r.ThreadID <= 0 {
		return Errorf(EINVALID, "thread record requires a positive thread id")
	}
	return nil
}

// PostRecord is an archived cleaned post.
type PostRecord struct {
	ID             string `json:"id"`
	ThreadRecordID string `json:"threadRecordId"`
	Number         int    `json:"number"`
	Author         string `json:"author"`

	// PostedAt is the resolved post timestamp in RFC 3339 form, or
	// empty when the timestamp did not fully resolve.
	PostedAt string `json:"postedAt,omitempty"`

	// Content is the cleaned post text.
	Content     string `json:"content"`
	ContentHash string `json:"contentHash"`
}

// Validate returns an error if the record contains invalid fields.
func (r *PostRecord) Validate() error {
	if r.ThreadRecordID == "" {
		return Errorf(EINVALID, "post record requires a thread record ID")
	}
	if r.Number < 1 {
		return Errorf(EINVALID, "post record number must be positive, got %d", r.Number)
	}
	if r.Author == "" {
		return Errorf(EINVALID, "post record author required")
	}
	return nil
}

// PostRecordFilter represents a filter for FindPostRecords.
type PostRecordFilter struct {
	ThreadRecordID *string `json:"threadRecordId"`
	Author         *string `json:"author"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ArchiveService persists parsed, cleaned threads so ebooks can be
// regenerated without re-fetching.
type ArchiveService interface {
	// CreateThread archives a thread snapshot and its posts.
	CreateThread(ctx context.Context, rec *ThreadRecord, posts []*PostRecord) error

	// FindThreadByID retrieves an archived thread by record ID.
	// Returns ENOTFOUND if it does not exist.
	FindThreadByID(ctx context.Context, id string) (*ThreadRecord, error)

	// FindThreadByThreadID retrieves the most recent archive of the
	// given forum thread. Returns ENOTFOUND if none exists.
	FindThreadByThreadID(ctx context.Context, threadID int) (*ThreadRecord, error)

	// FindThreads lists archived threads, most recently fetched
	// first.
	FindThreads(ctx context.Context) ([]*ThreadRecord, error)

	// FindPostRecords retrieves archived posts matching the filter,
	// ordered by post number.
	FindPostRecords(ctx context.Context, filter PostRecordFilter) ([]*PostRecord, error)

	// DeleteThread removes an archived thread and its posts.
	// Returns ENOTFOUND if it does not exist.
	DeleteThread(ctx context.Context, id string) error
}

// ThreadWriter exports an archived thread to an external
// representation (e.g., a markdown file).
type ThreadWriter interface {
	WriteThread(ctx context.Context, rec *ThreadRecord, posts []*PostRecord) error
}
