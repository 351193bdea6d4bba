package mock

import (
	"context"

	"github.com/threadbook/threadbook"
)

var _ threadbook.ArchiveService = (*ArchiveService)(nil)

// ArchiveService is a mock implementation of threadbook.ArchiveService.
type ArchiveService struct {
	CreateThreadFn         func(ctx context.Context, rec *threadbook.ThreadRecord, posts []*threadbook.PostRecord) error
	FindThreadByIDFn       func(ctx context.Context, id string) (*threadbook.ThreadRecord, error)
	FindThreadByThreadIDFn func(ctx context.Context, threadID int) (*threadbook.ThreadRecord, error)
	FindThreadsFn          func(ctx context.Context) ([]*threadbook.ThreadRecord, error)
	FindPostRecordsFn      func(ctx context.Context, filter threadbook.PostRecordFilter) ([]*threadbook.PostRecord, error)
	DeleteThreadFn         func(ctx context.Context, id string) error
}

func (s *ArchiveService) CreateThread(ctx context.Context, rec *threadbook.ThreadRecord, posts []*threadbook.PostRecord) error {
	return s.CreateThreadFn(ctx, rec, posts)
}

func (s *ArchiveService) FindThreadByID(ctx context.Context, id string) (*threadbook.ThreadRecord, error) {
	return s.FindThreadByIDFn(ctx, id)
}

func (s *ArchiveService) FindThreadByThreadID(ctx context.Context, threadID int) (*threadbook.ThreadRecord, error) {
	return s.FindThreadByThreadIDFn(ctx, threadID)
}

func (s *ArchiveService) FindThreads(ctx context.Context) ([]*threadbook.ThreadRecord, error) {
	return s.FindThreadsFn(ctx)
}

func (s *ArchiveService) FindPostRecords(ctx context.Context, filter threadbook.PostRecordFilter) ([]*threadbook.PostRecord, error) {
	return s.FindPostRecordsFn(ctx, filter)
}

func (s *ArchiveService) DeleteThread(ctx context.Context, id string) error {
	return s.DeleteThreadFn(ctx, id)
}
