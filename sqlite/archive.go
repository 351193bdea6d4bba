package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/threadbook/threadbook"
)

// Compile-time interface verification.
var _ threadbook.ArchiveService = (*ArchiveService)(nil)

// ArchiveService implements threadbook.ArchiveService using SQLite.
type ArchiveService struct {
	db *DB
}

// NewArchiveService creates a new ArchiveService.
func NewArchiveService(db *DB) *ArchiveService {
	return &ArchiveService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// CreateThread archives a thread snapshot with its posts in one
// transaction.
func (s *ArchiveService) CreateThread(ctx context.Context, rec *threadbook.ThreadRecord, posts []*threadbook.PostRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.FetchedAt = time.Now().UTC()
	rec.PostCount = len(posts)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO threads (id, thread_id, title, post_count, fetched_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.ID, rec.ThreadID, rec.Title, rec.PostCount, rec.FetchedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for _, p := range posts {
		p.ID = uuid.New().String()
		p.ThreadRecordID = rec.ID
		p.ContentHash = hashContent(p.Content)

		if err := p.Validate(); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO posts (id, thread_record_id, number, author, posted_at, content, content_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, p.ID, p.ThreadRecordID, p.Number, p.Author, p.PostedAt, p.Content, p.ContentHash)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindThreadByID retrieves an archived thread by record ID.
func (s *ArchiveService) FindThreadByID(ctx context.Context, id string) (*threadbook.ThreadRecord, error) {
	return s.findThread(ctx, "id = ?", id)
}

// FindThreadByThreadID retrieves the most recent archive of a forum
// thread.
func (s *ArchiveService) FindThreadByThreadID(ctx context.Context, threadID int) (*threadbook.ThreadRecord, error) {
	return s.findThread(ctx, "thread_id = ?", threadID)
}

func (s *ArchiveService) findThread(ctx context.Context, where string, arg any) (*threadbook.ThreadRecord, error) {
	var rec threadbook.ThreadRecord
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, thread_id, title, post_count, fetched_at
		FROM threads
		WHERE `+where+`
		ORDER BY fetched_at DESC
		LIMIT 1
	`, arg).Scan(&rec.ID, &rec.ThreadID, &rec.Title, &rec.PostCount, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, threadbook.Errorf(threadbook.ENOTFOUND, "archived thread not found")
	}
	if err != nil {
		return nil, err
	}

	rec.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindThreads lists archived threads, most recently fetched first.
func (s *ArchiveService) FindThreads(ctx context.Context) ([]*threadbook.ThreadRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, thread_id, title, post_count, fetched_at
		FROM threads
		ORDER BY fetched_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*threadbook.ThreadRecord
	for rows.Next() {
		var rec threadbook.ThreadRecord
		var fetchedAt string
		if err := rows.Scan(&rec.ID, &rec.ThreadID, &rec.Title, &rec.PostCount, &fetchedAt); err != nil {
			return nil, err
		}
		rec.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}
		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}

// FindPostRecords retrieves archived posts matching the filter,
// ordered by post number.
func (s *ArchiveService) FindPostRecords(ctx context.Context, filter threadbook.PostRecordFilter) ([]*threadbook.PostRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, thread_record_id, number, author, posted_at, content, content_hash FROM posts WHERE 1=1")

	if filter.ThreadRecordID != nil {
		query.WriteString(" AND thread_record_id = ?")
		args = append(args, *filter.ThreadRecordID)
	}
	if filter.Author != nil {
		query.WriteString(" AND author = ? COLLATE NOCASE")
		args = append(args, *filter.Author)
	}

	query.WriteString(" ORDER BY number ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*threadbook.PostRecord
	for rows.Next() {
		var p threadbook.PostRecord
		if err := rows.Scan(&p.ID, &p.ThreadRecordID, &p.Number, &p.Author, &p.PostedAt, &p.Content, &p.ContentHash); err != nil {
			return nil, err
		}
		posts = append(posts, &p)
	}
	return posts, rows.Err()
}

// DeleteThread removes an archived thread; posts cascade.
func (s *ArchiveService) DeleteThread(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM threads WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return threadbook.Errorf(threadbook.ENOTFOUND, "archived thread not found")
	}
	return nil
}
