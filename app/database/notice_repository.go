package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/kunwoo0421/GovernmentSupportProject/app/notice"
)

// Batch size for upsert writes; keeps each transaction within the request
// limits of the storage boundary.
const upsertChunkSize = 100

// NoticeRepository handles database operations for canonical notices
type NoticeRepository struct {
	db *DB
}

// NewNoticeRepository creates a new notice repository
func NewNoticeRepository(db *DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// UpsertNotices writes the given notices in chunks, inserting new rows and
// overwriting existing ones keyed by URL. Later fetches of the same URL
// replace the stored state; no history is retained. A failed chunk is
// logged and does not abort later chunks.
func (r *NoticeRepository) UpsertNotices(ctx context.Context, notices []notice.Notice) error {
	chunks := 0
	failed := 0

	for start := 0; start < len(notices); start += upsertChunkSize {
		end := start + upsertChunkSize
		if end > len(notices) {
			end = len(notices)
		}
		chunks++

		if err := r.upsertChunk(ctx, notices[start:end]); err != nil {
			slog.Error("Failed to upsert chunk", "offset", start, "size", end-start, "error", err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d upsert chunks failed", failed, chunks)
	}
	return nil
}

func (r *NoticeRepository) upsertChunk(ctx context.Context, notices []notice.Notice) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, n := range notices {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO notices (
				id, title, agency, start_date, end_date,
				region, category, url, source, description, fetched_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (url) DO UPDATE SET
				id = excluded.id,
				title = excluded.title,
				agency = excluded.agency,
				start_date = excluded.start_date,
				end_date = excluded.end_date,
				region = excluded.region,
				category = excluded.category,
				source = excluded.source,
				description = excluded.description,
				fetched_at = excluded.fetched_at
		`, n.ID, n.Title, n.Agency, nullable(n.StartDate), nullable(n.EndDate),
			nullable(n.Region), nullable(n.Category), n.URL, n.Source,
			nullable(n.Description), n.FetchedAt)
		if err != nil {
			return fmt.Errorf("failed to upsert notice: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetAllNotices returns every stored notice, most recent start date first.
func (r *NoticeRepository) GetAllNotices(ctx context.Context) ([]notice.Notice, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, agency, COALESCE(start_date, ''), COALESCE(end_date, ''),
		       COALESCE(region, ''), COALESCE(category, ''), url, source,
		       COALESCE(description, ''), fetched_at
		FROM notices
		ORDER BY COALESCE(start_date, '') DESC, fetched_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get notices: %w", err)
	}
	defer rows.Close()

	var notices []notice.Notice
	for rows.Next() {
		var n notice.Notice
		err := rows.Scan(
			&n.ID, &n.Title, &n.Agency, &n.StartDate, &n.EndDate,
			&n.Region, &n.Category, &n.URL, &n.Source,
			&n.Description, &n.FetchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notice row: %w", err)
		}
		notices = append(notices, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notice rows: %w", err)
	}

	return notices, nil
}

// GetNoticeCount returns the total number of stored notices
func (r *NoticeRepository) GetNoticeCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notices").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get notice count: %w", err)
	}
	return count, nil
}

// GetSourceStats returns the number of stored notices per provenance label.
func (r *NoticeRepository) GetSourceStats(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT source, COUNT(*) FROM notices GROUP BY source ORDER BY source
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get source stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		stats[source] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stats rows: %w", err)
	}

	return stats, nil
}

// nullable maps the canonical "" to SQL NULL at the storage boundary.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
