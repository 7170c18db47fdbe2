package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fourchess/fourchess/shared/domain"
	internal_errors "github.com/fourchess/fourchess/shared/errors"
	sharedpg "github.com/fourchess/fourchess/shared/storage/pg"
)

const threadColumns = `id, board_id, author, title, body, created_at, last_activity, media_kind, media_encoding, media_path`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanThread(row rowScanner) (domain.Thread, error) {
	var t domain.Thread
	var kind, encoding, path sql.NullString
	if err := row.Scan(&t.Id, &t.Board, &t.Author, &t.Title, &t.Body, &t.CreatedAt, &t.LastActivity, &kind, &encoding, &path); err != nil {
		return t, err
	}
	if path.Valid {
		k, err := domain.ParseMediaKind(kind.String)
		if err != nil {
			return t, fmt.Errorf("thread %d: %w", t.Id, err)
		}
		t.Media = &domain.MediaRef{Kind: k, Encoding: domain.MediaEncoding(encoding.String), Path: path.String}
	}
	return t, nil
}

// CreateThread inserts a thread on an active board. created_at and
// last_activity start out equal.
func (s *Storage) CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.ThreadId, error) {
	var id domain.ThreadId
	err := sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		// FOR SHARE: a concurrent soft delete waits for this insert
		var active bool
		err := tx.QueryRowContext(ctx, `SELECT active FROM boards WHERE id = $1 FOR SHARE`, data.Board).Scan(&active)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && !active) {
			return internal_errors.Validation("Board not found")
		}
		if err != nil {
			return fmt.Errorf("failed to validate board: %w", err)
		}

		id, err = NextId(ctx, tx, domain.ThreadSequence)
		if err != nil {
			return err
		}

		var kind, encoding, path sql.NullString
		if data.Media != nil {
			kind = sql.NullString{String: data.Media.Kind.String(), Valid: true}
			encoding = sql.NullString{String: string(data.Media.Encoding), Valid: true}
			path = sql.NullString{String: data.Media.Path, Valid: true}
		}

		_, err = tx.ExecContext(ctx, `
            WITH clock AS (SELECT clock_timestamp() AS ts)
            INSERT INTO threads (id, board_id, author, title, body, created_at, last_activity, media_kind, media_encoding, media_path)
            SELECT $1::bigint, $2::integer, $3::text, $4::text, $5::text, clock.ts, clock.ts, $6::text, $7::text, $8::text FROM clock
        `, id, data.Board, data.Author, data.Title, data.Body, kind, encoding, path)
		if err != nil {
			if sharedpg.IsForeignKeyViolation(err) {
				return internal_errors.Validation("Board not found")
			}
			return fmt.Errorf("failed to insert thread: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Storage) GetThread(ctx context.Context, id domain.ThreadId) (*domain.Thread, error) {
	t, err := scanThread(s.db.QueryRowContext(ctx, `SELECT `+threadColumns+` FROM threads WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, internal_errors.NotFound("Thread not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thread: %w", err)
	}
	return &t, nil
}

// DeleteThread removes the thread; its replies go with it through the
// foreign key cascade.
func (s *Storage) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM threads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete thread: %w", err)
	}
	return expectOneRow(res, "Thread not found")
}

// GetAllMediaPaths lists media paths referenced by existing threads.
func (s *Storage) GetAllMediaPaths(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT media_path FROM threads WHERE media_path IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to query media paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan media path: %w", err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return paths, nil
}
