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

// CreateReply inserts the reply and bumps the thread's last activity to the
// reply's creation time, in one transaction.
func (s *Storage) CreateReply(ctx context.Context, data domain.ReplyCreationData) (domain.ReplyId, error) {
	var id domain.ReplyId
	err := sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		// Row lock serializes concurrent replies to one thread, so the bump
		// below always sees the latest activity.
		var threadId domain.ThreadId
		err := tx.QueryRowContext(ctx, `SELECT id FROM threads WHERE id = $1 FOR UPDATE`, data.Thread).Scan(&threadId)
		if errors.Is(err, sql.ErrNoRows) {
			return internal_errors.NotFound("Thread not found")
		}
		if err != nil {
			return fmt.Errorf("failed to lock thread: %w", err)
		}

		id, err = NextId(ctx, tx, domain.ReplySequence)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
            INSERT INTO replies (id, thread_id, author, body, created_at)
            VALUES ($1, $2, $3, $4, clock_timestamp())
        `, id, data.Thread, data.Author, data.Body)
		if err != nil {
			return fmt.Errorf("failed to insert reply: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
            UPDATE threads t
            SET last_activity = GREATEST(t.last_activity, r.created_at)
            FROM replies r
            WHERE t.id = $1 AND r.id = $2
        `, data.Thread, id)
		if err != nil {
			return fmt.Errorf("failed to bump thread: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Storage) GetReply(ctx context.Context, id domain.ReplyId) (*domain.Reply, error) {
	var r domain.Reply
	err := s.db.QueryRowContext(ctx,
		`SELECT id, thread_id, author, body, created_at FROM replies WHERE id = $1`, id,
	).Scan(&r.Id, &r.Thread, &r.Author, &r.Body, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, internal_errors.NotFound("Reply not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reply: %w", err)
	}
	return &r, nil
}

// ListReplies returns the thread's replies in creation order. A missing
// thread is NotFound rather than an empty list.
func (s *Storage) ListReplies(ctx context.Context, threadId domain.ThreadId) ([]domain.Reply, error) {
	var replies []domain.Reply
	err := sharedpg.WithReadTx(ctx, s.db, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM threads WHERE id = $1)`, threadId).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check thread: %w", err)
		}
		if !exists {
			return internal_errors.NotFound("Thread not found")
		}

		rows, err := tx.QueryContext(ctx,
			`SELECT id, thread_id, author, body, created_at FROM replies WHERE thread_id = $1 ORDER BY id`, threadId)
		if err != nil {
			return fmt.Errorf("failed to query replies: %w", err)
		}
		defer rows.Close()

		replies = []domain.Reply{}
		for rows.Next() {
			var r domain.Reply
			if err := rows.Scan(&r.Id, &r.Thread, &r.Author, &r.Body, &r.CreatedAt); err != nil {
				return fmt.Errorf("failed to scan reply: %w", err)
			}
			replies = append(replies, r)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return replies, nil
}

// DeleteReply removes a single reply. The thread's last activity is left
// as it is.
func (s *Storage) DeleteReply(ctx context.Context, id domain.ReplyId) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM replies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reply: %w", err)
	}
	return expectOneRow(res, "Reply not found")
}
