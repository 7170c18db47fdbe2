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

func (s *Storage) ListActiveBoards(ctx context.Context) ([]domain.Board, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, active FROM boards WHERE active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	boards := []domain.Board{}
	for rows.Next() {
		var b domain.Board
		if err := rows.Scan(&b.Id, &b.Name, &b.Active); err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return boards, nil
}

func getBoard(ctx context.Context, q sharedpg.Querier, id domain.BoardId) (domain.Board, error) {
	var b domain.Board
	err := q.QueryRowContext(ctx, `SELECT id, name, active FROM boards WHERE id = $1`, id).Scan(&b.Id, &b.Name, &b.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return b, internal_errors.NotFound("Board not found")
	}
	if err != nil {
		return b, fmt.Errorf("failed to fetch board: %w", err)
	}
	return b, nil
}

// ListThreads returns one page of an active board's threads, most recently
// active first. Count and page come from the same snapshot.
func (s *Storage) ListThreads(ctx context.Context, boardId domain.BoardId, page, pageSize int) (*domain.ThreadPage, error) {
	var result *domain.ThreadPage
	err := sharedpg.WithReadTx(ctx, s.db, func(tx *sql.Tx) error {
		board, err := getBoard(ctx, tx, boardId)
		if err != nil {
			return err
		}
		if !board.Active {
			return internal_errors.NotFound("Board not found")
		}

		var total int
		if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM threads WHERE board_id = $1`, boardId).Scan(&total); err != nil {
			return fmt.Errorf("failed to count threads: %w", err)
		}
		window := domain.NewPageWindow(total, pageSize, page)

		rows, err := tx.QueryContext(ctx, `
            SELECT `+threadColumns+`
            FROM threads
            WHERE board_id = $1
            ORDER BY last_activity DESC, id DESC
            LIMIT $2 OFFSET $3
        `, boardId, window.Limit, window.Offset)
		if err != nil {
			return fmt.Errorf("failed to query threads: %w", err)
		}
		defer rows.Close()

		threads := []domain.Thread{}
		for rows.Next() {
			t, err := scanThread(rows)
			if err != nil {
				return err
			}
			threads = append(threads, t)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows iteration error: %w", err)
		}

		result = &domain.ThreadPage{
			Board:        board,
			Threads:      threads,
			Page:         window.Page,
			PageSize:     window.Limit,
			TotalThreads: total,
			TotalPages:   window.TotalPages,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Storage) RenameBoard(ctx context.Context, id domain.BoardId, name domain.BoardName) error {
	res, err := s.db.ExecContext(ctx, `UPDATE boards SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return fmt.Errorf("failed to rename board: %w", err)
	}
	return expectOneRow(res, "Board not found")
}

// SoftDeleteBoard clears the active flag. Boards are never re-activated.
func (s *Storage) SoftDeleteBoard(ctx context.Context, id domain.BoardId) error {
	res, err := s.db.ExecContext(ctx, `UPDATE boards SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate board: %w", err)
	}
	return expectOneRow(res, "Board not found")
}

func expectOneRow(res sql.Result, notFound string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return internal_errors.NotFound(notFound)
	}
	return nil
}
