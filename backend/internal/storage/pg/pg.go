package pg

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/fourchess/fourchess/shared/config"
	"github.com/fourchess/fourchess/shared/domain"
	"github.com/fourchess/fourchess/shared/logger"
	sharedpg "github.com/fourchess/fourchess/shared/storage/pg"
)

//go:embed migrations/init.sql
var initSQL string

type Storage struct {
	db *sql.DB
}

func New(ctx context.Context, cfg config.Pg) (*Storage, error) {
	logger.Log.Info("connecting to database", "host", cfg.Host, "port", cfg.Port, "dbname", cfg.Dbname)
	db, err := sharedpg.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to database")
	return &Storage{db: db}, nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate creates the schema if it does not exist yet.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, initSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// SeedBoards inserts the static board registry. Existing rows are left
// alone so renames and soft deletes survive restarts.
func (s *Storage) SeedBoards(ctx context.Context, boards []domain.BoardInfo) error {
	return sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, b := range boards {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO boards (id, name, active) VALUES ($1, $2, TRUE) ON CONFLICT (id) DO NOTHING`,
				b.Id, b.Name)
			if err != nil {
				return fmt.Errorf("failed to seed board %d: %w", b.Id, err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				logger.Log.Info("seeded board", "board_id", b.Id, "name", b.Name)
			}
		}
		return nil
	})
}
