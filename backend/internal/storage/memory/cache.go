// Package memory keeps the active board list in process memory. It serves
// single-instance deployments that run without Redis.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/fourchess/fourchess/backend/internal/service"
	"github.com/fourchess/fourchess/shared/domain"
	"github.com/fourchess/fourchess/shared/logger"
)

var _ service.BoardCache = (*BoardCache)(nil)

type BoardCache struct {
	mu        sync.RWMutex
	boards    []domain.Board
	expiresAt time.Time
	gen       int64
	ttl       time.Duration
	now       func() time.Time
}

func NewBoardCache(ttl time.Duration) *BoardCache {
	return &BoardCache{ttl: ttl, now: time.Now}
}

// GetBoards returns a copy so callers cannot mutate the cached slice.
func (c *BoardCache) GetBoards(ctx context.Context) ([]domain.Board, int64, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.boards == nil || !c.now().Before(c.expiresAt) {
		return nil, c.gen, false, nil
	}
	return slices.Clone(c.boards), c.gen, true, nil
}

// SetBoards ignores boards read under an older generation.
func (c *BoardCache) SetBoards(ctx context.Context, gen int64, boards []domain.Board) error {
	fresh := slices.Clone(boards)
	if fresh == nil {
		fresh = []domain.Board{}
	}

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		logger.Log.Debug("stale board list dropped", "component", "board_cache", "gen", gen)
		return nil
	}
	c.boards = fresh
	c.expiresAt = c.now().Add(c.ttl)
	c.mu.Unlock()

	logger.Log.Debug("board cache updated", "component", "board_cache", "entries", len(fresh))
	return nil
}

func (c *BoardCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	c.boards = nil
	c.gen++
	c.mu.Unlock()
	return nil
}
