package service

import (
	"context"

	"github.com/fourchess/fourchess/shared/domain"
	"github.com/fourchess/fourchess/shared/logger"
)

// to mock service in tests
type BoardService interface {
	List(ctx context.Context) ([]domain.Board, error)
	ThreadPage(ctx context.Context, board domain.BoardId, page int) (*domain.ThreadPage, error)
}

type BoardStorage interface {
	ListActiveBoards(ctx context.Context) ([]domain.Board, error)
	ListThreads(ctx context.Context, board domain.BoardId, page, pageSize int) (*domain.ThreadPage, error)
	RenameBoard(ctx context.Context, id domain.BoardId, name domain.BoardName) error
	SoftDeleteBoard(ctx context.Context, id domain.BoardId) error
}

// BoardCache holds the active board list. Thread and reply reads are never
// cached.
//
// Every Invalidate advances a generation. GetBoards reports the current
// generation, and SetBoards drops the write when the generation it is given
// is no longer current, so a list read before a board mutation can never be
// stored after that mutation's invalidation.
type BoardCache interface {
	GetBoards(ctx context.Context) (boards []domain.Board, gen int64, ok bool, err error)
	SetBoards(ctx context.Context, gen int64, boards []domain.Board) error
	Invalidate(ctx context.Context) error
}

// NoopBoardCache stands in for a nil cache.
type NoopBoardCache struct{}

func (NoopBoardCache) GetBoards(context.Context) ([]domain.Board, int64, bool, error) {
	return nil, 0, false, nil
}
func (NoopBoardCache) SetBoards(context.Context, int64, []domain.Board) error { return nil }
func (NoopBoardCache) Invalidate(context.Context) error                     { return nil }

type Board struct {
	storage  BoardStorage
	cache    BoardCache
	pageSize int
}

func NewBoard(storage BoardStorage, cache BoardCache, pageSize int) *Board {
	if cache == nil {
		cache = NoopBoardCache{}
	}
	return &Board{storage: storage, cache: cache, pageSize: pageSize}
}

// List returns active boards ordered by id. Cache failures degrade to a
// storage read that is not written back.
func (b *Board) List(ctx context.Context) ([]domain.Board, error) {
	boards, gen, ok, cacheErr := b.cache.GetBoards(ctx)
	if cacheErr != nil {
		logger.Log.Warn("board cache read failed", "error", cacheErr)
	} else if ok {
		return boards, nil
	}

	boards, err := b.storage.ListActiveBoards(ctx)
	if err != nil {
		return nil, err
	}
	if cacheErr == nil {
		if err := b.cache.SetBoards(ctx, gen, boards); err != nil {
			logger.Log.Warn("board cache write failed", "error", err)
		}
	}
	return boards, nil
}

func (b *Board) ThreadPage(ctx context.Context, board domain.BoardId, page int) (*domain.ThreadPage, error) {
	return b.storage.ListThreads(ctx, board, max(1, page), b.pageSize)
}
