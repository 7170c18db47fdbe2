package service

import (
	"context"
	"fmt"

	"github.com/fourchess/fourchess/shared/domain"
	"github.com/fourchess/fourchess/shared/errors"
	"github.com/fourchess/fourchess/shared/logger"
)

type ModerationService interface {
	DeleteThread(ctx context.Context, secret string, id domain.ThreadId) error
	DeleteReply(ctx context.Context, secret string, id domain.ReplyId) error
	RenameBoard(ctx context.Context, secret string, id domain.BoardId, name string) error
	SoftDeleteBoard(ctx context.Context, secret string, id domain.BoardId) error
}

// Moderation runs privileged mutations. Every method checks the secret
// before touching storage.
type Moderation struct {
	gate    Authorizer
	threads ThreadStorage
	replies ReplyStorage
	boards  BoardStorage
	cache   BoardCache
}

func NewModeration(gate Authorizer, threads ThreadStorage, replies ReplyStorage, boards BoardStorage, cache BoardCache) *Moderation {
	if cache == nil {
		cache = NoopBoardCache{}
	}
	return &Moderation{gate: gate, threads: threads, replies: replies, boards: boards, cache: cache}
}

func (m *Moderation) authorize(secret, action string) error {
	if !m.gate.Authorize(secret) {
		logger.Log.Warn("rejected moderation attempt", "action", action)
		return errors.Forbidden("Invalid password")
	}
	return nil
}

// DeleteThread removes the thread and, by cascade, its replies. Its media
// file stays on disk until the collector reclaims it.
func (m *Moderation) DeleteThread(ctx context.Context, secret string, id domain.ThreadId) error {
	if err := m.authorize(secret, "delete_thread"); err != nil {
		return err
	}
	if err := m.threads.DeleteThread(ctx, id); err != nil {
		return err
	}
	logger.Log.Info("thread deleted", "thread_id", id)
	return nil
}

func (m *Moderation) DeleteReply(ctx context.Context, secret string, id domain.ReplyId) error {
	if err := m.authorize(secret, "delete_reply"); err != nil {
		return err
	}
	if err := m.replies.DeleteReply(ctx, id); err != nil {
		return err
	}
	logger.Log.Info("reply deleted", "reply_id", id)
	return nil
}

func (m *Moderation) RenameBoard(ctx context.Context, secret string, id domain.BoardId, name string) error {
	if err := m.authorize(secret, "rename_board"); err != nil {
		return err
	}
	clean, err := requiredText("Board name", name, maxBoardNameLen)
	if err != nil {
		return err
	}
	return m.mutateBoards(ctx, func() error {
		if err := m.boards.RenameBoard(ctx, id, clean); err != nil {
			return err
		}
		logger.Log.Info("board renamed", "board_id", id, "name", clean)
		return nil
	})
}

// SoftDeleteBoard hides the board from listings; its threads stay reachable
// by id.
func (m *Moderation) SoftDeleteBoard(ctx context.Context, secret string, id domain.BoardId) error {
	if err := m.authorize(secret, "delete_board"); err != nil {
		return err
	}
	return m.mutateBoards(ctx, func() error {
		if err := m.boards.SoftDeleteBoard(ctx, id); err != nil {
			return err
		}
		logger.Log.Info("board deactivated", "board_id", id)
		return nil
	})
}

// mutateBoards invalidates the board cache around write. The first
// invalidation must succeed or nothing is written. The second one drops
// lists read while write was in flight; once write has committed its
// failure is only logged, and the entry it leaves is bounded by the TTL.
func (m *Moderation) mutateBoards(ctx context.Context, write func() error) error {
	if err := m.cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("failed to invalidate board cache: %w", err)
	}
	if err := write(); err != nil {
		return err
	}
	if err := m.cache.Invalidate(ctx); err != nil {
		logger.Log.Error("board cache invalidation after commit failed", "error", err)
	}
	return nil
}
