package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fourchess/fourchess/shared/domain"
)

func TestBoardCache(t *testing.T) {
	ctx := context.Background()
	boards := []domain.Board{{Id: 1, Name: "Kings Gambit", Active: true}}

	t.Run("miss before first set", func(t *testing.T) {
		c := NewBoardCache(time.Minute)
		_, _, ok, err := c.GetBoards(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("hit after set", func(t *testing.T) {
		c := NewBoardCache(time.Minute)
		require.NoError(t, c.SetBoards(ctx, 0, boards))
		got, _, ok, err := c.GetBoards(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, boards, got)
	})

	t.Run("empty list is cached", func(t *testing.T) {
		c := NewBoardCache(time.Minute)
		require.NoError(t, c.SetBoards(ctx, 0, nil))
		got, _, ok, err := c.GetBoards(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, got)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		c := NewBoardCache(time.Minute)
		require.NoError(t, c.SetBoards(ctx, 0, boards))
		got, _, _, _ := c.GetBoards(ctx)
		got[0].Name = "changed"
		again, _, _, _ := c.GetBoards(ctx)
		assert.Equal(t, "Kings Gambit", again[0].Name)
	})

	t.Run("expires after ttl", func(t *testing.T) {
		c := NewBoardCache(time.Minute)
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		c.now = func() time.Time { return now }
		require.NoError(t, c.SetBoards(ctx, 0, boards))

		now = now.Add(59 * time.Second)
		_, _, ok, _ := c.GetBoards(ctx)
		assert.True(t, ok)

		now = now.Add(time.Second)
		_, _, ok, _ = c.GetBoards(ctx)
		assert.False(t, ok)
	})

	t.Run("invalidate", func(t *testing.T) {
		c := NewBoardCache(time.Minute)
		require.NoError(t, c.SetBoards(ctx, 0, boards))
		require.NoError(t, c.Invalidate(ctx))
		_, _, ok, _ := c.GetBoards(ctx)
		assert.False(t, ok)
	})

	t.Run("write under an old generation is dropped", func(t *testing.T) {
		c := NewBoardCache(time.Minute)
		_, gen, ok, err := c.GetBoards(ctx)
		require.NoError(t, err)
		require.False(t, ok)

		require.NoError(t, c.Invalidate(ctx))
		require.NoError(t, c.SetBoards(ctx, gen, boards))
		_, _, ok, _ = c.GetBoards(ctx)
		assert.False(t, ok)

		_, gen, _, _ = c.GetBoards(ctx)
		require.NoError(t, c.SetBoards(ctx, gen, boards))
		_, _, ok, _ = c.GetBoards(ctx)
		assert.True(t, ok)
	})

	t.Run("concurrent readers and writers", func(t *testing.T) {
		c := NewBoardCache(time.Minute)
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_ = c.SetBoards(ctx, 0, boards)
			}()
			go func() {
				defer wg.Done()
				if got, _, ok, _ := c.GetBoards(ctx); ok {
					assert.Equal(t, boards, got)
				}
			}()
		}
		wg.Wait()
	})
}
