package pg

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fourchess/fourchess/shared/domain"
	internal_errors "github.com/fourchess/fourchess/shared/errors"
)

func TestCreateReply(t *testing.T) {
	ctx := context.Background()
	board := setupBoard(t)

	t.Run("BumpsThreadToReplyTime", func(t *testing.T) {
		thread := createTestThread(t, board, "bump me")
		before, err := storage.GetThread(ctx, thread)
		require.NoError(t, err)

		replyId := createTestReply(t, thread, "2...Nc6")

		reply, err := storage.GetReply(ctx, replyId)
		require.NoError(t, err)
		assert.Equal(t, thread, reply.Thread)
		assert.Equal(t, "2...Nc6", reply.Body)
		assert.Equal(t, domain.DefaultAuthor, reply.Author)

		after, err := storage.GetThread(ctx, thread)
		require.NoError(t, err)
		assert.False(t, after.LastActivity.Before(before.LastActivity))
		assert.True(t, after.LastActivity.Equal(reply.CreatedAt), "last activity equals the reply's creation time")
		assert.True(t, after.CreatedAt.Equal(before.CreatedAt))
	})

	t.Run("MissingThread", func(t *testing.T) {
		_, err := storage.CreateReply(ctx, domain.ReplyCreationData{Thread: -1, Author: "a", Body: "b"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, internal_errors.ErrNotFound))
	})
}

func TestListReplies(t *testing.T) {
	ctx := context.Background()
	board := setupBoard(t)

	t.Run("CreationOrder", func(t *testing.T) {
		thread := createTestThread(t, board, "ordered")
		var ids []domain.ReplyId
		for _, body := range []string{"1", "2", "3"} {
			ids = append(ids, createTestReply(t, thread, body))
		}

		replies, err := storage.ListReplies(ctx, thread)
		require.NoError(t, err)
		require.Len(t, replies, 3)
		for i, r := range replies {
			assert.Equal(t, ids[i], r.Id)
		}
	})

	t.Run("EmptyThread", func(t *testing.T) {
		thread := createTestThread(t, board, "quiet")
		replies, err := storage.ListReplies(ctx, thread)
		require.NoError(t, err)
		assert.NotNil(t, replies)
		assert.Empty(t, replies)
	})

	t.Run("MissingThread", func(t *testing.T) {
		_, err := storage.ListReplies(ctx, -1)
		assert.True(t, errors.Is(err, internal_errors.ErrNotFound))
	})
}

func TestDeleteReply(t *testing.T) {
	ctx := context.Background()
	board := setupBoard(t)
	thread := createTestThread(t, board, "thread")
	keep := createTestReply(t, thread, "keep")
	drop := createTestReply(t, thread, "drop")

	before, err := storage.GetThread(ctx, thread)
	require.NoError(t, err)

	require.NoError(t, storage.DeleteReply(ctx, drop))

	after, err := storage.GetThread(ctx, thread)
	require.NoError(t, err)
	assert.True(t, after.LastActivity.Equal(before.LastActivity), "deleting a reply leaves activity unchanged")

	replies, err := storage.ListReplies(ctx, thread)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, keep, replies[0].Id)

	err = storage.DeleteReply(ctx, drop)
	assert.True(t, errors.Is(err, internal_errors.ErrNotFound))
}
