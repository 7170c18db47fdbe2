package service

import (
	"context"

	"github.com/fourchess/fourchess/shared/domain"
)

type ReplyService interface {
	Create(ctx context.Context, data domain.ReplyCreationData) (domain.ReplyId, error)
	Submit(ctx context.Context, thread domain.ThreadId, form FormDecoder) (domain.ReplyId, error)
	Get(ctx context.Context, id domain.ReplyId) (*domain.Reply, error)
	List(ctx context.Context, thread domain.ThreadId) ([]domain.Reply, error)
}

type ReplyStorage interface {
	CreateReply(ctx context.Context, data domain.ReplyCreationData) (domain.ReplyId, error)
	GetReply(ctx context.Context, id domain.ReplyId) (*domain.Reply, error)
	ListReplies(ctx context.Context, thread domain.ThreadId) ([]domain.Reply, error)
	DeleteReply(ctx context.Context, id domain.ReplyId) error
}

type Reply struct {
	storage ReplyStorage
}

func NewReply(storage ReplyStorage) *Reply {
	return &Reply{storage: storage}
}

// Create stores a reply and bumps its thread's last activity in the same
// transaction.
func (r *Reply) Create(ctx context.Context, data domain.ReplyCreationData) (domain.ReplyId, error) {
	var err error
	if data.Body, err = requiredText("Message", data.Body, 0); err != nil {
		return 0, err
	}
	if data.Author, err = authorName(data.Author); err != nil {
		return 0, err
	}
	return r.storage.CreateReply(ctx, data)
}

// Submit decodes a multipart reply form. Replies carry no media, so file
// parts are skipped.
func (r *Reply) Submit(ctx context.Context, thread domain.ThreadId, form FormDecoder) (domain.ReplyId, error) {
	var body, author string
	form.TextField(&body, "message", "body")
	form.TextField(&author, "name")
	if err := form.Decode(ctx); err != nil {
		return 0, err
	}
	return r.Create(ctx, domain.ReplyCreationData{Thread: thread, Author: author, Body: body})
}

func (r *Reply) Get(ctx context.Context, id domain.ReplyId) (*domain.Reply, error) {
	return r.storage.GetReply(ctx, id)
}

func (r *Reply) List(ctx context.Context, thread domain.ThreadId) ([]domain.Reply, error) {
	return r.storage.ListReplies(ctx, thread)
}
