package service

import (
	"context"

	"github.com/fourchess/fourchess/shared/domain"
)

type ThreadService interface {
	Create(ctx context.Context, data domain.ThreadCreationData) (domain.ThreadId, error)
	Submit(ctx context.Context, board domain.BoardId, form FormDecoder) (domain.ThreadId, error)
	Get(ctx context.Context, id domain.ThreadId) (*domain.ThreadWithReplies, error)
}

type ThreadStorage interface {
	CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.ThreadId, error)
	GetThread(ctx context.Context, id domain.ThreadId) (*domain.Thread, error)
	DeleteThread(ctx context.Context, id domain.ThreadId) error
}

type Thread struct {
	storage ThreadStorage
	replies ReplyStorage
	media   MediaStore
}

func NewThread(storage ThreadStorage, replies ReplyStorage, media MediaStore) *Thread {
	return &Thread{storage: storage, replies: replies, media: media}
}

// Create validates text fields and stores the thread. data.Media must
// already be committed.
func (t *Thread) Create(ctx context.Context, data domain.ThreadCreationData) (domain.ThreadId, error) {
	clean, err := prepareThread(data)
	if err != nil {
		return 0, err
	}
	return t.storage.CreateThread(ctx, clean)
}

// Submit decodes a thread form, streaming its media field into the store.
// Either the thread and its file are both persisted or neither is.
func (t *Thread) Submit(ctx context.Context, board domain.BoardId, form FormDecoder) (domain.ThreadId, error) {
	var title, body, author string
	form.TextField(&title, "title", "subject")
	form.TextField(&body, "message", "body")
	form.TextField(&author, "name")
	media := &mediaConsumer{store: t.media}
	form.FileField("media", media)

	if err := form.Decode(ctx); err != nil {
		media.abort()
		return 0, err
	}

	data, err := prepareThread(domain.ThreadCreationData{Board: board, Author: author, Title: title, Body: body})
	if err != nil {
		media.abort()
		return 0, err
	}

	ref, err := media.commit()
	if err != nil {
		return 0, err
	}
	data.Media = ref

	id, err := t.storage.CreateThread(ctx, data)
	if err != nil {
		media.release(ref)
		return 0, err
	}
	return id, nil
}

// Get returns the thread with its replies in creation order.
func (t *Thread) Get(ctx context.Context, id domain.ThreadId) (*domain.ThreadWithReplies, error) {
	thread, err := t.storage.GetThread(ctx, id)
	if err != nil {
		return nil, err
	}
	replies, err := t.replies.ListReplies(ctx, id)
	if err != nil {
		return nil, err
	}
	if replies == nil {
		replies = []domain.Reply{}
	}
	return &domain.ThreadWithReplies{Thread: *thread, Replies: replies}, nil
}

func prepareThread(data domain.ThreadCreationData) (domain.ThreadCreationData, error) {
	var err error
	if data.Title, err = requiredText("Title", data.Title, maxTitleLen); err != nil {
		return data, err
	}
	if data.Body, err = requiredText("Message", data.Body, 0); err != nil {
		return data, err
	}
	if data.Author, err = authorName(data.Author); err != nil {
		return data, err
	}
	return data, nil
}
