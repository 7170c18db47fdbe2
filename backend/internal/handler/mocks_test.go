package handler

import (
	"context"
	"io"

	"github.com/fourchess/fourchess/backend/internal/service"
	"github.com/fourchess/fourchess/shared/config"
	"github.com/fourchess/fourchess/shared/domain"
)

type MockBoardService struct {
	MockList       func(ctx context.Context) ([]domain.Board, error)
	MockThreadPage func(ctx context.Context, board domain.BoardId, page int) (*domain.ThreadPage, error)
}

func (m *MockBoardService) List(ctx context.Context) ([]domain.Board, error) {
	if m.MockList != nil {
		return m.MockList(ctx)
	}
	return nil, nil
}

func (m *MockBoardService) ThreadPage(ctx context.Context, board domain.BoardId, page int) (*domain.ThreadPage, error) {
	if m.MockThreadPage != nil {
		return m.MockThreadPage(ctx, board, page)
	}
	return &domain.ThreadPage{}, nil
}

type MockThreadService struct {
	MockCreate func(ctx context.Context, data domain.ThreadCreationData) (domain.ThreadId, error)
	MockSubmit func(ctx context.Context, board domain.BoardId, form service.FormDecoder) (domain.ThreadId, error)
	MockGet    func(ctx context.Context, id domain.ThreadId) (*domain.ThreadWithReplies, error)
}

func (m *MockThreadService) Create(ctx context.Context, data domain.ThreadCreationData) (domain.ThreadId, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, data)
	}
	return 1, nil
}

func (m *MockThreadService) Submit(ctx context.Context, board domain.BoardId, form service.FormDecoder) (domain.ThreadId, error) {
	if m.MockSubmit != nil {
		return m.MockSubmit(ctx, board, form)
	}
	return 1, nil
}

func (m *MockThreadService) Get(ctx context.Context, id domain.ThreadId) (*domain.ThreadWithReplies, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return &domain.ThreadWithReplies{}, nil
}

type MockReplyService struct {
	MockCreate func(ctx context.Context, data domain.ReplyCreationData) (domain.ReplyId, error)
	MockSubmit func(ctx context.Context, thread domain.ThreadId, form service.FormDecoder) (domain.ReplyId, error)
	MockGet    func(ctx context.Context, id domain.ReplyId) (*domain.Reply, error)
	MockList   func(ctx context.Context, thread domain.ThreadId) ([]domain.Reply, error)
}

func (m *MockReplyService) Create(ctx context.Context, data domain.ReplyCreationData) (domain.ReplyId, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, data)
	}
	return 1, nil
}

func (m *MockReplyService) Submit(ctx context.Context, thread domain.ThreadId, form service.FormDecoder) (domain.ReplyId, error) {
	if m.MockSubmit != nil {
		return m.MockSubmit(ctx, thread, form)
	}
	return 1, nil
}

func (m *MockReplyService) Get(ctx context.Context, id domain.ReplyId) (*domain.Reply, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return &domain.Reply{}, nil
}

func (m *MockReplyService) List(ctx context.Context, thread domain.ThreadId) ([]domain.Reply, error) {
	if m.MockList != nil {
		return m.MockList(ctx, thread)
	}
	return nil, nil
}

type MockModerationService struct {
	MockDeleteThread    func(ctx context.Context, secret string, id domain.ThreadId) error
	MockDeleteReply     func(ctx context.Context, secret string, id domain.ReplyId) error
	MockRenameBoard     func(ctx context.Context, secret string, id domain.BoardId, name string) error
	MockSoftDeleteBoard func(ctx context.Context, secret string, id domain.BoardId) error
}

func (m *MockModerationService) DeleteThread(ctx context.Context, secret string, id domain.ThreadId) error {
	if m.MockDeleteThread != nil {
		return m.MockDeleteThread(ctx, secret, id)
	}
	return nil
}

func (m *MockModerationService) DeleteReply(ctx context.Context, secret string, id domain.ReplyId) error {
	if m.MockDeleteReply != nil {
		return m.MockDeleteReply(ctx, secret, id)
	}
	return nil
}

func (m *MockModerationService) RenameBoard(ctx context.Context, secret string, id domain.BoardId, name string) error {
	if m.MockRenameBoard != nil {
		return m.MockRenameBoard(ctx, secret, id, name)
	}
	return nil
}

func (m *MockModerationService) SoftDeleteBoard(ctx context.Context, secret string, id domain.BoardId) error {
	if m.MockSoftDeleteBoard != nil {
		return m.MockSoftDeleteBoard(ctx, secret, id)
	}
	return nil
}

type MockHealthChecker struct {
	MockPing func(ctx context.Context) error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	if m.MockPing != nil {
		return m.MockPing(ctx)
	}
	return nil
}

// discardConsumer accepts any file and drops its bytes.
type discardConsumer struct {
	opened []string
}

func (c *discardConsumer) Open(filename, contentType string) (io.Writer, error) {
	c.opened = append(c.opened, filename)
	return io.Discard, nil
}

func testConfig() *config.Public {
	return &config.Public{
		ThreadsPerPage: 10,
		MaxTextBytes:   1024,
		Media: config.Media{
			MaxBytes: 4096,
		},
	}
}

func newTestHandler() *Handler {
	return New(
		&MockBoardService{},
		&MockThreadService{},
		&MockReplyService{},
		&MockModerationService{},
		&MockHealthChecker{},
		testConfig(),
	)
}
