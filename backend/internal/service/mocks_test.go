package service

import (
	"bytes"
	"context"
	"io"

	"github.com/fourchess/fourchess/backend/internal/upload"
	"github.com/fourchess/fourchess/shared/domain"
)

type MockBoardStorage struct {
	listActiveBoardsFunc func(ctx context.Context) ([]domain.Board, error)
	listThreadsFunc      func(ctx context.Context, board domain.BoardId, page, pageSize int) (*domain.ThreadPage, error)
	renameBoardFunc      func(ctx context.Context, id domain.BoardId, name domain.BoardName) error
	softDeleteBoardFunc  func(ctx context.Context, id domain.BoardId) error
	listActiveCalls      int
}

func (m *MockBoardStorage) ListActiveBoards(ctx context.Context) ([]domain.Board, error) {
	m.listActiveCalls++
	if m.listActiveBoardsFunc != nil {
		return m.listActiveBoardsFunc(ctx)
	}
	return nil, nil
}

func (m *MockBoardStorage) ListThreads(ctx context.Context, board domain.BoardId, page, pageSize int) (*domain.ThreadPage, error) {
	if m.listThreadsFunc != nil {
		return m.listThreadsFunc(ctx, board, page, pageSize)
	}
	return &domain.ThreadPage{}, nil
}

func (m *MockBoardStorage) RenameBoard(ctx context.Context, id domain.BoardId, name domain.BoardName) error {
	if m.renameBoardFunc != nil {
		return m.renameBoardFunc(ctx, id, name)
	}
	return nil
}

func (m *MockBoardStorage) SoftDeleteBoard(ctx context.Context, id domain.BoardId) error {
	if m.softDeleteBoardFunc != nil {
		return m.softDeleteBoardFunc(ctx, id)
	}
	return nil
}

type MockBoardCache struct {
	getFunc         func(ctx context.Context) ([]domain.Board, int64, bool, error)
	setFunc         func(ctx context.Context, gen int64, boards []domain.Board) error
	invalidateFunc  func(ctx context.Context) error
	setCalls        int
	invalidateCalls int
}

func (m *MockBoardCache) GetBoards(ctx context.Context) ([]domain.Board, int64, bool, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx)
	}
	return nil, 0, false, nil
}

func (m *MockBoardCache) SetBoards(ctx context.Context, gen int64, boards []domain.Board) error {
	m.setCalls++
	if m.setFunc != nil {
		return m.setFunc(ctx, gen, boards)
	}
	return nil
}

func (m *MockBoardCache) Invalidate(ctx context.Context) error {
	m.invalidateCalls++
	if m.invalidateFunc != nil {
		return m.invalidateFunc(ctx)
	}
	return nil
}

type MockThreadStorage struct {
	createThreadFunc func(ctx context.Context, data domain.ThreadCreationData) (domain.ThreadId, error)
	getThreadFunc    func(ctx context.Context, id domain.ThreadId) (*domain.Thread, error)
	deleteThreadFunc func(ctx context.Context, id domain.ThreadId) error
	createCalls      int
	deleteCalls      int
}

func (m *MockThreadStorage) CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.ThreadId, error) {
	m.createCalls++
	if m.createThreadFunc != nil {
		return m.createThreadFunc(ctx, data)
	}
	return 1, nil
}

func (m *MockThreadStorage) GetThread(ctx context.Context, id domain.ThreadId) (*domain.Thread, error) {
	if m.getThreadFunc != nil {
		return m.getThreadFunc(ctx, id)
	}
	return &domain.Thread{Id: id}, nil
}

func (m *MockThreadStorage) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	m.deleteCalls++
	if m.deleteThreadFunc != nil {
		return m.deleteThreadFunc(ctx, id)
	}
	return nil
}

type MockReplyStorage struct {
	createReplyFunc func(ctx context.Context, data domain.ReplyCreationData) (domain.ReplyId, error)
	getReplyFunc    func(ctx context.Context, id domain.ReplyId) (*domain.Reply, error)
	listRepliesFunc func(ctx context.Context, thread domain.ThreadId) ([]domain.Reply, error)
	deleteReplyFunc func(ctx context.Context, id domain.ReplyId) error
	createCalls     int
	deleteCalls     int
}

func (m *MockReplyStorage) CreateReply(ctx context.Context, data domain.ReplyCreationData) (domain.ReplyId, error) {
	m.createCalls++
	if m.createReplyFunc != nil {
		return m.createReplyFunc(ctx, data)
	}
	return 1, nil
}

func (m *MockReplyStorage) GetReply(ctx context.Context, id domain.ReplyId) (*domain.Reply, error) {
	if m.getReplyFunc != nil {
		return m.getReplyFunc(ctx, id)
	}
	return &domain.Reply{Id: id}, nil
}

func (m *MockReplyStorage) ListReplies(ctx context.Context, thread domain.ThreadId) ([]domain.Reply, error) {
	if m.listRepliesFunc != nil {
		return m.listRepliesFunc(ctx, thread)
	}
	return nil, nil
}

func (m *MockReplyStorage) DeleteReply(ctx context.Context, id domain.ReplyId) error {
	m.deleteCalls++
	if m.deleteReplyFunc != nil {
		return m.deleteReplyFunc(ctx, id)
	}
	return nil
}

// MockMediaStore hands out MockMediaUploads and records removals.
type MockMediaStore struct {
	acceptFunc func(filename, contentType string) (MediaUpload, error)
	removeFunc func(ref domain.MediaRef) error
	uploads    []*MockMediaUpload
	removed    []domain.MediaRef
}

func (m *MockMediaStore) Accept(filename, contentType string) (MediaUpload, error) {
	if m.acceptFunc != nil {
		return m.acceptFunc(filename, contentType)
	}
	u := &MockMediaUpload{kind: domain.Image}
	m.uploads = append(m.uploads, u)
	return u, nil
}

func (m *MockMediaStore) Remove(ref domain.MediaRef) error {
	m.removed = append(m.removed, ref)
	if m.removeFunc != nil {
		return m.removeFunc(ref)
	}
	return nil
}

type MockMediaUpload struct {
	kind       domain.MediaKind
	buf        bytes.Buffer
	commitFunc func() (domain.MediaRef, error)
	committed  bool
	aborted    bool
}

func (m *MockMediaUpload) Write(p []byte) (int, error) { return m.buf.Write(p) }
func (m *MockMediaUpload) Kind() domain.MediaKind      { return m.kind }

func (m *MockMediaUpload) Abort() {
	if !m.committed {
		m.aborted = true
	}
}

func (m *MockMediaUpload) Commit() (domain.MediaRef, error) {
	if m.commitFunc != nil {
		return m.commitFunc()
	}
	m.committed = true
	return domain.MediaRef{Kind: m.kind, Encoding: domain.PNG, Path: "/media/image/test.png"}, nil
}

type fakeFile struct {
	field, filename string
	data            []byte
}

// fakeForm replays canned fields through whatever the service registered.
type fakeForm struct {
	values    map[string]string
	files     []fakeFile
	decodeErr error // returned after all fields were delivered

	text      map[string]*string
	consumers map[string]upload.FileConsumer
}

func newFakeForm(values map[string]string, files ...fakeFile) *fakeForm {
	return &fakeForm{
		values:    values,
		files:     files,
		text:      make(map[string]*string),
		consumers: make(map[string]upload.FileConsumer),
	}
}

func (f *fakeForm) TextField(dst *string, names ...string) {
	for _, n := range names {
		f.text[n] = dst
	}
}

func (f *fakeForm) FileField(name string, consumer upload.FileConsumer) {
	f.consumers[name] = consumer
}

func (f *fakeForm) Decode(ctx context.Context) error {
	for name, v := range f.values {
		if dst, ok := f.text[name]; ok {
			*dst = v
		}
	}
	for _, file := range f.files {
		c, ok := f.consumers[file.field]
		if !ok {
			continue
		}
		w, err := c.Open(file.filename, "")
		if err != nil {
			return err
		}
		if _, err := io.Copy(w, bytes.NewReader(file.data)); err != nil {
			return err
		}
	}
	return f.decodeErr
}
