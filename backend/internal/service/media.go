package service

import (
	"context"
	"io"

	"github.com/fourchess/fourchess/backend/internal/upload"
	"github.com/fourchess/fourchess/shared/domain"
	"github.com/fourchess/fourchess/shared/logger"
)

// MediaStore validates and persists attachments.
type MediaStore interface {
	// Accept classifies the declared filename and opens an upload for it.
	// Unsupported formats fail before anything is written.
	Accept(declaredFilename, declaredContentType string) (MediaUpload, error)
	Remove(ref domain.MediaRef) error
}

// MediaUpload is an in-progress write of a single file.
type MediaUpload interface {
	io.Writer
	Commit() (domain.MediaRef, error)
	Abort()
	Kind() domain.MediaKind
}

// FormDecoder is the part of upload.Decoder the services drive.
type FormDecoder interface {
	TextField(dst *string, names ...string)
	FileField(name string, consumer upload.FileConsumer)
	Decode(ctx context.Context) error
}

// mediaConsumer opens at most one upload for the form's file field.
type mediaConsumer struct {
	store  MediaStore
	upload MediaUpload
}

var _ upload.FileConsumer = (*mediaConsumer)(nil)

func (c *mediaConsumer) Open(filename, contentType string) (io.Writer, error) {
	u, err := c.store.Accept(filename, contentType)
	if err != nil {
		return nil, err
	}
	c.upload = u
	return u, nil
}

func (c *mediaConsumer) abort() {
	if c.upload != nil {
		c.upload.Abort()
	}
}

// commit finalizes the upload if a file was sent. A nil ref means no media.
func (c *mediaConsumer) commit() (*domain.MediaRef, error) {
	if c.upload == nil {
		return nil, nil
	}
	ref, err := c.upload.Commit()
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// release removes a committed file whose record was never written.
func (c *mediaConsumer) release(ref *domain.MediaRef) {
	if ref == nil {
		return
	}
	if err := c.store.Remove(*ref); err != nil {
		logger.Log.Error("failed to remove media of failed submission", "path", ref.Path, "error", err)
	}
}
