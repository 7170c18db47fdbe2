// Package upload decodes multipart/form-data request bodies incrementally.
//
// Text fields are accumulated in memory up to a limit; file fields are
// pushed chunk by chunk to a FileConsumer as they arrive from the network,
// so the request body is never buffered as a whole.
package upload

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/fourchess/fourchess/shared/errors"
)

const chunkSize = 32 << 10

// FileConsumer receives the bytes of a file field.
type FileConsumer interface {
	// Open is called once per non-empty file part, before its first chunk.
	Open(filename, contentType string) (io.Writer, error)
}

type Options struct {
	MaxTextBytes int64 // per text field, 0 means unlimited
}

// Field is one part of the body as returned by Next.
type Field struct {
	Name        string
	Filename    string // empty for text parts and for "no file selected"
	ContentType string
	part        *multipart.Part
}

type fileField struct {
	consumer FileConsumer
	received bool
}

type Decoder struct {
	reader *multipart.Reader
	opts   Options
	text   map[string]*string
	filled map[*string]bool
	files  map[string]*fileField
}

func NewDecoder(body io.Reader, boundary string, opts Options) (*Decoder, error) {
	if strings.TrimSpace(boundary) == "" {
		return nil, errors.MalformedUpload("missing multipart boundary")
	}
	return &Decoder{
		reader: multipart.NewReader(body, boundary),
		opts:   opts,
		text:   make(map[string]*string),
		filled: make(map[*string]bool),
		files:  make(map[string]*fileField),
	}, nil
}

// FromRequest builds a decoder over r.Body using the boundary from its
// Content-Type header.
func FromRequest(r *http.Request, opts Options) (*Decoder, error) {
	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		return nil, errors.MalformedUpload("expected multipart/form-data body")
	}
	return NewDecoder(r.Body, params["boundary"], opts)
}

// TextField stores into dst the first part, under any of names, whose value
// is not blank. Later parts for the same dst are read and discarded.
func (d *Decoder) TextField(dst *string, names ...string) {
	for _, name := range names {
		d.text[name] = dst
	}
}

// FileField routes the file part with the given name to consumer.
// At most one file is accepted per field.
func (d *Decoder) FileField(name string, consumer FileConsumer) {
	d.files[name] = &fileField{consumer: consumer}
}

// Next returns the next part of the body, or io.EOF after the last one.
func (d *Decoder) Next() (*Field, error) {
	part, err := d.reader.NextPart()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, BodyError(err)
	}
	return &Field{
		Name:        part.FormName(),
		Filename:    strings.TrimSpace(part.FileName()),
		ContentType: part.Header.Get("Content-Type"),
		part:        part,
	}, nil
}

// Decode consumes the whole body, filling registered text fields and
// streaming registered file fields. Unknown fields are skipped.
func (d *Decoder) Decode(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		field, err := d.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return contextOr(ctx, err)
		}

		if ff, ok := d.files[field.Name]; ok {
			if field.Filename == "" {
				continue // no file selected
			}
			if ff.received {
				return errors.MalformedUpload(fmt.Sprintf("more than one file in field %q", field.Name))
			}
			ff.received = true
			w, err := ff.consumer.Open(field.Filename, field.ContentType)
			if err != nil {
				return err
			}
			if err := field.stream(ctx, w); err != nil {
				return err
			}
			continue
		}

		if dst, ok := d.text[field.Name]; ok {
			value, err := field.ReadText(ctx, d.opts.MaxTextBytes)
			if err != nil {
				return err
			}
			if !d.filled[dst] && strings.TrimSpace(value) != "" {
				*dst = value
				d.filled[dst] = true
			}
		}
	}
}

// ReadText accumulates the part's chunks into a string.
func (f *Field) ReadText(ctx context.Context, limit int64) (string, error) {
	var sb strings.Builder
	buf := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		n, err := f.part.Read(buf)
		if limit > 0 && int64(sb.Len()+n) > limit {
			return "", errors.PayloadTooLarge(fmt.Sprintf("field %q exceeds %d bytes", f.Name, limit))
		}
		sb.Write(buf[:n])
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", contextOr(ctx, BodyError(err))
		}
	}
}

// stream pushes the part's chunks to w as they are read.
func (f *Field) stream(ctx context.Context, w io.Writer) error {
	buf := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := f.part.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return contextOr(ctx, BodyError(err))
		}
	}
}

// BodyError classifies a failure to read or parse a request body: hitting
// an http.MaxBytesReader limit is PayloadTooLarge, anything else is
// MalformedUpload. The cause stays in the chain.
func BodyError(cause error) error {
	var maxBytes *http.MaxBytesError
	if stderrors.As(cause, &maxBytes) {
		return fmt.Errorf("%w: %w", errors.PayloadTooLarge(fmt.Sprintf("request body exceeds %d bytes", maxBytes.Limit)), cause)
	}
	return fmt.Errorf("%w: %w", errors.MalformedUpload("malformed request body"), cause)
}

// contextOr prefers the context error: a read failing because the client
// went away is a cancellation, not a malformed body.
func contextOr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
