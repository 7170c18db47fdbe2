package fs

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	"github.com/fourchess/fourchess/backend/internal/service"
	"github.com/fourchess/fourchess/shared/domain"
	"github.com/fourchess/fourchess/shared/errors"
	"github.com/fourchess/fourchess/shared/logger"
	"github.com/fourchess/fourchess/shared/middleware/metrics"
)

// PublicPrefix is the URL prefix media files are served under.
const PublicPrefix = "/media"

type Config struct {
	ImageRoot      string
	VideoRoot      string
	MaxBytes       int64 // per file
	MaxImagePixels int
}

// Ensure Storage struct implements the interfaces at compile time.
var (
	_ service.MediaStore     = (*Storage)(nil)
	_ service.GCMediaStorage = (*Storage)(nil)
)

// Storage validates uploaded media and writes it under kind-specific roots.
// Every stored file gets a fresh random name; the client filename only
// contributes its extension.
type Storage struct {
	roots          map[domain.MediaKind]string
	maxBytes       int64
	maxImagePixels int
}

func New(cfg Config) (*Storage, error) {
	roots := map[domain.MediaKind]string{
		domain.Image: filepath.Clean(cfg.ImageRoot),
		domain.Video: filepath.Clean(cfg.VideoRoot),
	}
	for kind, root := range roots {
		if err := os.MkdirAll(root, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s storage directory %s: %w", kind, root, err)
		}
	}
	return &Storage{roots: roots, maxBytes: cfg.MaxBytes, maxImagePixels: cfg.MaxImagePixels}, nil
}

// Upload is an in-progress write of one media file. It is used by a single
// request goroutine and is not safe for concurrent use, except that Abort
// may race with a finished Commit.
type Upload struct {
	storage  *Storage
	kind     domain.MediaKind
	encoding domain.MediaEncoding
	name     string
	fullPath string
	file     *os.File
	written  int64

	mu       sync.Mutex
	finished bool
}

// Accept validates the declared filename against the allow-lists and opens
// a fresh file for it. Nothing is created on disk when validation fails.
func (s *Storage) Accept(declaredFilename, declaredContentType string) (service.MediaUpload, error) {
	kind, encoding, err := domain.ClassifyMedia(declaredFilename, declaredContentType)
	if err != nil {
		metrics.MediaUploads.WithLabelValues("unknown", "rejected").Inc()
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(declaredFilename))
	name := uuid.New().String() + ext
	fullPath := filepath.Join(s.roots[kind], name)

	// O_EXCL: a name collision is a bug, never an overwrite
	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}

	return &Upload{
		storage:  s,
		kind:     kind,
		encoding: encoding,
		name:     name,
		fullPath: fullPath,
		file:     f,
	}, nil
}

func (u *Upload) Kind() domain.MediaKind {
	return u.kind
}

// Write appends a chunk to the file.
func (u *Upload) Write(chunk []byte) (int, error) {
	if u.isFinished() {
		return 0, fmt.Errorf("write to finished upload %s", u.name)
	}
	if u.storage.maxBytes > 0 && u.written+int64(len(chunk)) > u.storage.maxBytes {
		return 0, errors.PayloadTooLarge(fmt.Sprintf("file exceeds the limit of %d bytes", u.storage.maxBytes))
	}
	n, err := u.file.Write(chunk)
	u.written += int64(n)
	metrics.MediaBytesWritten.Add(float64(n))
	if err != nil {
		return n, fmt.Errorf("failed to write media chunk: %w", err)
	}
	return n, nil
}

// Commit finishes the upload. Images must decode as the declared encoding;
// on any failure the file is removed before Commit returns.
func (u *Upload) Commit() (domain.MediaRef, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.finished {
		return domain.MediaRef{}, fmt.Errorf("upload %s already finished", u.name)
	}
	u.finished = true

	if err := u.file.Close(); err != nil {
		u.remove("rejected")
		return domain.MediaRef{}, fmt.Errorf("failed to close media file: %w", err)
	}
	if u.written == 0 {
		u.remove("rejected")
		return domain.MediaRef{}, errors.InvalidMediaContent("uploaded file is empty")
	}
	if u.kind == domain.Image {
		if err := u.storage.checkImage(u.fullPath, u.encoding); err != nil {
			u.remove("rejected")
			return domain.MediaRef{}, err
		}
	}

	metrics.MediaUploads.WithLabelValues(u.kind.String(), "committed").Inc()
	return domain.MediaRef{
		Kind:     u.kind,
		Encoding: u.encoding,
		Path:     path.Join(PublicPrefix, u.kind.String(), u.name),
	}, nil
}

// Abort closes and removes the partial file. It is idempotent and does
// nothing after a successful Commit, so callers may defer it.
func (u *Upload) Abort() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.finished {
		return
	}
	u.finished = true
	u.file.Close()
	u.remove("aborted")
}

func (u *Upload) isFinished() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.finished
}

func (u *Upload) remove(outcome string) {
	if err := os.Remove(u.fullPath); err != nil && !os.IsNotExist(err) {
		logger.Log.Error("failed to remove media file", "path", u.fullPath, "error", err)
	}
	metrics.MediaUploads.WithLabelValues(u.kind.String(), outcome).Inc()
}

func (s *Storage) checkImage(fullPath string, encoding domain.MediaEncoding) error {
	f, err := os.Open(fullPath)
	if err != nil {
		return fmt.Errorf("failed to reopen media file: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return errors.InvalidMediaContent("file is not a valid image")
	}
	if format != string(encoding) {
		return errors.InvalidMediaContent(fmt.Sprintf("file content is %s, not %s", format, encoding))
	}
	if s.maxImagePixels > 0 && cfg.Width*cfg.Height > s.maxImagePixels {
		return errors.InvalidMediaContent("image dimensions are too large")
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind media file: %w", err)
	}
	if _, _, err := image.Decode(f); err != nil {
		return errors.InvalidMediaContent("file is not a valid image")
	}
	return nil
}

// Remove deletes a committed file by its public reference. Missing files
// are not an error.
func (s *Storage) Remove(ref domain.MediaRef) error {
	return s.DeleteFile(ref.Path)
}

// Root returns the directory files of the given kind are stored in.
func (s *Storage) Root(kind domain.MediaKind) string {
	return s.roots[kind]
}

// resolve maps a public path /media/<kind>/<name> to its file.
func (s *Storage) resolve(publicPath string) (string, error) {
	rest, ok := strings.CutPrefix(path.Clean(publicPath), PublicPrefix+"/")
	if !ok {
		return "", fmt.Errorf("not a media path: %s", publicPath)
	}
	kindName, name, ok := strings.Cut(rest, "/")
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", fmt.Errorf("not a media path: %s", publicPath)
	}
	kind, err := domain.ParseMediaKind(kindName)
	if err != nil {
		return "", fmt.Errorf("not a media path: %s", publicPath)
	}
	return filepath.Join(s.roots[kind], name), nil
}

// WalkFiles lists the public paths of all stored files.
func (s *Storage) WalkFiles() ([]string, error) {
	var paths []string
	for _, kind := range []domain.MediaKind{domain.Image, domain.Video} {
		entries, err := os.ReadDir(s.roots[kind])
		if err != nil {
			return nil, fmt.Errorf("failed to list %s storage: %w", kind, err)
		}
		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			paths = append(paths, path.Join(PublicPrefix, kind.String(), entry.Name()))
		}
	}
	return paths, nil
}

// GetFileModTime returns the modification time of a stored file.
func (s *Storage) GetFileModTime(publicPath string) (time.Time, error) {
	fullPath, err := s.resolve(publicPath)
	if err != nil {
		return time.Time{}, err
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// DeleteFile removes a stored file by public path.
func (s *Storage) DeleteFile(publicPath string) error {
	fullPath, err := s.resolve(publicPath)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
