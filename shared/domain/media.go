package domain

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/fourchess/fourchess/shared/errors"
)

// MediaKind is the top-level kind of a stored attachment.
type MediaKind int

const (
	Image MediaKind = iota + 1
	Video
)

func (k MediaKind) String() string {
	switch k {
	case Image:
		return "image"
	case Video:
		return "video"
	default:
		return "unknown"
	}
}

func ParseMediaKind(s string) (MediaKind, error) {
	switch s {
	case "image":
		return Image, nil
	case "video":
		return Video, nil
	}
	return 0, fmt.Errorf("unknown media kind %q", s)
}

func (k MediaKind) MarshalText() ([]byte, error) {
	if k != Image && k != Video {
		return nil, fmt.Errorf("unknown media kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *MediaKind) UnmarshalText(b []byte) error {
	parsed, err := ParseMediaKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MediaEncoding is the concrete container/format of an attachment.
// It is always one of the allow-listed values below.
type MediaEncoding string

const (
	JPEG MediaEncoding = "jpeg"
	PNG  MediaEncoding = "png"
	GIF  MediaEncoding = "gif"
	WEBP MediaEncoding = "webp"
	MP4  MediaEncoding = "mp4"
)

var allowedEncodings = map[MediaKind]map[string]MediaEncoding{
	Image: {"jpeg": JPEG, "png": PNG, "gif": GIF, "webp": WEBP},
	Video: {"mp4": MP4},
}

// MediaRef is the public reference to a committed media file. Path is the
// URL path the file is served under, never a filesystem path.
type MediaRef struct {
	Kind     MediaKind     `json:"kind"`
	Encoding MediaEncoding `json:"encoding"`
	Path     string        `json:"path"`
}

func init() {
	// the builtin table lacks some of these on minimal systems
	for ext, typ := range map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".webp": "image/webp",
		".mp4":  "video/mp4",
	} {
		_ = mime.AddExtensionType(ext, typ)
	}
}

// ClassifyMedia infers kind and encoding from the filename extension.
// A declared content type, when present and specific, must agree with the
// extension on the top-level kind.
func ClassifyMedia(filename, declaredContentType string) (MediaKind, MediaEncoding, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return 0, "", errors.UnsupportedMediaFormat("file has no extension")
	}
	top, sub := splitMime(mime.TypeByExtension(ext))
	if top == "" {
		return 0, "", errors.UnsupportedMediaFormat(fmt.Sprintf("unsupported file type %s", ext))
	}

	if declaredContentType != "" {
		declaredTop, _ := splitMime(declaredContentType)
		if declaredTop != "" && declaredTop != "application" && declaredTop != top {
			return 0, "", errors.UnsupportedMediaFormat(fmt.Sprintf("content type %s does not match extension %s", declaredContentType, ext))
		}
	}

	kind, err := ParseMediaKind(top)
	if err != nil {
		return 0, "", errors.UnsupportedMediaFormat(fmt.Sprintf("unsupported file type %s", ext))
	}
	encoding, ok := allowedEncodings[kind][sub]
	if !ok {
		return 0, "", errors.UnsupportedMediaFormat(fmt.Sprintf("unsupported %s format %s (allowed: %s)", kind, sub, allowedList(kind)))
	}
	return kind, encoding, nil
}

func splitMime(contentType string) (string, string) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", ""
	}
	top, sub, ok := strings.Cut(mediaType, "/")
	if !ok {
		return "", ""
	}
	return top, sub
}

func allowedList(kind MediaKind) string {
	names := make([]string, 0, len(allowedEncodings[kind]))
	for _, enc := range []MediaEncoding{JPEG, PNG, GIF, WEBP, MP4} {
		for _, allowed := range allowedEncodings[kind] {
			if allowed == enc {
				names = append(names, string(enc))
				break
			}
		}
	}
	return strings.Join(names, ", ")
}
