package domain

import (
	"encoding/json"
	"errors"
	"testing"

	internal_errors "github.com/fourchess/fourchess/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyMedia(t *testing.T) {
	t.Run("allowed formats", func(t *testing.T) {
		tests := []struct {
			filename string
			kind     MediaKind
			encoding MediaEncoding
		}{
			{"photo.jpg", Image, JPEG},
			{"photo.JPEG", Image, JPEG},
			{"board.png", Image, PNG},
			{"anim.gif", Image, GIF},
			{"modern.webp", Image, WEBP},
			{"game.mp4", Video, MP4},
			{"../../etc/passwd.png", Image, PNG},
		}
		for _, tt := range tests {
			t.Run(tt.filename, func(t *testing.T) {
				kind, encoding, err := ClassifyMedia(tt.filename, "")
				require.NoError(t, err)
				assert.Equal(t, tt.kind, kind)
				assert.Equal(t, tt.encoding, encoding)
			})
		}
	})

	t.Run("rejected formats", func(t *testing.T) {
		for _, filename := range []string{"setup.exe", "noextension", "vector.svg", "clip.webm", "page.html", "archive.tar.gz"} {
			t.Run(filename, func(t *testing.T) {
				_, _, err := ClassifyMedia(filename, "")
				require.Error(t, err)
				assert.True(t, errors.Is(err, internal_errors.ErrUnsupportedMediaFormat))
			})
		}
	})

	t.Run("declared content type must agree on kind", func(t *testing.T) {
		_, _, err := ClassifyMedia("photo.png", "video/mp4")
		assert.True(t, errors.Is(err, internal_errors.ErrUnsupportedMediaFormat))

		kind, _, err := ClassifyMedia("photo.png", "application/octet-stream")
		require.NoError(t, err)
		assert.Equal(t, Image, kind)

		kind, _, err = ClassifyMedia("photo.png", "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, Image, kind)
	})
}

func TestMediaKindText(t *testing.T) {
	ref := MediaRef{Kind: Video, Encoding: MP4, Path: "/media/video/x.mp4"}
	data, err := json.Marshal(ref)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"video","encoding":"mp4","path":"/media/video/x.mp4"}`, string(data))

	var decoded MediaRef
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ref, decoded)

	_, err = ParseMediaKind("audio")
	assert.Error(t, err)
}
