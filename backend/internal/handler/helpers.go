package handler

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fourchess/fourchess/backend/internal/upload"
	"github.com/fourchess/fourchess/shared/domain"
	"github.com/fourchess/fourchess/shared/errors"
)

const (
	// room for multipart headers and boundaries on top of field content
	formOverhead = 64 << 10
	adminFormMax = 64 << 10
)

func parseIntParam(r *http.Request, name string) (int64, error) {
	return parseIdParam(r, name, 64)
}

// parseBoardParam reads the "board" URL param. Board ids are 32-bit in the
// database, so anything wider is rejected here instead of by postgres.
func parseBoardParam(r *http.Request) (domain.BoardId, error) {
	id, err := parseIdParam(r, "board", 32)
	return domain.BoardId(id), err
}

func parseIdParam(r *http.Request, name string, bitSize int) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, bitSize)
	if err != nil || id <= 0 {
		return 0, errors.Validation(fmt.Sprintf("Invalid %s id", name))
	}
	return id, nil
}

func parsePage(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Validation("Invalid page")
	}
	return page, nil
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// textBudget bounds the text part of a form: every text field at its
// limit plus framing.
func (h *Handler) textBudget() int64 {
	return 4*h.cfg.MaxTextBytes + formOverhead
}

func (h *Handler) formDecoder(w http.ResponseWriter, r *http.Request, bodyLimit int64) (*upload.Decoder, error) {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	return upload.FromRequest(r, upload.Options{MaxTextBytes: h.cfg.MaxTextBytes})
}

// parseSmallForm reads an urlencoded or multipart body into r.PostForm.
func parseSmallForm(w http.ResponseWriter, r *http.Request, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	var err error
	if isMultipart(r) {
		err = r.ParseMultipartForm(limit)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return upload.BodyError(err)
	}
	return nil
}

// postFormValue returns the first non-empty value among the aliases.
func postFormValue(r *http.Request, names ...string) string {
	for _, name := range names {
		if v := r.PostForm.Get(name); strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
