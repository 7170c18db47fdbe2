package handler

import (
	"fmt"
	"net/http"

	"github.com/fourchess/fourchess/shared/domain"
	"github.com/fourchess/fourchess/shared/logger"
)

// CreateThread accepts a multipart form with an optional "media" file.
// The file is streamed into media storage while the body is read.
func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	boardId, err := parseBoardParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	form, err := h.formDecoder(w, r, h.cfg.Media.MaxBytes+h.textBudget())
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.thread.Submit(r.Context(), boardId, form)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.Log.Info("thread created", "board", boardId, "thread", id)
	w.WriteHeader(http.StatusCreated)
	fmt.Fprintf(w, "%d", id)
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(r, "thread")
	if err != nil {
		writeError(w, r, err)
		return
	}

	thread, err := h.thread.Get(r.Context(), domain.ThreadId(threadId))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, thread)
}
