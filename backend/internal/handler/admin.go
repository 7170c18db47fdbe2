package handler

import (
	"net/http"
)

// Admin endpoints take the shared secret in the "password" form field.
// Authorization itself happens in the moderation service.

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(r, "thread")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := parseSmallForm(w, r, adminFormMax); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.moderation.DeleteThread(r.Context(), r.PostForm.Get("password"), threadId); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	replyId, err := parseIntParam(r, "reply")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := parseSmallForm(w, r, adminFormMax); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.moderation.DeleteReply(r.Context(), r.PostForm.Get("password"), replyId); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	boardId, err := parseBoardParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := parseSmallForm(w, r, adminFormMax); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.moderation.SoftDeleteBoard(r.Context(), r.PostForm.Get("password"), boardId); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) RenameBoard(w http.ResponseWriter, r *http.Request) {
	boardId, err := parseBoardParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := parseSmallForm(w, r, adminFormMax); err != nil {
		writeError(w, r, err)
		return
	}

	name := r.PostForm.Get("name")
	if err := h.moderation.RenameBoard(r.Context(), r.PostForm.Get("password"), boardId, name); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
