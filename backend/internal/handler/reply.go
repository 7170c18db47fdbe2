package handler

import (
	"fmt"
	"net/http"

	"github.com/fourchess/fourchess/shared/domain"
	"github.com/fourchess/fourchess/shared/logger"
)

// CreateReply accepts either an urlencoded or a multipart form.
func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(r, "thread")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var id domain.ReplyId
	if isMultipart(r) {
		form, ferr := h.formDecoder(w, r, h.textBudget())
		if ferr != nil {
			writeError(w, r, ferr)
			return
		}
		id, err = h.reply.Submit(r.Context(), threadId, form)
	} else {
		if err := parseSmallForm(w, r, h.textBudget()); err != nil {
			writeError(w, r, err)
			return
		}
		id, err = h.reply.Create(r.Context(), domain.ReplyCreationData{
			Thread: threadId,
			Author: r.PostForm.Get("name"),
			Body:   postFormValue(r, "message", "body"),
		})
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.Log.Info("reply created", "thread", threadId, "reply", id)
	w.WriteHeader(http.StatusCreated)
	fmt.Fprintf(w, "%d", id)
}

func (h *Handler) GetReply(w http.ResponseWriter, r *http.Request) {
	replyId, err := parseIntParam(r, "reply")
	if err != nil {
		writeError(w, r, err)
		return
	}

	reply, err := h.reply.Get(r.Context(), replyId)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, reply)
}
