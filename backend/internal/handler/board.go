package handler

import (
	"net/http"
)

func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.board.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, boards)
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	boardId, err := parseBoardParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	threadPage, err := h.board.ThreadPage(r.Context(), boardId, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, threadPage)
}
