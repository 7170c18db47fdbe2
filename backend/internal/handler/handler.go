package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fourchess/fourchess/backend/internal/service"
	"github.com/fourchess/fourchess/shared/config"
	"github.com/fourchess/fourchess/shared/logger"
	"github.com/fourchess/fourchess/shared/utils"
)

// HealthChecker reports whether the database answers.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	board      service.BoardService
	thread     service.ThreadService
	reply      service.ReplyService
	moderation service.ModerationService
	health     HealthChecker
	cfg        *config.Public
}

func New(
	board service.BoardService,
	thread service.ThreadService,
	reply service.ReplyService,
	moderation service.ModerationService,
	health HealthChecker,
	cfg *config.Public,
) *Handler {
	return &Handler{
		board:      board,
		thread:     thread,
		reply:      reply,
		moderation: moderation,
		health:     health,
		cfg:        cfg,
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Error("failed to encode response", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// writeError is utils.WriteErrorAndStatusCode that stays quiet when the
// client hung up mid-request.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil && errors.Is(err, context.Canceled) {
		logger.Log.Debug("request canceled by client", "path", r.URL.Path)
		return
	}
	utils.WriteErrorAndStatusCode(w, err)
}
