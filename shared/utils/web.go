package utils

import (
	"errors"
	"net/http"

	internal_errors "github.com/fourchess/fourchess/shared/errors"
	"github.com/fourchess/fourchess/shared/logger"
)

// WriteErrorAndStatusCode maps err onto an HTTP response. Errors without a
// status are internal: the client gets a generic message, the log gets
// the cause.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	var e *internal_errors.ErrorWithStatusCode
	if errors.As(err, &e) {
		http.Error(w, e.Message, e.StatusCode)
		return
	}
	logger.Log.Error("internal error", "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
