package http

import (
	"errors"
	"net/http"

	"github.com/tallyworks/kasa/internal/kasa/service"
	"github.com/tallyworks/kasa/pkg/httpx"
	"github.com/tallyworks/kasa/pkg/slogx"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a server fault and gets logged; the
// client only sees a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalid):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", trimmedReason(err, service.ErrInvalid))
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "forbidden", trimmedReason(err, service.ErrForbidden))
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", trimmedReason(err, service.ErrNotFound))
	case errors.Is(err, service.ErrConflict):
		httpx.WriteError(w, http.StatusConflict, "conflict", trimmedReason(err, service.ErrConflict))
	case errors.Is(err, service.ErrExpired):
		httpx.WriteError(w, http.StatusGone, "expired", trimmedReason(err, service.ErrExpired))
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "An internal error occurred")
	}
}

// trimmedReason strips the "category: " prefix the sentinels carry so the
// wire description reads as a plain sentence.
func trimmedReason(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}

func writeBadJSON(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
}
