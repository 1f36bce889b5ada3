package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"linkfluence/internal/core/domain"
)

type errorBody struct {
	Error string `json:"error"`
}

// writeJSON encodes v with the given status. Encoding failures are
// logged; headers are already gone by then.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError translates the domain error taxonomy into status codes.
// Domain errors carry a short human sentence; anything unknown becomes
// a generic 500 so clients can tell "request invalid" from "try again
// later" without seeing internals.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrAlreadyApplied),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrCampaignNotFound),
		errors.Is(err, domain.ErrCampaignClosed),
		errors.Is(err, domain.ErrApplicationNotFound),
		errors.Is(err, domain.ErrNotificationNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrNotRecipient),
		errors.Is(err, domain.ErrNotParticipant):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, domain.ErrInvalidDecision),
		errors.Is(err, domain.ErrInvalidRole):
		status = http.StatusBadRequest
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, errorBody{Error: "something went wrong, please try again later"})
		return
	}
	h.writeJSON(w, status, errorBody{Error: err.Error()})
}

// decodeJSON parses the request body into v. A false return means a 400
// has already been written.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON"})
		return false
	}
	return true
}
