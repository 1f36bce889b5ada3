package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleNotifications returns the user's newest notifications together
// with the unread count.
func (h *Handler) handleNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "user_id required"})
		return
	}
	summary, err := h.engagement.UnreadSummary(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

type markReadRequest struct {
	UserID string `json:"user_id"`
}

// handleMarkRead flips a notification's read flag for its recipient.
// Repeats are no-ops.
func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	var req markReadRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := h.engagement.MarkNotificationRead(r.Context(), chi.URLParam(r, "notificationID"), req.UserID); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Marked as read"})
}
