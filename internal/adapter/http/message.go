package httpadapter

import (
	"net/http"

	"linkfluence/internal/core/domain"
	"linkfluence/internal/core/port"
)

type postMessageRequest struct {
	CampaignID string `json:"campaign_id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

// handlePostMessage appends a message to a campaign conversation. The
// pair must be linked by an application on the campaign (403 otherwise)
// and content must be non-empty after trimming (400).
func (h *Handler) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	var req postMessageRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.CampaignID == "" || req.SenderID == "" || req.ReceiverID == "" {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "campaign_id, sender_id and receiver_id are required"})
		return
	}
	msg, err := h.engagement.PostMessage(r.Context(), port.PostMessageReq{
		CampaignID: req.CampaignID,
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, msg)
}

// handleConversation returns the ordered message history for a
// (campaign, creator, business) triple. Both participants get the
// identical view; polling is safe.
func (h *Handler) handleConversation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	campaignID := q.Get("campaign_id")
	creatorID := q.Get("creator_id")
	businessID := q.Get("business_id")
	if campaignID == "" || creatorID == "" || businessID == "" {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "campaign_id, creator_id and business_id are required"})
		return
	}
	msgs, err := h.engagement.Conversation(r.Context(), campaignID, creatorID, businessID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	h.writeJSON(w, http.StatusOK, msgs)
}
