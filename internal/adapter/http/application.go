package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"linkfluence/internal/core/domain"
	"linkfluence/internal/core/port"
)

type submitApplicationRequest struct {
	CampaignID  string        `json:"campaign_id"`
	CreatorID   string        `json:"creator_id"`
	CreatorName string        `json:"creator_name"`
	CoverLetter string        `json:"cover_letter"`
	BidAmount   domain.Budget `json:"bid_amount"`
}

// handleSubmitApplication records a creator's application to a
// campaign. Duplicate applies surface as 409, missing or closed
// campaigns as 404.
func (h *Handler) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	var req submitApplicationRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.CampaignID == "" || req.CreatorID == "" || req.CreatorName == "" {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "campaign_id, creator_id and creator_name are required"})
		return
	}
	app, err := h.engagement.SubmitApplication(r.Context(), port.SubmitApplicationReq{
		CampaignID:  req.CampaignID,
		CreatorID:   req.CreatorID,
		CreatorName: req.CreatorName,
		CoverLetter: req.CoverLetter,
		BidAmount:   req.BidAmount.Int64(),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, app)
}

func (h *Handler) handleCampaignApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.engagement.CampaignApplications(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if apps == nil {
		apps = []domain.Application{}
	}
	h.writeJSON(w, http.StatusOK, apps)
}

func (h *Handler) handleCreatorApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.engagement.CreatorApplications(r.Context(), chi.URLParam(r, "creatorID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if apps == nil {
		apps = []domain.Application{}
	}
	h.writeJSON(w, http.StatusOK, apps)
}

type resolveApplicationRequest struct {
	Status     domain.ApplicationStatus `json:"status"`
	BusinessID string                   `json:"business_id"`
}

// handleResolveApplication applies an accept/reject decision. Only the
// owner of the referenced campaign may decide; terminal applications
// respond 409.
func (h *Handler) handleResolveApplication(w http.ResponseWriter, r *http.Request) {
	var req resolveApplicationRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	app, err := h.engagement.ResolveApplication(r.Context(), chi.URLParam(r, "applicationID"), req.Status, req.BusinessID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, app)
}
