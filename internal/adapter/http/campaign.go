package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"linkfluence/internal/core/domain"
	"linkfluence/internal/core/port"
)

type createCampaignRequest struct {
	BusinessID  string        `json:"business_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Budget      domain.Budget `json:"budget"`
}

func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.BusinessID == "" || req.Title == "" {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "business_id and title are required"})
		return
	}
	c, err := h.campaigns.CreateCampaign(r.Context(), port.CreateCampaignReq{
		BusinessID:  req.BusinessID,
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget.Int64(),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	views, err := h.campaigns.ListCampaigns(r.Context(), r.URL.Query().Get("business_id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if views == nil {
		views = []port.CampaignView{}
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.campaigns.GetCampaign(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

type updateCampaignRequest struct {
	BusinessID  string                 `json:"business_id"`
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Budget      *domain.Budget         `json:"budget"`
	Status      *domain.CampaignStatus `json:"status"`
}

func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var req updateCampaignRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	upd := port.CampaignUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}
	if req.Budget != nil {
		amount := req.Budget.Int64()
		upd.Budget = &amount
	}
	c, err := h.campaigns.UpdateCampaign(r.Context(), chi.URLParam(r, "campaignID"), req.BusinessID, upd)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

type deleteCampaignRequest struct {
	BusinessID string `json:"business_id"`
}

func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	// the acting business comes from a query parameter or the body;
	// an empty body means the field is absent, not malformed JSON
	businessID := r.URL.Query().Get("business_id")
	if businessID == "" {
		var body deleteCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON"})
			return
		}
		businessID = body.BusinessID
	}
	if businessID == "" {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "business_id is required"})
		return
	}
	if err := h.campaigns.DeleteCampaign(r.Context(), chi.URLParam(r, "campaignID"), businessID); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Campaign deleted"})
}
