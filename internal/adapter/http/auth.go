package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"linkfluence/internal/core/domain"
	"linkfluence/internal/core/port"
)

type registerRequest struct {
	Email      string      `json:"email"`
	Password   string      `json:"password"`
	Role       domain.Role `json:"role"`
	Name       string      `json:"name"`
	Industry   string      `json:"industry"`
	Categories []string    `json:"categories"`
}

// handleRegister creates an account on either side of the marketplace.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" || req.Role == "" {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "email, password and role are required"})
		return
	}
	user, err := h.identity.Register(r.Context(), port.RegisterReq{
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		Name:       req.Name,
		Industry:   req.Industry,
		Categories: req.Categories,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{
		"message": "User created",
		"user_id": user.ID,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin checks credentials and returns the resolved identity. No
// session or token is issued.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	id, err := h.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, id)
}

// handleResolveUser maps a user id to its role and display name. This
// is the identity reference the dashboards use instead of keeping their
// own name caches.
func (h *Handler) handleResolveUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.identity.Resolve(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, id)
}
