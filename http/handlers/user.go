package handlers

import (
	"net/http"
	"strings"

	"wiredleaf-api/http/response"
	"wiredleaf-api/models"
	"wiredleaf-api/utils"
)

// ListUsers handles GET /api/admin/users?search=
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("search")))
	if err != nil {
		response.FromError(w, err, "Failed to load users")
		return
	}
	response.SuccessResponse(w, http.StatusOK, "Users retrieved", map[string]interface{}{
		"count": len(users),
		"users": users,
	})
}

// UserConsultations handles GET /api/admin/users/{userId}/consultations
func (h *Handler) UserConsultations(w http.ResponseWriter, r *http.Request) {
	cs, err := h.users.Consultations(r.Context(), r.PathValue("userId"))
	if err != nil {
		response.FromError(w, err, "Failed to load user consultations")
		return
	}
	response.SuccessResponse(w, http.StatusOK, "Consultations retrieved", utils.ConvertConsultationsToResponse(cs))
}

// RegisterProfile handles POST /api/profiles
func (h *Handler) RegisterProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileRequest
	if !decode(w, r, &req) {
		return
	}

	p, err := h.users.Register(r.Context(), req)
	if err != nil {
		response.FromError(w, err, "Failed to save profile")
		return
	}
	response.SuccessResponse(w, http.StatusOK, "Profile saved", p)
}

// DashboardStats handles GET /api/admin/stats
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.dashboard.Stats(r.Context())
	if err != nil {
		response.FromError(w, err, "Failed to load dashboard stats")
		return
	}
	response.SuccessResponse(w, http.StatusOK, "Dashboard stats", st)
}
