package handlers

import (
	"net/http"

	"wiredleaf-api/http/middleware"
	"wiredleaf-api/http/response"
	"wiredleaf-api/models"
)

// Login handles POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.auth.Login(r.Context(), req)
	if err != nil {
		response.FromError(w, err, "Login failed. Please try again.")
		return
	}
	response.SuccessResponse(w, http.StatusOK, "Login successful", res)
}

// Me handles GET /api/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	c, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		response.ErrorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	response.SuccessResponse(w, http.StatusOK, "", map[string]interface{}{
		"admin_id":   c.AdminID,
		"email":      c.Email,
		"name":       c.Name,
		"expires_at": c.ExpiresAt.Time,
	})
}
