package handlers

import (
	"net/http"

	"wiredleaf-api/http/response"
	"wiredleaf-api/models"
)

// SendNotification handles POST /api/notifications with
// {type, userEmail, userName, data}.
func (h *Handler) SendNotification(w http.ResponseWriter, r *http.Request) {
	var req models.NotificationRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.notifier.Notify(r.Context(), req, nil); err != nil {
		response.FromError(w, err, "Failed to send notification")
		return
	}
	response.SuccessResponse(w, http.StatusOK, "Notification sent", map[string]bool{"success": true})
}

// SubmitContact handles POST /api/contact
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if !decode(w, r, &req) {
		return
	}

	m, err := h.contact.Submit(r.Context(), req)
	if err != nil {
		response.FromError(w, err, "Failed to send message. Please try again.")
		return
	}
	response.SuccessResponse(w, http.StatusCreated, "Message received", m)
}
