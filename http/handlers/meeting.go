package handlers

import (
	"net/http"
	"strings"

	"wiredleaf-api/http/response"
	"wiredleaf-api/models"
)

// ListMeetings handles GET /api/admin/meetings?search=
func (h *Handler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	ms, err := h.meetings.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("search")))
	if err != nil {
		response.FromError(w, err, "Failed to load meetings")
		return
	}
	response.SuccessResponse(w, http.StatusOK, "Meetings retrieved", map[string]interface{}{
		"count":    len(ms),
		"meetings": ms,
	})
}

// CreateMeeting handles POST /api/admin/meetings
func (h *Handler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	var req models.MeetingRequest
	if !decode(w, r, &req) {
		return
	}

	m, err := h.meetings.Create(r.Context(), req)
	if err != nil {
		response.FromError(w, err, "Failed to create meeting")
		return
	}
	response.SuccessResponse(w, http.StatusCreated, "Meeting created", m)
}

// UpdateMeetingStatus handles PATCH /api/admin/meetings/{id}/status
func (h *Handler) UpdateMeetingStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decode(w, r, &req) {
		return
	}

	m, err := h.meetings.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		response.FromError(w, err, "Failed to update meeting status")
		return
	}
	response.SuccessResponse(w, http.StatusOK, "Meeting status updated", m)
}
