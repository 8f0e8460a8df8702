package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"wiredleaf-api/http/response"
)

// GetDLQMessages handles GET /api/admin/dlq?limit=50
func (h *Handler) GetDLQMessages(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			response.ErrorResponse(w, http.StatusBadRequest, "limit must be a number")
			return
		}
		limit = n
	}

	msgs, err := h.dlq.List(r.Context(), limit)
	if err != nil {
		response.FromError(w, err, "Failed to fetch DLQ messages")
		return
	}
	stats, err := h.dlq.Stats(r.Context())
	if err != nil {
		response.FromError(w, err, "Failed to fetch DLQ statistics")
		return
	}
	response.SuccessResponse(w, http.StatusOK, "DLQ messages retrieved", map[string]interface{}{
		"count":    len(msgs),
		"messages": msgs,
		"stats":    stats,
	})
}

// ResolveDLQMessage handles POST /api/admin/dlq/{id}/resolve with an
// optional {"notes": "..."} body. A missing or malformed body falls back
// to the default note.
func (h *Handler) ResolveDLQMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil {
		req.Notes = ""
	}

	id := r.PathValue("id")
	if err := h.dlq.Resolve(r.Context(), id, req.Notes); err != nil {
		response.FromError(w, err, "Failed to resolve message")
		return
	}
	response.SuccessResponse(w, http.StatusOK, "Message marked as resolved", map[string]string{"messageId": id})
}

// RetryDLQMessage handles POST /api/admin/dlq/{id}/retry
func (h *Handler) RetryDLQMessage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.dlq.Retry(r.Context(), id); err != nil {
		response.FromError(w, err, "Failed to retry message")
		return
	}
	response.SuccessResponse(w, http.StatusOK, "Message retry initiated", map[string]string{"messageId": id})
}
