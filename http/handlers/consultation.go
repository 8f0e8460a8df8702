package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"wiredleaf-api/http/response"
	"wiredleaf-api/logger"
	"wiredleaf-api/models"
	"wiredleaf-api/utils"
)

const maxUploadBytes = 10 << 20

// CreateConsultation handles the public booking form.
// POST /api/consultations
func (h *Handler) CreateConsultation(w http.ResponseWriter, r *http.Request) {
	var req models.ConsultationRequest
	if !decode(w, r, &req) {
		return
	}

	c, err := h.consultations.Create(r.Context(), req)
	if err != nil {
		response.FromError(w, err, "Failed to submit consultation request. Please try again.")
		return
	}
	response.SuccessResponse(w, http.StatusCreated, "Consultation request submitted", c.ToResponse())
}

// ListConsultations handles GET /api/admin/consultations?search=&status=
func (h *Handler) ListConsultations(w http.ResponseWriter, r *http.Request) {
	cs, err := h.consultations.List(r.Context(), utils.ParseListFilter(r))
	if err != nil {
		response.FromError(w, err, "Failed to load consultations")
		return
	}
	response.SuccessResponse(w, http.StatusOK, "Consultations retrieved", map[string]interface{}{
		"count":         len(cs),
		"consultations": utils.ConvertConsultationsToResponse(cs),
	})
}

// UpdateConsultationStatus handles PATCH /api/admin/consultations/{id}/status
func (h *Handler) UpdateConsultationStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decode(w, r, &req) {
		return
	}

	c, err := h.consultations.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		response.FromError(w, err, "Failed to update consultation status")
		return
	}
	response.SuccessResponse(w, http.StatusOK, "Consultation status updated", c.ToResponse())
}

// ApproveConsultation handles POST /api/admin/consultations/{id}/approve
func (h *Handler) ApproveConsultation(w http.ResponseWriter, r *http.Request) {
	var req models.ApproveRequest
	if !decode(w, r, &req) {
		return
	}

	m, err := h.consultations.Approve(r.Context(), r.PathValue("id"), req)
	if err != nil {
		response.FromError(w, err, "Failed to approve consultation")
		return
	}
	response.SuccessResponse(w, http.StatusCreated, "Consultation approved and meeting scheduled", m)
}

// ImportConsultations handles a multipart xlsx upload in field "file".
// POST /api/admin/consultations/import
func (h *Handler) ImportConsultations(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid file")
		return
	}
	defer file.Close()
	logger.Info("Processing consultation import: %s (%d bytes)", header.Filename, header.Size)

	res, err := h.consultations.Import(r.Context(), file)
	if err != nil {
		response.FromError(w, err, "Failed to import consultations")
		return
	}
	response.SuccessResponse(w, http.StatusOK, fmt.Sprintf("%d consultations imported", res.Imported), res)
}

// ExportConsultations handles GET /api/admin/consultations/export
// with optional created_after / created_before (RFC3339).
func (h *Handler) ExportConsultations(w http.ResponseWriter, r *http.Request) {
	filters, err := utils.ParseTimeFilters(r)
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := h.consultations.Export(r.Context(), &buf, filters.CreatedAfter, filters.CreatedBefore); err != nil {
		response.FromError(w, err, "Failed to export consultations")
		return
	}

	name := fmt.Sprintf("consultations-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error("Error writing export: %v", err)
	}
}
