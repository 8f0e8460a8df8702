package utils

import (
	"strings"

	"wiredleaf-api/models"
)

// DeduplicateConsultations drops repeated email+service pairs, keeping the first.
func DeduplicateConsultations(in []models.ConsultationRequest) []models.ConsultationRequest {
	seen := make(map[string]bool)
	unique := make([]models.ConsultationRequest, 0, len(in))

	for _, c := range in {
		key := strings.ToLower(c.Email) + "|" + c.Service
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, c)
	}
	return unique
}

func ConvertConsultationsToResponse(in []models.Consultation) []models.ConsultationResponse {
	out := make([]models.ConsultationResponse, len(in))
	for i := range in {
		out[i] = in[i].ToResponse()
	}
	return out
}
