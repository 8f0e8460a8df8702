package models

import "time"

// Consultation statuses
const (
	ConsultationPending   = "pending"
	ConsultationApproved  = "approved"
	ConsultationRejected  = "rejected"
	ConsultationCompleted = "completed"
)

// Consultation is a client-submitted request for a call.
type Consultation struct {
	ID            string    `json:"id"`
	UserID        *string   `json:"user_id,omitempty"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         *string   `json:"phone"`
	Service       string    `json:"service"`
	Message       *string   `json:"message"`
	PreferredDate *string   `json:"preferred_date"`
	PreferredTime *string   `json:"preferred_time"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ConsultationRequest is the booking form payload.
type ConsultationRequest struct {
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Service       string `json:"service"`
	Message       string `json:"message"`
	PreferredDate string `json:"preferred_date"`
	PreferredTime string `json:"preferred_time"`
}

// ConsultationResponse is the API shape with formatted timestamps.
type ConsultationResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone"`
	Service       string  `json:"service"`
	Message       *string `json:"message"`
	PreferredDate *string `json:"preferred_date"`
	PreferredTime *string `json:"preferred_time"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func (c *Consultation) ToResponse() ConsultationResponse {
	return ConsultationResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Service:       c.Service,
		Message:       c.Message,
		PreferredDate: c.PreferredDate,
		PreferredTime: c.PreferredTime,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     c.UpdatedAt.Format(time.RFC3339),
	}
}

// StringOr dereferences s, returning fallback for nil or empty values.
func StringOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

// OptionalString returns nil for an empty string.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
