package models

import "time"

// Profile is a registered user's contact record.
type Profile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FullName  *string   `json:"full_name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProfileRequest struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// UserStats aggregates a profile's activity.
type UserStats struct {
	ConsultationsCount int        `json:"consultations_count"`
	MeetingsCount      int        `json:"meetings_count"`
	LastConsultation   *time.Time `json:"last_consultation"`
}

// UserWithStats is one row of the admin users screen.
type UserWithStats struct {
	Profile
	Stats UserStats `json:"stats"`
}
