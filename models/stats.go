package models

// DashboardStats feeds the admin overview cards.
type DashboardStats struct {
	TotalConsultations   int `json:"total_consultations"`
	PendingConsultations int `json:"pending_consultations"`
	TotalMeetings        int `json:"total_meetings"`
	TodayMeetings        int `json:"today_meetings"`
	TotalUsers           int `json:"total_users"`
}
