package http

import (
	"net/http"

	"wiredleaf-api/http/handlers"
	"wiredleaf-api/http/middleware"
)

// RouterConfig holds the cross-cutting pieces of the router.
type RouterConfig struct {
	CORSOrigin string
	Tokens     middleware.TokenParser
	// Limiter throttles the public write endpoints; nil disables it.
	Limiter *middleware.RateLimiter
}

// NewRouter configures all HTTP routes and middleware.
func NewRouter(h *handlers.Handler, cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	limited := func(fn http.HandlerFunc) http.Handler {
		if cfg.Limiter == nil {
			return fn
		}
		return cfg.Limiter.Limit(fn)
	}
	requireAdmin := middleware.RequireAdmin(cfg.Tokens)
	admin := func(fn http.HandlerFunc) http.Handler {
		return requireAdmin(fn)
	}

	mux.HandleFunc("GET /healthz", h.Healthz)

	// Public site APIs
	mux.Handle("POST /api/consultations", limited(h.CreateConsultation))
	mux.Handle("POST /api/contact", limited(h.SubmitContact))
	mux.Handle("POST /api/notifications", limited(h.SendNotification))
	mux.HandleFunc("POST /api/profiles", h.RegisterProfile)

	// Auth
	mux.Handle("POST /api/auth/login", limited(h.Login))
	mux.Handle("GET /api/auth/me", admin(h.Me))

	// Admin dashboard
	mux.Handle("GET /api/admin/stats", admin(h.DashboardStats))
	mux.Handle("GET /api/admin/consultations", admin(h.ListConsultations))
	mux.Handle("GET /api/admin/consultations/export", admin(h.ExportConsultations))
	mux.Handle("POST /api/admin/consultations/import", admin(h.ImportConsultations))
	mux.Handle("PATCH /api/admin/consultations/{id}/status", admin(h.UpdateConsultationStatus))
	mux.Handle("POST /api/admin/consultations/{id}/approve", admin(h.ApproveConsultation))
	mux.Handle("GET /api/admin/meetings", admin(h.ListMeetings))
	mux.Handle("POST /api/admin/meetings", admin(h.CreateMeeting))
	mux.Handle("PATCH /api/admin/meetings/{id}/status", admin(h.UpdateMeetingStatus))
	mux.Handle("GET /api/admin/users", admin(h.ListUsers))
	mux.Handle("GET /api/admin/users/{userId}/consultations", admin(h.UserConsultations))

	// DLQ management
	mux.Handle("GET /api/admin/dlq", admin(h.GetDLQMessages))
	mux.Handle("POST /api/admin/dlq/{id}/resolve", admin(h.ResolveDLQMessage))
	mux.Handle("POST /api/admin/dlq/{id}/retry", admin(h.RetryDLQMessage))

	return middleware.Logging(middleware.CORS(cfg.CORSOrigin)(mux))
}
