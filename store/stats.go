package store

import (
	"context"
	"time"

	apperrors "wiredleaf-api/errors"
	"wiredleaf-api/models"
)

// DashboardStats counts rows for the overview cards. Meetings count as
// "today" when start_time falls on day's UTC calendar date.
func (s *Store) DashboardStats(ctx context.Context, day time.Time) (models.DashboardStats, error) {
	var st models.DashboardStats
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM consultations),
			(SELECT COUNT(*) FROM consultations WHERE status = 'pending'),
			(SELECT COUNT(*) FROM meetings),
			(SELECT COUNT(*) FROM meetings WHERE start_time >= $1 AND start_time < $2),
			(SELECT COUNT(*) FROM profiles)`,
		dayStart, dayStart.Add(24*time.Hour),
	).Scan(&st.TotalConsultations, &st.PendingConsultations, &st.TotalMeetings, &st.TodayMeetings, &st.TotalUsers)
	if err != nil {
		return st, apperrors.E(apperrors.Internal, "dashboard stats", err)
	}
	return st, nil
}
