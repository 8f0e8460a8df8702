package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wiredleaf-api/models"
)

func TestDashboardStatsUsesUTCDay(t *testing.T) {
	repo := newMemRepo()
	now := time.Date(2026, 5, 10, 23, 30, 0, 0, time.FixedZone("PDT", -7*3600))
	repo.consultations = []models.Consultation{
		{Status: models.ConsultationPending},
		{Status: models.ConsultationApproved},
	}
	repo.meetings = []models.Meeting{
		{StartTime: time.Date(2026, 5, 11, 9, 0, 0, 0, time.UTC)},
		{StartTime: time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)},
	}
	repo.users = []models.UserWithStats{{}}

	svc := NewDashboardService(repo)
	svc.now = func() time.Time { return now }

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.DashboardStats{
		TotalConsultations:   2,
		PendingConsultations: 1,
		TotalMeetings:        2,
		TodayMeetings:        1,
		TotalUsers:           1,
	}, st)
}
