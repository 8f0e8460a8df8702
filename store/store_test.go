package store_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"wiredleaf-api/db"
	apperrors "wiredleaf-api/errors"
	"wiredleaf-api/models"
	"wiredleaf-api/store"
)

// These tests run against a real Postgres and are skipped unless
// DATABASE_URL is set.
func setup(t *testing.T) *store.Store {
	t.Helper()
	_ = godotenv.Load("../.env")
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	conn, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.Migrate(context.Background(), conn))
	return store.New(conn)
}

// unreachable returns a store whose pool cannot connect. It needs no
// database, so these tests always run.
func unreachable(t *testing.T) *store.Store {
	t.Helper()
	conn, err := sql.Open("postgres", "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return store.New(conn)
}

func TestLookupsReportConnectionFailuresAsInternal(t *testing.T) {
	st := unreachable(t)
	ctx := context.Background()

	_, err := st.GetDLQMessage(ctx, uuid.NewString())
	require.True(t, apperrors.IsKind(err, apperrors.Internal), err)

	_, err = st.GetMeeting(ctx, uuid.NewString())
	require.True(t, apperrors.IsKind(err, apperrors.Internal), err)

	_, err = st.DLQStats(ctx)
	require.True(t, apperrors.IsKind(err, apperrors.Internal), err)
}

func newConsultation(userID *string) *models.Consultation {
	return &models.Consultation{
		ID:      uuid.NewString(),
		UserID:  userID,
		Name:    "Test Client",
		Email:   "client-" + uuid.NewString()[:8] + "@example.com",
		Service: "Website Development",
		Status:  models.ConsultationPending,
	}
}

func TestConsultationLifecycle(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	c := newConsultation(nil)
	require.NoError(t, st.CreateConsultation(ctx, c))
	require.False(t, c.CreatedAt.IsZero())

	require.NoError(t, st.UpdateConsultationStatus(ctx, c.ID, models.ConsultationRejected))
	got, err := st.GetConsultation(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, models.ConsultationRejected, got.Status)

	err = st.UpdateConsultationStatus(ctx, uuid.NewString(), models.ConsultationApproved)
	require.True(t, apperrors.IsKind(err, apperrors.NotFound))
}

func TestApproveConsultationCreatesMeeting(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	userID := uuid.NewString()
	require.NoError(t, st.UpsertProfile(ctx, &models.Profile{ID: uuid.NewString(), UserID: userID}))

	c := newConsultation(&userID)
	require.NoError(t, st.CreateConsultation(ctx, c))

	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	m := &models.Meeting{
		ID:             uuid.NewString(),
		Title:          "Consultation: " + c.Service,
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
		Status:         models.MeetingScheduled,
		ConsultationID: &c.ID,
	}
	require.NoError(t, st.ApproveConsultation(ctx, c.ID, m))

	require.NoError(t, st.UpdateMeetingStatus(ctx, m.ID, models.MeetingOngoing))
	gotMeeting, err := st.GetMeeting(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, models.MeetingOngoing, gotMeeting.Status)
	_, err = st.GetMeeting(ctx, uuid.NewString())
	require.True(t, apperrors.IsKind(err, apperrors.NotFound))

	users, err := st.ListUsersWithStats(ctx)
	require.NoError(t, err)
	var found bool
	for _, u := range users {
		if u.UserID == userID {
			found = true
			require.Equal(t, 1, u.Stats.ConsultationsCount)
			require.Equal(t, 1, u.Stats.MeetingsCount)
			require.NotNil(t, u.Stats.LastConsultation)
		}
	}
	require.True(t, found)
}

func TestAdminUniqueEmail(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	a := &models.Admin{ID: uuid.NewString(), Email: "admin-" + uuid.NewString()[:8] + "@example.com", PasswordHash: "x", Name: "Admin"}
	require.NoError(t, st.CreateAdmin(ctx, a))

	dup := *a
	dup.ID = uuid.NewString()
	err := st.CreateAdmin(ctx, &dup)
	require.True(t, apperrors.IsKind(err, apperrors.Conflict))

	got, err := st.AdminByEmail(ctx, a.Email)
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)
}

func TestDLQRoundTrip(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	require.NoError(t, st.StoreDLQMessage(ctx, "emails", "k", []byte("not json"), "boom"))
	msgs, err := st.ListDLQMessages(ctx, 10)
	require.NoError(t, err)
	require.NotEmpty(t, msgs)

	require.NoError(t, st.ResolveDLQMessage(ctx, msgs[0].MessageID, "handled"))
	err = st.ResolveDLQMessage(ctx, msgs[0].MessageID, "again")
	require.True(t, apperrors.IsKind(err, apperrors.NotFound))

	_, err = st.GetDLQMessage(ctx, uuid.NewString())
	require.True(t, apperrors.IsKind(err, apperrors.NotFound))
}
