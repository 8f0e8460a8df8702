package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	apperrors "wiredleaf-api/errors"
	"wiredleaf-api/models"
)

func strPtr(s string) *string { return &s }

func TestListUsersSearch(t *testing.T) {
	repo := newMemRepo()
	repo.users = []models.UserWithStats{
		{Profile: models.Profile{ID: "1", FullName: strPtr("Alice Smith"), Email: strPtr("alice@acme.io")}, Stats: models.UserStats{ConsultationsCount: 2}},
		{Profile: models.Profile{ID: "2", FullName: strPtr("Bob"), Phone: strPtr("+14155550100")}},
		{Profile: models.Profile{ID: "3"}},
	}
	svc := NewUserService(repo)
	ctx := context.Background()

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	byName, err := svc.List(ctx, "smith")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	require.Equal(t, 2, byName[0].Stats.ConsultationsCount)

	byPhone, err := svc.List(ctx, "555")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	require.Equal(t, "2", byPhone[0].ID)
}

func TestRegisterProfileUpserts(t *testing.T) {
	repo := newMemRepo()
	svc := NewUserService(repo)
	userID := uuid.NewString()
	ctx := context.Background()

	first, err := svc.Register(ctx, models.ProfileRequest{UserID: userID, FullName: "Ann", Email: "ann@x.io"})
	require.NoError(t, err)

	second, err := svc.Register(ctx, models.ProfileRequest{UserID: userID, FullName: "Ann Lee", Phone: "+44 20 7946 0958"})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Len(t, repo.profiles, 1)
	require.Equal(t, "Ann Lee", *repo.profiles[0].FullName)
	require.Equal(t, "+442079460958", *repo.profiles[0].Phone)
	require.Nil(t, repo.profiles[0].Email)
}

func TestRegisterProfileValidation(t *testing.T) {
	svc := NewUserService(newMemRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, models.ProfileRequest{UserID: "abc"})
	require.True(t, apperrors.IsKind(err, apperrors.Invalid))

	_, err = svc.Register(ctx, models.ProfileRequest{UserID: uuid.NewString(), Email: "bad"})
	require.True(t, apperrors.IsKind(err, apperrors.Invalid))
}

func TestUserConsultations(t *testing.T) {
	repo := newMemRepo()
	userID := uuid.NewString()
	repo.consultations = []models.Consultation{
		{ID: "a", UserID: &userID},
		{ID: "b"},
	}
	svc := NewUserService(repo)

	got, err := svc.Consultations(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "a", got[0].ID)

	_, err = svc.Consultations(context.Background(), "nope")
	require.True(t, apperrors.IsKind(err, apperrors.NotFound))
}
