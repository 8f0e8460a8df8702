package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wiredleaf-api/auth"
	apperrors "wiredleaf-api/errors"
	"wiredleaf-api/models"
)

func newTestAuth() (*AuthService, *memRepo, *stubNotifier, *auth.Tokens) {
	repo := newMemRepo()
	n := &stubNotifier{}
	tokens := auth.NewTokens("test-secret", time.Hour)
	return NewAuthService(repo, tokens, n), repo, n, tokens
}

func TestLogin(t *testing.T) {
	svc, _, n, tokens := newTestAuth()
	ctx := context.Background()

	a, err := svc.CreateAdmin(ctx, "Admin@WiredLeaf.com", "Ada", "correct-horse")
	require.NoError(t, err)
	require.Equal(t, "admin@wiredleaf.com", a.Email)
	require.NotEqual(t, "correct-horse", a.PasswordHash)

	res, err := svc.Login(ctx, models.LoginRequest{Email: " admin@wiredleaf.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.Equal(t, a.ID, res.AdminID)
	require.Equal(t, "Ada", res.Name)

	claims, err := tokens.Parse(res.Token)
	require.NoError(t, err)
	require.Equal(t, a.ID, claims.AdminID)

	require.Len(t, n.calls, 1)
	require.Equal(t, models.NotifyLogin, n.calls[0].req.Type)
	require.Equal(t, "admin@wiredleaf.com", n.calls[0].req.UserEmail)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, n, _ := newTestAuth()
	ctx := context.Background()
	_, err := svc.CreateAdmin(ctx, "admin@wiredleaf.com", "Ada", "correct-horse")
	require.NoError(t, err)

	for _, req := range []models.LoginRequest{
		{Email: "admin@wiredleaf.com", Password: "wrong-horse"},
		{Email: "nobody@wiredleaf.com", Password: "correct-horse"},
	} {
		_, err := svc.Login(ctx, req)
		require.True(t, apperrors.IsKind(err, apperrors.Unauthorized))
		require.Equal(t, "invalid credentials", apperrors.PublicMessage(err, ""))
	}
	require.Empty(t, n.calls)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "admin@wiredleaf.com"})
	require.True(t, apperrors.IsKind(err, apperrors.Invalid))
}

func TestLoginStoreFailure(t *testing.T) {
	svc, repo, _, _ := newTestAuth()
	repo.err = apperrors.E(apperrors.Internal, "get admin", errors.New("db down"))

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "a@x.io", Password: "p"})
	require.True(t, apperrors.IsKind(err, apperrors.Internal))
}

func TestCreateAdminValidation(t *testing.T) {
	svc, _, _, _ := newTestAuth()
	ctx := context.Background()

	_, err := svc.CreateAdmin(ctx, "bad", "Ada", "long-enough")
	require.True(t, apperrors.IsKind(err, apperrors.Invalid))
	_, err = svc.CreateAdmin(ctx, "a@x.io", "Ada", "short")
	require.True(t, apperrors.IsKind(err, apperrors.Invalid))

	_, err = svc.CreateAdmin(ctx, "a@x.io", "Ada", "long-enough")
	require.NoError(t, err)
	_, err = svc.CreateAdmin(ctx, "a@x.io", "Ada", "long-enough")
	require.True(t, apperrors.IsKind(err, apperrors.Conflict))
}
