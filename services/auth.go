package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"wiredleaf-api/auth"
	apperrors "wiredleaf-api/errors"
	"wiredleaf-api/logger"
	"wiredleaf-api/models"
	"wiredleaf-api/utils"
)

const minPasswordLength = 8

type AdminRepository interface {
	CreateAdmin(ctx context.Context, a *models.Admin) error
	AdminByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// TokenIssuer signs admin tokens.
type TokenIssuer interface {
	Issue(adminID, email, name string) (string, time.Time, error)
}

type AuthService struct {
	repo     AdminRepository
	tokens   TokenIssuer
	notifier NotificationSender
}

func NewAuthService(repo AdminRepository, tokens TokenIssuer, n NotificationSender) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, notifier: n}
}

var errInvalidCredentials = apperrors.NewUnauthorizedError("invalid credentials")

// Login checks the admin's password, issues a token and sends the login
// notification. Unknown email and wrong password look the same.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, apperrors.NewInvalidParamsError("email and password are required")
	}

	a, err := s.repo.AdminByEmail(ctx, email)
	if err != nil {
		if apperrors.IsKind(err, apperrors.NotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(a.PasswordHash, req.Password) {
		return nil, errInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(a.ID, a.Email, a.Name)
	if err != nil {
		return nil, apperrors.E(apperrors.Internal, "issue token", err)
	}
	logger.Info("Admin %s logged in", a.Email)

	if s.notifier != nil {
		err := s.notifier.Notify(ctx, models.NotificationRequest{
			Type:      models.NotifyLogin,
			UserEmail: a.Email,
			UserName:  a.Name,
		}, nil)
		if err != nil {
			logger.Warn("login notification for %s not sent: %v", a.Email, err)
		}
	}

	return &models.LoginResponse{Token: token, ExpiresAt: exp, AdminID: a.ID, Name: a.Name}, nil
}

// CreateAdmin seeds an admin account.
func (s *AuthService) CreateAdmin(ctx context.Context, email, name, password string) (*models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := utils.ValidateEmail(email); err != nil {
		return nil, apperrors.E(apperrors.Invalid, err.Error())
	}
	if err := utils.ValidateName(name); err != nil {
		return nil, apperrors.E(apperrors.Invalid, err.Error())
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.NewInvalidParamsError("password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.E(apperrors.Internal, "hash password", err)
	}
	a := &models.Admin{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
	}
	if err := s.repo.CreateAdmin(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
