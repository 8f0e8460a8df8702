package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	apperrors "wiredleaf-api/errors"
	"wiredleaf-api/models"
	"wiredleaf-api/utils"
)

type UserRepository interface {
	ListUsersWithStats(ctx context.Context) ([]models.UserWithStats, error)
	ListConsultationsByUser(ctx context.Context, userID string) ([]models.Consultation, error)
	UpsertProfile(ctx context.Context, p *models.Profile) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// List returns profiles newest first with their activity stats, filtered
// on name, email and phone.
func (s *UserService) List(ctx context.Context, search string) ([]models.UserWithStats, error) {
	all, err := s.repo.ListUsersWithStats(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserWithStats, 0, len(all))
	for i := range all {
		u := &all[i]
		if utils.ContainsFold(search, u.FullName, u.Email, u.Phone) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *UserService) Consultations(ctx context.Context, userID string) ([]models.Consultation, error) {
	if err := checkID(userID, "user"); err != nil {
		return nil, err
	}
	return s.repo.ListConsultationsByUser(ctx, userID)
}

// Register creates or updates the profile of req.UserID.
func (s *UserService) Register(ctx context.Context, req models.ProfileRequest) (*models.Profile, error) {
	if _, err := uuid.Parse(req.UserID); err != nil {
		return nil, apperrors.NewInvalidParamsError("user_id must be a UUID")
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email != "" {
		if err := utils.ValidateEmail(req.Email); err != nil {
			return nil, apperrors.E(apperrors.Invalid, err.Error())
		}
	}
	if err := utils.ValidatePhone(req.Phone); err != nil {
		return nil, apperrors.E(apperrors.Invalid, err.Error())
	}

	phone := ""
	if req.Phone != "" {
		phone = utils.NormalizePhone(req.Phone)
	}
	p := &models.Profile{
		ID:       uuid.NewString(),
		UserID:   req.UserID,
		FullName: models.OptionalString(strings.TrimSpace(req.FullName)),
		Email:    models.OptionalString(req.Email),
		Phone:    models.OptionalString(phone),
	}
	if err := s.repo.UpsertProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
