package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	apperrors "wiredleaf-api/errors"
	"wiredleaf-api/logger"
	"wiredleaf-api/models"
	"wiredleaf-api/utils"
)

type ContactRepository interface {
	CreateContactMessage(ctx context.Context, m *models.ContactMessage) error
}

type ContactService struct {
	repo     ContactRepository
	notifier NotificationSender
}

func NewContactService(repo ContactRepository, n NotificationSender) *ContactService {
	return &ContactService{repo: repo, notifier: n}
}

// Submit stores a contact-form message and sends the contact notification.
// A notification failure is logged, not returned.
func (s *ContactService) Submit(ctx context.Context, req models.ContactRequest) (*models.ContactMessage, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	for _, err := range []error{
		utils.ValidateName(req.Name),
		utils.ValidateEmail(req.Email),
		utils.ValidatePhone(req.Phone),
		utils.ValidateMessage(req.Message, true),
	} {
		if err != nil {
			return nil, apperrors.E(apperrors.Invalid, err.Error())
		}
	}

	m := &models.ContactMessage{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   models.OptionalString(req.Phone),
		Service: models.OptionalString(strings.TrimSpace(req.Service)),
		Message: req.Message,
	}
	if err := s.repo.CreateContactMessage(ctx, m); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		err := s.notifier.Notify(ctx, models.NotificationRequest{
			Type:      models.NotifyContact,
			UserEmail: m.Email,
			UserName:  m.Name,
			Data: map[string]string{
				"phone":   req.Phone,
				"service": req.Service,
				"message": m.Message,
			},
		}, nil)
		if err != nil {
			logger.Warn("contact notification for %s not sent: %v", m.Email, err)
		}
	}
	return m, nil
}
