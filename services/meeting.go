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

type MeetingRepository interface {
	CreateMeeting(ctx context.Context, m *models.Meeting) error
	ListMeetings(ctx context.Context) ([]models.Meeting, error)
	GetMeeting(ctx context.Context, id string) (*models.Meeting, error)
	UpdateMeetingStatus(ctx context.Context, id, status string) error
}

type MeetingService struct {
	repo   MeetingRepository
	events *Events
	links  *MeetingLinks
}

func NewMeetingService(repo MeetingRepository, events *Events, links *MeetingLinks) *MeetingService {
	return &MeetingService{repo: repo, events: events, links: links}
}

// List returns meetings by start time, filtered on title and description.
func (s *MeetingService) List(ctx context.Context, search string) ([]models.Meeting, error) {
	all, err := s.repo.ListMeetings(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Meeting, 0, len(all))
	for i := range all {
		if utils.ContainsFold(search, &all[i].Title, all[i].Description) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (s *MeetingService) Create(ctx context.Context, req models.MeetingRequest) (*models.Meeting, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := utils.ValidateMeetingWindow(req.Title, req.StartTime, req.EndTime); err != nil {
		return nil, apperrors.E(apperrors.Invalid, err.Error())
	}

	link := strings.TrimSpace(req.MeetingLink)
	if link == "" && s.links != nil {
		link = s.links.Generate()
	}
	m := &models.Meeting{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: models.OptionalString(strings.TrimSpace(req.Description)),
		StartTime:   req.StartTime.UTC(),
		EndTime:     req.EndTime.UTC(),
		MeetingLink: models.OptionalString(link),
		Status:      models.MeetingScheduled,
	}
	if err := s.repo.CreateMeeting(ctx, m); err != nil {
		return nil, err
	}
	logger.Info("Meeting %s created: %s", m.ID, m.Title)
	s.events.Emit(ctx, EventMeetingCreated, m.ID, m)
	return m, nil
}

// UpdateStatus sets the meeting status and returns the stored row.
func (s *MeetingService) UpdateStatus(ctx context.Context, id, status string) (*models.Meeting, error) {
	if err := checkID(id, "meeting"); err != nil {
		return nil, err
	}
	if err := utils.ValidateMeetingStatus(status); err != nil {
		return nil, apperrors.E(apperrors.Invalid, err.Error())
	}
	if err := s.repo.UpdateMeetingStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetMeeting(ctx, id)
}
