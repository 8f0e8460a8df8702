package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "wiredleaf-api/errors"
	"wiredleaf-api/logger"
	"wiredleaf-api/models"
	"wiredleaf-api/utils"
)

type ConsultationRepository interface {
	CreateConsultation(ctx context.Context, c *models.Consultation) error
	BulkCreateConsultations(ctx context.Context, cs []*models.Consultation) (int, error)
	ListConsultations(ctx context.Context) ([]models.Consultation, error)
	ListConsultationsCreatedBetween(ctx context.Context, after, before *time.Time) ([]models.Consultation, error)
	GetConsultation(ctx context.Context, id string) (*models.Consultation, error)
	UpdateConsultationStatus(ctx context.Context, id, status string) error
	ApproveConsultation(ctx context.Context, id string, m *models.Meeting) error
}

type ConsultationService struct {
	repo     ConsultationRepository
	notifier NotificationSender
	events   *Events
	links    *MeetingLinks
}

func NewConsultationService(repo ConsultationRepository, n NotificationSender, events *Events, links *MeetingLinks) *ConsultationService {
	return &ConsultationService{repo: repo, notifier: n, events: events, links: links}
}

// ImportResult summarises a workbook import.
type ImportResult struct {
	Imported   int        `json:"imported"`
	Duplicates int        `json:"duplicates"`
	Failed     []RowError `json:"failed"`
}

func validateConsultation(req *models.ConsultationRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Service = strings.TrimSpace(req.Service)

	if err := utils.ValidateName(req.Name); err != nil {
		return err
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		return err
	}
	if err := utils.ValidatePhone(req.Phone); err != nil {
		return err
	}
	if err := utils.ValidateService(req.Service); err != nil {
		return err
	}
	if err := utils.ValidateMessage(req.Message, false); err != nil {
		return err
	}
	if req.UserID != "" {
		if _, err := uuid.Parse(req.UserID); err != nil {
			return apperrors.New("invalid user_id")
		}
	}
	return utils.ValidatePreferredSlot(req.PreferredDate, req.PreferredTime)
}

func newConsultation(req models.ConsultationRequest) *models.Consultation {
	phone := ""
	if req.Phone != "" {
		phone = utils.NormalizePhone(req.Phone)
	}
	return &models.Consultation{
		ID:            uuid.NewString(),
		UserID:        models.OptionalString(req.UserID),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         models.OptionalString(phone),
		Service:       req.Service,
		Message:       models.OptionalString(strings.TrimSpace(req.Message)),
		PreferredDate: models.OptionalString(req.PreferredDate),
		PreferredTime: models.OptionalString(req.PreferredTime),
		Status:        models.ConsultationPending,
	}
}

// Create stores a booking-form request as pending and sends the
// consultation notification. Notification failures are only logged.
func (s *ConsultationService) Create(ctx context.Context, req models.ConsultationRequest) (*models.Consultation, error) {
	if err := validateConsultation(&req); err != nil {
		return nil, apperrors.E(apperrors.Invalid, err.Error())
	}

	c := newConsultation(req)
	if err := s.repo.CreateConsultation(ctx, c); err != nil {
		return nil, err
	}
	logger.Info("Consultation %s created for %s (%s)", c.ID, c.Email, c.Service)

	s.events.Emit(ctx, EventConsultationCreated, c.ID, c.ToResponse())
	s.notify(ctx, models.NotificationRequest{
		Type:      models.NotifyConsultation,
		UserEmail: c.Email,
		UserName:  c.Name,
		Data: map[string]string{
			"phone":         models.StringOr(c.Phone, ""),
			"service":       c.Service,
			"message":       models.StringOr(c.Message, ""),
			"preferredDate": models.StringOr(c.PreferredDate, ""),
			"preferredTime": models.StringOr(c.PreferredTime, ""),
		},
	}, nil)
	return c, nil
}

func (s *ConsultationService) notify(ctx context.Context, req models.NotificationRequest, attach *models.Attachment) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, req, attach); err != nil {
		logger.Warn("%s notification for %s not sent: %v", req.Type, req.UserEmail, err)
	}
}

// List returns consultations newest first, filtered by status and by a
// case-insensitive search over name, email and service.
func (s *ConsultationService) List(ctx context.Context, f utils.ListFilter) ([]models.Consultation, error) {
	if f.Status != "" {
		if err := utils.ValidateConsultationStatus(f.Status); err != nil {
			return nil, apperrors.E(apperrors.Invalid, err.Error())
		}
	}

	all, err := s.repo.ListConsultations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Consultation, 0, len(all))
	for i := range all {
		c := &all[i]
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if !utils.ContainsFold(f.Search, &c.Name, &c.Email, &c.Service) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

// UpdateStatus sets the status and returns the re-fetched row.
func (s *ConsultationService) UpdateStatus(ctx context.Context, id, status string) (*models.Consultation, error) {
	if err := checkID(id, "consultation"); err != nil {
		return nil, err
	}
	if err := utils.ValidateConsultationStatus(status); err != nil {
		return nil, apperrors.E(apperrors.Invalid, err.Error())
	}
	if err := s.repo.UpdateConsultationStatus(ctx, id, status); err != nil {
		return nil, err
	}
	c, err := s.repo.GetConsultation(ctx, id)
	if err != nil {
		return nil, err
	}
	s.events.Emit(ctx, EventConsultationStatusChanged, id, map[string]string{"id": id, "status": status})
	return c, nil
}

// Approve marks the consultation approved, creates its meeting and sends
// the meeting_approved notification with a PDF invite.
func (s *ConsultationService) Approve(ctx context.Context, id string, req models.ApproveRequest) (*models.Meeting, error) {
	if err := checkID(id, "consultation"); err != nil {
		return nil, err
	}
	c, err := s.repo.GetConsultation(ctx, id)
	if err != nil {
		return nil, err
	}

	title := "Consultation: " + c.Service + " with " + c.Name
	if err := utils.ValidateMeetingWindow(title, req.StartTime, req.EndTime); err != nil {
		return nil, apperrors.E(apperrors.Invalid, err.Error())
	}

	link := strings.TrimSpace(req.MeetingLink)
	if link == "" {
		link = s.links.Generate()
	}
	consultationID := c.ID
	m := &models.Meeting{
		ID:             uuid.NewString(),
		Title:          title,
		Description:    c.Message,
		StartTime:      req.StartTime.UTC(),
		EndTime:        req.EndTime.UTC(),
		MeetingLink:    &link,
		Status:         models.MeetingScheduled,
		ConsultationID: &consultationID,
	}
	if err := s.repo.ApproveConsultation(ctx, id, m); err != nil {
		return nil, err
	}
	logger.Info("Consultation %s approved, meeting %s scheduled at %s", id, m.ID, m.StartTime.Format(time.RFC3339))

	s.events.Emit(ctx, EventConsultationStatusChanged, id, map[string]string{"id": id, "status": models.ConsultationApproved})
	s.events.Emit(ctx, EventMeetingCreated, m.ID, m)

	invite, err := MeetingInvitePDF(c, m)
	if err != nil {
		logger.Warn("meeting invite for %s not generated: %v", m.ID, err)
	}
	s.notify(ctx, models.NotificationRequest{
		Type:      models.NotifyMeetingApproved,
		UserEmail: c.Email,
		UserName:  c.Name,
		Data: map[string]string{
			"service":     c.Service,
			"meetingDate": m.StartTime.Format("Monday, January 2, 2006"),
			"meetingTime": m.StartTime.Format("3:04 PM MST"),
			"duration":    FormatDuration(m.Duration()),
			"meetingLink": link,
		},
	}, invite)
	return m, nil
}

// Import creates consultations from an xlsx workbook. Rows are validated
// like booking-form submissions; repeated email+service pairs within the
// file are skipped. Valid rows are inserted in one transaction.
func (s *ConsultationService) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	sheet, err := ParseConsultationsExcel(r)
	if err != nil {
		return nil, apperrors.E(apperrors.Invalid, err.Error())
	}

	result := &ImportResult{Failed: sheet.Errors}
	unique := utils.DeduplicateConsultations(sheet.Rows)
	result.Duplicates = len(sheet.Rows) - len(unique)

	rowOf := make(map[string]int, len(sheet.Rows))
	for i, req := range sheet.Rows {
		key := strings.ToLower(req.Email) + "|" + req.Service
		if _, ok := rowOf[key]; !ok {
			rowOf[key] = sheet.RowNums[i]
		}
	}

	var batch []*models.Consultation
	var batchRows []int
	for _, req := range unique {
		row := rowOf[strings.ToLower(req.Email)+"|"+req.Service]
		if err := validateConsultation(&req); err != nil {
			result.Failed = append(result.Failed, RowError{Row: row, Reason: err.Error()})
			continue
		}
		batch = append(batch, newConsultation(req))
		batchRows = append(batchRows, row)
	}

	if len(batch) > 0 {
		idx, err := s.repo.BulkCreateConsultations(ctx, batch)
		if err != nil {
			if idx >= 0 && idx < len(batchRows) && !apperrors.IsKind(err, apperrors.Internal) {
				msg := fmt.Sprintf("row %d: %s; no rows were saved", batchRows[idx], apperrors.PublicMessage(err, "could not be saved"))
				return nil, apperrors.E(apperrors.Invalid, msg, err)
			}
			return nil, err
		}
		result.Imported = len(batch)
		for _, c := range batch {
			s.events.Emit(ctx, EventConsultationCreated, c.ID, c.ToResponse())
		}
	}
	logger.Info("Consultation import: %d imported, %d duplicates, %d failed", result.Imported, result.Duplicates, len(result.Failed))
	return result, nil
}

// Export writes consultations created in the optional window as xlsx.
func (s *ConsultationService) Export(ctx context.Context, w io.Writer, after, before *time.Time) error {
	cs, err := s.repo.ListConsultationsCreatedBetween(ctx, after, before)
	if err != nil {
		return err
	}
	if err := WriteConsultationsExcel(w, cs); err != nil {
		return apperrors.E(apperrors.Internal, "export consultations", err)
	}
	return nil
}
