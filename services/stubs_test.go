package services

import (
	"context"
	"sync"
	"time"

	apperrors "wiredleaf-api/errors"
	"wiredleaf-api/models"
)

type stubMailer struct {
	mu   sync.Mutex
	sent []models.Email
	err  error
}

func (m *stubMailer) Send(_ context.Context, e models.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, e)
	return nil
}

type notifyCall struct {
	req    models.NotificationRequest
	attach *models.Attachment
}

type stubNotifier struct {
	calls []notifyCall
	err   error
}

func (n *stubNotifier) Notify(_ context.Context, req models.NotificationRequest, attach *models.Attachment) error {
	n.calls = append(n.calls, notifyCall{req: req, attach: attach})
	return n.err
}

type published struct {
	topic, key string
	value      any
}

type stubPublisher struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (p *stubPublisher) Publish(_ context.Context, topic, key string, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, published{topic: topic, key: key, value: value})
	return nil
}

func (p *stubPublisher) events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, m := range p.msgs {
		if e, ok := m.value.(DomainEvent); ok {
			out = append(out, e.Event)
		}
	}
	return out
}

// memRepo is an in-memory stand-in for the Postgres store.
type memRepo struct {
	consultations []models.Consultation
	meetings      []models.Meeting
	users         []models.UserWithStats
	profiles      []models.Profile
	contacts      []models.ContactMessage
	admins        map[string]*models.Admin
	dlq           map[string]*models.DLQMessage
	failAt        int
	err           error
}

func newMemRepo() *memRepo {
	return &memRepo{
		admins: map[string]*models.Admin{},
		dlq:    map[string]*models.DLQMessage{},
		failAt: -1,
	}
}

func (r *memRepo) CreateConsultation(_ context.Context, c *models.Consultation) error {
	if r.err != nil {
		return r.err
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.consultations = append([]models.Consultation{*c}, r.consultations...)
	return nil
}

func (r *memRepo) BulkCreateConsultations(ctx context.Context, cs []*models.Consultation) (int, error) {
	if r.failAt >= 0 {
		return r.failAt, apperrors.NewConflictError("consultation already exists")
	}
	for _, c := range cs {
		if err := r.CreateConsultation(ctx, c); err != nil {
			return -1, err
		}
	}
	return -1, nil
}

func (r *memRepo) ListConsultations(context.Context) ([]models.Consultation, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]models.Consultation(nil), r.consultations...), nil
}

func (r *memRepo) ListConsultationsCreatedBetween(_ context.Context, after, before *time.Time) ([]models.Consultation, error) {
	var out []models.Consultation
	for _, c := range r.consultations {
		if after != nil && c.CreatedAt.Before(*after) {
			continue
		}
		if before != nil && c.CreatedAt.After(*before) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *memRepo) ListConsultationsByUser(_ context.Context, userID string) ([]models.Consultation, error) {
	var out []models.Consultation
	for _, c := range r.consultations {
		if c.UserID != nil && *c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memRepo) GetConsultation(_ context.Context, id string) (*models.Consultation, error) {
	for i := range r.consultations {
		if r.consultations[i].ID == id {
			c := r.consultations[i]
			return &c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("consultation not found")
}

func (r *memRepo) UpdateConsultationStatus(_ context.Context, id, status string) error {
	for i := range r.consultations {
		if r.consultations[i].ID == id {
			r.consultations[i].Status = status
			return nil
		}
	}
	return apperrors.NewNotFoundError("consultation not found")
}

func (r *memRepo) ApproveConsultation(ctx context.Context, id string, m *models.Meeting) error {
	if err := r.UpdateConsultationStatus(ctx, id, models.ConsultationApproved); err != nil {
		return err
	}
	return r.CreateMeeting(ctx, m)
}

func (r *memRepo) CreateMeeting(_ context.Context, m *models.Meeting) error {
	if r.err != nil {
		return r.err
	}
	r.meetings = append(r.meetings, *m)
	return nil
}

func (r *memRepo) ListMeetings(context.Context) ([]models.Meeting, error) {
	return append([]models.Meeting(nil), r.meetings...), nil
}

func (r *memRepo) GetMeeting(_ context.Context, id string) (*models.Meeting, error) {
	for i := range r.meetings {
		if r.meetings[i].ID == id {
			m := r.meetings[i]
			return &m, nil
		}
	}
	return nil, apperrors.NewNotFoundError("meeting not found")
}

func (r *memRepo) UpdateMeetingStatus(_ context.Context, id, status string) error {
	for i := range r.meetings {
		if r.meetings[i].ID == id {
			r.meetings[i].Status = status
			return nil
		}
	}
	return apperrors.NewNotFoundError("meeting not found")
}

func (r *memRepo) ListUsersWithStats(context.Context) ([]models.UserWithStats, error) {
	return append([]models.UserWithStats(nil), r.users...), nil
}

func (r *memRepo) UpsertProfile(_ context.Context, p *models.Profile) error {
	for i := range r.profiles {
		if r.profiles[i].UserID == p.UserID {
			p.ID = r.profiles[i].ID
			r.profiles[i] = *p
			return nil
		}
	}
	r.profiles = append(r.profiles, *p)
	return nil
}

func (r *memRepo) CreateContactMessage(_ context.Context, m *models.ContactMessage) error {
	if r.err != nil {
		return r.err
	}
	r.contacts = append(r.contacts, *m)
	return nil
}

func (r *memRepo) CreateAdmin(_ context.Context, a *models.Admin) error {
	if _, ok := r.admins[a.Email]; ok {
		return apperrors.NewConflictError("admin already exists")
	}
	r.admins[a.Email] = a
	return nil
}

func (r *memRepo) AdminByEmail(_ context.Context, email string) (*models.Admin, error) {
	if r.err != nil {
		return nil, r.err
	}
	a, ok := r.admins[email]
	if !ok {
		return nil, apperrors.NewNotFoundError("admin not found")
	}
	return a, nil
}

func (r *memRepo) ListDLQMessages(_ context.Context, limit int) ([]models.DLQMessage, error) {
	var out []models.DLQMessage
	for _, m := range r.dlq {
		if !m.Resolved && len(out) < limit {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *memRepo) GetDLQMessage(_ context.Context, id string) (*models.DLQMessage, error) {
	m, ok := r.dlq[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("dlq message not found")
	}
	cp := *m
	return &cp, nil
}

func (r *memRepo) ResolveDLQMessage(_ context.Context, id, notes string) error {
	m, ok := r.dlq[id]
	if !ok || m.Resolved {
		return apperrors.NewNotFoundError("dlq message not found")
	}
	m.Resolved = true
	m.Notes = &notes
	return nil
}

func (r *memRepo) DLQStats(context.Context) (models.DLQStats, error) {
	st := models.DLQStats{ByTopic: map[string]int{}}
	for _, m := range r.dlq {
		st.Total++
		if !m.Resolved {
			st.Unresolved++
			st.ByTopic[m.Topic]++
		}
	}
	return st, nil
}

func (r *memRepo) DashboardStats(_ context.Context, day time.Time) (models.DashboardStats, error) {
	st := models.DashboardStats{
		TotalConsultations: len(r.consultations),
		TotalMeetings:      len(r.meetings),
		TotalUsers:         len(r.users),
	}
	for _, c := range r.consultations {
		if c.Status == models.ConsultationPending {
			st.PendingConsultations++
		}
	}
	y, m, d := day.Date()
	for _, mt := range r.meetings {
		if yy, mm, dd := mt.StartTime.UTC().Date(); yy == y && mm == m && dd == d {
			st.TodayMeetings++
		}
	}
	return st, nil
}
