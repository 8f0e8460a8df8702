package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "wiredleaf-api/errors"
	"wiredleaf-api/models"
)

func TestNotifySendsAdminAndUserCopies(t *testing.T) {
	m := &stubMailer{}
	n := NewNotifier(m, "admin@wiredleaf.com")

	err := n.Notify(context.Background(), models.NotificationRequest{
		Type:      models.NotifyConsultation,
		UserEmail: "jane@example.com",
		UserName:  "Jane",
		Data:      map[string]string{"service": "Website Development", "preferredDate": "2026-11-02"},
	}, nil)
	require.NoError(t, err)
	require.Len(t, m.sent, 2)

	admin, user := m.sent[0], m.sent[1]
	require.Equal(t, "admin@wiredleaf.com", admin.To)
	require.Equal(t, "New Consultation Request", admin.Subject)
	require.Contains(t, admin.Body, "Website Development")
	require.Contains(t, admin.Body, "<strong>Phone:</strong> Not provided")
	require.Contains(t, admin.Body, "<strong>Message:</strong> No message")

	require.Equal(t, "jane@example.com", user.To)
	require.Equal(t, "Confirmation: New Consultation Request", user.Subject)
	require.Contains(t, user.Body, "Dear Jane,")
	require.Contains(t, user.Body, "Preferred Date: 2026-11-02")
}

func TestRenderSubjects(t *testing.T) {
	n := NewNotifier(&stubMailer{}, "admin@x.io")
	want := map[models.NotificationType]string{
		models.NotifyLogin:           "New User Login",
		models.NotifyConsultation:    "New Consultation Request",
		models.NotifyContact:         "New Contact Message",
		models.NotifyMeetingApproved: "Consultation Approved - Meeting Scheduled",
	}
	for typ, subject := range want {
		r, err := n.Render(models.NotificationRequest{Type: typ, UserEmail: "u@x.io", UserName: "U"})
		require.NoError(t, err, typ)
		require.Equal(t, subject, r.Subject)
		require.NotEmpty(t, r.AdminHTML)
		require.NotEmpty(t, r.UserHTML)
	}
}

func TestRenderLoginTime(t *testing.T) {
	n := NewNotifier(&stubMailer{}, "admin@x.io")
	n.now = func() time.Time { return time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC) }

	r, err := n.Render(models.NotificationRequest{Type: models.NotifyLogin, UserEmail: "u@x.io", UserName: "Ada"})
	require.NoError(t, err)
	require.Contains(t, r.AdminHTML, "Mar 4, 2026 3:30 PM UTC")
	require.Contains(t, r.UserHTML, "Welcome Ada!")
}

func TestRenderEscapesUserInput(t *testing.T) {
	n := NewNotifier(&stubMailer{}, "admin@x.io")
	r, err := n.Render(models.NotificationRequest{
		Type:      models.NotifyContact,
		UserEmail: "u@x.io",
		UserName:  `<script>alert(1)</script>`,
		Data:      map[string]string{"message": "<b>hi</b>"},
	})
	require.NoError(t, err)
	require.NotContains(t, r.AdminHTML, "<script>")
	require.Contains(t, r.AdminHTML, "&lt;script&gt;")
	require.Contains(t, r.UserHTML, "&lt;b&gt;hi&lt;/b&gt;")
}

func TestRenderMeetingLink(t *testing.T) {
	n := NewNotifier(&stubMailer{}, "admin@x.io")
	r, err := n.Render(models.NotificationRequest{
		Type:      models.NotifyMeetingApproved,
		UserEmail: "u@x.io",
		Data: map[string]string{
			"meetingLink": "https://meet.google.com/abc-defg-hij",
			"duration":    "1 hour",
		},
	})
	require.NoError(t, err)
	require.Contains(t, r.UserHTML, `href="https://meet.google.com/abc-defg-hij"`)
	require.Contains(t, r.AdminHTML, "<strong>Duration:</strong> 1 hour")
}

func TestRenderWrapsBodyInLayout(t *testing.T) {
	n := NewNotifier(&stubMailer{}, "admin@x.io")
	r, err := n.Render(models.NotificationRequest{
		Type:      models.NotifyMeetingApproved,
		UserEmail: "u@x.io",
		Data:      map[string]string{"meetingLink": "https://meet.google.com/abc-defg-hij"},
	})
	require.NoError(t, err)
	for _, html := range []string{r.UserHTML, r.AdminHTML} {
		require.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
		require.Contains(t, html, ".button {")
		require.Contains(t, html, `<div class="container">`)
	}
	require.Contains(t, r.UserHTML, `<a class="button"`)
	require.Equal(t, "login_admin", notificationTemplates[models.NotifyLogin].admin.Name())
}

func TestNotifyValidation(t *testing.T) {
	n := NewNotifier(&stubMailer{}, "admin@x.io")
	ctx := context.Background()

	err := n.Notify(ctx, models.NotificationRequest{Type: "sms", UserEmail: "u@x.io"}, nil)
	require.True(t, apperrors.IsKind(err, apperrors.Invalid))
	require.Contains(t, err.Error(), "unknown notification type")

	err = n.Notify(ctx, models.NotificationRequest{Type: models.NotifyLogin}, nil)
	require.True(t, apperrors.IsKind(err, apperrors.Invalid))
	require.Contains(t, err.Error(), "userEmail is required")
}

func TestNotifyAttachmentGoesToUserOnly(t *testing.T) {
	m := &stubMailer{}
	n := NewNotifier(m, "admin@x.io")
	att := &models.Attachment{Name: "invite.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}

	require.NoError(t, n.Notify(context.Background(), models.NotificationRequest{
		Type: models.NotifyMeetingApproved, UserEmail: "u@x.io",
	}, att))
	require.Nil(t, m.sent[0].Attach)
	require.Equal(t, att, m.sent[1].Attach)
}

func TestNotifyMailerFailure(t *testing.T) {
	n := NewNotifier(&stubMailer{err: errors.New("smtp down")}, "admin@x.io")
	err := n.Notify(context.Background(), models.NotificationRequest{Type: models.NotifyLogin, UserEmail: "u@x.io"}, nil)
	require.True(t, apperrors.IsKind(err, apperrors.Internal))
	require.Equal(t, "generic", apperrors.PublicMessage(err, "generic"))
}
