package services

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"strings"
	"time"

	apperrors "wiredleaf-api/errors"
	"wiredleaf-api/logger"
	"wiredleaf-api/models"
	"wiredleaf-api/utils"
)

// NotificationSender dispatches one notification of a known kind.
type NotificationSender interface {
	Notify(ctx context.Context, req models.NotificationRequest, attach *models.Attachment) error
}

// Rendered is the subject and both bodies of a notification.
type Rendered struct {
	Subject   string
	AdminHTML string
	UserHTML  string
}

type notificationTemplate struct {
	subject string
	admin   *template.Template
	user    *template.Template
}

type templateData struct {
	UserName  string
	UserEmail string
	LoginTime string
	Data      map[string]string
}

const layout = `<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .panel { background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0; }
        .link { background-color: #e3f2fd; padding: 20px; border-radius: 8px; margin: 20px 0; }
        .button { display: inline-block; background-color: #4285f4; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; }
    </style>
</head>
<body>
    <div class="container">{{template "content" .}}</div>
</body>
</html>`

func mustTemplate(name, content string) *template.Template {
	t := template.Must(template.New(name).Parse(layout))
	template.Must(t.New("content").Parse(content))
	return t
}

var notificationTemplates = map[models.NotificationType]notificationTemplate{
	models.NotifyLogin: {
		subject: "New User Login",
		admin: mustTemplate("login_admin", `
        <h2>New User Login</h2>
        <p><strong>User:</strong> {{.UserName}}</p>
        <p><strong>Email:</strong> {{.UserEmail}}</p>
        <p><strong>Login Time:</strong> {{.LoginTime}}</p>`),
		user: mustTemplate("login_user", `
        <h2>Welcome {{.UserName}}!</h2>
        <p>You have successfully logged into your account.</p>
        <p>If this wasn't you, please contact us immediately.</p>`),
	},
	models.NotifyConsultation: {
		subject: "New Consultation Request",
		admin: mustTemplate("consultation_admin", `
        <h2>New Consultation Request</h2>
        <p><strong>Name:</strong> {{.UserName}}</p>
        <p><strong>Email:</strong> {{.UserEmail}}</p>
        <p><strong>Phone:</strong> {{or .Data.phone "Not provided"}}</p>
        <p><strong>Service:</strong> {{.Data.service}}</p>
        <p><strong>Preferred Date:</strong> {{or .Data.preferredDate "Not provided"}}</p>
        <p><strong>Preferred Time:</strong> {{or .Data.preferredTime "Not provided"}}</p>
        <p><strong>Message:</strong> {{or .Data.message "No message"}}</p>`),
		user: mustTemplate("consultation_user", `
        <h2>Consultation Request Received</h2>
        <p>Dear {{.UserName}},</p>
        <p>We have received your consultation request for <strong>{{.Data.service}}</strong>.</p>
        <p><strong>Details:</strong></p>
        <ul>
            <li>Preferred Date: {{or .Data.preferredDate "Not provided"}}</li>
            <li>Preferred Time: {{or .Data.preferredTime "Not provided"}}</li>
        </ul>
        <p>We will contact you soon to confirm your appointment.</p>`),
	},
	models.NotifyContact: {
		subject: "New Contact Message",
		admin: mustTemplate("contact_admin", `
        <h2>New Contact Message</h2>
        <p><strong>Name:</strong> {{.UserName}}</p>
        <p><strong>Email:</strong> {{.UserEmail}}</p>
        <p><strong>Phone:</strong> {{or .Data.phone "Not provided"}}</p>
        <p><strong>Service:</strong> {{or .Data.service "Not provided"}}</p>
        <p><strong>Message:</strong> {{or .Data.message "No message"}}</p>`),
		user: mustTemplate("contact_user", `
        <h2>Message Received</h2>
        <p>Dear {{.UserName}},</p>
        <p>Thank you for contacting us. We have received your message and will get back to you within 24 hours.</p>
        <p><strong>Your message:</strong></p>
        <p>{{or .Data.message "No message"}}</p>`),
	},
	models.NotifyMeetingApproved: {
		subject: "Consultation Approved - Meeting Scheduled",
		admin: mustTemplate("meeting_admin", `
        <h2>Consultation Approved</h2>
        <p><strong>Client:</strong> {{.UserName}}</p>
        <p><strong>Email:</strong> {{.UserEmail}}</p>
        <p><strong>Service:</strong> {{.Data.service}}</p>
        <p><strong>Meeting Date:</strong> {{.Data.meetingDate}}</p>
        <p><strong>Meeting Time:</strong> {{.Data.meetingTime}}</p>
        <p><strong>Duration:</strong> {{.Data.duration}}</p>
        <p><strong>Meeting Link:</strong> <a href="{{.Data.meetingLink}}">{{.Data.meetingLink}}</a></p>`),
		user: mustTemplate("meeting_user", `
        <h2>Your Consultation is Approved!</h2>
        <p>Dear {{.UserName}},</p>
        <p>Great news! Your consultation request for <strong>{{.Data.service}}</strong> has been approved.</p>
        <div class="panel">
            <h3>Meeting Details</h3>
            <p><strong>Date:</strong> {{.Data.meetingDate}}</p>
            <p><strong>Time:</strong> {{.Data.meetingTime}}</p>
            <p><strong>Duration:</strong> {{.Data.duration}}</p>
        </div>
        <div class="link">
            <h3>Join Your Meeting</h3>
            <p>Click the link below to join your consultation meeting:</p>
            <a class="button" href="{{.Data.meetingLink}}">Join Meeting</a>
            <p>Or copy this link: {{.Data.meetingLink}}</p>
        </div>
        <p><strong>What to expect:</strong></p>
        <ul>
            <li>Please join the meeting 5 minutes early</li>
            <li>Ensure you have a stable internet connection</li>
            <li>Test your camera and microphone beforehand</li>
            <li>Prepare any questions you'd like to discuss</li>
        </ul>
        <p>We look forward to speaking with you!</p>
        <p>If you have any questions or need to reschedule, please contact us immediately.</p>`),
	},
}

// Notifier renders notifications and sends one copy to the admin inbox
// and a confirmation to the user.
type Notifier struct {
	mailer     Mailer
	adminEmail string
	now        func() time.Time
}

func NewNotifier(m Mailer, adminEmail string) *Notifier {
	return &Notifier{mailer: m, adminEmail: adminEmail, now: time.Now}
}

// Validate checks the request fields every kind needs.
func (n *Notifier) Validate(req models.NotificationRequest) error {
	if !req.Type.Valid() {
		return apperrors.NewInvalidParamsError("unknown notification type: " + string(req.Type))
	}
	if strings.TrimSpace(req.UserEmail) == "" {
		return apperrors.NewInvalidParamsError("userEmail is required")
	}
	if err := utils.ValidateEmail(req.UserEmail); err != nil {
		return apperrors.NewInvalidParamsError(err.Error())
	}
	return nil
}

func (n *Notifier) Render(req models.NotificationRequest) (Rendered, error) {
	if err := n.Validate(req); err != nil {
		return Rendered{}, err
	}
	tmpl := notificationTemplates[req.Type]

	data := templateData{
		UserName:  req.UserName,
		UserEmail: req.UserEmail,
		LoginTime: n.now().UTC().Format("Jan 2, 2006 3:04 PM MST"),
		Data:      req.Data,
	}
	if data.Data == nil {
		data.Data = map[string]string{}
	}

	admin, err := execute(tmpl.admin, data)
	if err != nil {
		return Rendered{}, err
	}
	user, err := execute(tmpl.user, data)
	if err != nil {
		return Rendered{}, err
	}
	return Rendered{Subject: tmpl.subject, AdminHTML: admin, UserHTML: user}, nil
}

func execute(t *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", apperrors.E(apperrors.Internal, "render "+t.Name(), err)
	}
	return buf.String(), nil
}

// Notify renders req and sends both emails. The attachment, if any, goes
// to the user only. Both sends are attempted even if the first fails.
func (n *Notifier) Notify(ctx context.Context, req models.NotificationRequest, attach *models.Attachment) error {
	r, err := n.Render(req)
	if err != nil {
		return err
	}

	adminErr := n.mailer.Send(ctx, models.Email{
		To:      n.adminEmail,
		Subject: r.Subject,
		Body:    r.AdminHTML,
	})
	userErr := n.mailer.Send(ctx, models.Email{
		To:      req.UserEmail,
		Subject: "Confirmation: " + r.Subject,
		Body:    r.UserHTML,
		Attach:  attach,
	})

	if err := errors.Join(adminErr, userErr); err != nil {
		logger.Error("Notification %s for %s failed: %v", req.Type, req.UserEmail, err)
		return apperrors.E(apperrors.Internal, "send notification", err)
	}
	logger.Info("Notification %s sent for %s", req.Type, req.UserEmail)
	return nil
}
