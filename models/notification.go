package models

// NotificationType is the closed set of notification kinds.
type NotificationType string

const (
	NotifyLogin           NotificationType = "login"
	NotifyConsultation    NotificationType = "consultation"
	NotifyContact         NotificationType = "contact"
	NotifyMeetingApproved NotificationType = "meeting_approved"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotifyLogin, NotifyConsultation, NotifyContact, NotifyMeetingApproved:
		return true
	}
	return false
}

// NotificationRequest is the payload of the notification endpoint.
type NotificationRequest struct {
	Type      NotificationType  `json:"type"`
	UserEmail string            `json:"userEmail"`
	UserName  string            `json:"userName"`
	Data      map[string]string `json:"data,omitempty"`
}

// Email is one rendered message ready for delivery.
type Email struct {
	To      string      `json:"recipient"`
	Subject string      `json:"subject"`
	Body    string      `json:"body"`
	Attach  *Attachment `json:"attachment,omitempty"`
}

// Attachment is an in-memory file; Data is base64 in JSON.
type Attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}
