package utils

import "wiredleaf-api/models"

// Services offered on the booking form.
var Services = []string{
	"Gen AI Apps Development",
	"Website Development",
	"Admin Dashboard",
	"Graphic Design",
	"Digital Marketing / SEO",
	"Custom Solution",
}

// TimeSlots offered on the booking form.
var TimeSlots = []string{
	"09:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"02:00 PM", "03:00 PM", "04:00 PM", "05:00 PM",
}

var consultationStatuses = map[string]bool{
	models.ConsultationPending:   true,
	models.ConsultationApproved:  true,
	models.ConsultationRejected:  true,
	models.ConsultationCompleted: true,
}

var meetingStatuses = map[string]bool{
	models.MeetingScheduled: true,
	models.MeetingOngoing:   true,
	models.MeetingCompleted: true,
	models.MeetingCancelled: true,
}

// StatusAll disables status filtering on list endpoints.
const StatusAll = "all"
