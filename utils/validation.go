package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	PhoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

type ValidationRules struct {
	MaxNameLength    int
	MaxMessageLength int
	MaxTitleLength   int
}

var DefaultValidationRules = ValidationRules{
	MaxNameLength:    100,
	MaxMessageLength: 5000,
	MaxTitleLength:   200,
}

func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !EmailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePhone accepts an empty phone; otherwise it must be E.164 once
// spaces and dashes are stripped.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !PhoneRegex.MatchString(NormalizePhone(phone)) {
		return fmt.Errorf("invalid phone format (use E.164 format, e.g., +14155550123)")
	}
	return nil
}

func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
}

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > DefaultValidationRules.MaxNameLength {
		return fmt.Errorf("name must be less than %d characters", DefaultValidationRules.MaxNameLength)
	}
	return nil
}

func ValidateMessage(message string, required bool) error {
	if required && strings.TrimSpace(message) == "" {
		return fmt.Errorf("message is required")
	}
	if len(message) > DefaultValidationRules.MaxMessageLength {
		return fmt.Errorf("message must be less than %d characters", DefaultValidationRules.MaxMessageLength)
	}
	return nil
}

func ValidateService(service string) error {
	if service == "" {
		return fmt.Errorf("service is required")
	}
	for _, s := range Services {
		if s == service {
			return nil
		}
	}
	return fmt.Errorf("unknown service: %s", service)
}

// ValidatePreferredSlot checks the optional booking date (YYYY-MM-DD) and time slot.
func ValidatePreferredSlot(date, slot string) error {
	if date != "" {
		if _, err := time.Parse(time.DateOnly, date); err != nil {
			return fmt.Errorf("invalid preferred_date format. Use YYYY-MM-DD")
		}
	}
	if slot == "" {
		return nil
	}
	for _, s := range TimeSlots {
		if s == slot {
			return nil
		}
	}
	return fmt.Errorf("invalid preferred_time: %s", slot)
}

func ValidateConsultationStatus(status string) error {
	if !consultationStatuses[status] {
		return fmt.Errorf("invalid consultation status: %q", status)
	}
	return nil
}

func ValidateMeetingStatus(status string) error {
	if !meetingStatuses[status] {
		return fmt.Errorf("invalid meeting status: %q", status)
	}
	return nil
}

func ValidateMeetingWindow(title string, start, end time.Time) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > DefaultValidationRules.MaxTitleLength {
		return fmt.Errorf("title must be less than %d characters", DefaultValidationRules.MaxTitleLength)
	}
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("start_time and end_time are required")
	}
	if !end.After(start) {
		return fmt.Errorf("end_time must be after start_time")
	}
	return nil
}
