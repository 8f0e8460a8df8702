package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	require.NoError(t, ValidateEmail("jane@example.com"))
	require.EqualError(t, ValidateEmail(""), "email is required")
	require.EqualError(t, ValidateEmail("jane@"), "invalid email format")
}

func TestValidatePhone(t *testing.T) {
	require.NoError(t, ValidatePhone(""))
	require.NoError(t, ValidatePhone("+1 415-555-0123"))
	require.Error(t, ValidatePhone("call me"))
}

func TestValidateService(t *testing.T) {
	require.NoError(t, ValidateService("Website Development"))
	require.EqualError(t, ValidateService(""), "service is required")
	require.Error(t, ValidateService("Plumbing"))
}

func TestValidatePreferredSlot(t *testing.T) {
	require.NoError(t, ValidatePreferredSlot("", ""))
	require.NoError(t, ValidatePreferredSlot("2026-11-02", "10:00 AM"))
	require.Error(t, ValidatePreferredSlot("02/11/2026", ""))
	require.Error(t, ValidatePreferredSlot("", "01:00 PM"))
}

func TestValidateStatuses(t *testing.T) {
	for _, s := range []string{"pending", "approved", "rejected", "completed"} {
		require.NoError(t, ValidateConsultationStatus(s))
	}
	require.Error(t, ValidateConsultationStatus("scheduled"))

	for _, s := range []string{"scheduled", "ongoing", "completed", "cancelled"} {
		require.NoError(t, ValidateMeetingStatus(s))
	}
	require.Error(t, ValidateMeetingStatus("approved"))
}

func TestValidateMeetingWindow(t *testing.T) {
	start := time.Date(2026, 11, 2, 10, 0, 0, 0, time.UTC)

	require.NoError(t, ValidateMeetingWindow("Kickoff", start, start.Add(time.Hour)))
	require.EqualError(t, ValidateMeetingWindow(" ", start, start.Add(time.Hour)), "title is required")
	require.EqualError(t, ValidateMeetingWindow("Kickoff", time.Time{}, start), "start_time and end_time are required")
	require.EqualError(t, ValidateMeetingWindow("Kickoff", start, start), "end_time must be after start_time")
}
