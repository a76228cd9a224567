package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskBadge(t *testing.T) {
	tests := []struct {
		level string
		label string
		fg    string
	}{
		{"LOW", "LOW", "#059669"},
		{"MEDIUM", "MEDIUM", "#d97706"},
		{"HIGH", "HIGH", "#dc2626"},
		{"CRITICAL", "CRITICAL", "#b91c1c"},
		{"low", "LOW", "#059669"},
		{" high ", "HIGH", "#dc2626"},
		{"", "UNKNOWN", "#6b7280"},
		{"BANANA", "UNKNOWN", "#6b7280"},
	}
	for _, tt := range tests {
		b := RiskBadge(tt.level)
		assert.Equal(t, tt.label, b.Label, "level %q", tt.level)
		assert.Equal(t, tt.fg, b.Foreground, "level %q", tt.level)
		assert.NotEmpty(t, b.Background, "level %q", tt.level)
	}
}

func TestAppointmentStatusBadge(t *testing.T) {
	tests := []struct {
		status string
		label  string
	}{
		{"CONFIRMED", "Confirmed"},
		{"REQUESTED", "Pending"},
		{"COMPLETED", "Completed"},
		{"CANCELED", "Canceled"},
		{"RESCHEDULED", "Rescheduled"},
		{"requested", "Pending"},
		{"NO_SHOW", "No Show"},
		{"", ""},
	}
	for _, tt := range tests {
		b := AppointmentStatusBadge(tt.status)
		assert.Equal(t, tt.label, b.Label, "status %q", tt.status)
		assert.NotEmpty(t, b.Background, "status %q", tt.status)
		assert.NotEmpty(t, b.Foreground, "status %q", tt.status)
	}
}

func TestCaseStatusBadge(t *testing.T) {
	tests := []struct {
		status string
		label  string
	}{
		{"OPEN", "Open"},
		{"MONITORING", "Monitoring"},
		{"CLOSED", "Closed"},
		{"REFERRED", "Referred"},
		{"ARCHIVED_BY_ADMIN", "Archived By Admin"},
	}
	for _, tt := range tests {
		b := CaseStatusBadge(tt.status)
		assert.Equal(t, tt.label, b.Label, "status %q", tt.status)
	}
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Video Consultation", Humanize("VIDEO_CONSULTATION"))
	assert.Equal(t, "In Person", Humanize("IN_PERSON"))
	assert.Equal(t, "Follow Up", Humanize("follow_up"))
	assert.Equal(t, "Open", Humanize("OPEN"))
	assert.Equal(t, "", Humanize(""))
	assert.Equal(t, "Already Spaced", Humanize("ALREADY SPACED"))
}
