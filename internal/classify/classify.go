// Package classify maps risk levels and status strings to the badge a screen
// renders. Every function is total: an unrecognized input yields a neutral
// badge rather than an error, so a new server-side enum value never breaks a
// list view.
package classify

import "strings"

// Badge is a render-ready label with its color pair. Colors are hex strings
// so the caller can feed them straight to a theme layer.
type Badge struct {
	Label      string
	Background string
	Foreground string
}

var riskBadges = map[string]Badge{
	"LOW":      {Label: "LOW", Background: "#d1fae5", Foreground: "#059669"},
	"MEDIUM":   {Label: "MEDIUM", Background: "#fef3c7", Foreground: "#d97706"},
	"HIGH":     {Label: "HIGH", Background: "#fee2e2", Foreground: "#dc2626"},
	"CRITICAL": {Label: "CRITICAL", Background: "#fecaca", Foreground: "#b91c1c"},
}

// RiskBadge returns the badge for a lesion risk level. Matching is
// case-insensitive. Unknown levels get a neutral UNKNOWN badge.
func RiskBadge(level string) Badge {
	if b, ok := riskBadges[strings.ToUpper(strings.TrimSpace(level))]; ok {
		return b
	}
	return Badge{Label: "UNKNOWN", Background: "#f3f4f6", Foreground: "#6b7280"}
}

var appointmentBadges = map[string]Badge{
	"CONFIRMED":   {Label: "Confirmed", Background: "#d1fae5", Foreground: "#059669"},
	"REQUESTED":   {Label: "Pending", Background: "#fef3c7", Foreground: "#d97706"},
	"COMPLETED":   {Label: "Completed", Background: "#dbeafe", Foreground: "#2563eb"},
	"CANCELED":    {Label: "Canceled", Background: "#fee2e2", Foreground: "#dc2626"},
	"RESCHEDULED": {Label: "Rescheduled", Background: "#ede9fe", Foreground: "#7c3aed"},
}

// AppointmentStatusBadge returns the badge for an appointment status.
// REQUESTED renders as "Pending": the status is a server-side workflow state,
// not patient-facing wording. Unrecognized statuses keep their humanized form
// on a neutral badge.
func AppointmentStatusBadge(status string) Badge {
	key := strings.ToUpper(strings.TrimSpace(status))
	if b, ok := appointmentBadges[key]; ok {
		return b
	}
	return Badge{Label: Humanize(status), Background: "#f3f4f6", Foreground: "#6b7280"}
}

var caseBadges = map[string]Badge{
	"OPEN":       {Label: "Open", Background: "#dbeafe", Foreground: "#2563eb"},
	"MONITORING": {Label: "Monitoring", Background: "#ede9fe", Foreground: "#7c3aed"},
	"CLOSED":     {Label: "Closed", Background: "#f3f4f6", Foreground: "#4b5563"},
	"REFERRED":   {Label: "Referred", Background: "#ffedd5", Foreground: "#ea580c"},
}

// CaseStatusBadge returns the badge for a lesion case status.
func CaseStatusBadge(status string) Badge {
	key := strings.ToUpper(strings.TrimSpace(status))
	if b, ok := caseBadges[key]; ok {
		return b
	}
	return Badge{Label: Humanize(status), Background: "#f3f4f6", Foreground: "#6b7280"}
}

// Humanize turns a SCREAMING_SNAKE enum value into title-ish display text:
// "VIDEO_CONSULTATION" becomes "Video Consultation". It is a render-time
// helper only; stored values keep their canonical form.
func Humanize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	words := strings.FieldsFunc(value, func(r rune) bool {
		return r == '_' || r == ' '
	})
	for i, w := range words {
		lower := strings.ToLower(w)
		words[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(words, " ")
}
