// Package appointments drives the appointments screen: one fetch, split into
// upcoming and past tabs, plus the cancel flow.
package appointments

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/dermatrack/mobile-core/internal/api"
	"github.com/dermatrack/mobile-core/pkg/logging"
)

// Lister is the slice of the API client the service needs.
type Lister interface {
	Appointments(ctx context.Context) ([]api.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID string) error
}

// Partition holds both tabs of the screen.
type Partition struct {
	Upcoming []api.Appointment
	Past     []api.Appointment
}

// Split divides appointments into upcoming and past. An appointment is
// upcoming only if its date has not passed AND it is still live: canceled
// and completed visits land in the past tab regardless of date. Dates that
// fail to parse are treated as past so a malformed record never blocks the
// upcoming view. Upcoming sorts soonest first, past most recent first.
func Split(appts []api.Appointment, now time.Time) Partition {
	var p Partition
	for _, a := range appts {
		at, err := time.Parse(time.RFC3339, a.Date)
		if err == nil && !at.Before(now) && a.Status != api.StatusCanceled && a.Status != api.StatusCompleted {
			p.Upcoming = append(p.Upcoming, a)
		} else {
			p.Past = append(p.Past, a)
		}
	}
	sort.SliceStable(p.Upcoming, func(i, j int) bool {
		return p.Upcoming[i].Date < p.Upcoming[j].Date
	})
	sort.SliceStable(p.Past, func(i, j int) bool {
		return p.Past[i].Date > p.Past[j].Date
	})
	return p
}

// Service caches the last fetched partition and refreshes it on demand.
type Service struct {
	client Lister
	logger *logging.Logger
	now    func() time.Time

	mu   sync.Mutex
	last Partition
}

func NewService(client Lister, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{client: client, logger: logger, now: time.Now}
}

// WithNow overrides the clock. Tests pin it to a fixed date.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// Refresh refetches the list and rebuilds both tabs.
func (s *Service) Refresh(ctx context.Context) (Partition, error) {
	appts, err := s.client.Appointments(ctx)
	if err != nil {
		return Partition{}, fmt.Errorf("appointments: refresh: %w", err)
	}
	p := Split(appts, s.now())
	s.mu.Lock()
	s.last = p
	s.mu.Unlock()
	return p, nil
}

// Current returns the last refreshed partition without a network call.
func (s *Service) Current() Partition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Cancel deletes the appointment server-side and then refetches the full
// list rather than patching the cached copy: the server may have moved other
// appointments in the meantime, and a refetch keeps both tabs honest.
func (s *Service) Cancel(ctx context.Context, appointmentID string) (Partition, error) {
	if appointmentID == "" {
		return Partition{}, &api.ValidationError{Field: "appointmentId", Message: "appointment is required"}
	}
	if err := s.client.CancelAppointment(ctx, appointmentID); err != nil {
		return Partition{}, fmt.Errorf("appointments: cancel %s: %w", appointmentID, err)
	}
	s.logger.Info("appointment canceled", slog.String("appointment_id", appointmentID))
	return s.Refresh(ctx)
}
