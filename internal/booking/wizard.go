// Package booking implements the three-step booking wizard with its
// submission flow. The wizard owns every selection the patient makes;
// screens render its snapshot and feed events back in.
package booking

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dermatrack/mobile-core/internal/api"
	"github.com/dermatrack/mobile-core/internal/availability"
	"github.com/dermatrack/mobile-core/internal/observability/metrics"
	"github.com/dermatrack/mobile-core/pkg/logging"
)

const tracerName = "github.com/dermatrack/mobile-core/internal/booking"

// Step is the wizard's position.
type Step int

const (
	StepSelectDoctor Step = iota
	StepSelectDateTime
	StepConfirm
	StepSubmitting
	StepSuccess
	StepFailure
)

func (s Step) String() string {
	switch s {
	case StepSelectDoctor:
		return "select_doctor"
	case StepSelectDateTime:
		return "select_datetime"
	case StepConfirm:
		return "confirm"
	case StepSubmitting:
		return "submitting"
	case StepSuccess:
		return "success"
	case StepFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Creator is the slice of the API client the wizard needs to submit.
type Creator interface {
	CreateAppointment(ctx context.Context, req api.CreateAppointmentRequest, idempotencyKey string) (*api.Appointment, error)
}

// Snapshot is a copy of the wizard state for rendering. Mutating it has no
// effect on the wizard.
type Snapshot struct {
	Step       Step
	Doctor     *api.Doctor
	MonthIndex int
	Dates      []api.AvailabilityDate
	Expanded   bool
	Date       string
	Slot       *api.Slot
	Type       string
	Reason     string
	Location   string
	Booked     *api.Appointment
	Err        error
}

// Wizard is the booking state machine. All methods are safe for concurrent
// use; availability loads from an abandoned doctor or month never overwrite
// the current selection.
type Wizard struct {
	resolver *availability.Resolver
	creator  Creator
	logger   *logging.Logger
	metrics  *metrics.ClientMetrics

	mu         sync.Mutex
	step       Step
	doctor     *api.Doctor
	monthIndex int
	dates      []api.AvailabilityDate
	expanded   bool
	date       string
	slot       *api.Slot
	apptType   string
	reason     string
	location   string
	booked     *api.Appointment
	err        error

	// loadGen stamps each availability load; only the newest may apply.
	loadGen uint64
}

func NewWizard(resolver *availability.Resolver, creator Creator, logger *logging.Logger) *Wizard {
	if logger == nil {
		logger = logging.Default()
	}
	return &Wizard{
		resolver: resolver,
		creator:  creator,
		logger:   logger,
		apptType: api.TypeInPerson,
	}
}

// WithMetrics attaches booking outcome counters.
func (w *Wizard) WithMetrics(m *metrics.ClientMetrics) *Wizard {
	w.metrics = m
	return w
}

// Snapshot returns the current state for rendering.
func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		Step:       w.step,
		Doctor:     w.doctor,
		MonthIndex: w.monthIndex,
		Dates:      w.dates,
		Expanded:   w.expanded,
		Date:       w.date,
		Slot:       w.slot,
		Type:       w.apptType,
		Reason:     w.reason,
		Location:   w.location,
		Booked:     w.booked,
		Err:        w.err,
	}
}

// SelectDoctor picks the doctor and clears every downstream selection.
// Re-selecting the same doctor is a no-op so an accidental double tap does
// not wipe a chosen slot.
func (w *Wizard) SelectDoctor(d api.Doctor) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.doctor != nil && w.doctor.ID == d.ID {
		return
	}
	w.doctor = &d
	w.monthIndex = 0
	w.dates = nil
	w.expanded = false
	w.date = ""
	w.slot = nil
	// The booking's location is the doctor's practice location unless the
	// confirm step overrides it.
	w.location = d.Location
}

// SelectMonth moves the month picker and reloads availability. The date and
// slot reset: they belonged to the previous month. The fetch runs without
// the lock held; if the doctor or month changed while it was in flight, the
// stale result is dropped.
func (w *Wizard) SelectMonth(ctx context.Context, index int) error {
	w.mu.Lock()
	if w.doctor == nil {
		w.mu.Unlock()
		return &api.ValidationError{Field: "doctor", Message: "select a doctor first"}
	}
	// Keep the stored index inside the picker's bounds; the resolver clamps
	// the fetch the same way, so the snapshot and the data always agree.
	if index < 0 {
		index = 0
	}
	if max := w.resolver.Window() - 1; index > max {
		index = max
	}
	w.monthIndex = index
	w.date = ""
	w.slot = nil
	w.dates = nil
	w.expanded = false
	w.loadGen++
	gen := w.loadGen
	doctorID := w.doctor.ID
	w.mu.Unlock()

	res, err := w.resolver.Resolve(ctx, doctorID, index)

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.loadGen || w.doctor == nil || w.doctor.ID != doctorID {
		return nil
	}
	if err != nil {
		return err
	}
	w.dates = res.Dates
	w.expanded = res.Expanded
	return nil
}

// SelectDate picks a day; the slot resets because it belonged to the
// previous day.
func (w *Wizard) SelectDate(date string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.date == date {
		return
	}
	w.date = date
	w.slot = nil
}

// SelectSlot picks a time on the selected day.
func (w *Wizard) SelectSlot(s api.Slot) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.slot = &s
}

// SetDetails records the visit type, reason, and location shown on the
// confirm step. An empty location keeps the one seeded from the doctor.
func (w *Wizard) SetDetails(apptType, reason, location string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if apptType != "" {
		w.apptType = apptType
	}
	w.reason = reason
	if location != "" {
		w.location = location
	}
}

// Next advances one step, validating that the current step is complete.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.step {
	case StepSelectDoctor:
		if w.doctor == nil {
			return &api.ValidationError{Field: "doctor", Message: "select a doctor to continue"}
		}
		w.step = StepSelectDateTime
	case StepSelectDateTime:
		if w.slot == nil {
			return &api.ValidationError{Field: "slot", Message: "select a date and time to continue"}
		}
		w.step = StepConfirm
	default:
		return &api.ValidationError{Field: "step", Message: "nothing to advance from " + w.step.String()}
	}
	return nil
}

// Back steps backward. Leaving the date step means the patient is changing
// doctors, so the doctor and everything hanging off it — availability, date,
// slot, seeded location — is discarded. Returning from the confirm step only
// revisits the time, so those selections survive.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.step {
	case StepSelectDateTime:
		w.step = StepSelectDoctor
		w.doctor = nil
		w.monthIndex = 0
		w.dates = nil
		w.expanded = false
		w.date = ""
		w.slot = nil
		w.location = ""
		w.loadGen++
	case StepConfirm, StepFailure:
		w.step = StepSelectDateTime
	}
}

// Submit fires the booking. Each call mints a fresh idempotency key: a retry
// after failure is a new attempt, while transport-level retries inside a
// single attempt share the key. A submit while one is already in flight is
// ignored.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.step == StepSubmitting {
		w.mu.Unlock()
		return nil
	}
	if w.step != StepConfirm && w.step != StepFailure {
		w.mu.Unlock()
		return &api.ValidationError{Field: "step", Message: "confirm the booking before submitting"}
	}
	if w.doctor == nil || w.slot == nil {
		w.mu.Unlock()
		return &api.ValidationError{Field: "slot", Message: "booking selections are incomplete"}
	}
	req := api.CreateAppointmentRequest{
		DoctorID:       w.doctor.ID,
		Date:           w.slot.Time,
		Type:           w.apptType,
		ReasonForVisit: w.reason,
		Location:       w.location,
	}
	w.step = StepSubmitting
	w.err = nil
	w.mu.Unlock()

	key := uuid.New().String()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "booking.Submit",
		trace.WithAttributes(
			attribute.String("doctor.id", req.DoctorID),
			attribute.String("appointment.type", req.Type),
		))
	defer span.End()

	appt, err := w.creator.CreateAppointment(ctx, req, key)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.step = StepFailure
		w.err = err
		w.metrics.ObserveBooking("failure")
		w.logger.Error("booking failed",
			slog.String("doctor_id", req.DoctorID),
			slog.String("error", err.Error()))
		return err
	}
	w.booked = appt
	w.step = StepSuccess
	w.metrics.ObserveBooking("success")
	w.logger.Info("booking created",
		slog.String("appointment_id", appt.ID),
		slog.String("doctor_id", req.DoctorID))
	return nil
}

// Reset returns the wizard to a blank first step. The success screen calls
// it on dismiss.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = StepSelectDoctor
	w.doctor = nil
	w.monthIndex = 0
	w.dates = nil
	w.expanded = false
	w.date = ""
	w.slot = nil
	w.apptType = api.TypeInPerson
	w.reason = ""
	w.location = ""
	w.booked = nil
	w.err = nil
	w.loadGen++
}
