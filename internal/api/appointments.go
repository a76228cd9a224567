package api

import (
	"context"
	"net/http"
)

// Appointments fetches the whole appointment list. Partitioning into
// upcoming/past happens client-side on every fetch.
func (c *Client) Appointments(ctx context.Context) ([]Appointment, error) {
	var appointments []Appointment
	err := c.do(ctx, http.MethodGet, "/api/mobile/appointments", nil, nil, &appointments, "Failed to fetch appointments")
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// AppointmentDetail fetches a single appointment.
func (c *Client) AppointmentDetail(ctx context.Context, appointmentID string) (*Appointment, error) {
	if appointmentID == "" {
		return nil, &ValidationError{Field: "appointmentId", Message: "appointment id is required"}
	}
	var appointment Appointment
	err := c.do(ctx, http.MethodGet, "/api/mobile/appointments/"+appointmentID, nil, nil, &appointment, "Failed to fetch appointment")
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// CreateAppointment books an appointment. idempotencyKey dedupes a
// double-submitted booking; the wizard mints one per attempt.
func (c *Client) CreateAppointment(ctx context.Context, req CreateAppointmentRequest, idempotencyKey string) (*Appointment, error) {
	if req.DoctorID == "" {
		return nil, &ValidationError{Field: "doctorId", Message: "doctor id is required"}
	}
	if req.Date == "" {
		return nil, &ValidationError{Field: "date", Message: "appointment date is required"}
	}
	if req.Type == "" {
		return nil, &ValidationError{Field: "type", Message: "appointment type is required"}
	}
	var appointment Appointment
	err := c.do(ctx, http.MethodPost, "/api/mobile/appointments", nil, req, &appointment,
		"Failed to book appointment", withIdempotencyKey(idempotencyKey))
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// CancelAppointment deletes an appointment. Callers confirm with the user
// first and refetch the list afterwards.
func (c *Client) CancelAppointment(ctx context.Context, appointmentID string) error {
	if appointmentID == "" {
		return &ValidationError{Field: "appointmentId", Message: "appointment id is required"}
	}
	return c.do(ctx, http.MethodDelete, "/api/mobile/appointments/"+appointmentID, nil, nil, nil, "Failed to cancel appointment")
}
