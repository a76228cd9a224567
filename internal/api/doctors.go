package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ConnectedDoctors lists the doctors the patient is connected with.
func (c *Client) ConnectedDoctors(ctx context.Context) ([]Doctor, error) {
	var doctors []Doctor
	err := c.do(ctx, http.MethodGet, "/api/mobile/doctors/connected", nil, nil, &doctors, "Failed to fetch connected doctors")
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// Doctors lists doctors in the directory, capped at limit.
func (c *Client) Doctors(ctx context.Context, limit int) ([]Doctor, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var doctors []Doctor
	err := c.do(ctx, http.MethodGet, "/api/mobile/doctors", query, nil, &doctors, "Failed to fetch doctors")
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// DoctorDetail fetches a single doctor's profile.
func (c *Client) DoctorDetail(ctx context.Context, doctorID string) (*Doctor, error) {
	if doctorID == "" {
		return nil, &ValidationError{Field: "doctorId", Message: "doctor id is required"}
	}
	var doctor Doctor
	err := c.do(ctx, http.MethodGet, "/api/mobile/doctors/"+doctorID, nil, nil, &doctor, "Failed to fetch doctor")
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

// RequestConnection asks to connect with a doctor.
func (c *Client) RequestConnection(ctx context.Context, doctorID string) error {
	if doctorID == "" {
		return &ValidationError{Field: "doctorId", Message: "doctor id is required"}
	}
	query := url.Values{}
	query.Set("doctorId", doctorID)
	return c.do(ctx, http.MethodPost, "/api/mobile/connection/create", query, nil, nil, "Failed to send connection request")
}

// Availability fetches a doctor's availability between two instants. Both
// bounds are ISO 8601 timestamps. Callers normally go through the
// availability resolver, which owns the month-window math.
func (c *Client) Availability(ctx context.Context, doctorID, startDate, endDate string) ([]AvailabilityDate, error) {
	if doctorID == "" {
		return nil, &ValidationError{Field: "doctorId", Message: "doctor id is required"}
	}
	query := url.Values{}
	query.Set("doctorId", doctorID)
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)
	var dates []AvailabilityDate
	err := c.do(ctx, http.MethodGet, "/api/mobile/doctors/availability", query, nil, &dates, "Failed to fetch doctor availability")
	if err != nil {
		return nil, err
	}
	return dates, nil
}
