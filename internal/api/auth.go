package api

import (
	"context"
	"net/http"
)

// LoginRequest is the credentials payload.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe,omitempty"`
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	AgreeToTerms bool   `json:"agreeToTerms"`
}

// Login exchanges credentials for a token pair. Storing the tokens is the
// caller's job (typically session.SetTokens).
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, &ValidationError{Field: "credentials", Message: "email and password are required"}
	}
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/mobile/auth/login", nil, req, &out, "Login failed", withoutAuth())
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and returns the initial token pair.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return nil, &ValidationError{Field: "registration", Message: "name, email and password are required"}
	}
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/mobile/auth/register", nil, req, &out, "Registration failed", withoutAuth())
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ForgotPassword requests a reset code for the given email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/api/mobile/auth/forgot-password", nil, body, nil, "Failed to request reset code", withoutAuth())
}

// VerifyCode checks a reset code.
func (c *Client) VerifyCode(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return &ValidationError{Field: "code", Message: "email and code are required"}
	}
	body := map[string]string{"email": email, "code": code}
	return c.do(ctx, http.MethodPost, "/api/mobile/auth/verify-code", nil, body, nil, "Failed to verify code", withoutAuth())
}

// ResetPassword sets a new password using a verified code.
func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if email == "" || code == "" || newPassword == "" {
		return &ValidationError{Field: "password", Message: "email, code and new password are required"}
	}
	body := map[string]string{"email": email, "code": code, "newPassword": newPassword}
	return c.do(ctx, http.MethodPost, "/api/mobile/auth/reset-password", nil, body, nil, "Failed to reset password", withoutAuth())
}

// ProfileDetail fetches the account profile.
func (c *Client) ProfileDetail(ctx context.Context) (*Profile, error) {
	var out Profile
	err := c.do(ctx, http.MethodGet, "/api/mobile/user/profile", nil, nil, &out, "Failed to load profile")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile applies a partial profile update.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]interface{}) (*Profile, error) {
	if len(fields) == 0 {
		return nil, &ValidationError{Field: "profile", Message: "no fields to update"}
	}
	var out Profile
	err := c.do(ctx, http.MethodPut, "/api/mobile/user/profile", nil, fields, &out, "Failed to update profile")
	if err != nil {
		return nil, err
	}
	return &out, nil
}
