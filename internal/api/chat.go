package api

import (
	"context"
	"net/http"
	"net/url"
)

// ChatMessages fetches the message thread with a doctor.
func (c *Client) ChatMessages(ctx context.Context, doctorID string) ([]ChatMessage, error) {
	if doctorID == "" {
		return nil, &ValidationError{Field: "doctorId", Message: "doctor id is required"}
	}
	query := url.Values{}
	query.Set("doctorId", doctorID)
	var messages []ChatMessage
	err := c.do(ctx, http.MethodGet, "/api/mobile/chat/messages", query, nil, &messages, "Failed to load messages")
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// SendChatMessage posts a message to a doctor's thread.
func (c *Client) SendChatMessage(ctx context.Context, doctorID, content string) (*ChatMessage, error) {
	if doctorID == "" {
		return nil, &ValidationError{Field: "doctorId", Message: "doctor id is required"}
	}
	if content == "" {
		return nil, &ValidationError{Field: "content", Message: "message content is required"}
	}
	body := map[string]string{"doctorId": doctorID, "content": content}
	var message ChatMessage
	err := c.do(ctx, http.MethodPost, "/api/mobile/chat/messages", nil, body, &message, "Failed to send message")
	if err != nil {
		return nil, err
	}
	return &message, nil
}
