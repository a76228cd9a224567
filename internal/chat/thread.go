// Package chat drives the doctor-patient message thread.
package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/dermatrack/mobile-core/internal/api"
	"github.com/dermatrack/mobile-core/pkg/logging"
)

// Messenger is the slice of the API client the thread needs.
type Messenger interface {
	ChatMessages(ctx context.Context, doctorID string) ([]api.ChatMessage, error)
	SendChatMessage(ctx context.Context, doctorID, content string) (*api.ChatMessage, error)
}

// Thread holds one conversation with one doctor. Refresh replaces the
// message list; Send appends optimistically once the server confirms.
type Thread struct {
	client   Messenger
	logger   *logging.Logger
	doctorID string

	mu       sync.Mutex
	messages []api.ChatMessage
}

func NewThread(client Messenger, logger *logging.Logger, doctorID string) *Thread {
	if logger == nil {
		logger = logging.Default()
	}
	return &Thread{client: client, logger: logger, doctorID: doctorID}
}

// DoctorID identifies the conversation partner.
func (t *Thread) DoctorID() string { return t.doctorID }

// Messages returns a copy of the current message list, oldest first.
func (t *Thread) Messages() []api.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]api.ChatMessage, len(t.messages))
	copy(out, t.messages)
	return out
}

// Refresh refetches the whole thread. The realtime layer and the polling
// safety net both funnel through here, so a missed push costs at most one
// poll interval of staleness.
func (t *Thread) Refresh(ctx context.Context) error {
	msgs, err := t.client.ChatMessages(ctx, t.doctorID)
	if err != nil {
		return fmt.Errorf("chat: refresh thread %s: %w", t.doctorID, err)
	}
	t.mu.Lock()
	t.messages = msgs
	t.mu.Unlock()
	return nil
}

// Send posts a message and appends the server's echo to the thread.
func (t *Thread) Send(ctx context.Context, content string) (*api.ChatMessage, error) {
	if content == "" {
		return nil, &api.ValidationError{Field: "content", Message: "message cannot be empty"}
	}
	msg, err := t.client.SendChatMessage(ctx, t.doctorID, content)
	if err != nil {
		return nil, fmt.Errorf("chat: send to %s: %w", t.doctorID, err)
	}
	t.mu.Lock()
	t.messages = append(t.messages, *msg)
	t.mu.Unlock()
	return msg, nil
}
