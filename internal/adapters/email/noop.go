package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// NoopSender logs sends without delivering anything. Used in development.
type NoopSender struct{}

func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

func (s *NoopSender) Send(_ context.Context, msg Message) (Result, error) {
	slog.Info("noop_email_send", "to", msg.To, "subject", msg.Subject)
	return Result{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}

// RecorderSender captures sent messages for assertions in tests.
type RecorderSender struct {
	mu   sync.Mutex
	sent []Message
}

func NewRecorderSender() *RecorderSender {
	return &RecorderSender{}
}

func (s *RecorderSender) Send(_ context.Context, msg Message) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return Result{
		MessageID: fmt.Sprintf("rec-%d", len(s.sent)),
		SentAt:    time.Now(),
	}, nil
}

// Sent returns a copy of the captured messages.
func (s *RecorderSender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.sent))
	copy(out, s.sent)
	return out
}
