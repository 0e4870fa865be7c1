package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers mail through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender with the given API key and default
// from address.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}

// Send delivers one message.
// PRE: msg has a recipient and a subject
func (s *ResendSender) Send(ctx context.Context, msg Message) (Result, error) {
	from := msg.From
	if from == "" {
		from = s.from
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		slog.Error("email_send_failed", "to", msg.To, "subject", msg.Subject, "error", err)
		return Result{}, fmt.Errorf("resend send failed: %w", err)
	}

	slog.Info("email_sent", "message_id", sent.Id, "to", msg.To, "subject", msg.Subject)
	return Result{MessageID: sent.Id, SentAt: time.Now()}, nil
}
