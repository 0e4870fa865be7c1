// Package email delivers transactional mail: verification links and
// approval notifications.
package email

import (
	"context"
	"fmt"
	"time"
)

// Message is one outbound email.
type Message struct {
	To      string
	From    string // empty means the sender's default
	Subject string
	HTML    string
}

// Result is the provider's acknowledgement of an accepted send.
type Result struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers a single message via an external provider.
type Sender interface {
	Send(ctx context.Context, msg Message) (Result, error)
}

// VerificationMessage builds the email-verification message for a new
// account. The link embeds the one-time token.
func VerificationMessage(to, name, baseURL, token string) Message {
	link := fmt.Sprintf("%s/verify?token=%s", baseURL, token)
	return Message{
		To:      to,
		Subject: "Verify your GymHub email",
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>Confirm your email address to finish setting up your account:</p>"+
				"<p><a href=%q>Verify email</a></p><p>The link expires in 24 hours.</p>",
			name, link),
	}
}

// ApprovalMessage builds the notification sent to a gym owner when an
// admin decides on their gym submission.
func ApprovalMessage(to, gymName string, approved bool) Message {
	if approved {
		return Message{
			To:      to,
			Subject: "Your gym is live on GymHub",
			HTML: fmt.Sprintf("<p>Good news: <strong>%s</strong> has been approved. "+
				"Your dashboard is now unlocked.</p>", gymName),
		}
	}
	return Message{
		To:      to,
		Subject: "Your GymHub submission was not approved",
		HTML: fmt.Sprintf("<p><strong>%s</strong> was not approved. "+
			"Review your details and submit again.</p>", gymName),
	}
}
