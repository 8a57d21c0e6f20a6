package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers notifications via the Resend API. The from
// address is fixed at construction; every notification the app sends
// comes from the same system address.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a new ResendSender.
// PRE: apiKey is a valid Resend API key; from is a valid sender address
// POST: Returns a ready-to-use sender
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send delivers one notification.
// PRE: msg has a recipient and a subject
// POST: the notification is queued; returns the Resend message id
func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		slog.Error("notification_send_failed", "to", msg.To, "subject", msg.Subject, "error", err)
		return "", fmt.Errorf("resend send failed: %w", err)
	}

	slog.Info("notification_sent", "message_id", sent.Id, "to", msg.To, "subject", msg.Subject)
	return sent.Id, nil
}
