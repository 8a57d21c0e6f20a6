package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoopSender is a no-op sender for development and testing. It logs
// notifications but does not deliver them.
type NoopSender struct{}

// NewNoopSender creates a new NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send logs the notification without delivering it.
func (s *NoopSender) Send(_ context.Context, msg Message) (string, error) {
	slog.Info("noop_notification", "to", msg.To, "subject", msg.Subject)
	return fmt.Sprintf("noop-%d", time.Now().UnixNano()), nil
}
