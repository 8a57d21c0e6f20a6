package email

import "context"

// Message is one notification to a single recipient. The app only sends
// person-to-person notices (a member joined your club), never broadcasts,
// so the surface is a recipient, a subject, and an HTML body.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a notification through an external provider. Send
// returns the provider's message id for log correlation.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}
