package mailer

import "context"

// Email is one outbound message, already rendered.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Mailer sends a single email through the managed delivery provider and
// returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, email Email) (string, error)
}
