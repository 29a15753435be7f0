package notification

import "context"

// EmailMessage is one transactional email ready for dispatch. Bodies are
// rendered by the caller; the mailer only delivers.
type EmailMessage struct {
	To       string
	ToName   string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer sends a single transactional email. Implementations do not retry;
// callers log failures and continue.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}
