package out

import "context"

// Mailer delivers transactional mail. Single attempt, no retries; a failed
// dispatch surfaces to the caller.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
