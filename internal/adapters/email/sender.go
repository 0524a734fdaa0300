package email

import (
	"context"
	"time"
)

// SendRequest contains the data for one outgoing notification, such as
// the staff mail sent when a member reports an absence.
type SendRequest struct {
	To      []string // Recipient email addresses
	From    string   // Sender address (e.g. "クラブハウス <noreply@club.example>")
	Subject string
	HTML    string // HTML body
	ReplyTo string // Reply-to address, usually the reporting member
}

// SendResult contains the response from the email provider.
type SendResult struct {
	MessageID string    // Provider's message ID for tracking
	SentAt    time.Time // When the send was accepted
}

// Sender delivers notification emails via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
