package absence

import (
	"errors"
	"strings"
	"time"
)

// Max length constants.
const (
	MaxEventTitleLength = 200
	MaxReasonLength     = 1000
)

// Report is a free-text absence notice sent by a member to club staff,
// separate from the structured attendance response.
type Report struct {
	ID         string
	MemberID   string
	EventTitle string
	Reason     string
	CreatedAt  time.Time
}

// Validate checks if the Report has valid data.
// PRE: Report struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Report) Validate() error {
	if r.MemberID == "" {
		return errors.New("absence report must be associated with a member")
	}
	if strings.TrimSpace(r.EventTitle) == "" {
		return errors.New("absence report must name the event")
	}
	if len(r.EventTitle) > MaxEventTitleLength {
		return errors.New("event title cannot exceed 200 characters")
	}
	if strings.TrimSpace(r.Reason) == "" {
		return errors.New("absence reason cannot be empty")
	}
	if len(r.Reason) > MaxReasonLength {
		return errors.New("reason cannot exceed 1000 characters")
	}
	return nil
}
