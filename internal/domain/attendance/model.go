package attendance

import (
	"errors"
	"time"
)

// Response status constants.
const (
	StatusAttend    = "attend"
	StatusAbsent    = "absent"
	StatusUndecided = "undecided"
)

// MaxReasonLength bounds the optional free-text reason.
const MaxReasonLength = 500

// Domain errors
var (
	ErrEmptyMemberID = errors.New("attendance response must name a member")
	ErrEmptyEventID  = errors.New("attendance response must name an event")
	ErrInvalidStatus = errors.New("status must be 'attend', 'absent' or 'undecided'")
)

// Response is one member's answer to one calendar event.
// Exactly one response exists per (MemberID, EventID) pair; re-answering
// overwrites the previous response (upsert key).
type Response struct {
	ID          string
	MemberID    string
	EventID     string
	Status      string
	Reason      string // optional, mostly used with "absent"
	RespondedAt time.Time
}

// Validate checks if the Response has valid data.
// PRE: Response struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Response) Validate() error {
	if r.MemberID == "" {
		return ErrEmptyMemberID
	}
	if r.EventID == "" {
		return ErrEmptyEventID
	}
	if !ValidStatus(r.Status) {
		return ErrInvalidStatus
	}
	if len(r.Reason) > MaxReasonLength {
		return errors.New("reason cannot exceed 500 characters")
	}
	return nil
}

// ValidStatus reports whether s is one of the three response statuses.
func ValidStatus(s string) bool {
	return s == StatusAttend || s == StatusAbsent || s == StatusUndecided
}
