package clock

import (
	"errors"
	"time"
)

// DateLayout is the storage format for calendar days.
const DateLayout = "2006-01-02"

// ErrEmptyMemberID is returned when a record has no member.
var ErrEmptyMemberID = errors.New("clock record must be associated with a member")

// Record is one member's clock-in/out for a single calendar day.
// Exactly one record exists per (MemberID, Date) pair.
type Record struct {
	ID       string
	MemberID string
	Date     string    // YYYY-MM-DD, the member's local calendar day
	ClockIn  time.Time // zero value means not clocked in
	ClockOut time.Time // zero value means not clocked out
}

// Validate checks if the Record has valid data.
// PRE: Record struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: ClockOut, when set, is not before ClockIn
func (r *Record) Validate() error {
	if r.MemberID == "" {
		return ErrEmptyMemberID
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return errors.New("clock record date must be YYYY-MM-DD")
	}
	if !r.ClockOut.IsZero() && r.ClockIn.IsZero() {
		return errors.New("cannot clock out without clocking in")
	}
	if !r.ClockOut.IsZero() && r.ClockOut.Before(r.ClockIn) {
		return errors.New("clock-out cannot be before clock-in")
	}
	return nil
}

// IsClockedIn returns true once the member has clocked in for the day.
// INVARIANT: Record fields are not mutated
func (r *Record) IsClockedIn() bool {
	return !r.ClockIn.IsZero()
}

// IsClockedOut returns true once the member has clocked out for the day.
// INVARIANT: Record fields are not mutated
func (r *Record) IsClockedOut() bool {
	return !r.ClockOut.IsZero()
}
