package practice

import (
	"errors"
	"time"
)

// Max length constants.
const (
	MaxMenuLength = 2000
	MaxMoodLength = 20
	MaxTags       = 20
	MaxTagLength  = 50
)

// Record is one practice-log entry: what a member trained on a given day.
// The Date doubles as a participation-day source for the streak figures.
type Record struct {
	ID       string
	MemberID string
	Date     string // YYYY-MM-DD
	Mood     string // emoji or short mood marker
	Menu     string // free-text description of the session
	Tags     []string
	SavedAt  time.Time
}

// Validate checks if the Record has valid data.
// PRE: Record struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (r *Record) Validate() error {
	if r.MemberID == "" {
		return errors.New("practice record must be associated with a member")
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return errors.New("practice record date must be YYYY-MM-DD")
	}
	if r.Menu == "" {
		return errors.New("practice menu cannot be empty")
	}
	if len(r.Menu) > MaxMenuLength {
		return errors.New("practice menu cannot exceed 2000 characters")
	}
	if len(r.Mood) > MaxMoodLength {
		return errors.New("mood cannot exceed 20 characters")
	}
	if len(r.Tags) > MaxTags {
		return errors.New("practice record cannot carry more than 20 tags")
	}
	for _, tag := range r.Tags {
		if tag == "" {
			return errors.New("tags cannot be empty")
		}
		if len(tag) > MaxTagLength {
			return errors.New("tag cannot exceed 50 characters")
		}
	}
	return nil
}
