package member

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength     = 100
	MaxTeamLength     = 100
	MaxPositionLength = 50
	MaxCourseLength   = 100
)

// NamePlaceholder is the display fallback for members with no name set.
// The mobile client shows it verbatim in attendance and chat lists.
const NamePlaceholder = "(名前なし)"

// Member is a club member profile: the display-facing counterpart of an
// account. Used as the name lookup for attendance and chat rendering.
type Member struct {
	ID        string
	AccountID string
	Name      string
	Team      string // e.g. "Aチーム", "ジュニア"
	Position  string // e.g. "FW", "GK"
	Number    int    // squad number, 0 means unassigned
	Course    string // enrolled course/plan name
}

// Validate checks if the Member has valid data.
// PRE: Member struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("member name cannot be empty")
	}
	if len(m.Name) > MaxNameLength {
		return errors.New("member name cannot exceed 100 characters")
	}
	if len(m.Team) > MaxTeamLength {
		return errors.New("team cannot exceed 100 characters")
	}
	if len(m.Position) > MaxPositionLength {
		return errors.New("position cannot exceed 50 characters")
	}
	if m.Number < 0 {
		return errors.New("squad number cannot be negative")
	}
	if len(m.Course) > MaxCourseLength {
		return errors.New("course cannot exceed 100 characters")
	}
	return nil
}

// DisplayName returns the member's name or the placeholder when unset.
// INVARIANT: Member fields are not mutated
func (m *Member) DisplayName() string {
	if strings.TrimSpace(m.Name) == "" {
		return NamePlaceholder
	}
	return m.Name
}
