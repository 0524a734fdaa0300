package notice

import (
	"errors"
	"time"
)

// Notice types, mirroring the client's notification badges.
const (
	TypeInfo      = "info"
	TypeImportant = "important"
	TypeEvent     = "event"
)

// Max length constants.
const (
	MaxTitleLength   = 200
	MaxContentLength = 4000
)

// Domain errors
var (
	ErrEmptyTitle   = errors.New("notice title cannot be empty")
	ErrEmptyContent = errors.New("notice content cannot be empty")
	ErrInvalidType  = errors.New("notice type must be one of: info, important, event")
)

// ValidTypes contains all valid notice types.
var ValidTypes = []string{TypeInfo, TypeImportant, TypeEvent}

// Notice is a club announcement pushed to all members.
// Content supports Markdown formatting and is rendered server-side.
type Notice struct {
	ID        string
	Type      string // info, important, event
	Title     string
	Content   string // Markdown content
	CreatedBy string // AccountID of the author
	CreatedAt time.Time
}

// Validate checks if the Notice has valid data.
// PRE: Notice struct is populated
// POST: Returns nil if valid, error otherwise
func (n *Notice) Validate() error {
	if n.Title == "" {
		return ErrEmptyTitle
	}
	if len(n.Title) > MaxTitleLength {
		return errors.New("notice title cannot exceed 200 characters")
	}
	if n.Content == "" {
		return ErrEmptyContent
	}
	if len(n.Content) > MaxContentLength {
		return errors.New("notice content cannot exceed 4000 characters")
	}
	if !isValidType(n.Type) {
		return ErrInvalidType
	}
	return nil
}

func isValidType(t string) bool {
	for _, v := range ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ReadMark records that a member has seen a notice.
// One mark exists per (NoticeID, MemberID) pair (upsert key).
type ReadMark struct {
	NoticeID string
	MemberID string
	ReadAt   time.Time
}

// Validate checks if the ReadMark has valid data.
// PRE: ReadMark struct is populated
// POST: Returns nil if valid, error otherwise
func (r *ReadMark) Validate() error {
	if r.NoticeID == "" {
		return errors.New("read mark must name a notice")
	}
	if r.MemberID == "" {
		return errors.New("read mark must name a member")
	}
	return nil
}
