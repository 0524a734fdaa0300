package chat

import (
	"errors"
	"time"
)

// Room category constants. Categories drive grouping in the client's room
// list; CategoryContact is the default for plain announcement rooms.
const (
	CategoryContact  = "連絡"
	CategoryTeam     = "チーム"
	CategoryParents  = "保護者"
	CategoryCoaching = "コーチ"
)

// Max length constants.
const (
	MaxRoomNameLength = 100
	MaxContentLength  = 4000
)

// Domain errors
var (
	ErrEmptyRoomName = errors.New("room name cannot be empty")
	ErrEmptyRoomID   = errors.New("message must belong to a room")
	ErrEmptySenderID = errors.New("message must have a sender")
	ErrEmptyContent  = errors.New("message content cannot be empty")
)

// Room is a team chat room.
type Room struct {
	ID        string
	Name      string
	Category  string
	AvatarURL string
	CreatedAt time.Time
}

// Validate checks if the Room has valid data.
// PRE: Room struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Room) Validate() error {
	if r.Name == "" {
		return ErrEmptyRoomName
	}
	if len(r.Name) > MaxRoomNameLength {
		return errors.New("room name cannot exceed 100 characters")
	}
	return nil
}

// Message is one chat message inside a room.
type Message struct {
	ID        string
	RoomID    string
	SenderID  string // member account's member ID
	Content   string
	CreatedAt time.Time
}

// Validate checks if the Message has valid data.
// PRE: Message struct is populated
// POST: Returns nil if valid, error otherwise
func (m *Message) Validate() error {
	if m.RoomID == "" {
		return ErrEmptyRoomID
	}
	if m.SenderID == "" {
		return ErrEmptySenderID
	}
	if m.Content == "" {
		return ErrEmptyContent
	}
	if len(m.Content) > MaxContentLength {
		return errors.New("message content cannot exceed 4000 characters")
	}
	if m.CreatedAt.IsZero() {
		return errors.New("created_at must be set")
	}
	return nil
}

// ReadReceipt marks a message as read by a member.
// One receipt exists per (MessageID, MemberID) pair (upsert key).
type ReadReceipt struct {
	MessageID string
	MemberID  string
	ReadAt    time.Time
}

// Validate checks if the ReadReceipt has valid data.
// PRE: ReadReceipt struct is populated
// POST: Returns nil if valid, error otherwise
func (r *ReadReceipt) Validate() error {
	if r.MessageID == "" {
		return errors.New("read receipt must name a message")
	}
	if r.MemberID == "" {
		return errors.New("read receipt must name a member")
	}
	if r.ReadAt.IsZero() {
		return errors.New("read_at must be set")
	}
	return nil
}
