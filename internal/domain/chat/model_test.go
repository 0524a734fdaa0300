package chat

import (
	"strings"
	"testing"
	"time"
)

// TestRoomValidate covers room invariants.
func TestRoomValidate(t *testing.T) {
	ok := Room{ID: "r1", Name: "全体連絡", Category: CategoryContact}
	if err := ok.Validate(); err != nil {
		t.Errorf("expected valid room, got %v", err)
	}

	empty := Room{}
	if err := empty.Validate(); err != ErrEmptyRoomName {
		t.Errorf("expected ErrEmptyRoomName, got %v", err)
	}

	long := Room{Name: strings.Repeat("a", MaxRoomNameLength+1)}
	if err := long.Validate(); err == nil {
		t.Error("expected error for oversized room name")
	}
}

// TestMessageValidate covers message invariants.
func TestMessageValidate(t *testing.T) {
	now := time.Now()
	ok := Message{ID: "msg1", RoomID: "r1", SenderID: "m1", Content: "今日の集合は16時です", CreatedAt: now}
	if err := ok.Validate(); err != nil {
		t.Errorf("expected valid message, got %v", err)
	}

	tests := []struct {
		name string
		msg  Message
		want error
	}{
		{"no room", Message{SenderID: "m1", Content: "x", CreatedAt: now}, ErrEmptyRoomID},
		{"no sender", Message{RoomID: "r1", Content: "x", CreatedAt: now}, ErrEmptySenderID},
		{"no content", Message{RoomID: "r1", SenderID: "m1", CreatedAt: now}, ErrEmptyContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.msg.Validate(); err != tt.want {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// TestReadReceiptValidate covers receipt invariants.
func TestReadReceiptValidate(t *testing.T) {
	ok := ReadReceipt{MessageID: "msg1", MemberID: "m1", ReadAt: time.Now()}
	if err := ok.Validate(); err != nil {
		t.Errorf("expected valid receipt, got %v", err)
	}
	missing := ReadReceipt{MemberID: "m1", ReadAt: time.Now()}
	if err := missing.Validate(); err == nil {
		t.Error("expected error for missing message id")
	}
}
