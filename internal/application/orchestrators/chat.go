package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clubhouse/internal/domain/chat"
)

// ChatStoreForSend defines the store interface needed by the chat orchestrators.
type ChatStoreForSend interface {
	GetRoomByID(ctx context.Context, id string) (chat.Room, error)
	SaveRoom(ctx context.Context, r chat.Room) error
	DeleteRoom(ctx context.Context, id string) error
	GetMessageByID(ctx context.Context, id string) (chat.Message, error)
	SaveMessage(ctx context.Context, m chat.Message) error
	DeleteMessage(ctx context.Context, id string) error
	MarkRead(ctx context.Context, receipt chat.ReadReceipt) error
}

// MessageNotifier pushes a stored message to connected room subscribers.
// A nil notifier disables push; delivery failures never fail the send.
type MessageNotifier interface {
	NotifyMessage(roomID string, m chat.Message)
}

// SendMessageInput carries input for the send message orchestrator.
type SendMessageInput struct {
	RoomID   string
	SenderID string
	Content  string
}

// ChatDeps holds dependencies for the chat orchestrators.
type ChatDeps struct {
	ChatStore  ChatStoreForSend
	Notifier   MessageNotifier
	GenerateID func() string
	Now        func() time.Time
}

var (
	ErrRoomNotFound    = errors.New("chat room not found")
	ErrMessageNotFound = errors.New("chat message not found")
	ErrNotSender       = errors.New("message belongs to another member")
)

// ExecuteSendMessage stores a message and pushes it to room subscribers.
// The message is durable once stored; push delivery is best effort.
// PRE: RoomID refers to an existing room; input passes message validation
// POST: Message is persisted and subscribers are notified
func ExecuteSendMessage(ctx context.Context, input SendMessageInput, deps ChatDeps) (chat.Message, error) {
	if _, err := deps.ChatStore.GetRoomByID(ctx, input.RoomID); err != nil {
		return chat.Message{}, ErrRoomNotFound
	}

	message := chat.Message{
		ID:        deps.GenerateID(),
		RoomID:    input.RoomID,
		SenderID:  input.SenderID,
		Content:   input.Content,
		CreatedAt: deps.Now(),
	}
	if err := message.Validate(); err != nil {
		return chat.Message{}, err
	}
	if err := deps.ChatStore.SaveMessage(ctx, message); err != nil {
		return chat.Message{}, err
	}

	if deps.Notifier != nil {
		deps.Notifier.NotifyMessage(input.RoomID, message)
	}

	slog.Info("chat_event", "event", "message_sent",
		"room_id", input.RoomID, "message_id", message.ID, "sender_id", input.SenderID)
	return message, nil
}

// ExecuteMarkMessageRead records a read receipt for a message.
// Marking twice keeps the first receipt.
// PRE: MessageID refers to an existing message
// POST: A receipt for (message, member) exists
func ExecuteMarkMessageRead(ctx context.Context, messageID string, memberID string, deps ChatDeps) error {
	if _, err := deps.ChatStore.GetMessageByID(ctx, messageID); err != nil {
		return ErrMessageNotFound
	}
	receipt := chat.ReadReceipt{
		MessageID: messageID,
		MemberID:  memberID,
		ReadAt:    deps.Now(),
	}
	if err := receipt.Validate(); err != nil {
		return err
	}
	return deps.ChatStore.MarkRead(ctx, receipt)
}

// CreateRoomInput carries input for the create room orchestrator.
type CreateRoomInput struct {
	Name      string
	Category  string
	AvatarURL string
}

// ExecuteCreateRoom creates a chat room.
// PRE: input passes room validation
// POST: Room is persisted
func ExecuteCreateRoom(ctx context.Context, input CreateRoomInput, deps ChatDeps) (chat.Room, error) {
	room := chat.Room{
		ID:        deps.GenerateID(),
		Name:      input.Name,
		Category:  input.Category,
		AvatarURL: input.AvatarURL,
		CreatedAt: deps.Now(),
	}
	if err := room.Validate(); err != nil {
		return chat.Room{}, err
	}
	if err := deps.ChatStore.SaveRoom(ctx, room); err != nil {
		return chat.Room{}, err
	}

	slog.Info("chat_event", "event", "room_created", "room_id", room.ID, "name", room.Name)
	return room, nil
}

// ExecuteDeleteMessage removes a message. Only the sender or staff may
// delete; staff status is decided by the caller through the isStaff flag.
// PRE: MessageID refers to an existing message
// POST: Message and its receipts are removed
func ExecuteDeleteMessage(ctx context.Context, messageID string, memberID string, isStaff bool, deps ChatDeps) error {
	message, err := deps.ChatStore.GetMessageByID(ctx, messageID)
	if err != nil {
		return ErrMessageNotFound
	}
	if message.SenderID != memberID && !isStaff {
		return ErrNotSender
	}
	if err := deps.ChatStore.DeleteMessage(ctx, messageID); err != nil {
		return err
	}

	slog.Info("chat_event", "event", "message_deleted", "message_id", messageID, "by", memberID)
	return nil
}

// ExecuteDeleteRoom removes a chat room. Messages and receipts in the
// room go with it.
// PRE: RoomID refers to an existing room
// POST: Room is removed
func ExecuteDeleteRoom(ctx context.Context, roomID string, deps ChatDeps) error {
	if roomID == "" {
		return errors.New("room id is required")
	}
	if _, err := deps.ChatStore.GetRoomByID(ctx, roomID); err != nil {
		return ErrRoomNotFound
	}
	if err := deps.ChatStore.DeleteRoom(ctx, roomID); err != nil {
		return err
	}

	slog.Info("chat_event", "event", "room_deleted", "room_id", roomID)
	return nil
}
