package chat

import (
	"context"

	domain "clubhouse/internal/domain/chat"
)

// Store persists chat Room, Message and ReadReceipt state.
type Store interface {
	GetRoomByID(ctx context.Context, id string) (domain.Room, error)
	SaveRoom(ctx context.Context, value domain.Room) error
	DeleteRoom(ctx context.Context, id string) error
	ListRooms(ctx context.Context) ([]domain.Room, error)

	GetMessageByID(ctx context.Context, id string) (domain.Message, error)
	SaveMessage(ctx context.Context, value domain.Message) error
	DeleteMessage(ctx context.Context, id string) error
	ListMessagesByRoomID(ctx context.Context, roomID string, filter ListFilter) ([]domain.Message, error)
	LatestMessagesByRoomIDs(ctx context.Context, roomIDs []string) (map[string]domain.Message, error)

	MarkRead(ctx context.Context, receipt domain.ReadReceipt) error
	CountReadsByMessageIDs(ctx context.Context, messageIDs []string) (map[string]int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
}
