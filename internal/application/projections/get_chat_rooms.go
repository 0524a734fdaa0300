package projections

import (
	"context"
	"fmt"

	domainChat "clubhouse/internal/domain/chat"
	domainMember "clubhouse/internal/domain/member"
)

// ChatRoomListStore defines the chat store interface needed by the room list projection.
type ChatRoomListStore interface {
	ListRooms(ctx context.Context) ([]domainChat.Room, error)
	LatestMessagesByRoomIDs(ctx context.Context, roomIDs []string) (map[string]domainChat.Message, error)
}

// GetChatRoomsQuery carries input for the room list projection.
type GetChatRoomsQuery struct{}

// RoomListEntry is one room prepared for display, with its latest
// message as a preview. Preview fields are zero when the room is empty.
type RoomListEntry struct {
	Room          domainChat.Room
	Preview       string
	PreviewSender string
}

// GetChatRoomsResult carries the output of the room list projection.
type GetChatRoomsResult struct {
	Entries []RoomListEntry
}

// GetChatRoomsDeps holds dependencies for the room list projection.
type GetChatRoomsDeps struct {
	ChatStore   ChatRoomListStore
	MemberStore ChatTimelineMemberStore
}

// QueryGetChatRooms lists rooms with their latest message previews,
// resolved in one batched lookup per concern.
// POST: Entries preserve store order
func QueryGetChatRooms(ctx context.Context, query GetChatRoomsQuery, deps GetChatRoomsDeps) (GetChatRoomsResult, error) {
	rooms, err := deps.ChatStore.ListRooms(ctx)
	if err != nil {
		return GetChatRoomsResult{}, fmt.Errorf("failed to load rooms: %w", err)
	}

	roomIDs := make([]string, 0, len(rooms))
	for _, r := range rooms {
		roomIDs = append(roomIDs, r.ID)
	}
	latest, err := deps.ChatStore.LatestMessagesByRoomIDs(ctx, roomIDs)
	if err != nil {
		return GetChatRoomsResult{}, fmt.Errorf("failed to load previews: %w", err)
	}

	senderIDs := make([]string, 0, len(latest))
	seen := make(map[string]bool, len(latest))
	for _, m := range latest {
		if !seen[m.SenderID] {
			seen[m.SenderID] = true
			senderIDs = append(senderIDs, m.SenderID)
		}
	}
	names, err := deps.MemberStore.ListNamesByIDs(ctx, senderIDs)
	if err != nil {
		return GetChatRoomsResult{}, fmt.Errorf("failed to resolve sender names: %w", err)
	}

	entries := make([]RoomListEntry, 0, len(rooms))
	for _, r := range rooms {
		entry := RoomListEntry{Room: r}
		if m, ok := latest[r.ID]; ok {
			entry.Preview = m.Content
			if name, ok := names[m.SenderID]; ok && name != "" {
				entry.PreviewSender = name
			} else {
				entry.PreviewSender = domainMember.NamePlaceholder
			}
		}
		entries = append(entries, entry)
	}
	return GetChatRoomsResult{Entries: entries}, nil
}
