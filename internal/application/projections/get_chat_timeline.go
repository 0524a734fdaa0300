package projections

import (
	"context"
	"fmt"

	chatStore "clubhouse/internal/adapters/storage/chat"
	domainChat "clubhouse/internal/domain/chat"
	domainMember "clubhouse/internal/domain/member"
)

// defaultTimelineLimit is the page size used when the caller does not give one.
const defaultTimelineLimit = 50

// ChatTimelineStore defines the chat store interface needed by the timeline projection.
type ChatTimelineStore interface {
	ListMessagesByRoomID(ctx context.Context, roomID string, filter chatStore.ListFilter) ([]domainChat.Message, error)
	CountReadsByMessageIDs(ctx context.Context, messageIDs []string) (map[string]int, error)
}

// ChatTimelineMemberStore defines the member store interface needed by the timeline projection.
type ChatTimelineMemberStore interface {
	ListNamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

// GetChatTimelineQuery carries input for the timeline projection.
type GetChatTimelineQuery struct {
	RoomID   string
	ViewerID string // member viewing the timeline; marks their own messages
	Limit    int    // optional: 0 means defaultTimelineLimit
	Offset   int
}

// TimelineEntry is one message prepared for display.
type TimelineEntry struct {
	Message    domainChat.Message
	SenderName string
	ReadCount  int
	Mine       bool
}

// GetChatTimelineResult carries the output of the timeline projection.
type GetChatTimelineResult struct {
	Entries []TimelineEntry
}

// GetChatTimelineDeps holds dependencies for the timeline projection.
type GetChatTimelineDeps struct {
	ChatStore   ChatTimelineStore
	MemberStore ChatTimelineMemberStore
}

// QueryGetChatTimeline loads a page of room messages with sender names
// and read counts resolved in one batched lookup each.
// PRE: query.RoomID is non-empty
// POST: Entries preserve store order (oldest first)
func QueryGetChatTimeline(ctx context.Context, query GetChatTimelineQuery, deps GetChatTimelineDeps) (GetChatTimelineResult, error) {
	if query.RoomID == "" {
		return GetChatTimelineResult{}, fmt.Errorf("room id is required")
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultTimelineLimit
	}

	messages, err := deps.ChatStore.ListMessagesByRoomID(ctx, query.RoomID, chatStore.ListFilter{
		Limit:  limit,
		Offset: query.Offset,
	})
	if err != nil {
		return GetChatTimelineResult{}, fmt.Errorf("failed to load messages: %w", err)
	}

	senderIDs := make([]string, 0, len(messages))
	messageIDs := make([]string, 0, len(messages))
	seen := make(map[string]bool, len(messages))
	for _, m := range messages {
		messageIDs = append(messageIDs, m.ID)
		if !seen[m.SenderID] {
			seen[m.SenderID] = true
			senderIDs = append(senderIDs, m.SenderID)
		}
	}

	names, err := deps.MemberStore.ListNamesByIDs(ctx, senderIDs)
	if err != nil {
		return GetChatTimelineResult{}, fmt.Errorf("failed to resolve sender names: %w", err)
	}
	readCounts, err := deps.ChatStore.CountReadsByMessageIDs(ctx, messageIDs)
	if err != nil {
		return GetChatTimelineResult{}, fmt.Errorf("failed to count reads: %w", err)
	}

	entries := make([]TimelineEntry, 0, len(messages))
	for _, m := range messages {
		name, ok := names[m.SenderID]
		if !ok || name == "" {
			name = domainMember.NamePlaceholder
		}
		entries = append(entries, TimelineEntry{
			Message:    m,
			SenderName: name,
			ReadCount:  readCounts[m.ID],
			Mine:       query.ViewerID != "" && m.SenderID == query.ViewerID,
		})
	}
	return GetChatTimelineResult{Entries: entries}, nil
}
