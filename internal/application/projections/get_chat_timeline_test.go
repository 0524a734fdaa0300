package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	chatStore "clubhouse/internal/adapters/storage/chat"
	domainChat "clubhouse/internal/domain/chat"
	domainMember "clubhouse/internal/domain/member"
)

type mockChatTimelineStore struct {
	messages   []domainChat.Message
	reads      map[string]int
	err        error
	readsCalls int
}

func (m *mockChatTimelineStore) ListMessagesByRoomID(ctx context.Context, roomID string, filter chatStore.ListFilter) ([]domainChat.Message, error) {
	return m.messages, m.err
}

func (m *mockChatTimelineStore) CountReadsByMessageIDs(ctx context.Context, messageIDs []string) (map[string]int, error) {
	m.readsCalls++
	return m.reads, nil
}

type mockChatTimelineMemberStore struct {
	names map[string]string
	calls int
}

func (m *mockChatTimelineMemberStore) ListNamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	m.calls++
	return m.names, nil
}

func chatTimelineFixture() *mockChatTimelineStore {
	created := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	return &mockChatTimelineStore{
		messages: []domainChat.Message{
			{ID: "m1", RoomID: "room1", SenderID: "u1", Content: "今日の練習は16時から", CreatedAt: created},
			{ID: "m2", RoomID: "room1", SenderID: "u2", Content: "了解です", CreatedAt: created.Add(time.Minute)},
		},
		reads: map[string]int{"m1": 5, "m2": 2},
	}
}

func TestQueryGetChatTimeline_ResolvesNamesAndReads(t *testing.T) {
	store := chatTimelineFixture()
	memberStore := &mockChatTimelineMemberStore{names: map[string]string{"u1": "コーチ", "u2": "田中"}}

	result, err := QueryGetChatTimeline(context.Background(),
		GetChatTimelineQuery{RoomID: "room1", ViewerID: "u2"},
		GetChatTimelineDeps{ChatStore: store, MemberStore: memberStore})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(result.Entries))
	}
	first := result.Entries[0]
	if first.SenderName != "コーチ" || first.ReadCount != 5 || first.Mine {
		t.Errorf("first entry = %+v, want コーチ/5/not mine", first)
	}
	second := result.Entries[1]
	if second.SenderName != "田中" || second.ReadCount != 2 || !second.Mine {
		t.Errorf("second entry = %+v, want 田中/2/mine", second)
	}
}

func TestQueryGetChatTimeline_BatchesLookups(t *testing.T) {
	store := chatTimelineFixture()
	memberStore := &mockChatTimelineMemberStore{names: map[string]string{"u1": "A", "u2": "B"}}

	_, err := QueryGetChatTimeline(context.Background(),
		GetChatTimelineQuery{RoomID: "room1"},
		GetChatTimelineDeps{ChatStore: store, MemberStore: memberStore})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if memberStore.calls != 1 {
		t.Errorf("name lookup calls = %d, want 1", memberStore.calls)
	}
	if store.readsCalls != 1 {
		t.Errorf("read count calls = %d, want 1", store.readsCalls)
	}
}

func TestQueryGetChatTimeline_UnknownSenderGetsPlaceholder(t *testing.T) {
	store := chatTimelineFixture()
	memberStore := &mockChatTimelineMemberStore{names: map[string]string{}}

	result, err := QueryGetChatTimeline(context.Background(),
		GetChatTimelineQuery{RoomID: "room1"},
		GetChatTimelineDeps{ChatStore: store, MemberStore: memberStore})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Entries[0].SenderName != domainMember.NamePlaceholder {
		t.Errorf("sender name = %q, want placeholder", result.Entries[0].SenderName)
	}
}

func TestQueryGetChatTimeline_StoreFailureIsReported(t *testing.T) {
	store := &mockChatTimelineStore{err: errors.New("db gone")}
	_, err := QueryGetChatTimeline(context.Background(),
		GetChatTimelineQuery{RoomID: "room1"},
		GetChatTimelineDeps{ChatStore: store, MemberStore: &mockChatTimelineMemberStore{}})
	if err == nil {
		t.Fatal("expected error when the message lookup fails")
	}
}

func TestQueryGetChatTimeline_RequiresRoomID(t *testing.T) {
	_, err := QueryGetChatTimeline(context.Background(),
		GetChatTimelineQuery{},
		GetChatTimelineDeps{ChatStore: &mockChatTimelineStore{}, MemberStore: &mockChatTimelineMemberStore{}})
	if err == nil {
		t.Fatal("expected error for empty room id")
	}
}
