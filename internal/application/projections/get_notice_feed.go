package projections

import (
	"context"
	"fmt"

	noticeStore "clubhouse/internal/adapters/storage/notice"
	domainNotice "clubhouse/internal/domain/notice"
)

// NoticeFeedStore defines the notice store interface needed by the notice feed projection.
type NoticeFeedStore interface {
	List(ctx context.Context, filter noticeStore.ListFilter) ([]domainNotice.Notice, error)
	ListReadNoticeIDs(ctx context.Context, memberID string) ([]string, error)
}

// GetNoticeFeedQuery carries input for the notice feed projection.
type GetNoticeFeedQuery struct {
	MemberID string // viewer; read flags are computed for them
	Limit    int    // optional: 0 means defaultTimelineLimit
	Offset   int
}

// NoticeFeedEntry is one notice with the viewer's read flag.
type NoticeFeedEntry struct {
	Notice domainNotice.Notice
	Read   bool
}

// GetNoticeFeedResult carries the output of the notice feed projection.
type GetNoticeFeedResult struct {
	Entries []NoticeFeedEntry
	Unread  int
}

// GetNoticeFeedDeps holds dependencies for the notice feed projection.
type GetNoticeFeedDeps struct {
	NoticeStore NoticeFeedStore
}

// QueryGetNoticeFeed lists notices newest first with per-viewer read flags.
// PRE: query.MemberID is non-empty
// POST: Unread equals the number of entries with Read == false
func QueryGetNoticeFeed(ctx context.Context, query GetNoticeFeedQuery, deps GetNoticeFeedDeps) (GetNoticeFeedResult, error) {
	if query.MemberID == "" {
		return GetNoticeFeedResult{}, fmt.Errorf("member id is required")
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultTimelineLimit
	}

	notices, err := deps.NoticeStore.List(ctx, noticeStore.ListFilter{Limit: limit, Offset: query.Offset})
	if err != nil {
		return GetNoticeFeedResult{}, fmt.Errorf("failed to load notices: %w", err)
	}
	readIDs, err := deps.NoticeStore.ListReadNoticeIDs(ctx, query.MemberID)
	if err != nil {
		return GetNoticeFeedResult{}, fmt.Errorf("failed to load read marks: %w", err)
	}
	read := make(map[string]bool, len(readIDs))
	for _, id := range readIDs {
		read[id] = true
	}

	result := GetNoticeFeedResult{Entries: make([]NoticeFeedEntry, 0, len(notices))}
	for _, n := range notices {
		entry := NoticeFeedEntry{Notice: n, Read: read[n.ID]}
		if !entry.Read {
			result.Unread++
		}
		result.Entries = append(result.Entries, entry)
	}
	return result, nil
}
