package projections

import (
	"context"
	"fmt"

	domainAttendance "clubhouse/internal/domain/attendance"
	domainMember "clubhouse/internal/domain/member"
)

// AttendanceSummaryStore defines the attendance store interface needed by the attendance summary projection.
type AttendanceSummaryStore interface {
	ListByEventID(ctx context.Context, eventID string) ([]domainAttendance.Response, error)
}

// AttendanceSummaryMemberStore defines the member store interface needed by the attendance summary projection.
type AttendanceSummaryMemberStore interface {
	ListNamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

// GetAttendanceSummaryQuery carries input for the attendance summary projection.
type GetAttendanceSummaryQuery struct {
	EventID string
}

// AttendanceEntry is one member's answer in a summary bucket.
type AttendanceEntry struct {
	MemberID string
	Name     string
	Reason   string
}

// GetAttendanceSummaryResult carries the output of the attendance summary projection.
type GetAttendanceSummaryResult struct {
	Attend    []AttendanceEntry
	Absent    []AttendanceEntry
	Undecided []AttendanceEntry
}

// GetAttendanceSummaryDeps holds dependencies for the attendance summary projection.
type GetAttendanceSummaryDeps struct {
	AttendanceStore AttendanceSummaryStore
	MemberStore     AttendanceSummaryMemberStore
}

// QueryGetAttendanceSummary groups an event's responses by status and
// resolves member names with one batched lookup. A member whose record
// is gone shows up with a placeholder name rather than being dropped.
// PRE: query.EventID is non-empty
// POST: Every response lands in exactly one bucket; buckets preserve
// store order. A store failure returns an error, never silently empty buckets.
func QueryGetAttendanceSummary(ctx context.Context, query GetAttendanceSummaryQuery, deps GetAttendanceSummaryDeps) (GetAttendanceSummaryResult, error) {
	if query.EventID == "" {
		return GetAttendanceSummaryResult{}, fmt.Errorf("event id is required")
	}

	responses, err := deps.AttendanceStore.ListByEventID(ctx, query.EventID)
	if err != nil {
		return GetAttendanceSummaryResult{}, fmt.Errorf("failed to load responses: %w", err)
	}

	memberIDs := make([]string, 0, len(responses))
	for _, r := range responses {
		memberIDs = append(memberIDs, r.MemberID)
	}
	names, err := deps.MemberStore.ListNamesByIDs(ctx, memberIDs)
	if err != nil {
		return GetAttendanceSummaryResult{}, fmt.Errorf("failed to resolve member names: %w", err)
	}

	var result GetAttendanceSummaryResult
	for _, r := range responses {
		name, ok := names[r.MemberID]
		if !ok || name == "" {
			name = domainMember.NamePlaceholder
		}
		entry := AttendanceEntry{MemberID: r.MemberID, Name: name, Reason: r.Reason}
		switch r.Status {
		case domainAttendance.StatusAttend:
			result.Attend = append(result.Attend, entry)
		case domainAttendance.StatusAbsent:
			result.Absent = append(result.Absent, entry)
		default:
			result.Undecided = append(result.Undecided, entry)
		}
	}
	return result, nil
}
