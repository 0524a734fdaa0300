package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	domainAttendance "clubhouse/internal/domain/attendance"
	domainMember "clubhouse/internal/domain/member"
)

type mockAttendanceSummaryStore struct {
	responses []domainAttendance.Response
	err       error
}

func (m *mockAttendanceSummaryStore) ListByEventID(ctx context.Context, eventID string) ([]domainAttendance.Response, error) {
	return m.responses, m.err
}

type mockAttendanceSummaryMemberStore struct {
	names map[string]string
	err   error
	calls int
}

func (m *mockAttendanceSummaryMemberStore) ListNamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.names, nil
}

func respondedAt(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestQueryGetAttendanceSummary_PartitionsByStatus(t *testing.T) {
	attendanceStore := &mockAttendanceSummaryStore{
		responses: []domainAttendance.Response{
			{ID: "r1", MemberID: "u1", EventID: "e1", Status: domainAttendance.StatusAttend, RespondedAt: respondedAt("2026-08-01")},
			{ID: "r2", MemberID: "u2", EventID: "e1", Status: domainAttendance.StatusAbsent, Reason: "体調不良", RespondedAt: respondedAt("2026-08-02")},
			{ID: "r3", MemberID: "u3", EventID: "e1", Status: domainAttendance.StatusUndecided, RespondedAt: respondedAt("2026-08-03")},
		},
	}
	memberStore := &mockAttendanceSummaryMemberStore{
		names: map[string]string{"u1": "田中", "u2": "鈴木", "u3": "佐藤"},
	}

	result, err := QueryGetAttendanceSummary(context.Background(),
		GetAttendanceSummaryQuery{EventID: "e1"},
		GetAttendanceSummaryDeps{AttendanceStore: attendanceStore, MemberStore: memberStore})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Attend) != 1 || result.Attend[0].Name != "田中" {
		t.Errorf("attend bucket = %+v, want 田中", result.Attend)
	}
	if len(result.Absent) != 1 || result.Absent[0].Name != "鈴木" || result.Absent[0].Reason != "体調不良" {
		t.Errorf("absent bucket = %+v, want 鈴木 with reason", result.Absent)
	}
	if len(result.Undecided) != 1 || result.Undecided[0].Name != "佐藤" {
		t.Errorf("undecided bucket = %+v, want 佐藤", result.Undecided)
	}
}

func TestQueryGetAttendanceSummary_BatchesNameLookups(t *testing.T) {
	attendanceStore := &mockAttendanceSummaryStore{
		responses: []domainAttendance.Response{
			{ID: "r1", MemberID: "u1", EventID: "e1", Status: domainAttendance.StatusAttend},
			{ID: "r2", MemberID: "u2", EventID: "e1", Status: domainAttendance.StatusAttend},
			{ID: "r3", MemberID: "u3", EventID: "e1", Status: domainAttendance.StatusAttend},
		},
	}
	memberStore := &mockAttendanceSummaryMemberStore{
		names: map[string]string{"u1": "A", "u2": "B", "u3": "C"},
	}

	_, err := QueryGetAttendanceSummary(context.Background(),
		GetAttendanceSummaryQuery{EventID: "e1"},
		GetAttendanceSummaryDeps{AttendanceStore: attendanceStore, MemberStore: memberStore})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if memberStore.calls != 1 {
		t.Errorf("name lookup calls = %d, want 1", memberStore.calls)
	}
}

func TestQueryGetAttendanceSummary_MissingMemberGetsPlaceholder(t *testing.T) {
	attendanceStore := &mockAttendanceSummaryStore{
		responses: []domainAttendance.Response{
			{ID: "r1", MemberID: "ghost", EventID: "e1", Status: domainAttendance.StatusAttend},
		},
	}
	memberStore := &mockAttendanceSummaryMemberStore{names: map[string]string{}}

	result, err := QueryGetAttendanceSummary(context.Background(),
		GetAttendanceSummaryQuery{EventID: "e1"},
		GetAttendanceSummaryDeps{AttendanceStore: attendanceStore, MemberStore: memberStore})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Attend) != 1 {
		t.Fatalf("attend bucket size = %d, want 1", len(result.Attend))
	}
	if result.Attend[0].Name != domainMember.NamePlaceholder {
		t.Errorf("name = %q, want placeholder %q", result.Attend[0].Name, domainMember.NamePlaceholder)
	}
}

func TestQueryGetAttendanceSummary_EmptyEventGivesEmptyBuckets(t *testing.T) {
	result, err := QueryGetAttendanceSummary(context.Background(),
		GetAttendanceSummaryQuery{EventID: "e1"},
		GetAttendanceSummaryDeps{
			AttendanceStore: &mockAttendanceSummaryStore{},
			MemberStore:     &mockAttendanceSummaryMemberStore{names: map[string]string{}},
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Attend) != 0 || len(result.Absent) != 0 || len(result.Undecided) != 0 {
		t.Errorf("expected empty buckets, got %+v", result)
	}
}

func TestQueryGetAttendanceSummary_StoreFailureIsReported(t *testing.T) {
	attendanceStore := &mockAttendanceSummaryStore{err: errors.New("db gone")}
	_, err := QueryGetAttendanceSummary(context.Background(),
		GetAttendanceSummaryQuery{EventID: "e1"},
		GetAttendanceSummaryDeps{
			AttendanceStore: attendanceStore,
			MemberStore:     &mockAttendanceSummaryMemberStore{},
		})
	if err == nil {
		t.Fatal("expected error when the response lookup fails")
	}
}

func TestQueryGetAttendanceSummary_NameFailureIsReported(t *testing.T) {
	attendanceStore := &mockAttendanceSummaryStore{
		responses: []domainAttendance.Response{
			{ID: "r1", MemberID: "u1", EventID: "e1", Status: domainAttendance.StatusAttend},
		},
	}
	memberStore := &mockAttendanceSummaryMemberStore{err: errors.New("db gone")}
	_, err := QueryGetAttendanceSummary(context.Background(),
		GetAttendanceSummaryQuery{EventID: "e1"},
		GetAttendanceSummaryDeps{AttendanceStore: attendanceStore, MemberStore: memberStore})
	if err == nil {
		t.Fatal("expected error when the name lookup fails")
	}
}

func TestQueryGetAttendanceSummary_RequiresEventID(t *testing.T) {
	_, err := QueryGetAttendanceSummary(context.Background(),
		GetAttendanceSummaryQuery{},
		GetAttendanceSummaryDeps{
			AttendanceStore: &mockAttendanceSummaryStore{},
			MemberStore:     &mockAttendanceSummaryMemberStore{},
		})
	if err == nil {
		t.Fatal("expected error for empty event id")
	}
}
