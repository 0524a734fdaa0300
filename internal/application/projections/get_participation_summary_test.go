package projections

import (
	"context"
	"errors"
	"testing"
)

type mockDateStore struct {
	dates []string
	err   error
}

func (m *mockDateStore) ListDatesByMemberID(ctx context.Context, memberID string) ([]string, error) {
	return m.dates, m.err
}

func TestQueryGetParticipationSummary_UnionsSources(t *testing.T) {
	clockStore := &mockDateStore{dates: []string{"2026-08-27", "2026-08-28"}}
	practiceStore := &mockDateStore{dates: []string{"2026-08-28", "2026-08-29"}}

	result, err := QueryGetParticipationSummary(context.Background(),
		GetParticipationSummaryQuery{MemberID: "u1", Today: "2026-08-29"},
		GetParticipationSummaryDeps{ClockStore: clockStore, PracticeStore: practiceStore})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Summary.Streak != 3 {
		t.Errorf("streak = %d, want 3", result.Summary.Streak)
	}
	// 2026-08-28 appears in both sources but counts once.
	if result.Summary.TotalCount != 3 {
		t.Errorf("total = %d, want 3", result.Summary.TotalCount)
	}
	if result.Summary.GoalProgress != 3 {
		t.Errorf("goal progress = %d, want 3", result.Summary.GoalProgress)
	}
}

func TestQueryGetParticipationSummary_NoRecords(t *testing.T) {
	result, err := QueryGetParticipationSummary(context.Background(),
		GetParticipationSummaryQuery{MemberID: "u1", Today: "2026-08-29"},
		GetParticipationSummaryDeps{ClockStore: &mockDateStore{}, PracticeStore: &mockDateStore{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary.Streak != 0 || result.Summary.TotalCount != 0 || result.Summary.GoalProgress != 0 {
		t.Errorf("expected zero summary, got %+v", result.Summary)
	}
}

func TestQueryGetParticipationSummary_ClockFailureIsReported(t *testing.T) {
	_, err := QueryGetParticipationSummary(context.Background(),
		GetParticipationSummaryQuery{MemberID: "u1", Today: "2026-08-29"},
		GetParticipationSummaryDeps{
			ClockStore:    &mockDateStore{err: errors.New("db gone")},
			PracticeStore: &mockDateStore{},
		})
	if err == nil {
		t.Fatal("expected error when the clock lookup fails")
	}
}

func TestQueryGetParticipationSummary_RequiresMemberID(t *testing.T) {
	_, err := QueryGetParticipationSummary(context.Background(),
		GetParticipationSummaryQuery{Today: "2026-08-29"},
		GetParticipationSummaryDeps{ClockStore: &mockDateStore{}, PracticeStore: &mockDateStore{}})
	if err == nil {
		t.Fatal("expected error for empty member id")
	}
}
