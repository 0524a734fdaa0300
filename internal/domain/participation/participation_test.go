package participation

import (
	"fmt"
	"reflect"
	"sort"
	"testing"
	"time"
)

// TestCompute_StreakEndingToday verifies the spec example: three consecutive
// days ending today yield streak=3.
func TestCompute_StreakEndingToday(t *testing.T) {
	dates := []string{"2024-03-10", "2024-03-11", "2024-03-12"}
	s := Compute(dates, "2024-03-12")
	if s.Streak != 3 {
		t.Errorf("expected streak=3, got %d", s.Streak)
	}
	if s.TotalCount != 3 {
		t.Errorf("expected totalCount=3, got %d", s.TotalCount)
	}
}

// TestCompute_TodayNotLogged verifies the walk starts from yesterday when
// today is absent, so an unlogged in-progress day keeps the streak alive.
func TestCompute_TodayNotLogged(t *testing.T) {
	dates := []string{"2024-03-10", "2024-03-11", "2024-03-12"}
	s := Compute(dates, "2024-03-13")
	if s.Streak != 3 {
		t.Errorf("expected streak=3 via yesterday fallback, got %d", s.Streak)
	}
}

// TestCompute_StreakBroken verifies a full-day gap zeroes the streak.
func TestCompute_StreakBroken(t *testing.T) {
	dates := []string{"2024-03-10", "2024-03-11", "2024-03-12"}
	s := Compute(dates, "2024-03-14")
	if s.Streak != 0 {
		t.Errorf("expected streak=0 after gap, got %d", s.Streak)
	}
	if s.TotalCount != 3 {
		t.Errorf("gap must not affect totalCount, got %d", s.TotalCount)
	}
}

// TestCompute_StreakCap verifies the 365-day hard cap on the backward walk.
func TestCompute_StreakCap(t *testing.T) {
	today := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)
	var dates []string
	for i := 0; i < 500; i++ {
		dates = append(dates, today.AddDate(0, 0, -i).Format(DateLayout))
	}
	s := Compute(dates, "2024-03-12")
	if s.Streak != MaxStreakDays {
		t.Errorf("expected streak capped at %d, got %d", MaxStreakDays, s.Streak)
	}
}

// TestCompute_GoalProgress verifies the 10-day window count and its cap.
func TestCompute_GoalProgress(t *testing.T) {
	today := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)

	// Every day for 30 days: window is saturated.
	var dates []string
	for i := 0; i < 30; i++ {
		dates = append(dates, today.AddDate(0, 0, -i).Format(DateLayout))
	}
	if s := Compute(dates, "2024-03-12"); s.GoalProgress != GoalWindowDays {
		t.Errorf("expected goalProgress capped at %d, got %d", GoalWindowDays, s.GoalProgress)
	}

	// Only two days inside the window, one just outside.
	sparse := []string{"2024-03-12", "2024-03-05", "2024-03-02"}
	if s := Compute(sparse, "2024-03-12"); s.GoalProgress != 2 {
		t.Errorf("expected goalProgress=2, got %d", s.GoalProgress)
	}
}

// TestCompute_Empty verifies the zero summary for no participation.
func TestCompute_Empty(t *testing.T) {
	s := Compute(nil, "2024-03-12")
	if s.Streak != 0 || s.TotalCount != 0 || s.GoalProgress != 0 {
		t.Errorf("expected zero summary, got %+v", s)
	}
}

// TestCompute_DuplicateDates verifies duplicates collapse into one day.
func TestCompute_DuplicateDates(t *testing.T) {
	dates := []string{"2024-03-12", "2024-03-12", "2024-03-11"}
	s := Compute(dates, "2024-03-12")
	if s.TotalCount != 2 {
		t.Errorf("expected totalCount=2 with duplicates collapsed, got %d", s.TotalCount)
	}
	if s.Streak != 2 {
		t.Errorf("expected streak=2, got %d", s.Streak)
	}
}

// TestCompute_MonthBoundary verifies the walk crosses month boundaries.
func TestCompute_MonthBoundary(t *testing.T) {
	dates := []string{"2024-03-01", "2024-02-29", "2024-02-28"}
	s := Compute(dates, "2024-03-01")
	if s.Streak != 3 {
		t.Errorf("expected streak=3 across leap-February, got %d", s.Streak)
	}
}

// TestCompute_Idempotent verifies identical inputs yield identical summaries.
func TestCompute_Idempotent(t *testing.T) {
	dates := []string{"2024-03-10", "2024-03-12", "2024-02-01"}
	first := Compute(dates, "2024-03-12")
	second := Compute(dates, "2024-03-12")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("summaries differ: %+v vs %+v", first, second)
	}
}

// TestUnionDates verifies the distinct union of two date sources.
func TestUnionDates(t *testing.T) {
	clock := []string{"2024-03-10", "2024-03-11"}
	logs := []string{"2024-03-11", "2024-03-12"}

	got := UnionDates(clock, logs)
	sort.Strings(got)
	want := []string{"2024-03-10", "2024-03-11", "2024-03-12"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

// TestCompute_LongHistoryStaysOrderIndependent shuffled input order must not
// change any figure.
func TestCompute_LongHistoryStaysOrderIndependent(t *testing.T) {
	forward := make([]string, 0, 20)
	backward := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		forward = append(forward, fmt.Sprintf("2024-02-%02d", i+1))
	}
	for i := len(forward) - 1; i >= 0; i-- {
		backward = append(backward, forward[i])
	}
	a := Compute(forward, "2024-02-20")
	b := Compute(backward, "2024-02-20")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("order dependence detected: %+v vs %+v", a, b)
	}
}
