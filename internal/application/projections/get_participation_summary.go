package projections

import (
	"context"
	"fmt"
	"time"

	domainParticipation "clubhouse/internal/domain/participation"
)

// ParticipationClockStore defines the clock store interface needed by the participation projection.
type ParticipationClockStore interface {
	ListDatesByMemberID(ctx context.Context, memberID string) ([]string, error)
}

// ParticipationPracticeStore defines the practice store interface needed by the participation projection.
type ParticipationPracticeStore interface {
	ListDatesByMemberID(ctx context.Context, memberID string) ([]string, error)
}

// GetParticipationSummaryQuery carries input for the participation projection.
type GetParticipationSummaryQuery struct {
	MemberID string
	Today    string // optional YYYY-MM-DD: if empty, derived from time.Now()
}

// GetParticipationSummaryResult carries the output of the participation projection.
type GetParticipationSummaryResult struct {
	Summary domainParticipation.Summary
}

// GetParticipationSummaryDeps holds dependencies for the participation projection.
type GetParticipationSummaryDeps struct {
	ClockStore    ParticipationClockStore
	PracticeStore ParticipationPracticeStore
}

// QueryGetParticipationSummary computes streak, stamp count and recent
// goal progress from the union of clock-in days and practice log days.
// A day counts once no matter how many records landed on it.
// PRE: query.MemberID is non-empty
// POST: Returns the computed summary; all counters are >= 0
func QueryGetParticipationSummary(ctx context.Context, query GetParticipationSummaryQuery, deps GetParticipationSummaryDeps) (GetParticipationSummaryResult, error) {
	if query.MemberID == "" {
		return GetParticipationSummaryResult{}, fmt.Errorf("member id is required")
	}

	today := query.Today
	if today == "" {
		today = time.Now().Format(domainParticipation.DateLayout)
	}

	clockDates, err := deps.ClockStore.ListDatesByMemberID(ctx, query.MemberID)
	if err != nil {
		return GetParticipationSummaryResult{}, fmt.Errorf("failed to load clock dates: %w", err)
	}
	practiceDates, err := deps.PracticeStore.ListDatesByMemberID(ctx, query.MemberID)
	if err != nil {
		return GetParticipationSummaryResult{}, fmt.Errorf("failed to load practice dates: %w", err)
	}

	dates := domainParticipation.UnionDates(clockDates, practiceDates)
	return GetParticipationSummaryResult{
		Summary: domainParticipation.Compute(dates, today),
	}, nil
}
