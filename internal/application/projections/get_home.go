package projections

import (
	"context"
	"fmt"
	"time"

	domainParticipation "clubhouse/internal/domain/participation"
	domainSchedule "clubhouse/internal/domain/schedule"
)

// GetHomeQuery carries input for the home dashboard projection.
type GetHomeQuery struct {
	MemberID string
	Now      time.Time // optional: if zero, time.Now() is used
}

// GetHomeResult carries the output of the home dashboard projection.
type GetHomeResult struct {
	NextEvent     *domainSchedule.NextEventResult
	Participation domainParticipation.Summary
	UnreadNotices int
}

// GetHomeDeps holds dependencies for the home dashboard projection.
type GetHomeDeps struct {
	ScheduleStore NextEventScheduleStore
	ClockStore    ParticipationClockStore
	PracticeStore ParticipationPracticeStore
	NoticeStore   NoticeFeedStore
}

// QueryGetHome assembles the home screen in one call: the nearest
// upcoming event, the member's participation summary and their unread
// notice count.
// PRE: query.MemberID is non-empty
// POST: A failure in any underlying lookup fails the whole query
func QueryGetHome(ctx context.Context, query GetHomeQuery, deps GetHomeDeps) (GetHomeResult, error) {
	if query.MemberID == "" {
		return GetHomeResult{}, fmt.Errorf("member id is required")
	}
	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}

	nextEvent, err := QueryGetNextEvent(ctx, GetNextEventQuery{Now: now}, GetNextEventDeps{
		ScheduleStore: deps.ScheduleStore,
	})
	if err != nil {
		return GetHomeResult{}, err
	}

	participation, err := QueryGetParticipationSummary(ctx,
		GetParticipationSummaryQuery{
			MemberID: query.MemberID,
			Today:    now.Format(domainParticipation.DateLayout),
		},
		GetParticipationSummaryDeps{
			ClockStore:    deps.ClockStore,
			PracticeStore: deps.PracticeStore,
		})
	if err != nil {
		return GetHomeResult{}, err
	}

	feed, err := QueryGetNoticeFeed(ctx, GetNoticeFeedQuery{MemberID: query.MemberID}, GetNoticeFeedDeps{
		NoticeStore: deps.NoticeStore,
	})
	if err != nil {
		return GetHomeResult{}, err
	}

	return GetHomeResult{
		NextEvent:     nextEvent.Next,
		Participation: participation.Summary,
		UnreadNotices: feed.Unread,
	}, nil
}
