package projections

import (
	"context"
	"fmt"
	"time"

	domainSchedule "clubhouse/internal/domain/schedule"
)

// nextEventHorizonMonths bounds how far ahead the lookup scans. A club
// calendar is planned at most a season ahead, so a year is plenty.
const nextEventHorizonMonths = 12

// NextEventScheduleStore defines the schedule store interface needed by the next event projection.
type NextEventScheduleStore interface {
	ListForMonth(ctx context.Context, month time.Month, year int) ([]domainSchedule.Event, error)
}

// GetNextEventQuery carries input for the next event projection.
type GetNextEventQuery struct {
	Now time.Time // optional: if zero, time.Now() is used
}

// GetNextEventResult carries the output of the next event projection.
// Next is nil when no upcoming event exists.
type GetNextEventResult struct {
	Next *domainSchedule.NextEventResult
}

// GetNextEventDeps holds dependencies for the next event projection.
type GetNextEventDeps struct {
	ScheduleStore NextEventScheduleStore
}

// QueryGetNextEvent finds the nearest upcoming event by scanning month
// by month from the reference date. Events without a pinned month or
// year follow the month being viewed, so each month's listing resolves
// them against that month before comparison.
// POST: Returns the nearest upcoming event within the horizon, or nil
func QueryGetNextEvent(ctx context.Context, query GetNextEventQuery, deps GetNextEventDeps) (GetNextEventResult, error) {
	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}
	year, month, day := now.Date()

	for i := 0; i < nextEventHorizonMonths; i++ {
		ref := time.Date(year, month, 1, 0, 0, 0, 0, now.Location()).AddDate(0, i, 0)
		if i == 0 {
			ref = now
		}

		events, err := deps.ScheduleStore.ListForMonth(ctx, ref.Month(), ref.Year())
		if err != nil {
			return GetNextEventResult{}, err
		}
		next := domainSchedule.NextEvent(events, ref)
		if next == nil {
			continue
		}
		// In later months the reference day is the 1st, so a day-1 hit
		// reads as today; relabel unless it really is today's date.
		if next.IsToday && !(next.Year == year && next.Month == month && next.Event.Day == day) {
			next.IsToday = false
			next.Label = fmt.Sprintf("%d月%d日", int(next.Month), next.Event.Day)
		}
		return GetNextEventResult{Next: next}, nil
	}
	return GetNextEventResult{}, nil
}
