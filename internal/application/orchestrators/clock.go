package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clubhouse/internal/domain/clock"
)

// ClockStoreForStamp defines the store interface needed by the clock orchestrators.
type ClockStoreForStamp interface {
	GetByMemberAndDate(ctx context.Context, memberID string, date string) (clock.Record, error)
	Save(ctx context.Context, r clock.Record) error
}

// ClockInput carries input for the clock orchestrators.
type ClockInput struct {
	MemberID string
}

// ClockDeps holds dependencies for the clock orchestrators.
type ClockDeps struct {
	ClockStore ClockStoreForStamp
	GenerateID func() string
	Now        func() time.Time
}

var (
	ErrAlreadyClockedIn  = errors.New("already clocked in today")
	ErrNotClockedIn      = errors.New("not clocked in today")
	ErrAlreadyClockedOut = errors.New("already clocked out today")
)

// ExecuteClockIn stamps the member's arrival for today.
// The first stamp of a day creates the day's record; pressing again
// after arriving is rejected rather than moving the stamp.
// PRE: MemberID is non-empty
// POST: Today's record exists with ClockIn set
func ExecuteClockIn(ctx context.Context, input ClockInput, deps ClockDeps) (clock.Record, error) {
	if input.MemberID == "" {
		return clock.Record{}, clock.ErrEmptyMemberID
	}

	now := deps.Now()
	today := now.Format(clock.DateLayout)

	record, err := deps.ClockStore.GetByMemberAndDate(ctx, input.MemberID, today)
	if err != nil {
		record = clock.Record{
			ID:       deps.GenerateID(),
			MemberID: input.MemberID,
			Date:     today,
		}
	}
	if record.IsClockedIn() {
		return clock.Record{}, ErrAlreadyClockedIn
	}

	record.ClockIn = now
	if err := record.Validate(); err != nil {
		return clock.Record{}, err
	}
	if err := deps.ClockStore.Save(ctx, record); err != nil {
		return clock.Record{}, err
	}

	slog.Info("clock_event", "event", "clock_in", "member_id", input.MemberID, "date", today)
	return record, nil
}

// ExecuteClockOut stamps the member's departure for today.
// PRE: MemberID is non-empty; today's record has ClockIn set
// POST: Today's record has ClockOut set
func ExecuteClockOut(ctx context.Context, input ClockInput, deps ClockDeps) (clock.Record, error) {
	if input.MemberID == "" {
		return clock.Record{}, clock.ErrEmptyMemberID
	}

	now := deps.Now()
	today := now.Format(clock.DateLayout)

	record, err := deps.ClockStore.GetByMemberAndDate(ctx, input.MemberID, today)
	if err != nil || !record.IsClockedIn() {
		return clock.Record{}, ErrNotClockedIn
	}
	if record.IsClockedOut() {
		return clock.Record{}, ErrAlreadyClockedOut
	}

	record.ClockOut = now
	if err := deps.ClockStore.Save(ctx, record); err != nil {
		return clock.Record{}, err
	}

	slog.Info("clock_event", "event", "clock_out", "member_id", input.MemberID, "date", today)
	return record, nil
}
