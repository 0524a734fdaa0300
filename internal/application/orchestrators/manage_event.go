package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clubhouse/internal/domain/schedule"
)

// ScheduleStoreForManage defines the store interface needed by the event orchestrators.
type ScheduleStoreForManage interface {
	GetByID(ctx context.Context, id string) (schedule.Event, error)
	Save(ctx context.Context, e schedule.Event) error
	Delete(ctx context.Context, id string) error
}

// CreateEventInput carries input for the create event orchestrator.
type CreateEventInput struct {
	Title     string
	TimeRange string
	Location  string
	Type      string
	Items     []string
	Day       int
	Month     time.Month // 0 pins the event to whatever month is being viewed
	Year      int        // 0 pins the event to whatever year is being viewed
	CreatedBy string
}

// UpdateEventInput carries input for the update event orchestrator.
type UpdateEventInput struct {
	EventID   string
	Title     string
	TimeRange string
	Location  string
	Type      string
	Items     []string
	Day       int
	Month     time.Month
	Year      int
}

// ManageEventDeps holds dependencies for the event orchestrators.
type ManageEventDeps struct {
	ScheduleStore ScheduleStoreForManage
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteCreateEvent creates a schedule event.
// PRE: input passes event validation
// POST: Event is persisted
func ExecuteCreateEvent(ctx context.Context, input CreateEventInput, deps ManageEventDeps) (schedule.Event, error) {
	event := schedule.Event{
		ID:        deps.GenerateID(),
		Title:     input.Title,
		TimeRange: input.TimeRange,
		Location:  input.Location,
		Type:      input.Type,
		Items:     input.Items,
		Day:       input.Day,
		Month:     input.Month,
		Year:      input.Year,
		CreatedBy: input.CreatedBy,
		CreatedAt: deps.Now(),
	}
	if err := event.Validate(); err != nil {
		return schedule.Event{}, err
	}
	if err := deps.ScheduleStore.Save(ctx, event); err != nil {
		return schedule.Event{}, err
	}

	slog.Info("schedule_event", "event", "created", "event_id", event.ID, "title", event.Title, "day", event.Day)
	return event, nil
}

// ExecuteUpdateEvent updates an existing schedule event.
// PRE: EventID refers to an existing event; input passes event validation
// POST: Event is persisted with the new fields; creator and creation time are kept
func ExecuteUpdateEvent(ctx context.Context, input UpdateEventInput, deps ManageEventDeps) (schedule.Event, error) {
	if input.EventID == "" {
		return schedule.Event{}, errors.New("event id is required")
	}

	event, err := deps.ScheduleStore.GetByID(ctx, input.EventID)
	if err != nil {
		return schedule.Event{}, ErrEventNotFound
	}

	event.Title = input.Title
	event.TimeRange = input.TimeRange
	event.Location = input.Location
	event.Type = input.Type
	event.Items = input.Items
	event.Day = input.Day
	event.Month = input.Month
	event.Year = input.Year

	if err := event.Validate(); err != nil {
		return schedule.Event{}, err
	}
	if err := deps.ScheduleStore.Save(ctx, event); err != nil {
		return schedule.Event{}, err
	}

	slog.Info("schedule_event", "event", "updated", "event_id", event.ID)
	return event, nil
}

// ExecuteDeleteEvent removes a schedule event. Attendance responses for
// the event go with it.
// PRE: EventID refers to an existing event
// POST: Event is removed
func ExecuteDeleteEvent(ctx context.Context, eventID string, deps ManageEventDeps) error {
	if eventID == "" {
		return errors.New("event id is required")
	}
	if _, err := deps.ScheduleStore.GetByID(ctx, eventID); err != nil {
		return ErrEventNotFound
	}
	if err := deps.ScheduleStore.Delete(ctx, eventID); err != nil {
		return err
	}

	slog.Info("schedule_event", "event", "deleted", "event_id", eventID)
	return nil
}
