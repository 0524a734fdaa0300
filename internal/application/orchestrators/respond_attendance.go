package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clubhouse/internal/domain/attendance"
	"clubhouse/internal/domain/schedule"
)

// AttendanceStoreForRespond defines the store interface needed by RespondAttendance.
type AttendanceStoreForRespond interface {
	GetByMemberAndEvent(ctx context.Context, memberID string, eventID string) (attendance.Response, error)
	Save(ctx context.Context, r attendance.Response) error
}

// ScheduleStoreForRespond defines the schedule store interface needed by RespondAttendance.
type ScheduleStoreForRespond interface {
	GetByID(ctx context.Context, id string) (schedule.Event, error)
}

// RespondAttendanceInput carries input for the respond attendance orchestrator.
type RespondAttendanceInput struct {
	MemberID string
	EventID  string
	Status   string
	Reason   string
}

// RespondAttendanceDeps holds dependencies for RespondAttendance.
type RespondAttendanceDeps struct {
	AttendanceStore AttendanceStoreForRespond
	ScheduleStore   ScheduleStoreForRespond
	GenerateID      func() string
	Now             func() time.Time
}

// ErrEventNotFound is returned when the target event does not exist.
var ErrEventNotFound = errors.New("event not found")

// ExecuteRespondAttendance records or replaces a member's answer to an event.
// Answering again overwrites the earlier answer; a member holds at most
// one answer per event.
// PRE: MemberID and EventID are non-empty, Status is a valid status
// POST: The (member, event) pair holds exactly the given status
func ExecuteRespondAttendance(ctx context.Context, input RespondAttendanceInput, deps RespondAttendanceDeps) (attendance.Response, error) {
	if !attendance.ValidStatus(input.Status) {
		return attendance.Response{}, attendance.ErrInvalidStatus
	}

	if _, err := deps.ScheduleStore.GetByID(ctx, input.EventID); err != nil {
		return attendance.Response{}, ErrEventNotFound
	}

	response := attendance.Response{
		MemberID:    input.MemberID,
		EventID:     input.EventID,
		Status:      input.Status,
		Reason:      input.Reason,
		RespondedAt: deps.Now(),
	}

	// Keep the stored ID when replacing an earlier answer.
	if existing, err := deps.AttendanceStore.GetByMemberAndEvent(ctx, input.MemberID, input.EventID); err == nil {
		response.ID = existing.ID
	} else {
		response.ID = deps.GenerateID()
	}

	if err := response.Validate(); err != nil {
		return attendance.Response{}, err
	}
	if err := deps.AttendanceStore.Save(ctx, response); err != nil {
		return attendance.Response{}, err
	}

	slog.Info("attendance_event", "event", "response_saved",
		"member_id", input.MemberID, "event_id", input.EventID, "status", input.Status)

	return response, nil
}
