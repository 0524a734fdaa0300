package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"clubhouse/internal/adapters/http/middleware"
	"clubhouse/internal/application/orchestrators"
	"clubhouse/internal/application/projections"
	"clubhouse/internal/domain/schedule"
)

type eventPayload struct {
	Title     string   `json:"title"`
	TimeRange string   `json:"timeRange"`
	Location  string   `json:"location"`
	Type      string   `json:"type"`
	Items     []string `json:"items"`
	Day       int      `json:"day"`
	Month     int      `json:"month"` // 0 means every viewed month
	Year      int      `json:"year"`  // 0 means every viewed year
}

func eventJSON(e schedule.Event) map[string]any {
	items := e.Items
	if items == nil {
		items = []string{}
	}
	return map[string]any{
		"id":        e.ID,
		"title":     e.Title,
		"timeRange": e.TimeRange,
		"location":  e.Location,
		"type":      e.Type,
		"items":     items,
		"day":       e.Day,
		"month":     int(e.Month),
		"year":      e.Year,
		"createdBy": e.CreatedBy,
	}
}

// handleListEvents returns the events visible in a given month.
// Defaults to the current month when month/year are omitted.
func handleListEvents(w http.ResponseWriter, r *http.Request) {
	now := timeNow()
	month := int(now.Month())
	year := now.Year()
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			badRequest(w, "month must be between 1 and 12")
			return
		}
		month = m
	}
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 2000 {
			badRequest(w, "invalid year")
			return
		}
		year = y
	}

	events, err := stores.ScheduleStore.ListForMonth(r.Context(), time.Month(month), year)
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]map[string]any, 0, len(events))
	for _, e := range events {
		out = append(out, eventJSON(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": out, "month": month, "year": year})
}

// handleNextEvent returns the upcoming event banner for the home screen.
func handleNextEvent(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetNextEvent(r.Context(), projections.GetNextEventQuery{
		Now: timeNow(),
	}, projections.GetNextEventDeps{
		ScheduleStore: stores.ScheduleStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	if result.Next == nil {
		writeJSON(w, http.StatusOK, map[string]any{"next": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"next": nextEventJSON(*result.Next)})
}

func nextEventJSON(n schedule.NextEventResult) map[string]any {
	return map[string]any{
		"event":   eventJSON(n.Event),
		"isToday": n.IsToday,
		"label":   n.Label,
		"month":   int(n.Month),
		"year":    n.Year,
	}
}

// handleCreateEvent adds a schedule event. Staff only.
func handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var req eventPayload
	if err := strictDecode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	event, err := orchestrators.ExecuteCreateEvent(r.Context(), orchestrators.CreateEventInput{
		Title:     req.Title,
		TimeRange: req.TimeRange,
		Location:  req.Location,
		Type:      req.Type,
		Items:     req.Items,
		Day:       req.Day,
		Month:     time.Month(req.Month),
		Year:      req.Year,
		CreatedBy: sess.AccountID,
	}, manageEventDeps())
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, eventJSON(event))
}

// handleUpdateEvent edits a schedule event. Staff only.
func handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventPayload
	if err := strictDecode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	event, err := orchestrators.ExecuteUpdateEvent(r.Context(), orchestrators.UpdateEventInput{
		EventID:   r.PathValue("id"),
		Title:     req.Title,
		TimeRange: req.TimeRange,
		Location:  req.Location,
		Type:      req.Type,
		Items:     req.Items,
		Day:       req.Day,
		Month:     time.Month(req.Month),
		Year:      req.Year,
	}, manageEventDeps())
	if err != nil {
		if errors.Is(err, orchestrators.ErrEventNotFound) {
			http.NotFound(w, r)
			return
		}
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, eventJSON(event))
}

// handleDeleteEvent removes an event and its attendance responses. Staff only.
func handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteEvent(r.Context(), r.PathValue("id"), manageEventDeps())
	if err != nil {
		if errors.Is(err, orchestrators.ErrEventNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func manageEventDeps() orchestrators.ManageEventDeps {
	return orchestrators.ManageEventDeps{
		ScheduleStore: stores.ScheduleStore,
		GenerateID:    generateID,
		Now:           timeNow,
	}
}

// handleRespondAttendance records the caller's attendance response for an event.
func handleRespondAttendance(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	if sess.MemberID == "" {
		badRequest(w, "account has no member profile")
		return
	}

	var req struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := strictDecode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	resp, err := orchestrators.ExecuteRespondAttendance(r.Context(), orchestrators.RespondAttendanceInput{
		MemberID: sess.MemberID,
		EventID:  r.PathValue("id"),
		Status:   req.Status,
		Reason:   req.Reason,
	}, orchestrators.RespondAttendanceDeps{
		AttendanceStore: stores.AttendanceStore,
		ScheduleStore:   stores.ScheduleStore,
		GenerateID:      generateID,
		Now:             timeNow,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrEventNotFound) {
			http.NotFound(w, r)
			return
		}
		badRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":          resp.ID,
		"eventId":     resp.EventID,
		"status":      resp.Status,
		"reason":      resp.Reason,
		"respondedAt": resp.RespondedAt.Format(time.RFC3339),
	})
}

// handleAttendanceSummary returns the three-way attendance breakdown for an event.
func handleAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetAttendanceSummary(r.Context(), projections.GetAttendanceSummaryQuery{
		EventID: r.PathValue("id"),
	}, projections.GetAttendanceSummaryDeps{
		AttendanceStore: stores.AttendanceStore,
		MemberStore:     stores.MemberStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"attend":    attendanceEntriesJSON(result.Attend),
		"absent":    attendanceEntriesJSON(result.Absent),
		"undecided": attendanceEntriesJSON(result.Undecided),
	})
}

// handleMyAttendance lists the caller's own attendance responses with
// event titles resolved in one batched lookup.
func handleMyAttendance(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	responses, err := stores.AttendanceStore.ListByMemberID(r.Context(), sess.MemberID)
	if err != nil {
		internalError(w, err)
		return
	}

	eventIDs := make([]string, 0, len(responses))
	for _, resp := range responses {
		eventIDs = append(eventIDs, resp.EventID)
	}
	titles, err := stores.ScheduleStore.ListTitlesByIDs(r.Context(), eventIDs)
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]map[string]any, 0, len(responses))
	for _, resp := range responses {
		out = append(out, map[string]any{
			"id":          resp.ID,
			"eventId":     resp.EventID,
			"eventTitle":  titles[resp.EventID],
			"status":      resp.Status,
			"reason":      resp.Reason,
			"respondedAt": resp.RespondedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"responses": out})
}

func attendanceEntriesJSON(entries []projections.AttendanceEntry) []map[string]any {
	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, map[string]any{
			"memberId": e.MemberID,
			"name":     e.Name,
			"reason":   e.Reason,
		})
	}
	return out
}
