package web

import (
	"errors"
	"net/http"
	"time"

	"clubhouse/internal/adapters/http/middleware"
	"clubhouse/internal/application/orchestrators"
	"clubhouse/internal/application/projections"
	clockDomain "clubhouse/internal/domain/clock"
	"clubhouse/internal/domain/participation"
	practiceDomain "clubhouse/internal/domain/practice"
)

// requireMember resolves the caller's member id or writes a 400.
func requireMember(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	if sess.MemberID == "" {
		badRequest(w, "account has no member profile")
		return sess, false
	}
	return sess, true
}

func clockRecordJSON(rec clockDomain.Record) map[string]any {
	out := map[string]any{
		"id":      rec.ID,
		"date":    rec.Date,
		"clockIn": rec.ClockIn.Format(time.RFC3339),
	}
	if rec.IsClockedOut() {
		out["clockOut"] = rec.ClockOut.Format(time.RFC3339)
	}
	return out
}

// handleClockIn stamps the caller in for today.
func handleClockIn(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	rec, err := orchestrators.ExecuteClockIn(r.Context(), orchestrators.ClockInput{
		MemberID: sess.MemberID,
	}, clockDeps())
	if err != nil {
		if errors.Is(err, orchestrators.ErrAlreadyClockedIn) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "既に出勤済みです"})
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clockRecordJSON(rec))
}

// handleClockOut stamps the caller out for today.
func handleClockOut(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	rec, err := orchestrators.ExecuteClockOut(r.Context(), orchestrators.ClockInput{
		MemberID: sess.MemberID,
	}, clockDeps())
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrNotClockedIn):
			writeJSON(w, http.StatusConflict, map[string]string{"error": "本日の出勤記録がありません"})
		case errors.Is(err, orchestrators.ErrAlreadyClockedOut):
			writeJSON(w, http.StatusConflict, map[string]string{"error": "既に退勤済みです"})
		default:
			internalError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, clockRecordJSON(rec))
}

// handleClockToday reports the caller's stamp state for today.
func handleClockToday(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	today := timeNow().Format(clockDomain.DateLayout)
	rec, err := stores.ClockStore.GetByMemberAndDate(r.Context(), sess.MemberID, today)
	if err != nil {
		// No stamp yet today.
		writeJSON(w, http.StatusOK, map[string]any{"clockedIn": false, "clockedOut": false})
		return
	}
	resp := clockRecordJSON(rec)
	resp["clockedIn"] = rec.IsClockedIn()
	resp["clockedOut"] = rec.IsClockedOut()
	writeJSON(w, http.StatusOK, resp)
}

func clockDeps() orchestrators.ClockDeps {
	return orchestrators.ClockDeps{
		ClockStore: stores.ClockStore,
		GenerateID: generateID,
		Now:        timeNow,
	}
}

func practiceRecordJSON(rec practiceDomain.Record) map[string]any {
	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"id":      rec.ID,
		"date":    rec.Date,
		"mood":    rec.Mood,
		"menu":    rec.Menu,
		"tags":    tags,
		"savedAt": rec.SavedAt.Format(time.RFC3339),
	}
}

// handleListPractice returns the caller's practice log, newest first.
func handleListPractice(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	records, err := stores.PracticeStore.ListByMemberID(r.Context(), sess.MemberID)
	if err != nil {
		internalError(w, err)
		return
	}
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out = append(out, practiceRecordJSON(rec))
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": out})
}

// handleSavePractice creates or updates a practice log entry for the caller.
func handleSavePractice(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}

	var req struct {
		ID   string   `json:"id"`
		Date string   `json:"date"`
		Mood string   `json:"mood"`
		Menu string   `json:"menu"`
		Tags []string `json:"tags"`
	}
	if err := strictDecode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	rec, err := orchestrators.ExecuteSavePractice(r.Context(), orchestrators.SavePracticeInput{
		RecordID: req.ID,
		MemberID: sess.MemberID,
		Date:     req.Date,
		Mood:     req.Mood,
		Menu:     req.Menu,
		Tags:     req.Tags,
	}, practiceDeps())
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrRecordNotFound):
			http.NotFound(w, r)
		case errors.Is(err, orchestrators.ErrNotRecordOwner):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			badRequest(w, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, practiceRecordJSON(rec))
}

// handleDeletePractice removes one of the caller's practice log entries.
func handleDeletePractice(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	err := orchestrators.ExecuteDeletePractice(r.Context(), r.PathValue("id"), sess.MemberID, practiceDeps())
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrRecordNotFound):
			http.NotFound(w, r)
		case errors.Is(err, orchestrators.ErrNotRecordOwner):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			internalError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func practiceDeps() orchestrators.SavePracticeDeps {
	return orchestrators.SavePracticeDeps{
		PracticeStore: stores.PracticeStore,
		GenerateID:    generateID,
		Now:           timeNow,
	}
}

// handleParticipationSummary returns the caller's streak and goal progress.
func handleParticipationSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	result, err := projections.QueryGetParticipationSummary(r.Context(), projections.GetParticipationSummaryQuery{
		MemberID: sess.MemberID,
		Today:    timeNow().Format(participation.DateLayout),
	}, projections.GetParticipationSummaryDeps{
		ClockStore:    stores.ClockStore,
		PracticeStore: stores.PracticeStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, participationJSON(result.Summary))
}

func participationJSON(s participation.Summary) map[string]any {
	return map[string]any{
		"streak":       s.Streak,
		"totalCount":   s.TotalCount,
		"goalProgress": s.GoalProgress,
	}
}

// handleHome returns the aggregated home screen payload.
func handleHome(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	result, err := projections.QueryGetHome(r.Context(), projections.GetHomeQuery{
		MemberID: sess.MemberID,
		Now:      timeNow(),
	}, projections.GetHomeDeps{
		ScheduleStore: stores.ScheduleStore,
		ClockStore:    stores.ClockStore,
		PracticeStore: stores.PracticeStore,
		NoticeStore:   stores.NoticeStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	resp := map[string]any{
		"participation": participationJSON(result.Participation),
		"unreadNotices": result.UnreadNotices,
		"nextEvent":     nil,
		"clockedIn":     false,
		"clockedOut":    false,
	}
	if result.NextEvent != nil {
		resp["nextEvent"] = nextEventJSON(*result.NextEvent)
	}
	today := timeNow().Format(clockDomain.DateLayout)
	if rec, err := stores.ClockStore.GetByMemberAndDate(r.Context(), sess.MemberID, today); err == nil {
		resp["clockedIn"] = rec.IsClockedIn()
		resp["clockedOut"] = rec.IsClockedOut()
	}
	writeJSON(w, http.StatusOK, resp)
}
