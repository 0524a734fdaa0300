package web

import (
	"net/http"
	"time"

	absenceStore "clubhouse/internal/adapters/storage/absence"
	"clubhouse/internal/application/orchestrators"
)

// handleReportAbsence stores an absence report and notifies the staff inbox.
func handleReportAbsence(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}

	var req struct {
		EventTitle string `json:"eventTitle"`
		Reason     string `json:"reason"`
	}
	if err := strictDecode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	report, err := orchestrators.ExecuteReportAbsence(r.Context(), orchestrators.ReportAbsenceInput{
		MemberID:   sess.MemberID,
		EventTitle: req.EventTitle,
		Reason:     req.Reason,
	}, orchestrators.ReportAbsenceDeps{
		AbsenceStore: stores.AbsenceStore,
		MemberStore:  stores.MemberStore,
		EmailSender:  emailSender,
		StaffEmail:   staffEmailAddress,
		FromAddress:  emailFromAddress,
		GenerateID:   generateID,
		Now:          timeNow,
	})
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":         report.ID,
		"eventTitle": report.EventTitle,
		"reason":     report.Reason,
		"createdAt":  report.CreatedAt.Format(time.RFC3339),
	})
}

// handleListAbsences returns recent absence reports. Staff only.
func handleListAbsences(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageFromRequest(r)
	reports, err := stores.AbsenceStore.List(r.Context(), absenceStore.ListFilter{Limit: limit, Offset: offset})
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]map[string]any, 0, len(reports))
	for _, rep := range reports {
		out = append(out, map[string]any{
			"id":         rep.ID,
			"memberId":   rep.MemberID,
			"eventTitle": rep.EventTitle,
			"reason":     rep.Reason,
			"createdAt":  rep.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": out})
}
