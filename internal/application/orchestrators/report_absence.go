package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"time"

	emailAdapter "clubhouse/internal/adapters/email"
	"clubhouse/internal/domain/absence"
	"clubhouse/internal/domain/member"
)

// AbsenceStoreForReport defines the store interface needed by ReportAbsence.
type AbsenceStoreForReport interface {
	Save(ctx context.Context, r absence.Report) error
}

// MemberStoreForReport defines the member store interface needed by ReportAbsence.
type MemberStoreForReport interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
}

// ReportAbsenceInput carries input for the report absence orchestrator.
type ReportAbsenceInput struct {
	MemberID   string
	EventTitle string
	Reason     string
}

// ReportAbsenceDeps holds dependencies for ReportAbsence.
type ReportAbsenceDeps struct {
	AbsenceStore AbsenceStoreForReport
	MemberStore  MemberStoreForReport
	EmailSender  emailAdapter.Sender
	StaffEmail   string // where reports are delivered
	FromAddress  string
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteReportAbsence stores an absence report and emails the staff.
// The report is durable once stored; a failed email delivery is logged
// but does not fail the submission.
// PRE: MemberID, EventTitle and Reason are non-empty
// POST: Report is persisted; staff notification attempted
func ExecuteReportAbsence(ctx context.Context, input ReportAbsenceInput, deps ReportAbsenceDeps) (absence.Report, error) {
	if input.MemberID == "" {
		return absence.Report{}, errors.New("member id is required")
	}

	report := absence.Report{
		ID:         deps.GenerateID(),
		MemberID:   input.MemberID,
		EventTitle: input.EventTitle,
		Reason:     input.Reason,
		CreatedAt:  deps.Now(),
	}
	if err := report.Validate(); err != nil {
		return absence.Report{}, err
	}
	if err := deps.AbsenceStore.Save(ctx, report); err != nil {
		return absence.Report{}, err
	}

	name := member.NamePlaceholder
	if m, err := deps.MemberStore.GetByID(ctx, input.MemberID); err == nil {
		name = m.DisplayName()
	}

	if deps.EmailSender != nil && deps.StaffEmail != "" {
		_, err := deps.EmailSender.Send(ctx, emailAdapter.SendRequest{
			To:      []string{deps.StaffEmail},
			From:    deps.FromAddress,
			Subject: fmt.Sprintf("【欠席連絡】%s - %s", input.EventTitle, name),
			HTML: fmt.Sprintf("<p>%s さんから欠席連絡が届きました。</p><p>対象: %s</p><p>理由: %s</p>",
				html.EscapeString(name), html.EscapeString(input.EventTitle), html.EscapeString(input.Reason)),
		})
		if err != nil {
			slog.Error("absence_event", "event", "email_failed", "report_id", report.ID, "error", err)
		}
	}

	slog.Info("absence_event", "event", "report_filed",
		"report_id", report.ID, "member_id", input.MemberID, "title", input.EventTitle)
	return report, nil
}
