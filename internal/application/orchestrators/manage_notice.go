package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clubhouse/internal/domain/notice"
)

// NoticeStoreForManage defines the store interface needed by the notice orchestrators.
type NoticeStoreForManage interface {
	GetByID(ctx context.Context, id string) (notice.Notice, error)
	Save(ctx context.Context, n notice.Notice) error
	Delete(ctx context.Context, id string) error
	MarkRead(ctx context.Context, mark notice.ReadMark) error
}

// CreateNoticeInput carries input for the create notice orchestrator.
type CreateNoticeInput struct {
	Type      string
	Title     string
	Content   string // Markdown
	CreatedBy string
}

// ManageNoticeDeps holds dependencies for the notice orchestrators.
type ManageNoticeDeps struct {
	NoticeStore NoticeStoreForManage
	GenerateID  func() string
	Now         func() time.Time
}

// ErrNoticeNotFound is returned when the target notice does not exist.
var ErrNoticeNotFound = errors.New("notice not found")

// ExecuteCreateNotice publishes a notice to the club.
// PRE: input passes notice validation
// POST: Notice is persisted
func ExecuteCreateNotice(ctx context.Context, input CreateNoticeInput, deps ManageNoticeDeps) (notice.Notice, error) {
	n := notice.Notice{
		ID:        deps.GenerateID(),
		Type:      input.Type,
		Title:     input.Title,
		Content:   input.Content,
		CreatedBy: input.CreatedBy,
		CreatedAt: deps.Now(),
	}
	if err := n.Validate(); err != nil {
		return notice.Notice{}, err
	}
	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}

	slog.Info("notice_event", "event", "notice_created", "notice_id", n.ID, "type", n.Type)
	return n, nil
}

// ExecuteDeleteNotice removes a notice and its read marks.
// PRE: noticeID refers to an existing notice
// POST: Notice is removed
func ExecuteDeleteNotice(ctx context.Context, noticeID string, deps ManageNoticeDeps) error {
	if _, err := deps.NoticeStore.GetByID(ctx, noticeID); err != nil {
		return ErrNoticeNotFound
	}
	if err := deps.NoticeStore.Delete(ctx, noticeID); err != nil {
		return err
	}

	slog.Info("notice_event", "event", "notice_deleted", "notice_id", noticeID)
	return nil
}

// ExecuteMarkNoticeRead records that a member has read a notice.
// Marking twice keeps the first mark.
// PRE: noticeID refers to an existing notice
// POST: A read mark for (notice, member) exists
func ExecuteMarkNoticeRead(ctx context.Context, noticeID string, memberID string, deps ManageNoticeDeps) error {
	if _, err := deps.NoticeStore.GetByID(ctx, noticeID); err != nil {
		return ErrNoticeNotFound
	}
	mark := notice.ReadMark{
		NoticeID: noticeID,
		MemberID: memberID,
		ReadAt:   deps.Now(),
	}
	if err := mark.Validate(); err != nil {
		return err
	}
	return deps.NoticeStore.MarkRead(ctx, mark)
}
