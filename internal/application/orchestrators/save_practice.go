package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clubhouse/internal/domain/practice"
)

// PracticeStoreForSave defines the store interface needed by the practice orchestrators.
type PracticeStoreForSave interface {
	GetByID(ctx context.Context, id string) (practice.Record, error)
	Save(ctx context.Context, r practice.Record) error
	Delete(ctx context.Context, id string) error
}

// SavePracticeInput carries input for the save practice orchestrator.
type SavePracticeInput struct {
	RecordID string // empty for a new record
	MemberID string
	Date     string // YYYY-MM-DD
	Mood     string
	Menu     string
	Tags     []string
}

// SavePracticeDeps holds dependencies for the practice orchestrators.
type SavePracticeDeps struct {
	PracticeStore PracticeStoreForSave
	GenerateID    func() string
	Now           func() time.Time
}

var (
	ErrRecordNotFound = errors.New("practice record not found")
	ErrNotRecordOwner = errors.New("practice record belongs to another member")
)

// ExecuteSavePractice creates or updates a member's practice log entry.
// Editing is limited to the member who wrote the record.
// PRE: MemberID and Date are non-empty; input passes record validation
// POST: Record is persisted
func ExecuteSavePractice(ctx context.Context, input SavePracticeInput, deps SavePracticeDeps) (practice.Record, error) {
	record := practice.Record{
		ID:       input.RecordID,
		MemberID: input.MemberID,
		Date:     input.Date,
		Mood:     input.Mood,
		Menu:     input.Menu,
		Tags:     input.Tags,
		SavedAt:  deps.Now(),
	}

	if input.RecordID == "" {
		record.ID = deps.GenerateID()
	} else {
		existing, err := deps.PracticeStore.GetByID(ctx, input.RecordID)
		if err != nil {
			return practice.Record{}, ErrRecordNotFound
		}
		if existing.MemberID != input.MemberID {
			return practice.Record{}, ErrNotRecordOwner
		}
	}

	if err := record.Validate(); err != nil {
		return practice.Record{}, err
	}
	if err := deps.PracticeStore.Save(ctx, record); err != nil {
		return practice.Record{}, err
	}

	slog.Info("practice_event", "event", "record_saved",
		"record_id", record.ID, "member_id", input.MemberID, "date", input.Date)
	return record, nil
}

// ExecuteDeletePractice removes a member's practice log entry.
// PRE: RecordID refers to a record owned by MemberID
// POST: Record is removed
func ExecuteDeletePractice(ctx context.Context, recordID string, memberID string, deps SavePracticeDeps) error {
	if recordID == "" {
		return errors.New("record id is required")
	}

	existing, err := deps.PracticeStore.GetByID(ctx, recordID)
	if err != nil {
		return ErrRecordNotFound
	}
	if existing.MemberID != memberID {
		return ErrNotRecordOwner
	}
	if err := deps.PracticeStore.Delete(ctx, recordID); err != nil {
		return err
	}

	slog.Info("practice_event", "event", "record_deleted", "record_id", recordID, "member_id", memberID)
	return nil
}
