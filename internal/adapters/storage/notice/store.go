package notice

import (
	"context"

	domain "clubhouse/internal/domain/notice"
)

// Store persists Notice and ReadMark state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Notice, error)
	Save(ctx context.Context, value domain.Notice) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Notice, error)
	MarkRead(ctx context.Context, mark domain.ReadMark) error
	ListReadNoticeIDs(ctx context.Context, memberID string) ([]string, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
}
