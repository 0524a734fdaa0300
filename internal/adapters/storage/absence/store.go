package absence

import (
	"context"

	domain "clubhouse/internal/domain/absence"
)

// Store persists absence Report state.
type Store interface {
	Save(ctx context.Context, value domain.Report) error
	ListByMemberID(ctx context.Context, memberID string) ([]domain.Report, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Report, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
}
