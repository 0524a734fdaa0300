package schedule

import (
	"context"
	"time"

	domain "clubhouse/internal/domain/schedule"
)

// Store persists schedule Event state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Event, error)
	Save(ctx context.Context, value domain.Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Event, error)
	ListForMonth(ctx context.Context, month time.Month, year int) ([]domain.Event, error)
	ListTitlesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
}
