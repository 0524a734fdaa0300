package attendance

import (
	"context"

	domain "clubhouse/internal/domain/attendance"
)

// Store persists attendance Response state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Response, error)
	GetByMemberAndEvent(ctx context.Context, memberID string, eventID string) (domain.Response, error)
	Save(ctx context.Context, value domain.Response) error
	Delete(ctx context.Context, id string) error
	ListByEventID(ctx context.Context, eventID string) ([]domain.Response, error)
	ListByMemberID(ctx context.Context, memberID string) ([]domain.Response, error)
}
