package clock

import (
	"context"

	domain "clubhouse/internal/domain/clock"
)

// Store persists clock Record state.
type Store interface {
	GetByMemberAndDate(ctx context.Context, memberID string, date string) (domain.Record, error)
	Save(ctx context.Context, value domain.Record) error
	ListByMemberID(ctx context.Context, memberID string) ([]domain.Record, error)
	ListDatesByMemberID(ctx context.Context, memberID string) ([]string, error)
}
