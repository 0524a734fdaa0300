package practice

import (
	"context"

	domain "clubhouse/internal/domain/practice"
)

// Store persists practice Record state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Record, error)
	Save(ctx context.Context, value domain.Record) error
	Delete(ctx context.Context, id string) error
	ListByMemberID(ctx context.Context, memberID string) ([]domain.Record, error)
	ListDatesByMemberID(ctx context.Context, memberID string) ([]string, error)
}
