package repository

import (
	"context"

	"github.com/nexuslan/arena/internal/domain"
)

// Activity defines the interface for the public activity feed
type Activity interface {
	InsertEntry(ctx context.Context, entry *domain.ActivityEntry) error
	ListEntries(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityEntry, error)
}
