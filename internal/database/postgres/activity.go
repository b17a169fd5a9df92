package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexuslan/arena/internal/domain"
)

// ActivityRepository implements the activity feed repository for PostgreSQL
type ActivityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// InsertEntry appends a feed entry
func (r *ActivityRepository) InsertEntry(ctx context.Context, e *domain.ActivityEntry) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO activity_feed (activity_id, user_id, username, activity_type, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		e.ID, e.UserID, e.Username, string(e.Type), e.Message).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert activity entry: %w", err)
	}
	return nil
}

// ListEntries retrieves feed entries matching the filter, newest first
func (r *ActivityRepository) ListEntries(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityEntry, error) {
	query := `SELECT activity_id, user_id, username, activity_type, message, created_at
		FROM activity_feed WHERE 1=1`
	var args []any

	if filter.UserID != "" {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		query += fmt.Sprintf(" AND activity_type = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Skip > 0 {
		args = append(args, filter.Skip)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var entries []domain.ActivityEntry
	for rows.Next() {
		var e domain.ActivityEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Username, &e.Type, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
