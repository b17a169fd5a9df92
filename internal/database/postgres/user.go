package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexuslan/arena/internal/domain"
)

// UserRepository implements the user and activity ingest repository for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GetUser retrieves a user by ID
func (r *UserRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx,
		`SELECT user_id, username, is_admin, registered_at FROM users WHERE user_id = $1`, id).
		Scan(&u.ID, &u.Username, &u.IsAdmin, &u.RegisteredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// UpsertUser inserts a user or refreshes the username. The admin flag is
// left alone on conflict so ingest cannot strip it.
func (r *UserRepository) UpsertUser(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (user_id, username, is_admin)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET username = EXCLUDED.username
		RETURNING is_admin, registered_at`,
		u.ID, u.Username, u.IsAdmin).Scan(&u.IsAdmin, &u.RegisteredAt)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// RecordLogin stores one row per user per UTC day
func (r *UserRepository) RecordLogin(ctx context.Context, userID string, day time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO login_days (user_id, login_day)
		VALUES ($1, $2)
		ON CONFLICT (user_id, login_day) DO NOTHING`,
		userID, day.UTC().Truncate(24*time.Hour))
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	return nil
}

// RecordComment stores a comment for social badge criteria
func (r *UserRepository) RecordComment(ctx context.Context, c *domain.Comment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO comments (comment_id, user_id, subject, body)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		c.ID, c.UserID, c.Subject, c.Body).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record comment: %w", err)
	}
	return nil
}

// RecordTournamentResult stores a user's tournament finish. Repeated ingest
// of the same (user, tournament) pair is a no-op reported as inserted=false.
func (r *UserRepository) RecordTournamentResult(ctx context.Context, res *domain.TournamentResult) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO tournament_results (result_id, user_id, tournament_id, game, placement, participants)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, tournament_id) DO NOTHING`,
		res.ID, res.UserID, res.TournamentID, res.Game, res.Placement, res.Participants)
	if err != nil {
		return false, fmt.Errorf("failed to record tournament result: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetTournamentResults retrieves every recorded finish for a tournament
func (r *UserRepository) GetTournamentResults(ctx context.Context, tournamentID string) ([]domain.TournamentResult, error) {
	rows, err := r.db.Query(ctx, `
		SELECT result_id, user_id, tournament_id, game, placement, participants, recorded_at
		FROM tournament_results
		WHERE tournament_id = $1
		ORDER BY placement`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament results: %w", err)
	}
	defer rows.Close()

	var results []domain.TournamentResult
	for rows.Next() {
		var res domain.TournamentResult
		if err := rows.Scan(&res.ID, &res.UserID, &res.TournamentID, &res.Game, &res.Placement, &res.Participants, &res.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tournament result: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
