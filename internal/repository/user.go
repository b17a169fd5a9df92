package repository

import (
	"context"
	"time"

	"github.com/nexuslan/arena/internal/domain"
)

// User defines the interface for platform user and activity ingest persistence
type User interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpsertUser(ctx context.Context, user *domain.User) error

	// RecordLogin stores one row per user per UTC day
	RecordLogin(ctx context.Context, userID string, day time.Time) error
	RecordComment(ctx context.Context, comment *domain.Comment) error

	// RecordTournamentResult stores a finish, reporting false when the
	// (user, tournament) pair was already recorded.
	RecordTournamentResult(ctx context.Context, result *domain.TournamentResult) (bool, error)
	GetTournamentResults(ctx context.Context, tournamentID string) ([]domain.TournamentResult, error)
}
