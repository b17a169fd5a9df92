package repository

import (
	"context"
	"time"

	"github.com/nexuslan/arena/internal/domain"
)

// Stats defines the read-side metric queries badge criteria evaluate against.
// Each method answers "how much of X has this user done", sourced from the
// activity tables the rest of the system writes.
type Stats interface {
	CountTournamentWins(ctx context.Context, userID string) (int, error)
	CountTournamentsPlayed(ctx context.Context, userID string) (int, error)
	CountTournamentsPlayedByGame(ctx context.Context, userID, game string) (int, error)
	CountPurchases(ctx context.Context, userID string) (int, error)
	CountComments(ctx context.Context, userID string) (int, error)
	CountBetsPlaced(ctx context.Context, userID string) (int, error)
	CountBetsWon(ctx context.Context, userID string) (int, error)
	CountUniqueItemsOwned(ctx context.Context, userID string) (int, error)

	// LongestBetWinStreak returns the longest run of consecutive winning
	// bets across the user's settled bets in placement order.
	LongestBetWinStreak(ctx context.Context, userID string) (int, error)

	// ListLoginDays returns the distinct UTC login days for the user, most
	// recent first, capped at limit. Streaks are computed by walking the
	// result backwards.
	ListLoginDays(ctx context.Context, userID string, limit int) ([]time.Time, error)

	// RegistrationRank returns the 1-based position of the user in
	// registration order.
	RegistrationRank(ctx context.Context, userID string) (int, error)

	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
}
