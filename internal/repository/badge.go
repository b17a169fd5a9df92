package repository

import (
	"context"

	"github.com/nexuslan/arena/internal/domain"
)

// Badge defines the interface for badge award persistence. Badge definitions
// live in the in-code registry; only awards are stored.
type Badge interface {
	// AwardBadge inserts the award, returning false when the user already
	// holds the badge. For stackable badges the count is incremented instead.
	AwardBadge(ctx context.Context, award *domain.UserBadge, stackable bool) (bool, error)
	HasBadge(ctx context.Context, userID, badgeID string) (bool, error)
	ListUserBadges(ctx context.Context, userID string) ([]domain.UserBadge, error)

	// ListAllAwards returns every award row, for leaderboard and stats
	// aggregation against the in-code registry.
	ListAllAwards(ctx context.Context) ([]domain.UserBadge, error)
	CountAwardsByBadge(ctx context.Context) (map[string]int, error)
	CountUsersWithBadges(ctx context.Context) (int, error)

	// GetLeaderboard returns per-user award counts joined with profile
	// details, most badges first. RarestBadge is left for the caller, which
	// owns the badge definitions.
	GetLeaderboard(ctx context.Context, limit int) ([]domain.BadgeLeaderboardEntry, error)
}
