package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexuslan/arena/internal/domain"
)

// StatsRepository implements the badge criteria metric queries for PostgreSQL
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) countRow(ctx context.Context, query string, args ...any) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count: %w", err)
	}
	return count, nil
}

// CountTournamentWins counts first-place finishes
func (r *StatsRepository) CountTournamentWins(ctx context.Context, userID string) (int, error) {
	return r.countRow(ctx,
		`SELECT COUNT(*) FROM tournament_results WHERE user_id = $1 AND placement = 1`, userID)
}

// CountTournamentsPlayed counts tournament entries
func (r *StatsRepository) CountTournamentsPlayed(ctx context.Context, userID string) (int, error) {
	return r.countRow(ctx,
		`SELECT COUNT(*) FROM tournament_results WHERE user_id = $1`, userID)
}

// CountTournamentsPlayedByGame counts tournament entries in one game
func (r *StatsRepository) CountTournamentsPlayedByGame(ctx context.Context, userID, game string) (int, error) {
	return r.countRow(ctx,
		`SELECT COUNT(*) FROM tournament_results WHERE user_id = $1 AND game = $2`,
		userID, game)
}

// CountPurchases counts marketplace purchase transactions
func (r *StatsRepository) CountPurchases(ctx context.Context, userID string) (int, error) {
	return r.countRow(ctx,
		`SELECT COUNT(*) FROM coin_transactions WHERE user_id = $1 AND transaction_type = $2`,
		userID, string(domain.TransactionMarketplacePurchase))
}

// CountComments counts posted comments
func (r *StatsRepository) CountComments(ctx context.Context, userID string) (int, error) {
	return r.countRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE user_id = $1`, userID)
}

// CountBetsPlaced counts live and settled bets
func (r *StatsRepository) CountBetsPlaced(ctx context.Context, userID string) (int, error) {
	return r.countRow(ctx,
		`SELECT COUNT(*) FROM bets WHERE user_id = $1 AND status <> $2`,
		userID, string(domain.BetStatusCancelled))
}

// CountBetsWon counts winning bets
func (r *StatsRepository) CountBetsWon(ctx context.Context, userID string) (int, error) {
	return r.countRow(ctx,
		`SELECT COUNT(*) FROM bets WHERE user_id = $1 AND status = $2`,
		userID, string(domain.BetStatusWon))
}

// CountUniqueItemsOwned counts distinct items in the user's inventory
func (r *StatsRepository) CountUniqueItemsOwned(ctx context.Context, userID string) (int, error) {
	return r.countRow(ctx,
		`SELECT COUNT(*) FROM user_inventory WHERE user_id = $1`, userID)
}

// LongestBetWinStreak returns the longest run of consecutive winning bets
// across the user's settled bets in placement order
func (r *StatsRepository) LongestBetWinStreak(ctx context.Context, userID string) (int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT status FROM bets
		WHERE user_id = $1 AND status IN ($2, $3)
		ORDER BY placed_at`,
		userID, string(domain.BetStatusWon), string(domain.BetStatusLost))
	if err != nil {
		return 0, fmt.Errorf("failed to get settled bets: %w", err)
	}
	defer rows.Close()

	var longest, current int
	for rows.Next() {
		var status string
		if err := rows.Scan(&status); err != nil {
			return 0, fmt.Errorf("failed to scan bet status: %w", err)
		}
		if status == string(domain.BetStatusWon) {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest, rows.Err()
}

// ListLoginDays returns distinct UTC login days, most recent first
func (r *StatsRepository) ListLoginDays(ctx context.Context, userID string, limit int) ([]time.Time, error) {
	rows, err := r.db.Query(ctx, `
		SELECT login_day FROM login_days
		WHERE user_id = $1
		ORDER BY login_day DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list login days: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("failed to scan login day: %w", err)
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// RegistrationRank returns the 1-based position of the user in registration order
func (r *StatsRepository) RegistrationRank(ctx context.Context, userID string) (int, error) {
	var rank int
	err := r.db.QueryRow(ctx, `
		SELECT rank FROM (
			SELECT user_id, RANK() OVER (ORDER BY registered_at, user_id) AS rank
			FROM users
		) ranked
		WHERE user_id = $1`, userID).Scan(&rank)
	if err != nil {
		return 0, fmt.Errorf("failed to get registration rank: %w", err)
	}
	return rank, nil
}

// GetProfile retrieves a profile for economy criteria
func (r *StatsRepository) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return getProfile(ctx, r.db, userID)
}
