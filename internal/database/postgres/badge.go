package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexuslan/arena/internal/domain"
)

// BadgeRepository implements the badge award repository for PostgreSQL
type BadgeRepository struct {
	db *pgxpool.Pool
}

// NewBadgeRepository creates a new BadgeRepository
func NewBadgeRepository(db *pgxpool.Pool) *BadgeRepository {
	return &BadgeRepository{db: db}
}

// AwardBadge inserts a badge award. For stackable badges a repeat award
// increments the count; otherwise the unique constraint makes repeats
// report inserted=false.
func (r *BadgeRepository) AwardBadge(ctx context.Context, award *domain.UserBadge, stackable bool) (bool, error) {
	var metadata []byte
	if award.Metadata != nil {
		var err error
		if metadata, err = json.Marshal(award.Metadata); err != nil {
			return false, fmt.Errorf("failed to marshal badge metadata: %w", err)
		}
	}

	if stackable {
		err := r.db.QueryRow(ctx, `
			INSERT INTO user_badges (user_badge_id, user_id, badge_id, badge_count, metadata)
			VALUES ($1, $2, $3, 1, $4)
			ON CONFLICT (user_id, badge_id)
			DO UPDATE SET badge_count = user_badges.badge_count + 1
			RETURNING user_badge_id, obtained_at, badge_count`,
			award.ID, award.UserID, award.BadgeID, metadata).
			Scan(&award.ID, &award.ObtainedAt, &award.Count)
		if err != nil {
			return false, fmt.Errorf("failed to award stackable badge: %w", err)
		}
		return award.Count == 1, nil
	}

	tag, err := r.db.Exec(ctx, `
		INSERT INTO user_badges (user_badge_id, user_id, badge_id, badge_count, metadata)
		VALUES ($1, $2, $3, 1, $4)
		ON CONFLICT (user_id, badge_id) DO NOTHING`,
		award.ID, award.UserID, award.BadgeID, metadata)
	if err != nil {
		return false, fmt.Errorf("failed to award badge: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// HasBadge reports whether the user holds the badge
func (r *BadgeRepository) HasBadge(ctx context.Context, userID, badgeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_badges WHERE user_id = $1 AND badge_id = $2)`,
		userID, badgeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check badge: %w", err)
	}
	return exists, nil
}

const userBadgeColumns = `user_badge_id, user_id, badge_id, obtained_at, badge_count, metadata`

func scanUserBadge(row pgx.Row) (*domain.UserBadge, error) {
	var ub domain.UserBadge
	var metadata []byte
	if err := row.Scan(&ub.ID, &ub.UserID, &ub.BadgeID, &ub.ObtainedAt, &ub.Count, &metadata); err != nil {
		return nil, err
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &ub.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal badge metadata: %w", err)
		}
	}
	return &ub, nil
}

// ListUserBadges retrieves a user's awards, newest first
func (r *BadgeRepository) ListUserBadges(ctx context.Context, userID string) ([]domain.UserBadge, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userBadgeColumns+` FROM user_badges WHERE user_id = $1 ORDER BY obtained_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user badges: %w", err)
	}
	defer rows.Close()

	return collectUserBadges(rows)
}

// ListAllAwards retrieves every award row for aggregation
func (r *BadgeRepository) ListAllAwards(ctx context.Context) ([]domain.UserBadge, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userBadgeColumns+` FROM user_badges`)
	if err != nil {
		return nil, fmt.Errorf("failed to list awards: %w", err)
	}
	defer rows.Close()

	return collectUserBadges(rows)
}

func collectUserBadges(rows pgx.Rows) ([]domain.UserBadge, error) {
	var awards []domain.UserBadge
	for rows.Next() {
		ub, err := scanUserBadge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan badge award: %w", err)
		}
		awards = append(awards, *ub)
	}
	return awards, rows.Err()
}

// CountAwardsByBadge returns times-earned per badge ID
func (r *BadgeRepository) CountAwardsByBadge(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT badge_id, COUNT(*) FROM user_badges GROUP BY badge_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to count awards: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var badgeID string
		var count int
		if err := rows.Scan(&badgeID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan award count: %w", err)
		}
		counts[badgeID] = count
	}
	return counts, rows.Err()
}

// GetLeaderboard returns per-user award counts joined with profile details
func (r *BadgeRepository) GetLeaderboard(ctx context.Context, limit int) ([]domain.BadgeLeaderboardEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ub.user_id,
		       COALESCE(MAX(p.username), ''),
		       COUNT(*),
		       MAX(ub.obtained_at),
		       COALESCE(MAX(p.level), 1)
		FROM user_badges ub
		LEFT JOIN user_profiles p ON p.user_id = ub.user_id
		GROUP BY ub.user_id
		ORDER BY COUNT(*) DESC, MAX(ub.obtained_at) DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get badge leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []domain.BadgeLeaderboardEntry
	rank := 1
	for rows.Next() {
		var e domain.BadgeLeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.BadgeCount, &e.LastBadgeAt, &e.Level); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		e.Rank = rank
		rank++
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountUsersWithBadges returns how many users hold at least one badge
func (r *BadgeRepository) CountUsersWithBadges(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(DISTINCT user_id) FROM user_badges`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count badge holders: %w", err)
	}
	return count, nil
}
