package achievement

import (
	"context"
	"errors"
	"time"

	"github.com/nexuslan/arena/internal/domain"
	"github.com/nexuslan/arena/internal/repository"
)

// Criterion names used in badge definitions
const (
	CriterionTournamentWins       = "tournament_wins"
	CriterionCS2Tournaments       = "cs2_tournaments"
	CriterionTournamentsPlayed    = "tournaments_participated"
	CriterionMarketplacePurchases = "marketplace_purchases"
	CriterionTotalCoinsEarned     = "total_coins_earned"
	CriterionTotalCoinsSpent      = "total_coins_spent"
	CriterionUniqueItemsOwned     = "unique_items_owned"
	CriterionCommentsPosted       = "comments_posted"
	CriterionConsecutiveDays      = "consecutive_days"
	CriterionConsecutiveBetWins   = "consecutive_bet_wins"
	CriterionUserRank             = "user_rank"
	CriterionUniqueBadges         = "unique_badges"

	// Criteria with no automatic metric. Their badges are granted through
	// the admin award endpoint only.
	CriterionClutchRounds         = "clutch_rounds"
	CriterionCommentLikes         = "comment_likes_received"
	CriterionReferrals            = "referrals"
	CriterionTournamentsOrganized = "tournaments_organized"
	CriterionUniqueInteractions   = "unique_interactions"
	CriterionBetaFeatures         = "beta_features_tested"
)

// loginHistoryWindow caps how many login days a streak check reads.
// One year plus one day covers the longest streak badge.
const loginHistoryWindow = 366

// MetricSource bundles the read models criteria evaluate against
type MetricSource struct {
	Stats  repository.Stats
	Badges repository.Badge
}

// Resolver returns the user's current value for one criterion
type Resolver func(ctx context.Context, src MetricSource, userID string) (int, error)

// resolvers maps criterion names to their metric lookups. A criterion
// without a resolver is never satisfied automatically.
var resolvers = map[string]Resolver{
	CriterionTournamentWins: func(ctx context.Context, src MetricSource, userID string) (int, error) {
		return src.Stats.CountTournamentWins(ctx, userID)
	},
	CriterionCS2Tournaments: func(ctx context.Context, src MetricSource, userID string) (int, error) {
		return src.Stats.CountTournamentsPlayedByGame(ctx, userID, "cs2")
	},
	CriterionTournamentsPlayed: func(ctx context.Context, src MetricSource, userID string) (int, error) {
		return src.Stats.CountTournamentsPlayed(ctx, userID)
	},
	CriterionMarketplacePurchases: func(ctx context.Context, src MetricSource, userID string) (int, error) {
		return src.Stats.CountPurchases(ctx, userID)
	},
	CriterionTotalCoinsEarned: func(ctx context.Context, src MetricSource, userID string) (int, error) {
		profile, err := src.Stats.GetProfile(ctx, userID)
		if err != nil {
			return 0, err
		}
		return profile.TotalCoinsEarned, nil
	},
	CriterionTotalCoinsSpent: func(ctx context.Context, src MetricSource, userID string) (int, error) {
		profile, err := src.Stats.GetProfile(ctx, userID)
		if err != nil {
			return 0, err
		}
		return profile.TotalCoinsSpent, nil
	},
	CriterionUniqueItemsOwned: func(ctx context.Context, src MetricSource, userID string) (int, error) {
		return src.Stats.CountUniqueItemsOwned(ctx, userID)
	},
	CriterionCommentsPosted: func(ctx context.Context, src MetricSource, userID string) (int, error) {
		return src.Stats.CountComments(ctx, userID)
	},
	CriterionConsecutiveDays: func(ctx context.Context, src MetricSource, userID string) (int, error) {
		days, err := src.Stats.ListLoginDays(ctx, userID, loginHistoryWindow)
		if err != nil {
			return 0, err
		}
		return currentLoginStreak(days, time.Now()), nil
	},
	CriterionConsecutiveBetWins: func(ctx context.Context, src MetricSource, userID string) (int, error) {
		return src.Stats.LongestBetWinStreak(ctx, userID)
	},
	CriterionUniqueBadges: func(ctx context.Context, src MetricSource, userID string) (int, error) {
		awards, err := src.Badges.ListUserBadges(ctx, userID)
		if err != nil {
			return 0, err
		}
		return len(awards), nil
	},
}

// resolveCriterion returns the current metric value for one criterion.
// user_rank inverts the comparison, so it is handled by the caller.
func resolveCriterion(ctx context.Context, src MetricSource, userID, criterion string) (int, error) {
	resolver, ok := resolvers[criterion]
	if !ok {
		return 0, domain.ErrUnknownCriterion
	}
	return resolver(ctx, src, userID)
}

// criterionMet reports whether one criterion is satisfied, with its current
// value for progress reporting. Unknown criteria report zero and unmet.
func criterionMet(ctx context.Context, src MetricSource, userID, criterion string, required int) (current int, met bool, err error) {
	// Registration rank is a threshold from the other side: rank 42 meets
	// a user_rank criterion of 100.
	if criterion == CriterionUserRank {
		rank, err := src.Stats.RegistrationRank(ctx, userID)
		if err != nil {
			return 0, false, err
		}
		return rank, rank <= required, nil
	}

	current, err = resolveCriterion(ctx, src, userID, criterion)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCriterion) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return current, current >= required, nil
}

// currentLoginStreak counts consecutive login days ending today or
// yesterday. days must be distinct UTC dates, most recent first.
func currentLoginStreak(days []time.Time, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	today := now.UTC().Truncate(24 * time.Hour)
	latest := days[0].UTC().Truncate(24 * time.Hour)

	// A streak survives until a full day is missed
	gap := today.Sub(latest)
	if gap > 24*time.Hour {
		return 0
	}

	streak := 1
	prev := latest
	for _, d := range days[1:] {
		d = d.UTC().Truncate(24 * time.Hour)
		if prev.Sub(d) != 24*time.Hour {
			break
		}
		streak++
		prev = d
	}
	return streak
}
