package domain

import "time"

// BadgeCategory groups badges by the part of the platform they reward
type BadgeCategory string

const (
	CategoryGaming      BadgeCategory = "gaming"
	CategoryCommunity   BadgeCategory = "community"
	CategoryEconomic    BadgeCategory = "economic"
	CategorySocial      BadgeCategory = "social"
	CategoryCompetitive BadgeCategory = "competitive"
	CategoryLoyalty     BadgeCategory = "loyalty"
	CategorySpecial     BadgeCategory = "special"
	CategoryAchievement BadgeCategory = "achievement"
)

// BadgeRarity orders badges for display and leaderboard tie-breaks
type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityRare      BadgeRarity = "rare"
	RarityEpic      BadgeRarity = "epic"
	RarityLegendary BadgeRarity = "legendary"
	RarityMythic    BadgeRarity = "mythic"
)

// rarityOrdinals maps rarity to its sort ordinal (common lowest)
var rarityOrdinals = map[BadgeRarity]int{
	RarityCommon:    0,
	RarityRare:      1,
	RarityEpic:      2,
	RarityLegendary: 3,
	RarityMythic:    4,
}

// Ordinal returns the sort position of the rarity, common=0 through mythic=4.
// Unknown rarities sort lowest.
func (r BadgeRarity) Ordinal() int {
	return rarityOrdinals[r]
}

// Badge is a statically registered achievement definition.
// Badges are immutable after registry construction.
type Badge struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    BadgeCategory  `json:"category"`
	Rarity      BadgeRarity    `json:"rarity"`
	Icon        string         `json:"icon"`
	Criteria    map[string]int `json:"criteria"`
	XPReward    int            `json:"xp_reward"`
	CoinsReward int            `json:"coins_reward"`
	Hidden      bool           `json:"hidden"`
	Stackable   bool           `json:"stackable"`
}

// UserBadge is an earned badge instance
type UserBadge struct {
	ID         string                 `json:"id"`
	UserID     string                 `json:"user_id"`
	BadgeID    string                 `json:"badge_id"`
	ObtainedAt time.Time              `json:"obtained_at"`
	Count      int                    `json:"count"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// BadgeListing is a catalog entry enriched with the viewer's ownership
type BadgeListing struct {
	Badge
	Obtained      bool `json:"obtained"`
	ObtainedCount int  `json:"obtained_count,omitempty"`
}

// EarnedBadge joins an earned instance with its definition for API responses
type EarnedBadge struct {
	Badge
	UserBadgeID string    `json:"user_badge_id"`
	ObtainedAt  time.Time `json:"obtained_at"`
	Count       int       `json:"count"`
}

// CriterionProgress reports one criterion's state for a progress check
type CriterionProgress struct {
	Current   int  `json:"current"`
	Required  int  `json:"required"`
	Completed bool `json:"completed"`
}

// BadgeProgress reports progress toward a single badge
type BadgeProgress struct {
	BadgeID         string                       `json:"badge_id"`
	BadgeName       string                       `json:"badge_name"`
	OverallProgress float64                      `json:"overall_progress"`
	Criteria        map[string]CriterionProgress `json:"criteria_progress"`
	Completed       bool                         `json:"completed"`
}

// BadgeLeaderboardEntry is one row of the badge-count leaderboard
type BadgeLeaderboardEntry struct {
	Rank        int       `json:"rank"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	BadgeCount  int       `json:"badge_count"`
	LastBadgeAt time.Time `json:"last_badge_date"`
	RarestBadge *Badge    `json:"rarest_badge,omitempty"`
	Level       int       `json:"level"`
}

// BadgeGlobalStats summarizes the achievement system
type BadgeGlobalStats struct {
	TotalBadgesAvailable int                 `json:"total_badges_available"`
	TotalBadgesEarned    int                 `json:"total_badges_earned"`
	UsersWithBadges      int                 `json:"total_users_with_badges"`
	AverageBadgesPerUser float64             `json:"average_badges_per_user"`
	RarityDistribution   map[BadgeRarity]int `json:"rarity_distribution"`
	MostPopularBadges    []PopularBadge      `json:"most_popular_badges"`
}

// PopularBadge is a most-earned badge summary for global stats
type PopularBadge struct {
	BadgeName   string `json:"badge_name"`
	BadgeIcon   string `json:"badge_icon"`
	TimesEarned int    `json:"times_earned"`
}

// BadgeFilter narrows badge listings
type BadgeFilter struct {
	Category      BadgeCategory
	Rarity        BadgeRarity
	IncludeHidden bool
}
