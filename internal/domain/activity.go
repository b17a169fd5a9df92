package domain

import "time"

// ActivityType labels a feed entry
type ActivityType string

const (
	ActivityBadgeEarned  ActivityType = "badge_earned"
	ActivityBetPlaced    ActivityType = "bet_placed"
	ActivityBetWon       ActivityType = "bet_won"
	ActivityLevelUp      ActivityType = "level_up"
	ActivityPurchase     ActivityType = "purchase"
	ActivityBonusClaimed ActivityType = "bonus_claimed"
)

// ActivityEntry is one row of the public activity feed
type ActivityEntry struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Username  string       `json:"user_name"`
	Type      ActivityType `json:"type"`
	Message   string       `json:"message"`
	CreatedAt time.Time    `json:"created_at"`
}

// ActivityFilter narrows feed listings
type ActivityFilter struct {
	UserID string
	Type   ActivityType
	Limit  int
	Skip   int
}
