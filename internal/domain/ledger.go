package domain

import "time"

// TransactionType classifies a ledger entry. Earn types carry positive
// amounts, spend types negative.
type TransactionType string

const (
	TransactionBetPlaced               TransactionType = "bet_placed"
	TransactionBetWon                  TransactionType = "bet_won"
	TransactionBetRefund               TransactionType = "bet_refund"
	TransactionBadgeReward             TransactionType = "badge_reward"
	TransactionMarketplacePurchase     TransactionType = "marketplace_purchase"
	TransactionDailyBonus              TransactionType = "daily_bonus"
	TransactionLevelUp                 TransactionType = "level_up"
	TransactionAdminGrant              TransactionType = "admin_grant"
	TransactionTournamentParticipation TransactionType = "tournament_participation"
	TransactionTournamentVictory       TransactionType = "tournament_victory"
	TransactionStartingBalance         TransactionType = "starting_balance"
)

// UserProfile tracks a user's coin balance and progression
type UserProfile struct {
	UserID           string     `json:"user_id"`
	Username         string     `json:"user_name"`
	Coins            int        `json:"coins"`
	TotalCoinsEarned int        `json:"total_coins_earned"`
	TotalCoinsSpent  int        `json:"total_coins_spent"`
	XP               int        `json:"xp"`
	Level            int        `json:"level"`
	LastDailyBonus   *time.Time `json:"last_daily_bonus,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// XPForNextLevel returns how much XP the profile's next level requires
func (p *UserProfile) XPForNextLevel() int {
	return LevelUpBaseXP + (p.Level-1)*LevelUpStepXP
}

// CoinTransaction is one immutable ledger entry. BalanceAfter snapshots
// the profile balance at commit time.
type CoinTransaction struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Amount       int             `json:"amount"`
	Type         TransactionType `json:"type"`
	Description  string          `json:"description"`
	ReferenceID  *string         `json:"reference_id,omitempty"`
	BalanceAfter int             `json:"balance_after"`
	CreatedAt    time.Time       `json:"created_at"`
}

// DailyBonusResult reports a claimed daily bonus
type DailyBonusResult struct {
	CoinsAwarded int  `json:"coins_awarded"`
	XPAwarded    int  `json:"xp_awarded"`
	NewBalance   int  `json:"new_balance"`
	LeveledUp    bool `json:"leveled_up"`
	NewLevel     int  `json:"new_level"`
}

// RichestEntry is one row of the richest-players leaderboard
type RichestEntry struct {
	Rank             int    `json:"rank"`
	UserID           string `json:"user_id"`
	Username         string `json:"user_name"`
	Coins            int    `json:"coins"`
	TotalCoinsEarned int    `json:"total_coins_earned"`
	Level            int    `json:"level"`
}

// TournamentReward reports coins and XP granted for a tournament placement
type TournamentReward struct {
	UserID       string `json:"user_id"`
	Placement    int    `json:"placement"`
	CoinsAwarded int    `json:"coins_awarded"`
	XPAwarded    int    `json:"xp_awarded"`
}

// TransactionFilter narrows ledger listings
type TransactionFilter struct {
	Type  TransactionType
	Limit int
	Skip  int
}
