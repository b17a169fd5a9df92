package domain

import "time"

// MarketStatus is the lifecycle state of a betting market.
// Transitions are forward-only: open -> closed -> settled, with cancelled
// reachable from any pre-settled state. settled and cancelled are terminal.
type MarketStatus string

const (
	MarketStatusOpen      MarketStatus = "open"
	MarketStatusClosed    MarketStatus = "closed"
	MarketStatusSettled   MarketStatus = "settled"
	MarketStatusCancelled MarketStatus = "cancelled"
)

// MarketType classifies what outcome a market wagers on
type MarketType string

const (
	MarketTypeWinner      MarketType = "winner"
	MarketTypeMatchResult MarketType = "match_result"
	MarketTypeSpecial     MarketType = "special"
)

// MarketOption is one mutually-exclusive outcome with its fixed odds.
// Odds are a gross return multiplier (stake included) and must exceed 1.0.
type MarketOption struct {
	OptionID string  `json:"option_id"`
	Name     string  `json:"name"`
	Odds     float64 `json:"odds"`
}

// BettingMarket is a wagering pool tied to a tournament or match outcome
type BettingMarket struct {
	ID             string         `json:"id"`
	TournamentID   string         `json:"tournament_id"`
	TournamentName string         `json:"tournament_name"`
	Game           string         `json:"game"`
	MarketType     MarketType     `json:"market_type"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Options        []MarketOption `json:"options"`
	TotalPool      int            `json:"total_pool"`
	Status         MarketStatus   `json:"status"`
	ClosesAt       time.Time      `json:"closes_at"`
	SettlesAt      *time.Time     `json:"settles_at,omitempty"`
	WinningOption  *string        `json:"winning_option,omitempty"`
	MatchID        *string        `json:"match_id,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Option returns the market option with the given id, or nil
func (m *BettingMarket) Option(optionID string) *MarketOption {
	for i := range m.Options {
		if m.Options[i].OptionID == optionID {
			return &m.Options[i]
		}
	}
	return nil
}

// BetStatus is the lifecycle state of a placed bet
type BetStatus string

const (
	BetStatusActive    BetStatus = "active"
	BetStatusWon       BetStatus = "won"
	BetStatusLost      BetStatus = "lost"
	BetStatusCancelled BetStatus = "cancelled"
)

// Bet is a single user's stake on a market option.
// PotentialPayout is fixed at placement time: floor(amount * odds).
type Bet struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Username        string     `json:"user_name"`
	MarketID        string     `json:"market_id"`
	OptionID        string     `json:"option_id"`
	OptionName      string     `json:"option_name"`
	Amount          int        `json:"amount"`
	PotentialPayout int        `json:"potential_payout"`
	Odds            float64    `json:"odds"`
	Status          BetStatus  `json:"status"`
	PlacedAt        time.Time  `json:"placed_at"`
	SettledAt       *time.Time `json:"settled_at,omitempty"`
}

// OptionDistribution summarizes how stakes spread over one option
type OptionDistribution struct {
	BetCount    int `json:"bet_count"`
	TotalAmount int `json:"total_amount"`
}

// EnrichedMarket is a market plus aggregate bet statistics for listings
type EnrichedMarket struct {
	BettingMarket
	BetCount           int                           `json:"bet_count"`
	OptionDistribution map[string]OptionDistribution `json:"option_distribution"`
}

// SettlementResult reports the outcome of settling a market
type SettlementResult struct {
	MarketID      string `json:"market_id"`
	WinningOption string `json:"winning_option"`
	WinnersCount  int    `json:"winners_count"`
	TotalPayouts  int    `json:"total_payouts"`
}

// BettingStats aggregates one user's betting history
type BettingStats struct {
	UserID         string   `json:"user_id"`
	TotalBets      int      `json:"total_bets"`
	TotalAmountBet int      `json:"total_amount_bet"`
	WonBets        int      `json:"won_bets"`
	LostBets       int      `json:"lost_bets"`
	TotalWinnings  int      `json:"total_winnings"`
	TotalLosses    int      `json:"total_losses"`
	WinRate        float64  `json:"win_rate"`
	ProfitLoss     int      `json:"profit_loss"`
	BestBet        *BestBet `json:"best_bet,omitempty"`
}

// BestBet is the highest-payout won bet in a user's history
type BestBet struct {
	OptionName string  `json:"option_name"`
	Amount     int     `json:"amount"`
	Payout     int     `json:"payout"`
	Odds       float64 `json:"odds"`
}

// BettingLeaderboardEntry is one row of the bettor profit leaderboard
type BettingLeaderboardEntry struct {
	Rank           int     `json:"rank"`
	UserID         string  `json:"user_id"`
	Username       string  `json:"user_name"`
	TotalBets      int     `json:"total_bets"`
	TotalBetAmount int     `json:"total_bet_amount"`
	WonBets        int     `json:"won_bets"`
	TotalWinnings  int     `json:"total_winnings"`
	TotalLosses    int     `json:"total_losses"`
	ProfitLoss     int     `json:"profit_loss"`
	WinRate        float64 `json:"win_rate"`
}

// GamePopularity counts markets per game for global stats
type GamePopularity struct {
	Game    string `json:"game"`
	Markets int    `json:"markets"`
}

// BettingGlobalStats summarizes the betting system
type BettingGlobalStats struct {
	TotalMarkets  int              `json:"total_markets"`
	ActiveMarkets int              `json:"active_markets"`
	TotalBets     int              `json:"total_bets"`
	TotalPool     int              `json:"total_pool"`
	UniqueBettors int              `json:"unique_bettors"`
	Bets24h       int              `json:"bets_24h"`
	PopularGames  []GamePopularity `json:"popular_games"`
}

// MarketFilter narrows market listings
type MarketFilter struct {
	Status MarketStatus
	Game   string
	Limit  int
	Skip   int
}

// BetFilter narrows bet listings
type BetFilter struct {
	Status BetStatus
	Limit  int
	Skip   int
}
