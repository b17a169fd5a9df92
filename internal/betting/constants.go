package betting

// Odds bounds. Odds are gross return multipliers, so anything at or below
// 1.0 could never pay out more than the stake.
const (
	MinOdds = 1.01
	MaxOdds = 100.0
)

// Market constraints
const (
	MinMarketOptions = 2
)

// Leaderboard limits
const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

// Transaction descriptions
const (
	DescBetPlaced = "Bet placed: "
	DescBetWon    = "Bet won: "
	DescBetRefund = "Bet refunded: "
)

// Log messages
const (
	LogMsgMarketCreated   = "Betting market created"
	LogMsgMarketClosed    = "Betting market closed"
	LogMsgMarketCancelled = "Betting market cancelled"
	LogMsgMarketSettled   = "Betting market settled"
	LogMsgBetPlaced       = "Bet placed"
	LogMsgBetSkipped      = "Bet already settled, skipping"
	LogMsgPayoutFailed    = "Failed to pay out winning bet"
)
