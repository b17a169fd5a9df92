package ledger

// Transaction descriptions
const (
	DescDailyBonus    = "Daily bonus"
	DescLevelUp       = "Level up bonus"
	DescAdminGrant    = "Admin grant"
	DescParticipation = "Tournament participation"
	DescVictory       = "Tournament victory"
)

// Leaderboard limits
const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

// Log messages
const (
	LogMsgBonusClaimed       = "Daily bonus claimed"
	LogMsgLevelUp            = "User leveled up"
	LogMsgRewardsDistributed = "Tournament rewards distributed"
)
