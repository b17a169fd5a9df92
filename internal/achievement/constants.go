package achievement

import "time"

// Cache configuration
const (
	// CacheSchemaVersion is bumped when cached aggregate shapes change
	CacheSchemaVersion = "1.0"

	CacheSize = 64
	CacheTTL  = time.Minute
)

// TriggerManualCheck marks awards produced by the on-demand check endpoint
// rather than an event.
const TriggerManualCheck = "manual_check"

// Leaderboard limits
const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
	PopularBadgesLimit      = 5
)

// Log messages
const (
	LogMsgBadgeAwarded     = "Badge awarded"
	LogMsgCriteriaCheck    = "Badge criteria evaluation failed"
	LogMsgRewardFailed     = "Failed to credit badge rewards"
	LogMsgAdminBadgeGrant  = "Badge granted by admin"
	LogMsgEventCheckFailed = "Event-driven badge check failed"
	LogMsgCommentRecorded  = "Comment recorded"
	DescBadgeEarnedPrefix  = "Badge earned: "
)
