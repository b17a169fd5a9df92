package achievement

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/nexuslan/arena/internal/domain"
)

// cachedAggregate wraps a cached aggregate with its schema version so stale
// shapes invalidate themselves after a deploy.
type cachedAggregate[T any] struct {
	Version string
	Value   T
}

// aggregateCache memoizes the expensive leaderboard and stats aggregations
// with time-based expiration.
type aggregateCache struct {
	leaderboard *expirable.LRU[int, cachedAggregate[[]domain.BadgeLeaderboardEntry]]
	globalStats *expirable.LRU[string, cachedAggregate[*domain.BadgeGlobalStats]]
}

func newAggregateCache(size int, ttl time.Duration) *aggregateCache {
	return &aggregateCache{
		leaderboard: expirable.NewLRU[int, cachedAggregate[[]domain.BadgeLeaderboardEntry]](size, nil, ttl),
		globalStats: expirable.NewLRU[string, cachedAggregate[*domain.BadgeGlobalStats]](size, nil, ttl),
	}
}

func (c *aggregateCache) getLeaderboard(limit int) ([]domain.BadgeLeaderboardEntry, bool) {
	entry, ok := c.leaderboard.Get(limit)
	if !ok || entry.Version != CacheSchemaVersion {
		return nil, false
	}
	return entry.Value, true
}

func (c *aggregateCache) putLeaderboard(limit int, entries []domain.BadgeLeaderboardEntry) {
	c.leaderboard.Add(limit, cachedAggregate[[]domain.BadgeLeaderboardEntry]{Version: CacheSchemaVersion, Value: entries})
}

func (c *aggregateCache) getGlobalStats() (*domain.BadgeGlobalStats, bool) {
	entry, ok := c.globalStats.Get(CacheSchemaVersion)
	if !ok || entry.Version != CacheSchemaVersion {
		return nil, false
	}
	return entry.Value, true
}

func (c *aggregateCache) putGlobalStats(stats *domain.BadgeGlobalStats) {
	c.globalStats.Add(CacheSchemaVersion, cachedAggregate[*domain.BadgeGlobalStats]{Version: CacheSchemaVersion, Value: stats})
}
