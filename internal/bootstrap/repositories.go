package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexuslan/arena/internal/database/postgres"
	"github.com/nexuslan/arena/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Ledger      repository.Ledger
	Betting     repository.Betting
	Badge       repository.Badge
	Stats       repository.Stats
	User        repository.User
	Marketplace repository.Marketplace
	Activity    repository.Activity
}

// InitializeRepositories creates all repository implementations
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Ledger:      postgres.NewLedgerRepository(dbPool),
		Betting:     postgres.NewBettingRepository(dbPool),
		Badge:       postgres.NewBadgeRepository(dbPool),
		Stats:       postgres.NewStatsRepository(dbPool),
		User:        postgres.NewUserRepository(dbPool),
		Marketplace: postgres.NewMarketplaceRepository(dbPool),
		Activity:    postgres.NewActivityRepository(dbPool),
	}
}
