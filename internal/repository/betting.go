package repository

import (
	"context"
	"time"

	"github.com/nexuslan/arena/internal/domain"
)

// Betting defines the interface for data access required by the betting service
type Betting interface {
	CreateMarket(ctx context.Context, market *domain.BettingMarket) error
	GetMarket(ctx context.Context, id string) (*domain.BettingMarket, error)
	ListMarkets(ctx context.Context, filter domain.MarketFilter) ([]domain.BettingMarket, error)

	// UpdateMarketStateIfMatches transitions the market to next only when its
	// current status is one of expected, returning rows affected. Zero rows
	// means a concurrent transition won.
	UpdateMarketStateIfMatches(ctx context.Context, id string, expected []domain.MarketStatus, next domain.MarketStatus) (int64, error)

	// MarkMarketSettled is the settlement CAS: it records the winning option
	// and settlement time while flipping status to settled.
	MarkMarketSettled(ctx context.Context, id, winningOption string, settledAt time.Time) (int64, error)

	ListBetsByMarket(ctx context.Context, marketID string, status domain.BetStatus) ([]domain.Bet, error)
	ListUserBets(ctx context.Context, userID string, filter domain.BetFilter) ([]domain.Bet, error)
	HasBetOnMarket(ctx context.Context, userID, marketID string) (bool, error)
	GetOptionDistribution(ctx context.Context, marketID string) (map[string]domain.OptionDistribution, error)
	GetLeaderboard(ctx context.Context, limit int) ([]domain.BettingLeaderboardEntry, error)
	GetGlobalStats(ctx context.Context) (*domain.BettingGlobalStats, error)

	BeginBetTx(ctx context.Context) (BetTx, error)
}

// BetTx extends Tx with the operations bet placement and settlement need,
// so stake debit, bet insert and pool update commit atomically.
type BetTx interface {
	Tx

	GetProfileForUpdate(ctx context.Context, userID string) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, profile *domain.UserProfile) error
	InsertTransaction(ctx context.Context, txn *domain.CoinTransaction) error

	CreateBet(ctx context.Context, bet *domain.Bet) error
	AddToMarketPool(ctx context.Context, marketID string, amount int) error

	// MarkBetSettled flips an active bet to status, returning rows affected.
	// Zero rows means the bet was already settled by a concurrent run.
	MarkBetSettled(ctx context.Context, betID string, status domain.BetStatus, settledAt time.Time) (int64, error)
}
