package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nexuslan/arena/internal/betting"
	"github.com/nexuslan/arena/internal/domain"
	"github.com/nexuslan/arena/internal/ledger"
)

// MockBettingService
type MockBettingService struct {
	mock.Mock
}

func (m *MockBettingService) CreateMarket(ctx context.Context, actorID string, params betting.CreateMarketParams) (*domain.BettingMarket, error) {
	args := m.Called(ctx, actorID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BettingMarket), args.Error(1)
}

func (m *MockBettingService) GetMarket(ctx context.Context, marketID string) (*domain.EnrichedMarket, error) {
	args := m.Called(ctx, marketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnrichedMarket), args.Error(1)
}

func (m *MockBettingService) ListMarkets(ctx context.Context, filter domain.MarketFilter) ([]domain.EnrichedMarket, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EnrichedMarket), args.Error(1)
}

func (m *MockBettingService) PlaceBet(ctx context.Context, params betting.PlaceBetParams) (*domain.Bet, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bet), args.Error(1)
}

func (m *MockBettingService) ListUserBets(ctx context.Context, userID string, filter domain.BetFilter) ([]domain.Bet, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bet), args.Error(1)
}

func (m *MockBettingService) GetUserStats(ctx context.Context, userID string) (*domain.BettingStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BettingStats), args.Error(1)
}

func (m *MockBettingService) CloseMarket(ctx context.Context, actorID, marketID string) error {
	args := m.Called(ctx, actorID, marketID)
	return args.Error(0)
}

func (m *MockBettingService) CancelMarket(ctx context.Context, actorID, marketID string) error {
	args := m.Called(ctx, actorID, marketID)
	return args.Error(0)
}

func (m *MockBettingService) Settle(ctx context.Context, actorID, marketID, winningOption string) (*domain.SettlementResult, error) {
	args := m.Called(ctx, actorID, marketID, winningOption)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementResult), args.Error(1)
}

func (m *MockBettingService) Leaderboard(ctx context.Context, limit int) ([]domain.BettingLeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BettingLeaderboardEntry), args.Error(1)
}

func (m *MockBettingService) GlobalStats(ctx context.Context) (*domain.BettingGlobalStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BettingGlobalStats), args.Error(1)
}

// MockLedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetProfile(ctx context.Context, userID, username string) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockLedgerService) GetBalance(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.CoinTransaction, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CoinTransaction), args.Error(1)
}

func (m *MockLedgerService) Credit(ctx context.Context, params ledger.CreditParams) (*domain.CoinTransaction, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CoinTransaction), args.Error(1)
}

func (m *MockLedgerService) ClaimDailyBonus(ctx context.Context, userID, username string) (*domain.DailyBonusResult, error) {
	args := m.Called(ctx, userID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyBonusResult), args.Error(1)
}

func (m *MockLedgerService) GetRichest(ctx context.Context, limit int) ([]domain.RichestEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RichestEntry), args.Error(1)
}

func (m *MockLedgerService) AdminGiveCoins(ctx context.Context, actorID, userID string, amount int, reason string) (*domain.CoinTransaction, error) {
	args := m.Called(ctx, actorID, userID, amount, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CoinTransaction), args.Error(1)
}

func (m *MockLedgerService) DistributeTournamentRewards(ctx context.Context, tournamentID, game string, results []ledger.TournamentFinish) ([]domain.TournamentReward, error) {
	args := m.Called(ctx, tournamentID, game, results)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TournamentReward), args.Error(1)
}

func (m *MockLedgerService) GetTournamentResults(ctx context.Context, tournamentID string) ([]domain.TournamentResult, error) {
	args := m.Called(ctx, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TournamentResult), args.Error(1)
}
