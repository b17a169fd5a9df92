package betting

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/nexuslan/arena/internal/domain"
	"github.com/nexuslan/arena/internal/event"
	"github.com/nexuslan/arena/internal/ledger"
	"github.com/nexuslan/arena/internal/repository"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateMarket(ctx context.Context, market *domain.BettingMarket) error {
	args := m.Called(ctx, market)
	return args.Error(0)
}

func (m *MockRepository) GetMarket(ctx context.Context, id string) (*domain.BettingMarket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BettingMarket), args.Error(1)
}

func (m *MockRepository) ListMarkets(ctx context.Context, filter domain.MarketFilter) ([]domain.BettingMarket, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BettingMarket), args.Error(1)
}

func (m *MockRepository) UpdateMarketStateIfMatches(ctx context.Context, id string, expected []domain.MarketStatus, next domain.MarketStatus) (int64, error) {
	args := m.Called(ctx, id, expected, next)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) MarkMarketSettled(ctx context.Context, id, winningOption string, settledAt time.Time) (int64, error) {
	args := m.Called(ctx, id, winningOption, settledAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ListBetsByMarket(ctx context.Context, marketID string, status domain.BetStatus) ([]domain.Bet, error) {
	args := m.Called(ctx, marketID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bet), args.Error(1)
}

func (m *MockRepository) ListUserBets(ctx context.Context, userID string, filter domain.BetFilter) ([]domain.Bet, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bet), args.Error(1)
}

func (m *MockRepository) HasBetOnMarket(ctx context.Context, userID, marketID string) (bool, error) {
	args := m.Called(ctx, userID, marketID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) GetOptionDistribution(ctx context.Context, marketID string) (map[string]domain.OptionDistribution, error) {
	args := m.Called(ctx, marketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.OptionDistribution), args.Error(1)
}

func (m *MockRepository) GetLeaderboard(ctx context.Context, limit int) ([]domain.BettingLeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BettingLeaderboardEntry), args.Error(1)
}

func (m *MockRepository) GetGlobalStats(ctx context.Context) (*domain.BettingGlobalStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BettingGlobalStats), args.Error(1)
}

func (m *MockRepository) BeginBetTx(ctx context.Context) (repository.BetTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.BetTx), args.Error(1)
}

// MockBetTx
type MockBetTx struct {
	mock.Mock
}

func (m *MockBetTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBetTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBetTx) GetProfileForUpdate(ctx context.Context, userID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockBetTx) UpdateProfile(ctx context.Context, profile *domain.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockBetTx) InsertTransaction(ctx context.Context, txn *domain.CoinTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockBetTx) CreateBet(ctx context.Context, bet *domain.Bet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockBetTx) AddToMarketPool(ctx context.Context, marketID string, amount int) error {
	args := m.Called(ctx, marketID, amount)
	return args.Error(0)
}

func (m *MockBetTx) MarkBetSettled(ctx context.Context, betID string, status domain.BetStatus, settledAt time.Time) (int64, error) {
	args := m.Called(ctx, betID, status, settledAt)
	return args.Get(0).(int64), args.Error(1)
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

// MockEventBus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpsertUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) RecordLogin(ctx context.Context, userID string, day time.Time) error {
	args := m.Called(ctx, userID, day)
	return args.Error(0)
}

func (m *MockUserRepository) RecordComment(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockUserRepository) RecordTournamentResult(ctx context.Context, result *domain.TournamentResult) (bool, error) {
	args := m.Called(ctx, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GetTournamentResults(ctx context.Context, tournamentID string) ([]domain.TournamentResult, error) {
	args := m.Called(ctx, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TournamentResult), args.Error(1)
}
