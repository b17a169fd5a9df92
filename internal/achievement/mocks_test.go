package achievement

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/nexuslan/arena/internal/domain"
	"github.com/nexuslan/arena/internal/event"
	"github.com/nexuslan/arena/internal/ledger"
)

// MockBadgeRepository
type MockBadgeRepository struct {
	mock.Mock
}

func (m *MockBadgeRepository) AwardBadge(ctx context.Context, award *domain.UserBadge, stackable bool) (bool, error) {
	args := m.Called(ctx, award, stackable)
	return args.Bool(0), args.Error(1)
}

func (m *MockBadgeRepository) HasBadge(ctx context.Context, userID, badgeID string) (bool, error) {
	args := m.Called(ctx, userID, badgeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBadgeRepository) ListUserBadges(ctx context.Context, userID string) ([]domain.UserBadge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserBadge), args.Error(1)
}

func (m *MockBadgeRepository) ListAllAwards(ctx context.Context) ([]domain.UserBadge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserBadge), args.Error(1)
}

func (m *MockBadgeRepository) CountAwardsByBadge(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockBadgeRepository) CountUsersWithBadges(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockBadgeRepository) GetLeaderboard(ctx context.Context, limit int) ([]domain.BadgeLeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BadgeLeaderboardEntry), args.Error(1)
}

// MockStatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) CountTournamentWins(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountTournamentsPlayed(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountTournamentsPlayedByGame(ctx context.Context, userID, game string) (int, error) {
	args := m.Called(ctx, userID, game)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountPurchases(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountComments(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountBetsPlaced(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountBetsWon(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountUniqueItemsOwned(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) LongestBetWinStreak(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) ListLoginDays(ctx context.Context, userID string, limit int) ([]time.Time, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockStatsRepository) RegistrationRank(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
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
