package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nexuslan/arena/internal/domain"
	"github.com/nexuslan/arena/internal/event"
)

func TestApplyXP_NoLevelUp(t *testing.T) {
	profile := &domain.UserProfile{Level: 1, XP: 0}

	levels, bonus := applyXP(profile, 50)

	assert.Equal(t, 0, levels)
	assert.Equal(t, 0, bonus)
	assert.Equal(t, 50, profile.XP)
	assert.Equal(t, 1, profile.Level)
}

func TestApplyXP_SingleLevelUp(t *testing.T) {
	// Level 1 -> 2 requires 100 XP; reaching level 2 pays 40 coins
	profile := &domain.UserProfile{Level: 1, XP: 90}

	levels, bonus := applyXP(profile, 20)

	assert.Equal(t, 1, levels)
	assert.Equal(t, 2*domain.LevelUpCoinsPerLevel, bonus)
	assert.Equal(t, 2, profile.Level)
	assert.Equal(t, 10, profile.XP)
}

func TestApplyXP_CascadingLevelUps(t *testing.T) {
	// 100 XP for level 2, then 150 for level 3
	profile := &domain.UserProfile{Level: 1, XP: 0}

	levels, bonus := applyXP(profile, 260)

	assert.Equal(t, 2, levels)
	assert.Equal(t, (2+3)*domain.LevelUpCoinsPerLevel, bonus)
	assert.Equal(t, 3, profile.Level)
	assert.Equal(t, 10, profile.XP)
}

func TestGetProfile_EmptyUserID(t *testing.T) {
	s := NewService(new(MockRepository), new(MockUserRepository), new(MockEventBus))

	profile, err := s.GetProfile(context.Background(), "", "alice")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, profile)
}

func TestGetProfile_SeedsOnFirstContact(t *testing.T) {
	repo := new(MockRepository)
	s := NewService(repo, new(MockUserRepository), new(MockEventBus))
	ctx := context.Background()

	seeded := &domain.UserProfile{UserID: "user1", Username: "alice", Coins: domain.StartingBalance, Level: 1}
	repo.On("GetOrCreateProfile", ctx, "user1", "alice").Return(seeded, nil)

	profile, err := s.GetProfile(ctx, "user1", "alice")

	assert.NoError(t, err)
	assert.Equal(t, domain.StartingBalance, profile.Coins)
	repo.AssertExpectations(t)
}

func TestCredit_Success(t *testing.T) {
	repo := new(MockRepository)
	bus := new(MockEventBus)
	s := NewService(repo, new(MockUserRepository), bus)
	ctx := context.Background()

	tx := new(MockLedgerTx)
	repo.On("BeginLedgerTx", ctx).Return(tx, nil)
	tx.On("GetProfileForUpdate", ctx, "user1").Return(&domain.UserProfile{UserID: "user1", Coins: 100, Level: 1}, nil)
	tx.On("InsertTransaction", ctx, mock.MatchedBy(func(txn *domain.CoinTransaction) bool {
		return txn.Amount == 50 && txn.Type == domain.TransactionBadgeReward && txn.BalanceAfter == 150
	})).Return(nil)
	tx.On("UpdateProfile", ctx, mock.MatchedBy(func(p *domain.UserProfile) bool {
		return p.Coins == 150 && p.TotalCoinsEarned == 50
	})).Return(nil)
	tx.On("Commit", ctx).Return(nil)
	tx.On("Rollback", ctx).Return(nil).Maybe()
	bus.On("Publish", ctx, mock.Anything).Return(nil)

	entry, err := s.Credit(ctx, CreditParams{
		UserID:      "user1",
		Amount:      50,
		Type:        domain.TransactionBadgeReward,
		Description: "Badge reward: First Blood",
	})

	assert.NoError(t, err)
	assert.Equal(t, 50, entry.Amount)
	assert.Equal(t, 150, entry.BalanceAfter)
	repo.AssertExpectations(t)
	tx.AssertExpectations(t)
}

func TestCredit_NegativeAmount(t *testing.T) {
	s := NewService(new(MockRepository), new(MockUserRepository), new(MockEventBus))

	entry, err := s.Credit(context.Background(), CreditParams{UserID: "user1", Amount: -10})

	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Nil(t, entry)
}

func TestCredit_XPTriggersLevelUpBonus(t *testing.T) {
	repo := new(MockRepository)
	bus := new(MockEventBus)
	s := NewService(repo, new(MockUserRepository), bus)
	ctx := context.Background()

	tx := new(MockLedgerTx)
	repo.On("BeginLedgerTx", ctx).Return(tx, nil)
	tx.On("GetProfileForUpdate", ctx, "user1").Return(&domain.UserProfile{UserID: "user1", Username: "alice", Coins: 0, Level: 1, XP: 95}, nil)
	// The grant itself, then the level up bonus as a separate entry
	tx.On("InsertTransaction", ctx, mock.MatchedBy(func(txn *domain.CoinTransaction) bool {
		return txn.Type == domain.TransactionDailyBonus && txn.Amount == 10
	})).Return(nil).Once()
	tx.On("InsertTransaction", ctx, mock.MatchedBy(func(txn *domain.CoinTransaction) bool {
		return txn.Type == domain.TransactionLevelUp && txn.Amount == 2*domain.LevelUpCoinsPerLevel
	})).Return(nil).Once()
	tx.On("UpdateProfile", ctx, mock.MatchedBy(func(p *domain.UserProfile) bool {
		return p.Level == 2 && p.XP == 5 && p.Coins == 10+2*domain.LevelUpCoinsPerLevel
	})).Return(nil)
	tx.On("Commit", ctx).Return(nil)
	tx.On("Rollback", ctx).Return(nil).Maybe()
	// CoinsEarned plus LevelUp
	bus.On("Publish", ctx, mock.Anything).Return(nil).Twice()

	_, err := s.Credit(ctx, CreditParams{
		UserID:      "user1",
		Amount:      10,
		XP:          10,
		Type:        domain.TransactionDailyBonus,
		Description: DescDailyBonus,
	})

	assert.NoError(t, err)
	tx.AssertExpectations(t)
	bus.AssertExpectations(t)
}

func TestClaimDailyBonus_Success(t *testing.T) {
	repo := new(MockRepository)
	users := new(MockUserRepository)
	bus := new(MockEventBus)
	s := NewService(repo, users, bus)
	ctx := context.Background()

	tx := new(MockLedgerTx)
	repo.On("GetOrCreateProfile", ctx, "user1", "alice").Return(&domain.UserProfile{UserID: "user1", Username: "alice"}, nil)
	users.On("RecordLogin", ctx, "user1", mock.Anything).Return(nil)
	repo.On("BeginLedgerTx", ctx).Return(tx, nil)
	tx.On("GetProfileForUpdate", ctx, "user1").Return(&domain.UserProfile{UserID: "user1", Username: "alice", Coins: 100, Level: 3}, nil)
	tx.On("InsertTransaction", ctx, mock.MatchedBy(func(txn *domain.CoinTransaction) bool {
		// Bonus pays base plus level
		return txn.Type == domain.TransactionDailyBonus && txn.Amount == domain.DailyBonusBase+3
	})).Return(nil)
	tx.On("UpdateProfile", ctx, mock.MatchedBy(func(p *domain.UserProfile) bool {
		return p.LastDailyBonus != nil
	})).Return(nil)
	tx.On("Commit", ctx).Return(nil)
	tx.On("Rollback", ctx).Return(nil).Maybe()
	bus.On("Publish", ctx, mock.Anything).Return(nil)

	result, err := s.ClaimDailyBonus(ctx, "user1", "alice")

	assert.NoError(t, err)
	assert.Equal(t, domain.DailyBonusBase+3, result.CoinsAwarded)
	assert.Equal(t, domain.DailyBonusXP, result.XPAwarded)
	assert.False(t, result.LeveledUp)
	repo.AssertExpectations(t)
	users.AssertExpectations(t)
	tx.AssertExpectations(t)
	bus.AssertCalled(t, "Publish", ctx, mock.MatchedBy(func(evt event.Event) bool {
		return evt.Type == event.UserLoggedIn
	}))
}

func TestClaimDailyBonus_AlreadyClaimedToday(t *testing.T) {
	repo := new(MockRepository)
	users := new(MockUserRepository)
	bus := new(MockEventBus)
	s := NewService(repo, users, bus)
	ctx := context.Background()

	claimed := time.Now().UTC()
	tx := new(MockLedgerTx)
	repo.On("GetOrCreateProfile", ctx, "user1", "alice").Return(&domain.UserProfile{UserID: "user1"}, nil)
	users.On("RecordLogin", ctx, "user1", mock.Anything).Return(nil)
	// The login event still fires even when the bonus was already claimed
	bus.On("Publish", ctx, mock.MatchedBy(func(evt event.Event) bool {
		return evt.Type == event.UserLoggedIn
	})).Return(nil)
	repo.On("BeginLedgerTx", ctx).Return(tx, nil)
	tx.On("GetProfileForUpdate", ctx, "user1").Return(&domain.UserProfile{UserID: "user1", LastDailyBonus: &claimed}, nil)
	tx.On("Rollback", ctx).Return(nil)

	result, err := s.ClaimDailyBonus(ctx, "user1", "alice")

	assert.ErrorIs(t, err, domain.ErrBonusAlreadyClaimed)
	assert.Nil(t, result)
	tx.AssertNotCalled(t, "Commit", ctx)
	bus.AssertExpectations(t)
}

func TestClaimDailyBonus_ClaimedYesterday(t *testing.T) {
	repo := new(MockRepository)
	users := new(MockUserRepository)
	bus := new(MockEventBus)
	s := NewService(repo, users, bus)
	ctx := context.Background()

	yesterday := time.Now().UTC().Add(-25 * time.Hour)
	tx := new(MockLedgerTx)
	repo.On("GetOrCreateProfile", ctx, "user1", "alice").Return(&domain.UserProfile{UserID: "user1"}, nil)
	users.On("RecordLogin", ctx, "user1", mock.Anything).Return(nil)
	repo.On("BeginLedgerTx", ctx).Return(tx, nil)
	tx.On("GetProfileForUpdate", ctx, "user1").Return(&domain.UserProfile{UserID: "user1", Level: 1, LastDailyBonus: &yesterday}, nil)
	tx.On("InsertTransaction", ctx, mock.Anything).Return(nil)
	tx.On("UpdateProfile", ctx, mock.Anything).Return(nil)
	tx.On("Commit", ctx).Return(nil)
	tx.On("Rollback", ctx).Return(nil).Maybe()
	bus.On("Publish", ctx, mock.Anything).Return(nil)

	result, err := s.ClaimDailyBonus(ctx, "user1", "alice")

	assert.NoError(t, err)
	assert.NotNil(t, result)
}

func TestSameUTCDay(t *testing.T) {
	base := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)

	assert.True(t, sameUTCDay(base, base.Add(10*time.Minute)))
	assert.False(t, sameUTCDay(base, base.Add(time.Hour)))
	assert.True(t, sameUTCDay(base, base.In(time.FixedZone("plus2", 2*3600))))
}

func TestAdminGiveCoins_RejectsNonPositive(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetUser", mock.Anything, "admin1").
		Return(&domain.User{ID: "admin1", IsAdmin: true}, nil)
	s := NewService(new(MockRepository), users, new(MockEventBus))

	for _, amount := range []int{0, -5} {
		entry, err := s.AdminGiveCoins(context.Background(), "admin1", "user1", amount, "because")
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		assert.Nil(t, entry)
	}
}

func TestAdminGiveCoins_NonAdminForbidden(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetUser", mock.Anything, "regular1").
		Return(&domain.User{ID: "regular1"}, nil)
	s := NewService(new(MockRepository), users, new(MockEventBus))

	entry, err := s.AdminGiveCoins(context.Background(), "regular1", "user1", 50, "because")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, entry)
}

func TestGetTournamentResults(t *testing.T) {
	users := new(MockUserRepository)
	s := NewService(new(MockRepository), users, new(MockEventBus))
	ctx := context.Background()

	recorded := []domain.TournamentResult{
		{UserID: "user1", TournamentID: "tourney1", Placement: 1},
		{UserID: "user2", TournamentID: "tourney1", Placement: 2},
	}
	users.On("GetTournamentResults", ctx, "tourney1").Return(recorded, nil)
	users.On("GetTournamentResults", ctx, "ghost").Return([]domain.TournamentResult{}, nil)

	results, err := s.GetTournamentResults(ctx, "tourney1")
	assert.NoError(t, err)
	assert.Len(t, results, 2)

	_, err = s.GetTournamentResults(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrTournamentNotFound)

	_, err = s.GetTournamentResults(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDistributeTournamentRewards_Success(t *testing.T) {
	repo := new(MockRepository)
	users := new(MockUserRepository)
	bus := new(MockEventBus)
	s := NewService(repo, users, bus)
	ctx := context.Background()

	results := []TournamentFinish{
		{UserID: "user1", Username: "alice", Placement: 1},
		{UserID: "user2", Username: "bob", Placement: 2},
	}

	repo.On("GetOrCreateProfile", ctx, mock.Anything, mock.Anything).Return(&domain.UserProfile{Level: 1}, nil)
	users.On("RecordTournamentResult", ctx, mock.Anything).Return(true, nil)

	tx := new(MockLedgerTx)
	repo.On("BeginLedgerTx", ctx).Return(tx, nil)
	tx.On("GetProfileForUpdate", ctx, "user1").Return(&domain.UserProfile{UserID: "user1", Level: 1}, nil)
	tx.On("GetProfileForUpdate", ctx, "user2").Return(&domain.UserProfile{UserID: "user2", Level: 1}, nil)
	tx.On("InsertTransaction", ctx, mock.Anything).Return(nil)
	tx.On("UpdateProfile", ctx, mock.Anything).Return(nil)
	tx.On("Commit", ctx).Return(nil)
	tx.On("Rollback", ctx).Return(nil).Maybe()
	bus.On("Publish", ctx, mock.Anything).Return(nil)

	rewards, err := s.DistributeTournamentRewards(ctx, "tourney1", "quake", results)

	assert.NoError(t, err)
	assert.Len(t, rewards, 2)
	// Two entrants is a small field
	assert.Equal(t, domain.ParticipationCoinsBase+domain.VictoryCoinsBase, rewards[0].CoinsAwarded)
	assert.Equal(t, domain.ParticipationXP+domain.VictoryXP, rewards[0].XPAwarded)
	assert.Equal(t, domain.ParticipationCoinsBase, rewards[1].CoinsAwarded)
	assert.Equal(t, domain.ParticipationXP, rewards[1].XPAwarded)
	users.AssertExpectations(t)
}

func TestDistributeTournamentRewards_SkipsAlreadyRecorded(t *testing.T) {
	repo := new(MockRepository)
	users := new(MockUserRepository)
	bus := new(MockEventBus)
	s := NewService(repo, users, bus)
	ctx := context.Background()

	results := []TournamentFinish{
		{UserID: "user1", Username: "alice", Placement: 1},
		{UserID: "user2", Username: "bob", Placement: 2},
	}

	repo.On("GetOrCreateProfile", ctx, mock.Anything, mock.Anything).Return(&domain.UserProfile{Level: 1}, nil)
	// user1 was rewarded by a previous ingest of the same tournament
	users.On("RecordTournamentResult", ctx, mock.MatchedBy(func(r *domain.TournamentResult) bool {
		return r.UserID == "user1"
	})).Return(false, nil)
	users.On("RecordTournamentResult", ctx, mock.MatchedBy(func(r *domain.TournamentResult) bool {
		return r.UserID == "user2"
	})).Return(true, nil)

	tx := new(MockLedgerTx)
	repo.On("BeginLedgerTx", ctx).Return(tx, nil)
	tx.On("GetProfileForUpdate", ctx, "user2").Return(&domain.UserProfile{UserID: "user2", Level: 1}, nil)
	tx.On("InsertTransaction", ctx, mock.Anything).Return(nil)
	tx.On("UpdateProfile", ctx, mock.Anything).Return(nil)
	tx.On("Commit", ctx).Return(nil)
	tx.On("Rollback", ctx).Return(nil).Maybe()
	bus.On("Publish", ctx, mock.Anything).Return(nil)

	rewards, err := s.DistributeTournamentRewards(ctx, "tourney1", "quake", results)

	assert.NoError(t, err)
	assert.Len(t, rewards, 1)
	assert.Equal(t, "user2", rewards[0].UserID)
	tx.AssertNotCalled(t, "GetProfileForUpdate", ctx, "user1")
}

func TestDistributeTournamentRewards_InvalidInput(t *testing.T) {
	s := NewService(new(MockRepository), new(MockUserRepository), new(MockEventBus))

	_, err := s.DistributeTournamentRewards(context.Background(), "", "quake", []TournamentFinish{{UserID: "u", Placement: 1}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.DistributeTournamentRewards(context.Background(), "tourney1", "quake", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetRichest_ClampsLimit(t *testing.T) {
	repo := new(MockRepository)
	s := NewService(repo, new(MockUserRepository), new(MockEventBus))
	ctx := context.Background()

	repo.On("GetRichest", ctx, DefaultLeaderboardLimit).Return([]domain.RichestEntry{}, nil).Once()
	repo.On("GetRichest", ctx, MaxLeaderboardLimit).Return([]domain.RichestEntry{}, nil).Once()

	_, err := s.GetRichest(ctx, -1)
	assert.NoError(t, err)
	_, err = s.GetRichest(ctx, 5000)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
