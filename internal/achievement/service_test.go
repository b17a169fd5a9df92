package achievement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nexuslan/arena/internal/domain"
	"github.com/nexuslan/arena/internal/event"
	"github.com/nexuslan/arena/internal/ledger"
)

func testRegistry() *Registry {
	return NewRegistry([]domain.Badge{
		{
			ID: "first_win", Name: "First Victory",
			Category: domain.CategoryGaming, Rarity: domain.RarityCommon,
			Criteria: map[string]int{CriterionTournamentWins: 1},
			XPReward: 100, CoinsReward: 50,
		},
		{
			ID: "veteran", Name: "Veteran",
			Category: domain.CategoryGaming, Rarity: domain.RarityEpic,
			Criteria: map[string]int{CriterionTournamentsPlayed: 20},
			XPReward: 300, CoinsReward: 150,
		},
		{
			ID: "shadow", Name: "Shadow",
			Category: domain.CategorySpecial, Rarity: domain.RarityMythic,
			Criteria: map[string]int{CriterionReferrals: 10},
			Hidden:   true,
		},
	})
}

const testAdminID = "admin1"

func adminUsers() *MockUserRepository {
	users := new(MockUserRepository)
	users.On("GetUser", mock.Anything, testAdminID).
		Return(&domain.User{ID: testAdminID, Username: "admin", IsAdmin: true}, nil).Maybe()
	return users
}

func newBadgeTestService(repo *MockBadgeRepository, stats *MockStatsRepository, ledgerSvc *MockLedgerService, bus *MockEventBus) Service {
	return NewService(testRegistry(), repo, stats, adminUsers(), ledgerSvc, bus)
}

func TestCheckAndAward_AwardsMetBadge(t *testing.T) {
	repo := new(MockBadgeRepository)
	stats := new(MockStatsRepository)
	ledgerSvc := new(MockLedgerService)
	bus := new(MockEventBus)
	s := newBadgeTestService(repo, stats, ledgerSvc, bus)
	ctx := context.Background()

	stats.On("GetProfile", ctx, "user1").Return(&domain.UserProfile{UserID: "user1", Username: "alice"}, nil)
	repo.On("ListUserBadges", ctx, "user1").Return([]domain.UserBadge{}, nil)
	stats.On("CountTournamentWins", ctx, "user1").Return(1, nil)
	stats.On("CountTournamentsPlayed", ctx, "user1").Return(2, nil)

	repo.On("AwardBadge", ctx, mock.MatchedBy(func(a *domain.UserBadge) bool {
		return a.BadgeID == "first_win" && a.UserID == "user1"
	}), false).Return(true, nil)
	ledgerSvc.On("Credit", ctx, mock.MatchedBy(func(p ledger.CreditParams) bool {
		return p.Amount == 50 && p.XP == 100 && p.Type == domain.TransactionBadgeReward
	})).Return(&domain.CoinTransaction{}, nil)
	bus.On("Publish", ctx, mock.Anything).Return(nil)

	earned, err := s.CheckAndAward(ctx, "user1", "", nil)

	assert.NoError(t, err)
	assert.Len(t, earned, 1)
	assert.Equal(t, "first_win", earned[0].ID)
	repo.AssertExpectations(t)
	ledgerSvc.AssertExpectations(t)
	bus.AssertExpectations(t)
}

func TestCheckAndAward_SkipsHeldBadges(t *testing.T) {
	repo := new(MockBadgeRepository)
	stats := new(MockStatsRepository)
	s := newBadgeTestService(repo, stats, new(MockLedgerService), new(MockEventBus))
	ctx := context.Background()

	stats.On("GetProfile", ctx, "user1").Return(&domain.UserProfile{UserID: "user1", Username: "alice"}, nil)
	repo.On("ListUserBadges", ctx, "user1").Return([]domain.UserBadge{{BadgeID: "first_win"}}, nil)
	stats.On("CountTournamentsPlayed", ctx, "user1").Return(2, nil)

	earned, err := s.CheckAndAward(ctx, "user1", "", nil)

	assert.NoError(t, err)
	assert.Empty(t, earned)
	// The held badge's criteria are never evaluated
	stats.AssertNotCalled(t, "CountTournamentWins", ctx, "user1")
}

func TestCheckAndAward_LostRaceIsNotReported(t *testing.T) {
	repo := new(MockBadgeRepository)
	stats := new(MockStatsRepository)
	s := newBadgeTestService(repo, stats, new(MockLedgerService), new(MockEventBus))
	ctx := context.Background()

	stats.On("GetProfile", ctx, "user1").Return(&domain.UserProfile{UserID: "user1", Username: "alice"}, nil)
	repo.On("ListUserBadges", ctx, "user1").Return([]domain.UserBadge{}, nil)
	stats.On("CountTournamentWins", ctx, "user1").Return(1, nil)
	stats.On("CountTournamentsPlayed", ctx, "user1").Return(0, nil)
	// A concurrent check inserted the badge first
	repo.On("AwardBadge", ctx, mock.Anything, false).Return(false, nil)

	earned, err := s.CheckAndAward(ctx, "user1", "", nil)

	assert.NoError(t, err)
	assert.Empty(t, earned)
}

func TestListAvailableBadges_Filters(t *testing.T) {
	s := newBadgeTestService(new(MockBadgeRepository), new(MockStatsRepository), new(MockLedgerService), new(MockEventBus))
	ctx := context.Background()

	visible, err := s.ListAvailableBadges(ctx, "", domain.BadgeFilter{})
	assert.NoError(t, err)
	assert.Len(t, visible, 2)
	for _, b := range visible {
		assert.False(t, b.Hidden)
	}

	all, err := s.ListAvailableBadges(ctx, "", domain.BadgeFilter{IncludeHidden: true})
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	epics, err := s.ListAvailableBadges(ctx, "", domain.BadgeFilter{Rarity: domain.RarityEpic})
	assert.NoError(t, err)
	assert.Len(t, epics, 1)
	assert.Equal(t, "veteran", epics[0].ID)
}

func TestGetProgress_UnknownBadge(t *testing.T) {
	s := newBadgeTestService(new(MockBadgeRepository), new(MockStatsRepository), new(MockLedgerService), new(MockEventBus))

	progress, err := s.GetProgress(context.Background(), "user1", "no_such_badge")

	assert.ErrorIs(t, err, domain.ErrBadgeNotFound)
	assert.Nil(t, progress)
}

func TestGetProgress_ReportsPartialCompletion(t *testing.T) {
	repo := new(MockBadgeRepository)
	stats := new(MockStatsRepository)
	s := newBadgeTestService(repo, stats, new(MockLedgerService), new(MockEventBus))
	ctx := context.Background()

	stats.On("CountTournamentsPlayed", ctx, "user1").Return(12, nil)

	progress, err := s.GetProgress(ctx, "user1", "veteran")

	assert.NoError(t, err)
	assert.False(t, progress.Completed)
	assert.Equal(t, 0.0, progress.OverallProgress)
	crit := progress.Criteria[CriterionTournamentsPlayed]
	assert.Equal(t, 12, crit.Current)
	assert.Equal(t, 20, crit.Required)
	assert.False(t, crit.Completed)
}

func TestGetProgress_AdminOnlyCriterionNeverCompletes(t *testing.T) {
	s := newBadgeTestService(new(MockBadgeRepository), new(MockStatsRepository), new(MockLedgerService), new(MockEventBus))

	progress, err := s.GetProgress(context.Background(), "user1", "shadow")

	assert.NoError(t, err)
	assert.False(t, progress.Completed)
	assert.False(t, progress.Criteria[CriterionReferrals].Completed)
}

func TestAdminAward_UnknownBadge(t *testing.T) {
	s := newBadgeTestService(new(MockBadgeRepository), new(MockStatsRepository), new(MockLedgerService), new(MockEventBus))

	earned, err := s.AdminAward(context.Background(), testAdminID, "user1", "no_such_badge")

	assert.ErrorIs(t, err, domain.ErrBadgeNotFound)
	assert.Nil(t, earned)
}

func TestAdminAward_AlreadyHeld(t *testing.T) {
	repo := new(MockBadgeRepository)
	stats := new(MockStatsRepository)
	s := newBadgeTestService(repo, stats, new(MockLedgerService), new(MockEventBus))
	ctx := context.Background()

	stats.On("GetProfile", ctx, "user1").Return(&domain.UserProfile{UserID: "user1", Username: "alice"}, nil)
	repo.On("AwardBadge", ctx, mock.Anything, false).Return(false, nil)

	earned, err := s.AdminAward(ctx, testAdminID, "user1", "first_win")

	assert.ErrorIs(t, err, domain.ErrBadgeAlreadyHeld)
	assert.Nil(t, earned)
}

func TestAdminAward_Success(t *testing.T) {
	repo := new(MockBadgeRepository)
	stats := new(MockStatsRepository)
	ledgerSvc := new(MockLedgerService)
	bus := new(MockEventBus)
	s := newBadgeTestService(repo, stats, ledgerSvc, bus)
	ctx := context.Background()

	stats.On("GetProfile", ctx, "user1").Return(&domain.UserProfile{UserID: "user1", Username: "alice"}, nil)
	repo.On("AwardBadge", ctx, mock.MatchedBy(func(a *domain.UserBadge) bool {
		return a.Metadata["awarded_by_admin"] == true && a.Metadata["awarded_by"] == testAdminID
	}), false).Return(true, nil)
	ledgerSvc.On("Credit", ctx, mock.Anything).Return(&domain.CoinTransaction{}, nil)
	bus.On("Publish", ctx, mock.Anything).Return(nil)
	repo.On("ListUserBadges", ctx, "user1").Return([]domain.UserBadge{
		{ID: "award1", UserID: "user1", BadgeID: "first_win", Count: 1},
	}, nil)

	earned, err := s.AdminAward(ctx, testAdminID, "user1", "first_win")

	assert.NoError(t, err)
	assert.Equal(t, "first_win", earned.Badge.ID)
	assert.Equal(t, "award1", earned.UserBadgeID)
	repo.AssertExpectations(t)
}

func TestGlobalStats_Aggregation(t *testing.T) {
	repo := new(MockBadgeRepository)
	s := newBadgeTestService(repo, new(MockStatsRepository), new(MockLedgerService), new(MockEventBus))
	ctx := context.Background()

	repo.On("CountAwardsByBadge", ctx).Return(map[string]int{
		"first_win": 6,
		"veteran":   2,
	}, nil)
	repo.On("CountUsersWithBadges", ctx).Return(4, nil)

	stats, err := s.GlobalStats(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 3, stats.TotalBadgesAvailable)
	assert.Equal(t, 8, stats.TotalBadgesEarned)
	assert.Equal(t, 4, stats.UsersWithBadges)
	assert.Equal(t, 2.0, stats.AverageBadgesPerUser)
	assert.Equal(t, 6, stats.RarityDistribution[domain.RarityCommon])
	assert.Equal(t, 2, stats.RarityDistribution[domain.RarityEpic])
	assert.Len(t, stats.MostPopularBadges, 2)
	assert.Equal(t, "First Victory", stats.MostPopularBadges[0].BadgeName)
}

func TestLeaderboard_AttachesRarestBadge(t *testing.T) {
	repo := new(MockBadgeRepository)
	s := newBadgeTestService(repo, new(MockStatsRepository), new(MockLedgerService), new(MockEventBus))
	ctx := context.Background()

	repo.On("GetLeaderboard", ctx, DefaultLeaderboardLimit).Return([]domain.BadgeLeaderboardEntry{
		{UserID: "user1", BadgeCount: 2},
	}, nil)
	repo.On("ListUserBadges", ctx, "user1").Return([]domain.UserBadge{
		{BadgeID: "first_win"},
		{BadgeID: "veteran"},
	}, nil)

	entries, err := s.Leaderboard(ctx, 0)

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.NotNil(t, entries[0].RarestBadge)
	assert.Equal(t, "veteran", entries[0].RarestBadge.ID)
}

func TestCheckAndAward_StoresTriggerMetadata(t *testing.T) {
	repo := new(MockBadgeRepository)
	stats := new(MockStatsRepository)
	ledgerSvc := new(MockLedgerService)
	bus := new(MockEventBus)
	s := newBadgeTestService(repo, stats, ledgerSvc, bus)
	ctx := context.Background()

	stats.On("GetProfile", ctx, "user1").Return(&domain.UserProfile{UserID: "user1", Username: "alice"}, nil)
	repo.On("ListUserBadges", ctx, "user1").Return([]domain.UserBadge{}, nil)
	stats.On("CountTournamentWins", ctx, "user1").Return(1, nil)
	stats.On("CountTournamentsPlayed", ctx, "user1").Return(2, nil)

	repo.On("AwardBadge", ctx, mock.MatchedBy(func(a *domain.UserBadge) bool {
		return a.Metadata["trigger_event"] == "bet.won" && a.Metadata["market_id"] == "market1"
	}), false).Return(true, nil)
	ledgerSvc.On("Credit", ctx, mock.Anything).Return(&domain.CoinTransaction{}, nil)
	bus.On("Publish", ctx, mock.Anything).Return(nil)

	earned, err := s.CheckAndAward(ctx, "user1", "bet.won", map[string]interface{}{"market_id": "market1"})

	assert.NoError(t, err)
	assert.Len(t, earned, 1)
	repo.AssertExpectations(t)
}

func TestAwardMetadata(t *testing.T) {
	assert.Nil(t, awardMetadata("", nil))

	md := awardMetadata("bet.won", map[string]interface{}{"amount": 100})
	assert.Equal(t, "bet.won", md["trigger_event"])
	assert.Equal(t, 100, md["amount"])

	// The source map is copied, not aliased
	src := map[string]interface{}{"k": "v"}
	md = awardMetadata("t", src)
	md["k"] = "changed"
	assert.Equal(t, "v", src["k"])
}

func TestListAvailableBadges_HiddenOnlyForHolders(t *testing.T) {
	repo := new(MockBadgeRepository)
	s := newBadgeTestService(repo, new(MockStatsRepository), new(MockLedgerService), new(MockEventBus))
	ctx := context.Background()

	repo.On("ListUserBadges", ctx, "holder").Return([]domain.UserBadge{
		{BadgeID: "shadow", Count: 1},
	}, nil)
	repo.On("ListUserBadges", ctx, "stranger").Return([]domain.UserBadge{}, nil)

	listed, err := s.ListAvailableBadges(ctx, "holder", domain.BadgeFilter{})
	assert.NoError(t, err)
	assert.Len(t, listed, 3)
	var shadow *domain.BadgeListing
	for i := range listed {
		if listed[i].ID == "shadow" {
			shadow = &listed[i]
		}
	}
	assert.NotNil(t, shadow)
	assert.True(t, shadow.Obtained)
	assert.Equal(t, 1, shadow.ObtainedCount)

	listed, err = s.ListAvailableBadges(ctx, "stranger", domain.BadgeFilter{})
	assert.NoError(t, err)
	assert.Len(t, listed, 2)
	for _, b := range listed {
		assert.NotEqual(t, "shadow", b.ID)
	}
}

func TestAdminAward_NonAdminForbidden(t *testing.T) {
	repo := new(MockBadgeRepository)
	users := new(MockUserRepository)
	users.On("GetUser", mock.Anything, "regular1").
		Return(&domain.User{ID: "regular1", Username: "bob"}, nil)
	s := NewService(testRegistry(), repo, new(MockStatsRepository), users, new(MockLedgerService), new(MockEventBus))

	earned, err := s.AdminAward(context.Background(), "regular1", "user1", "first_win")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, earned)
	repo.AssertNotCalled(t, "AwardBadge", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordComment_PublishesEvent(t *testing.T) {
	users := new(MockUserRepository)
	bus := new(MockEventBus)
	s := NewService(testRegistry(), new(MockBadgeRepository), new(MockStatsRepository), users, new(MockLedgerService), bus)
	ctx := context.Background()

	users.On("UpsertUser", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == "user1" && u.Username == "alice"
	})).Return(nil)
	users.On("RecordComment", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
		return c.UserID == "user1" && c.Body == "gg wp" && c.ID != ""
	})).Return(nil)
	bus.On("Publish", ctx, mock.MatchedBy(func(evt event.Event) bool {
		return evt.Type == event.CommentPosted
	})).Return(nil)

	comment, err := s.RecordComment(ctx, "user1", "alice", "finals", "gg wp")

	assert.NoError(t, err)
	assert.Equal(t, "user1", comment.UserID)
	users.AssertExpectations(t)
	bus.AssertExpectations(t)
}

func TestRecordComment_InvalidInput(t *testing.T) {
	s := newBadgeTestService(new(MockBadgeRepository), new(MockStatsRepository), new(MockLedgerService), new(MockEventBus))

	_, err := s.RecordComment(context.Background(), "", "alice", "finals", "gg")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.RecordComment(context.Background(), "user1", "alice", "finals", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
