package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nexuslan/arena/internal/domain"
	"github.com/nexuslan/arena/internal/event"
	"github.com/nexuslan/arena/internal/logger"
	"github.com/nexuslan/arena/internal/repository"
)

// Service defines the interface for profile and coin economy operations
type Service interface {
	// GetProfile returns the user's profile, creating it with the starting
	// balance on first contact.
	GetProfile(ctx context.Context, userID, username string) (*domain.UserProfile, error)
	GetBalance(ctx context.Context, userID string) (int, error)
	ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.CoinTransaction, error)

	// Credit adds coins and XP to a user inside one transaction. XP may
	// trigger level ups, whose coin bonuses are posted as separate entries.
	Credit(ctx context.Context, params CreditParams) (*domain.CoinTransaction, error)

	ClaimDailyBonus(ctx context.Context, userID, username string) (*domain.DailyBonusResult, error)
	GetRichest(ctx context.Context, limit int) ([]domain.RichestEntry, error)

	// AdminGiveCoins credits coins on behalf of an admin actor
	AdminGiveCoins(ctx context.Context, actorID, userID string, amount int, reason string) (*domain.CoinTransaction, error)

	// DistributeTournamentRewards records the tournament's results and pays
	// participation and victory rewards for every fresh finish.
	DistributeTournamentRewards(ctx context.Context, tournamentID, game string, results []TournamentFinish) ([]domain.TournamentReward, error)

	// GetTournamentResults returns the recorded finishes of a tournament,
	// ordered by placement.
	GetTournamentResults(ctx context.Context, tournamentID string) ([]domain.TournamentResult, error)
}

// CreditParams describes a coin and XP grant
type CreditParams struct {
	UserID      string
	Amount      int
	XP          int
	Type        domain.TransactionType
	Description string
	ReferenceID string
}

// TournamentFinish is one ingested tournament placement
type TournamentFinish struct {
	UserID    string `json:"user_id" validate:"required"`
	Username  string `json:"user_name" validate:"required"`
	Placement int    `json:"placement" validate:"required,min=1"`
}

type service struct {
	repo  repository.Ledger
	users repository.User
	bus   event.Bus
}

// NewService creates a new ledger service
func NewService(repo repository.Ledger, users repository.User, bus event.Bus) Service {
	return &service{repo: repo, users: users, bus: bus}
}

func (s *service) GetProfile(ctx context.Context, userID, username string) (*domain.UserProfile, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.GetOrCreateProfile(ctx, userID, username)
}

func (s *service) GetBalance(ctx context.Context, userID string) (int, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return 0, err
	}
	return profile.Coins, nil
}

func (s *service) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.CoinTransaction, error) {
	return s.repo.ListTransactions(ctx, userID, filter)
}

// applyXP adds XP to the profile and cascades level ups. Returns the levels
// gained and the total coin bonus owed for them.
func applyXP(profile *domain.UserProfile, xp int) (levelsGained, coinsBonus int) {
	profile.XP += xp
	for profile.XP >= profile.XPForNextLevel() {
		profile.XP -= profile.XPForNextLevel()
		profile.Level++
		levelsGained++
		coinsBonus += profile.Level * domain.LevelUpCoinsPerLevel
	}
	return levelsGained, coinsBonus
}

// postEntry applies a balance change to the locked profile and appends the
// matching ledger entry. Negative amounts are debits and fail on
// insufficient funds.
func postEntry(ctx context.Context, tx repository.LedgerTx, profile *domain.UserProfile, amount int, txType domain.TransactionType, description, referenceID string) (*domain.CoinTransaction, error) {
	if amount < 0 && profile.Coins+amount < 0 {
		return nil, domain.ErrInsufficientFunds
	}
	profile.Coins += amount
	if amount >= 0 {
		profile.TotalCoinsEarned += amount
	} else {
		profile.TotalCoinsSpent -= amount
	}

	entry := &domain.CoinTransaction{
		ID:           uuid.NewString(),
		UserID:       profile.UserID,
		Amount:       amount,
		Type:         txType,
		Description:  description,
		BalanceAfter: profile.Coins,
	}
	if referenceID != "" {
		entry.ReferenceID = &referenceID
	}
	if err := tx.InsertTransaction(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) Credit(ctx context.Context, params CreditParams) (*domain.CoinTransaction, error) {
	if params.Amount < 0 {
		return nil, domain.ErrInvalidAmount
	}

	tx, err := s.repo.BeginLedgerTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	profile, err := tx.GetProfileForUpdate(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	entry, err := postEntry(ctx, tx, profile, params.Amount, params.Type, params.Description, params.ReferenceID)
	if err != nil {
		return nil, err
	}

	oldLevel := profile.Level
	levelsGained, coinsBonus := applyXP(profile, params.XP)
	if levelsGained > 0 {
		if _, err := postEntry(ctx, tx, profile, coinsBonus, domain.TransactionLevelUp, DescLevelUp, ""); err != nil {
			return nil, err
		}
	}

	if err := tx.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if params.Amount > 0 {
		_ = s.bus.Publish(ctx, event.NewCoinsEarnedEvent(profile.UserID, params.Amount, string(params.Type)))
	}
	s.announceLevelUp(ctx, profile, oldLevel, coinsBonus)

	return entry, nil
}

func (s *service) announceLevelUp(ctx context.Context, profile *domain.UserProfile, oldLevel, coinsBonus int) {
	if profile.Level == oldLevel {
		return
	}
	logger.FromContext(ctx).Info(LogMsgLevelUp,
		"user_id", profile.UserID,
		"old_level", oldLevel,
		"new_level", profile.Level)
	_ = s.bus.Publish(ctx, event.NewLevelUpEvent(profile.UserID, profile.Username, oldLevel, profile.Level, coinsBonus))
}

// sameUTCDay reports whether both times fall on the same UTC calendar day
func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func (s *service) ClaimDailyBonus(ctx context.Context, userID, username string) (*domain.DailyBonusResult, error) {
	log := logger.FromContext(ctx)

	// Ensure the profile exists before taking the lock
	if _, err := s.repo.GetOrCreateProfile(ctx, userID, username); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.users.RecordLogin(ctx, userID, now); err != nil {
		log.Warn("Failed to record login day", "error", err)
	} else {
		_ = s.bus.Publish(ctx, event.NewUserLoggedInEvent(userID))
	}

	tx, err := s.repo.BeginLedgerTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	profile, err := tx.GetProfileForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.LastDailyBonus != nil && sameUTCDay(*profile.LastDailyBonus, now) {
		return nil, domain.ErrBonusAlreadyClaimed
	}

	coins := domain.DailyBonusBase + profile.Level
	if _, err := postEntry(ctx, tx, profile, coins, domain.TransactionDailyBonus, DescDailyBonus, ""); err != nil {
		return nil, err
	}

	oldLevel := profile.Level
	levelsGained, coinsBonus := applyXP(profile, domain.DailyBonusXP)
	if levelsGained > 0 {
		if _, err := postEntry(ctx, tx, profile, coinsBonus, domain.TransactionLevelUp, DescLevelUp, ""); err != nil {
			return nil, err
		}
	}

	profile.LastDailyBonus = &now
	if err := tx.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Info(LogMsgBonusClaimed, "user_id", userID, "coins", coins)
	_ = s.bus.Publish(ctx, event.NewBonusClaimedEvent(userID, profile.Username, coins, domain.DailyBonusXP))
	s.announceLevelUp(ctx, profile, oldLevel, coinsBonus)

	return &domain.DailyBonusResult{
		CoinsAwarded: coins,
		XPAwarded:    domain.DailyBonusXP,
		NewBalance:   profile.Coins,
		LeveledUp:    levelsGained > 0,
		NewLevel:     profile.Level,
	}, nil
}

func (s *service) GetRichest(ctx context.Context, limit int) ([]domain.RichestEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}
	return s.repo.GetRichest(ctx, limit)
}

func (s *service) AdminGiveCoins(ctx context.Context, actorID, userID string, amount int, reason string) (*domain.CoinTransaction, error) {
	if err := repository.RequireAdmin(ctx, s.users, actorID); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if reason == "" {
		reason = DescAdminGrant
	}
	return s.Credit(ctx, CreditParams{
		UserID:      userID,
		Amount:      amount,
		Type:        domain.TransactionAdminGrant,
		Description: reason,
	})
}

func (s *service) DistributeTournamentRewards(ctx context.Context, tournamentID, game string, results []TournamentFinish) ([]domain.TournamentReward, error) {
	log := logger.FromContext(ctx)
	if tournamentID == "" || len(results) == 0 {
		return nil, domain.ErrInvalidInput
	}

	participants := len(results)
	participationCoins, victoryCoins := domain.TournamentRewardCoins(participants)

	var rewards []domain.TournamentReward
	var winnerID string
	for _, finish := range results {
		if _, err := s.repo.GetOrCreateProfile(ctx, finish.UserID, finish.Username); err != nil {
			return nil, err
		}

		inserted, err := s.users.RecordTournamentResult(ctx, &domain.TournamentResult{
			ID:           uuid.NewString(),
			UserID:       finish.UserID,
			TournamentID: tournamentID,
			Game:         game,
			Placement:    finish.Placement,
			Participants: participants,
		})
		if err != nil {
			return nil, err
		}
		if !inserted {
			// Already rewarded by a previous ingest of this tournament
			continue
		}

		coins := participationCoins
		xp := domain.ParticipationXP
		txType := domain.TransactionTournamentParticipation
		description := DescParticipation
		if finish.Placement == 1 {
			coins += victoryCoins
			xp += domain.VictoryXP
			txType = domain.TransactionTournamentVictory
			description = DescVictory
			winnerID = finish.UserID
		}

		if _, err := s.Credit(ctx, CreditParams{
			UserID:      finish.UserID,
			Amount:      coins,
			XP:          xp,
			Type:        txType,
			Description: fmt.Sprintf("%s: %s", description, tournamentID),
			ReferenceID: tournamentID,
		}); err != nil {
			return nil, err
		}

		rewards = append(rewards, domain.TournamentReward{
			UserID:       finish.UserID,
			Placement:    finish.Placement,
			CoinsAwarded: coins,
			XPAwarded:    xp,
		})
	}

	if len(rewards) > 0 {
		log.Info(LogMsgRewardsDistributed,
			"tournament_id", tournamentID,
			"participants", participants,
			"rewarded", len(rewards))
		_ = s.bus.Publish(ctx, event.NewTournamentCompletedEvent(tournamentID, game, winnerID, participants))
	}

	return rewards, nil
}

func (s *service) GetTournamentResults(ctx context.Context, tournamentID string) ([]domain.TournamentResult, error) {
	if tournamentID == "" {
		return nil, domain.ErrInvalidInput
	}
	results, err := s.users.GetTournamentResults(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, domain.ErrTournamentNotFound
	}
	return results, nil
}
