package betting

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/nexuslan/arena/internal/domain"
	"github.com/nexuslan/arena/internal/event"
	"github.com/nexuslan/arena/internal/ledger"
	"github.com/nexuslan/arena/internal/logger"
	"github.com/nexuslan/arena/internal/repository"
)

// Service defines the interface for betting operations. Market lifecycle
// operations require an admin actor.
type Service interface {
	CreateMarket(ctx context.Context, actorID string, params CreateMarketParams) (*domain.BettingMarket, error)
	GetMarket(ctx context.Context, marketID string) (*domain.EnrichedMarket, error)
	ListMarkets(ctx context.Context, filter domain.MarketFilter) ([]domain.EnrichedMarket, error)

	// PlaceBet stakes coins on a market option. One live bet per user per
	// market; the payout is locked to the option's odds at placement time.
	PlaceBet(ctx context.Context, params PlaceBetParams) (*domain.Bet, error)

	ListUserBets(ctx context.Context, userID string, filter domain.BetFilter) ([]domain.Bet, error)
	GetUserStats(ctx context.Context, userID string) (*domain.BettingStats, error)

	CloseMarket(ctx context.Context, actorID, marketID string) error
	CancelMarket(ctx context.Context, actorID, marketID string) error

	// Settle resolves the market: winning bets are paid their locked
	// payout, the rest are marked lost. Safe to retry after a crash.
	Settle(ctx context.Context, actorID, marketID, winningOption string) (*domain.SettlementResult, error)

	Leaderboard(ctx context.Context, limit int) ([]domain.BettingLeaderboardEntry, error)
	GlobalStats(ctx context.Context) (*domain.BettingGlobalStats, error)
}

// CreateMarketParams describes a new betting market
type CreateMarketParams struct {
	TournamentID   string                `json:"tournament_id" validate:"required"`
	TournamentName string                `json:"tournament_name"`
	Game           string                `json:"game"`
	MarketType     domain.MarketType     `json:"market_type"`
	Title          string                `json:"title" validate:"required"`
	Description    string                `json:"description"`
	Options        []domain.MarketOption `json:"options" validate:"required,min=2,dive"`
	ClosesAt       time.Time             `json:"closes_at" validate:"required"`
	MatchID        *string               `json:"match_id,omitempty"`
}

// PlaceBetParams describes a bet placement
type PlaceBetParams struct {
	UserID   string `json:"user_id" validate:"required"`
	Username string `json:"user_name"`
	MarketID string `json:"market_id" validate:"required"`
	OptionID string `json:"option_id" validate:"required"`
	Amount   int    `json:"amount" validate:"required,min=1"`
}

type service struct {
	repo      repository.Betting
	users     repository.User
	ledgerSvc ledger.Service
	bus       event.Bus
	now       func() time.Time
}

// NewService creates a new betting service
func NewService(repo repository.Betting, users repository.User, ledgerSvc ledger.Service, bus event.Bus) Service {
	return &service{
		repo:      repo,
		users:     users,
		ledgerSvc: ledgerSvc,
		bus:       bus,
		now:       time.Now,
	}
}

func (s *service) CreateMarket(ctx context.Context, actorID string, params CreateMarketParams) (*domain.BettingMarket, error) {
	log := logger.FromContext(ctx)

	if err := repository.RequireAdmin(ctx, s.users, actorID); err != nil {
		return nil, err
	}
	if len(params.Options) < MinMarketOptions {
		return nil, fmt.Errorf("%w: at least %d options required", domain.ErrInvalidInput, MinMarketOptions)
	}
	if !params.ClosesAt.After(s.now()) {
		return nil, fmt.Errorf("%w: closes_at must be in the future", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(params.Options))
	for _, opt := range params.Options {
		if opt.OptionID == "" || opt.Name == "" {
			return nil, fmt.Errorf("%w: option id and name required", domain.ErrInvalidInput)
		}
		if seen[opt.OptionID] {
			return nil, fmt.Errorf("%w: duplicate option %s", domain.ErrInvalidInput, opt.OptionID)
		}
		seen[opt.OptionID] = true
		if opt.Odds < MinOdds || opt.Odds > MaxOdds {
			return nil, fmt.Errorf("%w: odds for %s out of range", domain.ErrInvalidInput, opt.OptionID)
		}
	}

	marketType := params.MarketType
	if marketType == "" {
		marketType = domain.MarketTypeWinner
	}

	market := &domain.BettingMarket{
		ID:             uuid.NewString(),
		TournamentID:   params.TournamentID,
		TournamentName: params.TournamentName,
		Game:           params.Game,
		MarketType:     marketType,
		Title:          params.Title,
		Description:    params.Description,
		Options:        params.Options,
		Status:         domain.MarketStatusOpen,
		ClosesAt:       params.ClosesAt,
		MatchID:        params.MatchID,
	}
	if err := s.repo.CreateMarket(ctx, market); err != nil {
		return nil, err
	}

	log.Info(LogMsgMarketCreated, "market_id", market.ID, "title", market.Title, "options", len(market.Options))
	return market, nil
}

func (s *service) enrich(ctx context.Context, market domain.BettingMarket) (*domain.EnrichedMarket, error) {
	dist, err := s.repo.GetOptionDistribution(ctx, market.ID)
	if err != nil {
		return nil, err
	}
	enriched := &domain.EnrichedMarket{BettingMarket: market, OptionDistribution: dist}
	for _, d := range dist {
		enriched.BetCount += d.BetCount
	}
	return enriched, nil
}

func (s *service) GetMarket(ctx context.Context, marketID string) (*domain.EnrichedMarket, error) {
	market, err := s.repo.GetMarket(ctx, marketID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, *market)
}

func (s *service) ListMarkets(ctx context.Context, filter domain.MarketFilter) ([]domain.EnrichedMarket, error) {
	markets, err := s.repo.ListMarkets(ctx, filter)
	if err != nil {
		return nil, err
	}
	enriched := make([]domain.EnrichedMarket, 0, len(markets))
	for _, m := range markets {
		em, err := s.enrich(ctx, m)
		if err != nil {
			return nil, err
		}
		enriched = append(enriched, *em)
	}
	return enriched, nil
}

// PotentialPayout computes the locked gross payout for a stake
func PotentialPayout(amount int, odds float64) int {
	return int(math.Floor(float64(amount) * odds))
}

func (s *service) PlaceBet(ctx context.Context, params PlaceBetParams) (*domain.Bet, error) {
	log := logger.FromContext(ctx)

	market, err := s.repo.GetMarket(ctx, params.MarketID)
	if err != nil {
		return nil, err
	}
	if market.Status != domain.MarketStatusOpen {
		return nil, domain.ErrMarketNotOpen
	}
	if !s.now().Before(market.ClosesAt) {
		// Lazily flip markets whose deadline passed without an explicit close
		if _, casErr := s.repo.UpdateMarketStateIfMatches(ctx, market.ID,
			[]domain.MarketStatus{domain.MarketStatusOpen}, domain.MarketStatusClosed); casErr != nil {
			log.Warn("Failed to auto-close expired market", "market_id", market.ID, "error", casErr)
		}
		return nil, domain.ErrBettingPeriodOver
	}

	option := market.Option(params.OptionID)
	if option == nil {
		return nil, domain.ErrOptionNotFound
	}

	if params.Amount < domain.MinBetAmount {
		return nil, domain.ErrBelowMinimumStake
	}
	if params.Amount > domain.MaxBetAmount {
		return nil, domain.ErrAboveMaximumStake
	}

	// First contact seeds the profile so the funds check below is real
	profile, err := s.ledgerSvc.GetProfile(ctx, params.UserID, params.Username)
	if err != nil {
		return nil, err
	}
	if profile.Coins < params.Amount {
		return nil, domain.ErrInsufficientFunds
	}

	// Friendly pre-check; the unique index is the real guarantee
	hasBet, err := s.repo.HasBetOnMarket(ctx, params.UserID, params.MarketID)
	if err != nil {
		return nil, err
	}
	if hasBet {
		return nil, domain.ErrAlreadyBet
	}

	bet := &domain.Bet{
		ID:              uuid.NewString(),
		UserID:          params.UserID,
		Username:        profile.Username,
		MarketID:        market.ID,
		OptionID:        option.OptionID,
		OptionName:      option.Name,
		Amount:          params.Amount,
		PotentialPayout: PotentialPayout(params.Amount, option.Odds),
		Odds:            option.Odds,
		Status:          domain.BetStatusActive,
	}

	tx, err := s.repo.BeginBetTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	locked, err := tx.GetProfileForUpdate(ctx, params.UserID)
	if err != nil {
		return nil, err
	}
	if locked.Coins < params.Amount {
		return nil, domain.ErrInsufficientFunds
	}
	locked.Coins -= params.Amount
	locked.TotalCoinsSpent += params.Amount
	if err := tx.UpdateProfile(ctx, locked); err != nil {
		return nil, err
	}
	if err := tx.InsertTransaction(ctx, &domain.CoinTransaction{
		ID:           uuid.NewString(),
		UserID:       params.UserID,
		Amount:       -params.Amount,
		Type:         domain.TransactionBetPlaced,
		Description:  DescBetPlaced + bet.OptionName,
		ReferenceID:  &bet.ID,
		BalanceAfter: locked.Coins,
	}); err != nil {
		return nil, err
	}
	if err := tx.CreateBet(ctx, bet); err != nil {
		return nil, err
	}
	if err := tx.AddToMarketPool(ctx, market.ID, params.Amount); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Info(LogMsgBetPlaced,
		"bet_id", bet.ID,
		"market_id", market.ID,
		"user_id", params.UserID,
		"amount", params.Amount,
		"odds", option.Odds)
	_ = s.bus.Publish(ctx, event.NewBetPlacedEvent(bet.UserID, bet.Username, bet.ID, market.ID,
		market.Title, bet.OptionName, bet.Amount, bet.Odds, bet.PotentialPayout))

	return bet, nil
}

func (s *service) ListUserBets(ctx context.Context, userID string, filter domain.BetFilter) ([]domain.Bet, error) {
	return s.repo.ListUserBets(ctx, userID, filter)
}

func (s *service) GetUserStats(ctx context.Context, userID string) (*domain.BettingStats, error) {
	bets, err := s.repo.ListUserBets(ctx, userID, domain.BetFilter{})
	if err != nil {
		return nil, err
	}

	stats := &domain.BettingStats{UserID: userID}
	for _, bet := range bets {
		if bet.Status == domain.BetStatusCancelled {
			continue
		}
		stats.TotalBets++
		stats.TotalAmountBet += bet.Amount

		switch bet.Status {
		case domain.BetStatusWon:
			stats.WonBets++
			stats.TotalWinnings += bet.PotentialPayout
			stats.ProfitLoss += bet.PotentialPayout - bet.Amount
			if stats.BestBet == nil || bet.PotentialPayout > stats.BestBet.Payout {
				stats.BestBet = &domain.BestBet{
					OptionName: bet.OptionName,
					Amount:     bet.Amount,
					Payout:     bet.PotentialPayout,
					Odds:       bet.Odds,
				}
			}
		case domain.BetStatusLost:
			stats.LostBets++
			stats.TotalLosses += bet.Amount
			stats.ProfitLoss -= bet.Amount
		}
	}

	if settled := stats.WonBets + stats.LostBets; settled > 0 {
		stats.WinRate = float64(stats.WonBets) / float64(settled)
	}
	return stats, nil
}

func (s *service) CloseMarket(ctx context.Context, actorID, marketID string) error {
	log := logger.FromContext(ctx)

	if err := repository.RequireAdmin(ctx, s.users, actorID); err != nil {
		return err
	}
	if _, err := s.repo.GetMarket(ctx, marketID); err != nil {
		return err
	}
	rows, err := s.repo.UpdateMarketStateIfMatches(ctx, marketID,
		[]domain.MarketStatus{domain.MarketStatusOpen}, domain.MarketStatusClosed)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMarketAlreadyFinal
	}

	log.Info(LogMsgMarketClosed, "market_id", marketID)
	return nil
}

func (s *service) CancelMarket(ctx context.Context, actorID, marketID string) error {
	log := logger.FromContext(ctx)

	if err := repository.RequireAdmin(ctx, s.users, actorID); err != nil {
		return err
	}
	market, err := s.repo.GetMarket(ctx, marketID)
	if err != nil {
		return err
	}
	rows, err := s.repo.UpdateMarketStateIfMatches(ctx, marketID,
		[]domain.MarketStatus{domain.MarketStatusOpen, domain.MarketStatusClosed}, domain.MarketStatusCancelled)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMarketAlreadyFinal
	}

	// Refund every live stake
	bets, err := s.repo.ListBetsByMarket(ctx, marketID, domain.BetStatusActive)
	if err != nil {
		return err
	}
	settledAt := s.now().UTC()
	for _, bet := range bets {
		if err := s.refundBet(ctx, bet, settledAt); err != nil {
			return err
		}
	}

	log.Info(LogMsgMarketCancelled, "market_id", marketID, "refunded_bets", len(bets))
	_ = s.bus.Publish(ctx, event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.MarketCancelled,
		Payload: event.MarketSettledPayloadV1{
			MarketID:    market.ID,
			MarketTitle: market.Title,
			Timestamp:   settledAt.Unix(),
		},
	})
	return nil
}

// refundBet flips one active bet to cancelled and returns the stake.
// Already-settled bets are skipped, which makes retries safe.
func (s *service) refundBet(ctx context.Context, bet domain.Bet, settledAt time.Time) error {
	tx, err := s.repo.BeginBetTx(ctx)
	if err != nil {
		return err
	}
	defer repository.SafeRollback(ctx, tx)

	rows, err := tx.MarkBetSettled(ctx, bet.ID, domain.BetStatusCancelled, settledAt)
	if err != nil {
		return err
	}
	if rows == 0 {
		return tx.Commit(ctx)
	}

	profile, err := tx.GetProfileForUpdate(ctx, bet.UserID)
	if err != nil {
		return err
	}
	profile.Coins += bet.Amount
	// A refund undoes the spend rather than counting as earnings
	profile.TotalCoinsSpent -= bet.Amount
	if err := tx.UpdateProfile(ctx, profile); err != nil {
		return err
	}
	if err := tx.InsertTransaction(ctx, &domain.CoinTransaction{
		ID:           uuid.NewString(),
		UserID:       bet.UserID,
		Amount:       bet.Amount,
		Type:         domain.TransactionBetRefund,
		Description:  DescBetRefund + bet.OptionName,
		ReferenceID:  &bet.ID,
		BalanceAfter: profile.Coins,
	}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *service) Settle(ctx context.Context, actorID, marketID, winningOption string) (*domain.SettlementResult, error) {
	log := logger.FromContext(ctx)

	if err := repository.RequireAdmin(ctx, s.users, actorID); err != nil {
		return nil, err
	}
	market, err := s.repo.GetMarket(ctx, marketID)
	if err != nil {
		return nil, err
	}
	if market.Option(winningOption) == nil {
		return nil, domain.ErrOptionNotFound
	}

	settledAt := s.now().UTC()
	rows, err := s.repo.MarkMarketSettled(ctx, marketID, winningOption, settledAt)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// A previous run may have died between market CAS and payouts:
		// resume only when the recorded winner matches.
		if market.Status == domain.MarketStatusSettled &&
			market.WinningOption != nil && *market.WinningOption == winningOption {
			log.Warn("Resuming interrupted settlement", "market_id", marketID)
		} else {
			return nil, domain.ErrMarketAlreadyFinal
		}
	}

	bets, err := s.repo.ListBetsByMarket(ctx, marketID, domain.BetStatusActive)
	if err != nil {
		return nil, err
	}

	result := &domain.SettlementResult{MarketID: marketID, WinningOption: winningOption}
	for _, bet := range bets {
		won := bet.OptionID == winningOption
		settled, err := s.settleBet(ctx, bet, won, settledAt)
		if err != nil {
			log.Error(LogMsgPayoutFailed, "bet_id", bet.ID, "error", err)
			return nil, err
		}
		if settled && won {
			result.WinnersCount++
			result.TotalPayouts += bet.PotentialPayout
			_ = s.bus.Publish(ctx, event.NewBetWonEvent(bet.UserID, bet.Username, bet.ID,
				market.ID, market.Title, bet.OptionName, bet.Amount, bet.PotentialPayout))
		}
	}

	log.Info(LogMsgMarketSettled,
		"market_id", marketID,
		"winning_option", winningOption,
		"winners", result.WinnersCount,
		"total_payouts", result.TotalPayouts)
	_ = s.bus.Publish(ctx, event.NewMarketSettledEvent(market.ID, market.Title, winningOption,
		result.WinnersCount, result.TotalPayouts))

	return result, nil
}

// settleBet resolves one active bet in its own transaction. The per-bet CAS
// makes concurrent or retried settlement runs idempotent.
func (s *service) settleBet(ctx context.Context, bet domain.Bet, won bool, settledAt time.Time) (bool, error) {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginBetTx(ctx)
	if err != nil {
		return false, err
	}
	defer repository.SafeRollback(ctx, tx)

	status := domain.BetStatusLost
	if won {
		status = domain.BetStatusWon
	}
	rows, err := tx.MarkBetSettled(ctx, bet.ID, status, settledAt)
	if err != nil {
		return false, err
	}
	if rows == 0 {
		log.Debug(LogMsgBetSkipped, "bet_id", bet.ID)
		return false, tx.Commit(ctx)
	}

	if won {
		profile, err := tx.GetProfileForUpdate(ctx, bet.UserID)
		if err != nil {
			return false, err
		}
		profile.Coins += bet.PotentialPayout
		profile.TotalCoinsEarned += bet.PotentialPayout
		if err := tx.UpdateProfile(ctx, profile); err != nil {
			return false, err
		}
		if err := tx.InsertTransaction(ctx, &domain.CoinTransaction{
			ID:           uuid.NewString(),
			UserID:       bet.UserID,
			Amount:       bet.PotentialPayout,
			Type:         domain.TransactionBetWon,
			Description:  DescBetWon + bet.OptionName,
			ReferenceID:  &bet.ID,
			BalanceAfter: profile.Coins,
		}); err != nil {
			return false, err
		}
	}
	return true, tx.Commit(ctx)
}

func (s *service) Leaderboard(ctx context.Context, limit int) ([]domain.BettingLeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}
	return s.repo.GetLeaderboard(ctx, limit)
}

func (s *service) GlobalStats(ctx context.Context) (*domain.BettingGlobalStats, error) {
	return s.repo.GetGlobalStats(ctx)
}
