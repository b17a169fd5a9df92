package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexuslan/arena/internal/domain"
	"github.com/nexuslan/arena/internal/repository"
)

// BettingRepository implements the betting repository for PostgreSQL
type BettingRepository struct {
	db *pgxpool.Pool
}

// NewBettingRepository creates a new BettingRepository
func NewBettingRepository(db *pgxpool.Pool) *BettingRepository {
	return &BettingRepository{db: db}
}

const marketColumns = `market_id, tournament_id, tournament_name, game, market_type, title, description,
	options, total_pool, status, closes_at, settles_at, winning_option, match_id, created_at, updated_at`

func scanMarket(row pgx.Row) (*domain.BettingMarket, error) {
	var m domain.BettingMarket
	var optionsData []byte
	var settlesAt pgtype.Timestamptz
	var winningOption, matchID pgtype.Text
	err := row.Scan(&m.ID, &m.TournamentID, &m.TournamentName, &m.Game, &m.MarketType, &m.Title, &m.Description,
		&optionsData, &m.TotalPool, &m.Status, &m.ClosesAt, &settlesAt, &winningOption, &matchID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(optionsData, &m.Options); err != nil {
		return nil, fmt.Errorf("failed to unmarshal market options: %w", err)
	}
	if settlesAt.Valid {
		t := settlesAt.Time
		m.SettlesAt = &t
	}
	if winningOption.Valid {
		s := winningOption.String
		m.WinningOption = &s
	}
	if matchID.Valid {
		s := matchID.String
		m.MatchID = &s
	}
	return &m, nil
}

// CreateMarket inserts a new betting market
func (r *BettingRepository) CreateMarket(ctx context.Context, m *domain.BettingMarket) error {
	optionsData, err := json.Marshal(m.Options)
	if err != nil {
		return fmt.Errorf("failed to marshal market options: %w", err)
	}
	var matchID pgtype.Text
	if m.MatchID != nil {
		matchID = pgtype.Text{String: *m.MatchID, Valid: true}
	}
	err = r.db.QueryRow(ctx, `
		INSERT INTO betting_markets (market_id, tournament_id, tournament_name, game, market_type, title, description, options, status, closes_at, match_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`,
		m.ID, m.TournamentID, m.TournamentName, m.Game, string(m.MarketType), m.Title, m.Description,
		optionsData, string(m.Status), m.ClosesAt, matchID).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create market: %w", err)
	}
	return nil
}

// GetMarket retrieves a market by ID
func (r *BettingRepository) GetMarket(ctx context.Context, id string) (*domain.BettingMarket, error) {
	row := r.db.QueryRow(ctx, `SELECT `+marketColumns+` FROM betting_markets WHERE market_id = $1`, id)
	m, err := scanMarket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMarketNotFound
		}
		return nil, fmt.Errorf("failed to get market: %w", err)
	}
	return m, nil
}

// ListMarkets retrieves markets matching the filter, newest first
func (r *BettingRepository) ListMarkets(ctx context.Context, filter domain.MarketFilter) ([]domain.BettingMarket, error) {
	query := `SELECT ` + marketColumns + ` FROM betting_markets WHERE 1=1`
	var args []any

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Game != "" {
		args = append(args, filter.Game)
		query += fmt.Sprintf(" AND game = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Skip > 0 {
		args = append(args, filter.Skip)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list markets: %w", err)
	}
	defer rows.Close()

	var markets []domain.BettingMarket
	for rows.Next() {
		m, err := scanMarket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan market: %w", err)
		}
		markets = append(markets, *m)
	}
	return markets, rows.Err()
}

// UpdateMarketStateIfMatches transitions the market status only when the
// current status is one of expected, returning rows affected
func (r *BettingRepository) UpdateMarketStateIfMatches(ctx context.Context, id string, expected []domain.MarketStatus, next domain.MarketStatus) (int64, error) {
	states := make([]string, len(expected))
	for i, s := range expected {
		states[i] = string(s)
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE betting_markets
		SET status = $2, updated_at = NOW()
		WHERE market_id = $1 AND status = ANY($3)`,
		id, string(next), states)
	if err != nil {
		return 0, fmt.Errorf("failed to update market state: %w", err)
	}
	return tag.RowsAffected(), nil
}

// MarkMarketSettled is the settlement compare-and-set: records the winning
// option while flipping a non-final market to settled
func (r *BettingRepository) MarkMarketSettled(ctx context.Context, id, winningOption string, settledAt time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE betting_markets
		SET status = $2, winning_option = $3, settles_at = $4, updated_at = NOW()
		WHERE market_id = $1 AND status IN ($5, $6)`,
		id, string(domain.MarketStatusSettled), winningOption, settledAt,
		string(domain.MarketStatusOpen), string(domain.MarketStatusClosed))
	if err != nil {
		return 0, fmt.Errorf("failed to mark market settled: %w", err)
	}
	return tag.RowsAffected(), nil
}

const betColumns = `bet_id, user_id, username, market_id, option_id, option_name, amount, potential_payout, odds, status, placed_at, settled_at`

func scanBet(row pgx.Row) (*domain.Bet, error) {
	var b domain.Bet
	var settledAt pgtype.Timestamptz
	err := row.Scan(&b.ID, &b.UserID, &b.Username, &b.MarketID, &b.OptionID, &b.OptionName,
		&b.Amount, &b.PotentialPayout, &b.Odds, &b.Status, &b.PlacedAt, &settledAt)
	if err != nil {
		return nil, err
	}
	if settledAt.Valid {
		t := settledAt.Time
		b.SettledAt = &t
	}
	return &b, nil
}

// ListBetsByMarket retrieves bets on a market, optionally filtered by status
func (r *BettingRepository) ListBetsByMarket(ctx context.Context, marketID string, status domain.BetStatus) ([]domain.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE market_id = $1`
	args := []any{marketID}
	if status != "" {
		args = append(args, string(status))
		query += " AND status = $2"
	}
	query += " ORDER BY placed_at"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list market bets: %w", err)
	}
	defer rows.Close()

	return collectBets(rows)
}

// ListUserBets retrieves a user's bets, newest first
func (r *BettingRepository) ListUserBets(ctx context.Context, userID string, filter domain.BetFilter) ([]domain.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE user_id = $1`
	args := []any{userID}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY placed_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Skip > 0 {
		args = append(args, filter.Skip)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list user bets: %w", err)
	}
	defer rows.Close()

	return collectBets(rows)
}

func collectBets(rows pgx.Rows) ([]domain.Bet, error) {
	var bets []domain.Bet
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, *b)
	}
	return bets, rows.Err()
}

// HasBetOnMarket reports whether the user holds a live bet on the market
func (r *BettingRepository) HasBetOnMarket(ctx context.Context, userID, marketID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM bets
			WHERE user_id = $1 AND market_id = $2 AND status <> $3
		)`, userID, marketID, string(domain.BetStatusCancelled)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existing bet: %w", err)
	}
	return exists, nil
}

// GetOptionDistribution aggregates live stakes per option for a market
func (r *BettingRepository) GetOptionDistribution(ctx context.Context, marketID string) (map[string]domain.OptionDistribution, error) {
	rows, err := r.db.Query(ctx, `
		SELECT option_id, COUNT(*), COALESCE(SUM(amount), 0)
		FROM bets
		WHERE market_id = $1 AND status <> $2
		GROUP BY option_id`,
		marketID, string(domain.BetStatusCancelled))
	if err != nil {
		return nil, fmt.Errorf("failed to get option distribution: %w", err)
	}
	defer rows.Close()

	dist := make(map[string]domain.OptionDistribution)
	for rows.Next() {
		var optionID string
		var d domain.OptionDistribution
		if err := rows.Scan(&optionID, &d.BetCount, &d.TotalAmount); err != nil {
			return nil, fmt.Errorf("failed to scan distribution: %w", err)
		}
		dist[optionID] = d
	}
	return dist, rows.Err()
}

// GetLeaderboard aggregates settled bets into the profit leaderboard
func (r *BettingRepository) GetLeaderboard(ctx context.Context, limit int) ([]domain.BettingLeaderboardEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.user_id,
		       MAX(b.username),
		       COUNT(*),
		       COALESCE(SUM(b.amount), 0),
		       COUNT(*) FILTER (WHERE b.status = 'won'),
		       COALESCE(SUM(b.potential_payout) FILTER (WHERE b.status = 'won'), 0),
		       COALESCE(SUM(b.amount) FILTER (WHERE b.status = 'lost'), 0),
		       COALESCE(SUM(b.potential_payout - b.amount) FILTER (WHERE b.status = 'won'), 0)
		         - COALESCE(SUM(b.amount) FILTER (WHERE b.status = 'lost'), 0) AS profit
		FROM bets b
		WHERE b.status IN ('won', 'lost')
		GROUP BY b.user_id
		ORDER BY profit DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get betting leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []domain.BettingLeaderboardEntry
	rank := 1
	for rows.Next() {
		var e domain.BettingLeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.TotalBets, &e.TotalBetAmount,
			&e.WonBets, &e.TotalWinnings, &e.TotalLosses, &e.ProfitLoss); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		e.Rank = rank
		rank++
		if e.TotalBets > 0 {
			e.WinRate = float64(e.WonBets) / float64(e.TotalBets)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetGlobalStats aggregates system-wide betting activity
func (r *BettingRepository) GetGlobalStats(ctx context.Context) (*domain.BettingGlobalStats, error) {
	stats := &domain.BettingGlobalStats{}
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'open'),
		       COALESCE(SUM(total_pool), 0)
		FROM betting_markets`).Scan(&stats.TotalMarkets, &stats.ActiveMarkets, &stats.TotalPool)
	if err != nil {
		return nil, fmt.Errorf("failed to get market stats: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(DISTINCT user_id),
		       COUNT(*) FILTER (WHERE placed_at > NOW() - INTERVAL '24 hours')
		FROM bets
		WHERE status <> $1`, string(domain.BetStatusCancelled)).
		Scan(&stats.TotalBets, &stats.UniqueBettors, &stats.Bets24h)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet stats: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT game, COUNT(*)
		FROM betting_markets
		WHERE game <> ''
		GROUP BY game
		ORDER BY COUNT(*) DESC
		LIMIT 5`)
	if err != nil {
		return nil, fmt.Errorf("failed to get popular games: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var g domain.GamePopularity
		if err := rows.Scan(&g.Game, &g.Markets); err != nil {
			return nil, fmt.Errorf("failed to scan popular game: %w", err)
		}
		stats.PopularGames = append(stats.PopularGames, g)
	}
	return stats, rows.Err()
}

// BeginBetTx starts a betting transaction
func (r *BettingRepository) BeginBetTx(ctx context.Context) (repository.BetTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &betTx{profileTxOps{pgxTx{tx: tx}}}, nil
}

type betTx struct {
	profileTxOps
}

// CreateBet inserts a bet. The partial unique index on (user_id, market_id)
// turns duplicate live bets into domain.ErrAlreadyBet.
func (t *betTx) CreateBet(ctx context.Context, b *domain.Bet) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO bets (bet_id, user_id, username, market_id, option_id, option_name, amount, potential_payout, odds, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING placed_at`,
		b.ID, b.UserID, b.Username, b.MarketID, b.OptionID, b.OptionName,
		b.Amount, b.PotentialPayout, b.Odds, string(b.Status)).Scan(&b.PlacedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyBet
		}
		return fmt.Errorf("failed to create bet: %w", err)
	}
	return nil
}

// AddToMarketPool adds a stake to the market's total pool
func (t *betTx) AddToMarketPool(ctx context.Context, marketID string, amount int) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE betting_markets SET total_pool = total_pool + $2, updated_at = NOW()
		WHERE market_id = $1`, marketID, amount)
	if err != nil {
		return fmt.Errorf("failed to update market pool: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMarketNotFound
	}
	return nil
}

// MarkBetSettled flips an active bet to status, returning rows affected
func (t *betTx) MarkBetSettled(ctx context.Context, betID string, status domain.BetStatus, settledAt time.Time) (int64, error) {
	tag, err := t.tx.Exec(ctx, `
		UPDATE bets SET status = $2, settled_at = $3
		WHERE bet_id = $1 AND status = $4`,
		betID, string(status), settledAt, string(domain.BetStatusActive))
	if err != nil {
		return 0, fmt.Errorf("failed to settle bet: %w", err)
	}
	return tag.RowsAffected(), nil
}
