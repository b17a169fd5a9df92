package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexuslan/arena/internal/domain"
	"github.com/nexuslan/arena/internal/repository"
)

// dbConn is the subset of pgx operations shared by pools and transactions
type dbConn interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const profileColumns = `user_id, username, coins, total_coins_earned, total_coins_spent, xp, level, last_daily_bonus, created_at, updated_at`

func scanProfile(row pgx.Row) (*domain.UserProfile, error) {
	var p domain.UserProfile
	var lastBonus pgtype.Timestamptz
	err := row.Scan(&p.UserID, &p.Username, &p.Coins, &p.TotalCoinsEarned, &p.TotalCoinsSpent,
		&p.XP, &p.Level, &lastBonus, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lastBonus.Valid {
		t := lastBonus.Time
		p.LastDailyBonus = &t
	}
	return &p, nil
}

// LedgerRepository implements the ledger repository for PostgreSQL
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// GetProfile retrieves a profile by user ID
func (r *LedgerRepository) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return getProfile(ctx, r.db, userID)
}

func getProfile(ctx context.Context, conn dbConn, userID string) (*domain.UserProfile, error) {
	row := conn.QueryRow(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1`, userID)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// GetOrCreateProfile returns the profile for userID, creating it with the
// starting balance when absent. Safe under concurrent first calls: the
// losing insert falls through to the select.
func (r *LedgerRepository) GetOrCreateProfile(ctx context.Context, userID, username string) (*domain.UserProfile, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	_, err = tx.Exec(ctx,
		`INSERT INTO users (user_id, username) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
		userID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO user_profiles (user_id, username, coins, total_coins_earned)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING `+profileColumns,
		userID, username, domain.StartingBalance)

	p, err := scanProfile(row)
	created := true
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
		created = false
		if p, err = getProfile(ctx, tx, userID); err != nil {
			return nil, err
		}
	}

	if created {
		_, err = tx.Exec(ctx, `
			INSERT INTO coin_transactions (transaction_id, user_id, amount, transaction_type, description, balance_after)
			VALUES (gen_random_uuid(), $1, $2, $3, 'Welcome aboard', $2)`,
			userID, domain.StartingBalance, string(domain.TransactionStartingBalance))
		if err != nil {
			return nil, fmt.Errorf("failed to record starting balance: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return p, nil
}

// ListTransactions retrieves a user's ledger entries, newest first
func (r *LedgerRepository) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.CoinTransaction, error) {
	query := `SELECT transaction_id, user_id, amount, transaction_type, description, reference_id, balance_after, created_at
		FROM coin_transactions WHERE user_id = $1`
	args := []any{userID}

	if filter.Type != "" {
		args = append(args, string(filter.Type))
		query += fmt.Sprintf(" AND transaction_type = $%d", len(args))
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
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.CoinTransaction
	for rows.Next() {
		var t domain.CoinTransaction
		var refID pgtype.Text
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Type, &t.Description, &refID, &t.BalanceAfter, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if refID.Valid {
			s := refID.String
			t.ReferenceID = &s
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// GetRichest retrieves the top profiles by coin balance
func (r *LedgerRepository) GetRichest(ctx context.Context, limit int) ([]domain.RichestEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id, username, coins, total_coins_earned, level
		FROM user_profiles
		ORDER BY coins DESC, total_coins_earned DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get richest: %w", err)
	}
	defer rows.Close()

	var entries []domain.RichestEntry
	rank := 1
	for rows.Next() {
		var e domain.RichestEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Coins, &e.TotalCoinsEarned, &e.Level); err != nil {
			return nil, fmt.Errorf("failed to scan richest entry: %w", err)
		}
		e.Rank = rank
		rank++
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// BeginLedgerTx starts a ledger transaction
func (r *LedgerRepository) BeginLedgerTx(ctx context.Context) (repository.LedgerTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &ledgerTx{profileTxOps{pgxTx{tx: tx}}}, nil
}

type ledgerTx struct {
	profileTxOps
}

// profileTxOps implements the profile mutation operations shared by ledger,
// betting and marketplace transactions. Embedding pgxTx keeps a single tx
// field across the composed transaction types.
type profileTxOps struct {
	pgxTx
}

// GetProfileForUpdate retrieves a profile with a row lock
func (o *profileTxOps) GetProfileForUpdate(ctx context.Context, userID string) (*domain.UserProfile, error) {
	row := o.tx.QueryRow(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1 FOR UPDATE`, userID)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get profile for update: %w", err)
	}
	return p, nil
}

// UpdateProfile writes back profile balances and progression
func (o *profileTxOps) UpdateProfile(ctx context.Context, p *domain.UserProfile) error {
	var lastBonus pgtype.Timestamptz
	if p.LastDailyBonus != nil {
		lastBonus = pgtype.Timestamptz{Time: *p.LastDailyBonus, Valid: true}
	}
	tag, err := o.tx.Exec(ctx, `
		UPDATE user_profiles
		SET username = $2, coins = $3, total_coins_earned = $4, total_coins_spent = $5,
		    xp = $6, level = $7, last_daily_bonus = $8, updated_at = NOW()
		WHERE user_id = $1`,
		p.UserID, p.Username, p.Coins, p.TotalCoinsEarned, p.TotalCoinsSpent,
		p.XP, p.Level, lastBonus)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// InsertTransaction appends a ledger entry
func (o *profileTxOps) InsertTransaction(ctx context.Context, t *domain.CoinTransaction) error {
	var refID pgtype.Text
	if t.ReferenceID != nil {
		refID = pgtype.Text{String: *t.ReferenceID, Valid: true}
	}
	var createdAt time.Time
	err := o.tx.QueryRow(ctx, `
		INSERT INTO coin_transactions (transaction_id, user_id, amount, transaction_type, description, reference_id, balance_after)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		t.ID, t.UserID, t.Amount, string(t.Type), t.Description, refID, t.BalanceAfter).Scan(&createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	t.CreatedAt = createdAt
	return nil
}
