package repository

import (
	"context"

	"github.com/nexuslan/arena/internal/domain"
)

// Ledger defines the interface for profile and coin ledger persistence
type Ledger interface {
	// GetOrCreateProfile returns the profile for userID, creating it with the
	// starting balance when absent. Creation is idempotent under races.
	GetOrCreateProfile(ctx context.Context, userID, username string) (*domain.UserProfile, error)
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.CoinTransaction, error)
	GetRichest(ctx context.Context, limit int) ([]domain.RichestEntry, error)

	BeginLedgerTx(ctx context.Context) (LedgerTx, error)
}

// LedgerTx extends Tx with the operations a balance change needs. Profiles
// are locked with FOR UPDATE so concurrent changes to the same user serialize.
type LedgerTx interface {
	Tx
	GetProfileForUpdate(ctx context.Context, userID string) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, profile *domain.UserProfile) error
	InsertTransaction(ctx context.Context, txn *domain.CoinTransaction) error
}
