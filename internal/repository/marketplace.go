package repository

import (
	"context"

	"github.com/nexuslan/arena/internal/domain"
)

// Marketplace defines the interface for catalog and inventory persistence
type Marketplace interface {
	ListItems(ctx context.Context, filter domain.ItemFilter) ([]domain.MarketplaceItem, error)
	GetItem(ctx context.Context, id string) (*domain.MarketplaceItem, error)
	CreateItem(ctx context.Context, item *domain.MarketplaceItem) error
	GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error)

	BeginPurchaseTx(ctx context.Context) (PurchaseTx, error)
}

// PurchaseTx extends Tx with the operations a purchase needs: item lock for
// the stock check, coin debit, and inventory grant in one transaction.
type PurchaseTx interface {
	Tx

	GetItemForUpdate(ctx context.Context, id string) (*domain.MarketplaceItem, error)
	DecrementStock(ctx context.Context, id string) error

	GetProfileForUpdate(ctx context.Context, userID string) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, profile *domain.UserProfile) error
	InsertTransaction(ctx context.Context, txn *domain.CoinTransaction) error

	GetInventoryEntry(ctx context.Context, userID, itemID string) (*domain.InventoryEntry, error)
	UpsertInventoryEntry(ctx context.Context, entry *domain.InventoryEntry) error
}
