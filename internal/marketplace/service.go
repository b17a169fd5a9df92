package marketplace

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nexuslan/arena/internal/domain"
	"github.com/nexuslan/arena/internal/event"
	"github.com/nexuslan/arena/internal/ledger"
	"github.com/nexuslan/arena/internal/logger"
	"github.com/nexuslan/arena/internal/repository"
)

// Service defines the interface for marketplace operations
type Service interface {
	ListItems(ctx context.Context, filter domain.ItemFilter) ([]domain.MarketplaceItem, error)
	GetItem(ctx context.Context, itemID string) (*domain.MarketplaceItem, error)

	// Purchase debits the item price and grants the item. Non-stackable
	// items can be owned once; stackables bump the owned quantity.
	Purchase(ctx context.Context, userID, username, itemID string) (*domain.PurchaseResult, error)

	GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error)

	// AdminCreateItem adds a catalog item on behalf of an admin actor
	AdminCreateItem(ctx context.Context, actorID string, params CreateItemParams) (*domain.MarketplaceItem, error)
}

// CreateItemParams describes a new catalog item
type CreateItemParams struct {
	Name        string              `json:"name" validate:"required"`
	Description string              `json:"description"`
	Category    domain.ItemCategory `json:"category" validate:"required,oneof=cosmetic booster utility special"`
	Price       int                 `json:"price" validate:"required,min=1"`
	Icon        string              `json:"icon"`
	Stock       *int                `json:"stock,omitempty" validate:"omitempty,min=0"`
	Stackable   bool                `json:"stackable"`
}

type service struct {
	repo      repository.Marketplace
	users     repository.User
	ledgerSvc ledger.Service
	bus       event.Bus
}

// NewService creates a new marketplace service
func NewService(repo repository.Marketplace, users repository.User, ledgerSvc ledger.Service, bus event.Bus) Service {
	return &service{repo: repo, users: users, ledgerSvc: ledgerSvc, bus: bus}
}

func (s *service) ListItems(ctx context.Context, filter domain.ItemFilter) ([]domain.MarketplaceItem, error) {
	return s.repo.ListItems(ctx, filter)
}

func (s *service) GetItem(ctx context.Context, itemID string) (*domain.MarketplaceItem, error) {
	return s.repo.GetItem(ctx, itemID)
}

func (s *service) Purchase(ctx context.Context, userID, username, itemID string) (*domain.PurchaseResult, error) {
	log := logger.FromContext(ctx)

	// Seeds the profile on first contact so the debit has a row to lock
	if _, err := s.ledgerSvc.GetProfile(ctx, userID, username); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginPurchaseTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	item, err := tx.GetItemForUpdate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, domain.ErrItemNotAvailable
	}
	if item.Stock != nil && *item.Stock <= 0 {
		return nil, domain.ErrItemNotAvailable
	}

	owned, err := tx.GetInventoryEntry(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if owned != nil && !item.Stackable {
		return nil, domain.ErrItemAlreadyOwned
	}

	profile, err := tx.GetProfileForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.Coins < item.Price {
		return nil, domain.ErrInsufficientFunds
	}
	profile.Coins -= item.Price
	profile.TotalCoinsSpent += item.Price
	if err := tx.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	if err := tx.InsertTransaction(ctx, &domain.CoinTransaction{
		ID:           uuid.NewString(),
		UserID:       userID,
		Amount:       -item.Price,
		Type:         domain.TransactionMarketplacePurchase,
		Description:  DescPurchase + item.Name,
		ReferenceID:  &item.ID,
		BalanceAfter: profile.Coins,
	}); err != nil {
		return nil, err
	}

	if item.Stock != nil {
		if err := tx.DecrementStock(ctx, itemID); err != nil {
			return nil, err
		}
	}

	entry := &domain.InventoryEntry{
		ID:       uuid.NewString(),
		UserID:   userID,
		ItemID:   itemID,
		Quantity: 1,
	}
	if err := tx.UpsertInventoryEntry(ctx, entry); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	quantity := 1
	if owned != nil {
		quantity = owned.Quantity + 1
	}

	log.Info(LogMsgItemPurchased,
		"user_id", userID,
		"item_id", itemID,
		"price", item.Price,
		"quantity", quantity)
	_ = s.bus.Publish(ctx, event.NewItemPurchasedEvent(userID, profile.Username, item.ID, item.Name, item.Price))

	return &domain.PurchaseResult{
		ItemID:     item.ID,
		ItemName:   item.Name,
		PricePaid:  item.Price,
		NewBalance: profile.Coins,
		Quantity:   quantity,
	}, nil
}

func (s *service) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	return s.repo.GetInventory(ctx, userID)
}

func (s *service) AdminCreateItem(ctx context.Context, actorID string, params CreateItemParams) (*domain.MarketplaceItem, error) {
	log := logger.FromContext(ctx)

	if err := repository.RequireAdmin(ctx, s.users, actorID); err != nil {
		return nil, err
	}
	if params.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", domain.ErrInvalidInput)
	}

	item := &domain.MarketplaceItem{
		ID:          uuid.NewString(),
		Name:        params.Name,
		Description: params.Description,
		Category:    params.Category,
		Price:       params.Price,
		Icon:        params.Icon,
		Stock:       params.Stock,
		Available:   true,
		Stackable:   params.Stackable,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	log.Info(LogMsgItemCreated, "item_id", item.ID, "name", item.Name, "price", item.Price)
	return item, nil
}
