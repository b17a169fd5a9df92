package domain

import "time"

// ItemCategory groups marketplace items for browsing
type ItemCategory string

const (
	ItemCategoryCosmetic ItemCategory = "cosmetic"
	ItemCategoryBooster  ItemCategory = "booster"
	ItemCategoryUtility  ItemCategory = "utility"
	ItemCategorySpecial  ItemCategory = "special"
)

// MarketplaceItem is a purchasable catalog entry. A nil Stock means
// unlimited supply.
type MarketplaceItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    ItemCategory `json:"category"`
	Price       int          `json:"price"`
	Icon        string       `json:"icon"`
	Stock       *int         `json:"stock,omitempty"`
	Available   bool         `json:"available"`
	Stackable   bool         `json:"stackable"`
	CreatedAt   time.Time    `json:"created_at"`
}

// InventoryEntry is an item a user owns, with quantity for stackables
type InventoryEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ItemID     string    `json:"item_id"`
	ItemName   string    `json:"item_name"`
	Category   string    `json:"category"`
	Icon       string    `json:"icon"`
	Quantity   int       `json:"quantity"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// PurchaseResult reports a completed marketplace purchase
type PurchaseResult struct {
	ItemID     string `json:"item_id"`
	ItemName   string `json:"item_name"`
	PricePaid  int    `json:"price_paid"`
	NewBalance int    `json:"new_balance"`
	Quantity   int    `json:"quantity"`
}

// ItemFilter narrows catalog listings
type ItemFilter struct {
	Category      ItemCategory
	AvailableOnly bool
	Limit         int
	Skip          int
}
