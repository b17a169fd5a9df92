package handler

import (
	"net/http"
	"strconv"

	"github.com/nexuslan/arena/internal/domain"
	"github.com/nexuslan/arena/internal/marketplace"
)

// MarketplaceHandler serves catalog and inventory endpoints
type MarketplaceHandler struct {
	service marketplace.Service
}

// NewMarketplaceHandler creates a new marketplace handler
func NewMarketplaceHandler(service marketplace.Service) *MarketplaceHandler {
	return &MarketplaceHandler{service: service}
}

// HandleListItems returns the item catalog
// @Summary List items
// @Description Returns purchasable items, optionally filtered by category
// @Tags marketplace
// @Produce json
// @Param category query string false "Item category"
// @Param available query bool false "Only available items"
// @Success 200 {array} domain.MarketplaceItem
// @Router /marketplace/items [get]
func (h *MarketplaceHandler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	limit, skip, ok := GetPaginationParams(r, w, 0)
	if !ok {
		return
	}

	available, _ := strconv.ParseBool(GetOptionalQueryParam(r, "available", "false"))
	filter := domain.ItemFilter{
		Category:      domain.ItemCategory(r.URL.Query().Get("category")),
		AvailableOnly: available,
		Limit:         limit,
		Skip:          skip,
	}

	items, err := h.service.ListItems(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, "list items", err)
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// HandleGetItem returns one catalog item
// @Summary Get item
// @Description Returns one marketplace item
// @Tags marketplace
// @Produce json
// @Param id query string true "Item ID"
// @Success 200 {object} domain.MarketplaceItem
// @Failure 404 {object} ErrorResponse
// @Router /marketplace/item [get]
func (h *MarketplaceHandler) HandleGetItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := GetQueryParam(r, w, "id")
	if !ok {
		return
	}

	item, err := h.service.GetItem(r.Context(), itemID)
	if err != nil {
		respondServiceError(w, r, "get item", err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// PurchaseRequest asks to buy one item
type PurchaseRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Username string `json:"user_name"`
	ItemID   string `json:"item_id" validate:"required"`
}

// HandlePurchase buys an item for coins
// @Summary Purchase item
// @Description Debits the item price and adds the item to the user's inventory
// @Tags marketplace
// @Accept json
// @Produce json
// @Param request body PurchaseRequest true "Purchase details"
// @Success 200 {object} domain.PurchaseResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /marketplace/purchase [post]
func (h *MarketplaceHandler) HandlePurchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Purchase item"); err != nil {
		return
	}

	result, err := h.service.Purchase(r.Context(), req.UserID, req.Username, req.ItemID)
	if err != nil {
		respondServiceError(w, r, "purchase item", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleGetInventory returns a user's owned items
// @Summary Get inventory
// @Description Returns the items a user owns
// @Tags marketplace
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} domain.InventoryEntry
// @Failure 400 {object} ErrorResponse
// @Router /marketplace/inventory [get]
func (h *MarketplaceHandler) HandleGetInventory(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	inventory, err := h.service.GetInventory(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "get inventory", err)
		return
	}

	respondJSON(w, http.StatusOK, inventory)
}
