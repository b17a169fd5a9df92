package handler

import (
	"net/http"

	"github.com/nexuslan/arena/internal/achievement"
	"github.com/nexuslan/arena/internal/betting"
	"github.com/nexuslan/arena/internal/ledger"
	"github.com/nexuslan/arena/internal/marketplace"
)

// AdminHandler serves privileged endpoints. The router mounts these behind
// the API key middleware.
type AdminHandler struct {
	ledgerSvc      ledger.Service
	achievementSvc achievement.Service
	bettingSvc     betting.Service
	marketplaceSvc marketplace.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(ledgerSvc ledger.Service, achievementSvc achievement.Service, bettingSvc betting.Service, marketplaceSvc marketplace.Service) *AdminHandler {
	return &AdminHandler{
		ledgerSvc:      ledgerSvc,
		achievementSvc: achievementSvc,
		bettingSvc:     bettingSvc,
		marketplaceSvc: marketplaceSvc,
	}
}

// GiveCoinsRequest describes an administrative coin grant
type GiveCoinsRequest struct {
	ActorID string `json:"actor_id" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
	Amount  int    `json:"amount" validate:"required,min=1,max=100000"`
	Reason  string `json:"reason" validate:"required,max=200"`
}

// HandleGiveCoins grants coins to a user
// @Summary Grant coins
// @Description Credits coins to a user with an audit reason
// @Tags admin
// @Accept json
// @Produce json
// @Param request body GiveCoinsRequest true "Grant details"
// @Success 200 {object} domain.CoinTransaction
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/give-coins [post]
// @Security ApiKeyAuth
func (h *AdminHandler) HandleGiveCoins(w http.ResponseWriter, r *http.Request) {
	var req GiveCoinsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Give coins"); err != nil {
		return
	}

	txn, err := h.ledgerSvc.AdminGiveCoins(r.Context(), req.ActorID, req.UserID, req.Amount, req.Reason)
	if err != nil {
		respondServiceError(w, r, "give coins", err)
		return
	}

	respondJSON(w, http.StatusOK, txn)
}

// AwardBadgeRequest describes a manual badge award
type AwardBadgeRequest struct {
	ActorID string `json:"actor_id" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
	BadgeID string `json:"badge_id" validate:"required"`
}

// HandleAwardBadge manually awards a badge
// @Summary Award badge
// @Description Grants a badge regardless of its criteria
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AwardBadgeRequest true "Award details"
// @Success 200 {object} domain.EarnedBadge
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/award-badge [post]
// @Security ApiKeyAuth
func (h *AdminHandler) HandleAwardBadge(w http.ResponseWriter, r *http.Request) {
	var req AwardBadgeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Award badge"); err != nil {
		return
	}

	earned, err := h.achievementSvc.AdminAward(r.Context(), req.ActorID, req.UserID, req.BadgeID)
	if err != nil {
		respondServiceError(w, r, "award badge", err)
		return
	}

	respondJSON(w, http.StatusOK, earned)
}

// CreateMarketRequest wraps market parameters with the acting admin
type CreateMarketRequest struct {
	ActorID string `json:"actor_id" validate:"required"`
	betting.CreateMarketParams
}

// HandleCreateMarket opens a new betting market
// @Summary Create market
// @Description Opens a betting market with fixed odds per option
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreateMarketRequest true "Market details"
// @Success 201 {object} domain.BettingMarket
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/betting/markets [post]
// @Security ApiKeyAuth
func (h *AdminHandler) HandleCreateMarket(w http.ResponseWriter, r *http.Request) {
	var req CreateMarketRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create market"); err != nil {
		return
	}

	market, err := h.bettingSvc.CreateMarket(r.Context(), req.ActorID, req.CreateMarketParams)
	if err != nil {
		respondServiceError(w, r, "create market", err)
		return
	}

	respondJSON(w, http.StatusCreated, market)
}

// HandleCloseMarket stops accepting bets on a market
// @Summary Close market
// @Description Moves an open market to closed so no further bets are accepted
// @Tags admin
// @Produce json
// @Param id query string true "Market ID"
// @Param actor_id query string true "Acting admin user ID"
// @Success 200 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/betting/close [post]
// @Security ApiKeyAuth
func (h *AdminHandler) HandleCloseMarket(w http.ResponseWriter, r *http.Request) {
	marketID, ok := GetQueryParam(r, w, "id")
	if !ok {
		return
	}
	actorID, ok := GetQueryParam(r, w, "actor_id")
	if !ok {
		return
	}

	if err := h.bettingSvc.CloseMarket(r.Context(), actorID, marketID); err != nil {
		respondServiceError(w, r, "close market", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgMarketClosedSuccess})
}

// HandleCancelMarket voids a market and refunds all bets
// @Summary Cancel market
// @Description Cancels a market and refunds every active bet
// @Tags admin
// @Produce json
// @Param id query string true "Market ID"
// @Param actor_id query string true "Acting admin user ID"
// @Success 200 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/betting/cancel [post]
// @Security ApiKeyAuth
func (h *AdminHandler) HandleCancelMarket(w http.ResponseWriter, r *http.Request) {
	marketID, ok := GetQueryParam(r, w, "id")
	if !ok {
		return
	}
	actorID, ok := GetQueryParam(r, w, "actor_id")
	if !ok {
		return
	}

	if err := h.bettingSvc.CancelMarket(r.Context(), actorID, marketID); err != nil {
		respondServiceError(w, r, "cancel market", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgMarketCancelledSuccess})
}

// SettleMarketRequest declares the winning option of a market
type SettleMarketRequest struct {
	ActorID       string `json:"actor_id" validate:"required"`
	MarketID      string `json:"market_id" validate:"required"`
	WinningOption string `json:"winning_option" validate:"required"`
}

// HandleSettleMarket resolves a market and pays winners
// @Summary Settle market
// @Description Declares the winning option and pays out winning bets
// @Tags admin
// @Accept json
// @Produce json
// @Param request body SettleMarketRequest true "Settlement details"
// @Success 200 {object} domain.SettlementResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/betting/settle [post]
// @Security ApiKeyAuth
func (h *AdminHandler) HandleSettleMarket(w http.ResponseWriter, r *http.Request) {
	var req SettleMarketRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Settle market"); err != nil {
		return
	}

	result, err := h.bettingSvc.Settle(r.Context(), req.ActorID, req.MarketID, req.WinningOption)
	if err != nil {
		respondServiceError(w, r, "settle market", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// CreateItemRequest wraps item parameters with the acting admin
type CreateItemRequest struct {
	ActorID string `json:"actor_id" validate:"required"`
	marketplace.CreateItemParams
}

// HandleCreateItem adds an item to the marketplace catalog
// @Summary Create item
// @Description Adds a purchasable item to the marketplace
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreateItemRequest true "Item details"
// @Success 201 {object} domain.MarketplaceItem
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/marketplace/items [post]
// @Security ApiKeyAuth
func (h *AdminHandler) HandleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create item"); err != nil {
		return
	}

	item, err := h.marketplaceSvc.AdminCreateItem(r.Context(), req.ActorID, req.CreateItemParams)
	if err != nil {
		respondServiceError(w, r, "create item", err)
		return
	}

	respondJSON(w, http.StatusCreated, item)
}
