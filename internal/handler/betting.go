package handler

import (
	"net/http"
	"strconv"

	"github.com/nexuslan/arena/internal/betting"
	"github.com/nexuslan/arena/internal/domain"
)

// BettingHandler serves betting market endpoints
type BettingHandler struct {
	service betting.Service
}

// NewBettingHandler creates a new betting handler
func NewBettingHandler(service betting.Service) *BettingHandler {
	return &BettingHandler{service: service}
}

// HandleListMarkets returns betting markets
// @Summary List markets
// @Description Returns betting markets with bet counts and option distribution
// @Tags betting
// @Produce json
// @Param status query string false "Market status"
// @Param game query string false "Game filter"
// @Param limit query int false "Maximum entries"
// @Param skip query int false "Entries to skip"
// @Success 200 {array} domain.EnrichedMarket
// @Router /betting/markets [get]
func (h *BettingHandler) HandleListMarkets(w http.ResponseWriter, r *http.Request) {
	limit, skip, ok := GetPaginationParams(r, w, 0)
	if !ok {
		return
	}

	filter := domain.MarketFilter{
		Status: domain.MarketStatus(r.URL.Query().Get("status")),
		Game:   r.URL.Query().Get("game"),
		Limit:  limit,
		Skip:   skip,
	}

	markets, err := h.service.ListMarkets(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, "list markets", err)
		return
	}

	respondJSON(w, http.StatusOK, markets)
}

// HandleGetMarket returns one market with its bet distribution
// @Summary Get market
// @Description Returns one betting market with bet counts per option
// @Tags betting
// @Produce json
// @Param id query string true "Market ID"
// @Success 200 {object} domain.EnrichedMarket
// @Failure 404 {object} ErrorResponse
// @Router /betting/market [get]
func (h *BettingHandler) HandleGetMarket(w http.ResponseWriter, r *http.Request) {
	marketID, ok := GetQueryParam(r, w, "id")
	if !ok {
		return
	}

	market, err := h.service.GetMarket(r.Context(), marketID)
	if err != nil {
		respondServiceError(w, r, "get market", err)
		return
	}

	respondJSON(w, http.StatusOK, market)
}

// HandlePlaceBet places a bet on an open market
// @Summary Place bet
// @Description Stakes coins on a market option at the option's current odds
// @Tags betting
// @Accept json
// @Produce json
// @Param request body betting.PlaceBetParams true "Bet details"
// @Success 201 {object} domain.Bet
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /betting/bets [post]
func (h *BettingHandler) HandlePlaceBet(w http.ResponseWriter, r *http.Request) {
	var req betting.PlaceBetParams
	if err := DecodeAndValidateRequest(r, w, &req, "Place bet"); err != nil {
		return
	}

	bet, err := h.service.PlaceBet(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, "place bet", err)
		return
	}

	respondJSON(w, http.StatusCreated, bet)
}

// HandleListUserBets returns a user's bet history
// @Summary List user bets
// @Description Returns the bets a user has placed, newest first
// @Tags betting
// @Produce json
// @Param user_id query string true "User ID"
// @Param status query string false "Bet status filter"
// @Success 200 {array} domain.Bet
// @Failure 400 {object} ErrorResponse
// @Router /betting/bets [get]
func (h *BettingHandler) HandleListUserBets(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	limit, skip, ok := GetPaginationParams(r, w, 0)
	if !ok {
		return
	}

	filter := domain.BetFilter{
		Status: domain.BetStatus(r.URL.Query().Get("status")),
		Limit:  limit,
		Skip:   skip,
	}

	bets, err := h.service.ListUserBets(r.Context(), userID, filter)
	if err != nil {
		respondServiceError(w, r, "list user bets", err)
		return
	}

	respondJSON(w, http.StatusOK, bets)
}

// HandleUserStats returns a user's betting record
// @Summary User betting stats
// @Description Returns win rate, profit and best bet for a user
// @Tags betting
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.BettingStats
// @Failure 400 {object} ErrorResponse
// @Router /betting/stats [get]
func (h *BettingHandler) HandleUserStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	stats, err := h.service.GetUserStats(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "get betting stats", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// HandleLeaderboard returns the bettors ranked by profit
// @Summary Betting leaderboard
// @Description Returns bettors ranked by net profit
// @Tags betting
// @Produce json
// @Param limit query int false "Maximum entries"
// @Success 200 {array} domain.BettingLeaderboardEntry
// @Router /betting/leaderboard [get]
func (h *BettingHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(GetOptionalQueryParam(r, "limit", "0"))

	entries, err := h.service.Leaderboard(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, "get betting leaderboard", err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// HandleGlobalStats returns totals across all markets
// @Summary Betting statistics
// @Description Returns global betting volume and popularity statistics
// @Tags betting
// @Produce json
// @Success 200 {object} domain.BettingGlobalStats
// @Router /betting/global-stats [get]
func (h *BettingHandler) HandleGlobalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GlobalStats(r.Context())
	if err != nil {
		respondServiceError(w, r, "get betting global stats", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
