package handler

import (
	"net/http"
	"strconv"

	"github.com/nexuslan/arena/internal/domain"
	"github.com/nexuslan/arena/internal/ledger"
)

// EconomyHandler serves profile and coin economy endpoints
type EconomyHandler struct {
	service ledger.Service
}

// NewEconomyHandler creates a new economy handler
func NewEconomyHandler(service ledger.Service) *EconomyHandler {
	return &EconomyHandler{service: service}
}

// HandleGetProfile returns a user's profile, creating it on first contact
// @Summary Get profile
// @Description Returns the user's coin balance, XP and level
// @Tags economy
// @Produce json
// @Param user_id query string true "User ID"
// @Param username query string false "Username for first-time profiles"
// @Success 200 {object} domain.UserProfile
// @Failure 400 {object} ErrorResponse
// @Router /economy/profile [get]
func (h *EconomyHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	username := GetOptionalQueryParam(r, "username", "")

	profile, err := h.service.GetProfile(r.Context(), userID, username)
	if err != nil {
		respondServiceError(w, r, "get profile", err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// HandleListTransactions returns a user's coin transaction history
// @Summary List transactions
// @Description Returns the user's coin ledger entries, newest first
// @Tags economy
// @Produce json
// @Param user_id query string true "User ID"
// @Param type query string false "Transaction type filter"
// @Param limit query int false "Maximum entries"
// @Param skip query int false "Entries to skip"
// @Success 200 {array} domain.CoinTransaction
// @Failure 400 {object} ErrorResponse
// @Router /economy/transactions [get]
func (h *EconomyHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	limit, skip, ok := GetPaginationParams(r, w, 0)
	if !ok {
		return
	}

	filter := domain.TransactionFilter{
		Type:  domain.TransactionType(r.URL.Query().Get("type")),
		Limit: limit,
		Skip:  skip,
	}

	txns, err := h.service.ListTransactions(r.Context(), userID, filter)
	if err != nil {
		respondServiceError(w, r, "list transactions", err)
		return
	}

	respondJSON(w, http.StatusOK, txns)
}

// ClaimBonusRequest asks for the daily bonus
type ClaimBonusRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Username string `json:"user_name"`
}

// HandleClaimDailyBonus claims the once-per-day login bonus
// @Summary Claim daily bonus
// @Description Grants the daily coin and XP bonus, once per UTC day
// @Tags economy
// @Accept json
// @Produce json
// @Param request body ClaimBonusRequest true "User claiming the bonus"
// @Success 200 {object} domain.DailyBonusResult
// @Failure 409 {object} ErrorResponse
// @Router /economy/daily-bonus [post]
func (h *EconomyHandler) HandleClaimDailyBonus(w http.ResponseWriter, r *http.Request) {
	var req ClaimBonusRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Claim daily bonus"); err != nil {
		return
	}

	result, err := h.service.ClaimDailyBonus(r.Context(), req.UserID, req.Username)
	if err != nil {
		respondServiceError(w, r, "claim daily bonus", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleRichest returns users ranked by coin balance
// @Summary Richest users
// @Description Returns users ranked by current coin balance
// @Tags economy
// @Produce json
// @Param limit query int false "Maximum entries"
// @Success 200 {array} domain.RichestEntry
// @Router /economy/richest [get]
func (h *EconomyHandler) HandleRichest(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(GetOptionalQueryParam(r, "limit", "0"))

	entries, err := h.service.GetRichest(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, "get richest users", err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// TournamentResultsRequest ingests a tournament's final standings
type TournamentResultsRequest struct {
	TournamentID string                    `json:"tournament_id" validate:"required"`
	Game         string                    `json:"game"`
	Results      []ledger.TournamentFinish `json:"results" validate:"required,min=1,dive"`
}

// HandleTournamentResults records standings and pays tournament rewards
// @Summary Ingest tournament results
// @Description Records final standings and credits participation and victory rewards
// @Tags economy
// @Accept json
// @Produce json
// @Param request body TournamentResultsRequest true "Tournament standings"
// @Success 200 {array} domain.TournamentReward
// @Failure 400 {object} ErrorResponse
// @Router /economy/tournament-results [post]
func (h *EconomyHandler) HandleTournamentResults(w http.ResponseWriter, r *http.Request) {
	var req TournamentResultsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Ingest tournament results"); err != nil {
		return
	}

	rewards, err := h.service.DistributeTournamentRewards(r.Context(), req.TournamentID, req.Game, req.Results)
	if err != nil {
		respondServiceError(w, r, "distribute tournament rewards", err)
		return
	}

	respondJSON(w, http.StatusOK, rewards)
}

// HandleTournamentStandings returns the recorded standings of a tournament
// @Summary Tournament standings
// @Description Returns the final standings recorded for a tournament
// @Tags economy
// @Produce json
// @Param id query string true "Tournament ID"
// @Success 200 {array} domain.TournamentResult
// @Failure 404 {object} ErrorResponse
// @Router /economy/tournament-results [get]
func (h *EconomyHandler) HandleTournamentStandings(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := GetQueryParam(r, w, "id")
	if !ok {
		return
	}

	results, err := h.service.GetTournamentResults(r.Context(), tournamentID)
	if err != nil {
		respondServiceError(w, r, "get tournament standings", err)
		return
	}

	respondJSON(w, http.StatusOK, results)
}
