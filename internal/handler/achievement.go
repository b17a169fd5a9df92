package handler

import (
	"net/http"
	"strconv"

	"github.com/nexuslan/arena/internal/achievement"
	"github.com/nexuslan/arena/internal/domain"
)

// AchievementHandler serves badge endpoints
type AchievementHandler struct {
	service achievement.Service
}

// NewAchievementHandler creates a new achievement handler
func NewAchievementHandler(service achievement.Service) *AchievementHandler {
	return &AchievementHandler{service: service}
}

// HandleListBadges returns the badge catalog
// @Summary List badges
// @Description Returns all visible badges, optionally filtered by category or rarity. Hidden badges appear only for holders, or when include_hidden is set.
// @Tags badges
// @Produce json
// @Param category query string false "Badge category"
// @Param rarity query string false "Badge rarity"
// @Param user_id query string false "Viewer user ID, marks obtained badges"
// @Param include_hidden query bool false "Include hidden badges regardless of viewer"
// @Success 200 {array} domain.BadgeListing
// @Router /badges [get]
func (h *AchievementHandler) HandleListBadges(w http.ResponseWriter, r *http.Request) {
	includeHidden, _ := strconv.ParseBool(GetOptionalQueryParam(r, "include_hidden", "false"))
	filter := domain.BadgeFilter{
		Category:      domain.BadgeCategory(r.URL.Query().Get("category")),
		Rarity:        domain.BadgeRarity(r.URL.Query().Get("rarity")),
		IncludeHidden: includeHidden,
	}
	viewerID := r.URL.Query().Get("user_id")

	badges, err := h.service.ListAvailableBadges(r.Context(), viewerID, filter)
	if err != nil {
		respondServiceError(w, r, "list badges", err)
		return
	}

	respondJSON(w, http.StatusOK, badges)
}

// HandleListUserBadges returns the badges a user has earned
// @Summary List user badges
// @Description Returns all badges the user has earned
// @Tags badges
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} domain.EarnedBadge
// @Failure 400 {object} ErrorResponse
// @Router /badges/user [get]
func (h *AchievementHandler) HandleListUserBadges(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	badges, err := h.service.ListUserBadges(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "list user badges", err)
		return
	}

	respondJSON(w, http.StatusOK, badges)
}

// HandleGetProgress returns a user's progress toward one badge
// @Summary Badge progress
// @Description Returns per-criterion progress toward a badge
// @Tags badges
// @Produce json
// @Param user_id query string true "User ID"
// @Param badge_id query string true "Badge ID"
// @Success 200 {object} domain.BadgeProgress
// @Failure 400 {object} ErrorResponse
// @Router /badges/progress [get]
func (h *AchievementHandler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	badgeID, ok := GetQueryParam(r, w, "badge_id")
	if !ok {
		return
	}

	progress, err := h.service.GetProgress(r.Context(), userID, badgeID)
	if err != nil {
		respondServiceError(w, r, "get badge progress", err)
		return
	}

	respondJSON(w, http.StatusOK, progress)
}

// CheckBadgesRequest asks for a badge evaluation of one user
type CheckBadgesRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// CheckBadgesResponse reports the badges newly earned by the check
type CheckBadgesResponse struct {
	NewBadges []domain.Badge `json:"new_badges"`
}

// HandleCheckBadges evaluates all badge criteria for a user
// @Summary Check badges
// @Description Evaluates badge criteria and awards any newly earned badges
// @Tags badges
// @Accept json
// @Produce json
// @Param request body CheckBadgesRequest true "User to check"
// @Success 200 {object} CheckBadgesResponse
// @Failure 400 {object} ErrorResponse
// @Router /badges/check [post]
func (h *AchievementHandler) HandleCheckBadges(w http.ResponseWriter, r *http.Request) {
	var req CheckBadgesRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Check badges"); err != nil {
		return
	}

	earned, err := h.service.CheckAndAward(r.Context(), req.UserID, achievement.TriggerManualCheck, nil)
	if err != nil {
		respondServiceError(w, r, "check badges", err)
		return
	}
	if earned == nil {
		earned = []domain.Badge{}
	}

	respondJSON(w, http.StatusOK, CheckBadgesResponse{NewBadges: earned})
}

// RecordCommentRequest ingests a comment posted on the platform
type RecordCommentRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Username string `json:"username" validate:"max=100"`
	Subject  string `json:"subject" validate:"max=200"`
	Body     string `json:"body" validate:"required,max=4000"`
}

// HandleRecordComment records a posted comment and feeds social badge criteria
// @Summary Record comment
// @Description Ingests a comment so social badges can track posting activity
// @Tags badges
// @Accept json
// @Produce json
// @Param request body RecordCommentRequest true "Comment details"
// @Success 201 {object} domain.Comment
// @Failure 400 {object} ErrorResponse
// @Router /comments [post]
func (h *AchievementHandler) HandleRecordComment(w http.ResponseWriter, r *http.Request) {
	var req RecordCommentRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Record comment"); err != nil {
		return
	}

	comment, err := h.service.RecordComment(r.Context(), req.UserID, req.Username, req.Subject, req.Body)
	if err != nil {
		respondServiceError(w, r, "record comment", err)
		return
	}

	respondJSON(w, http.StatusCreated, comment)
}

// HandleLeaderboard returns the badge collectors leaderboard
// @Summary Badge leaderboard
// @Description Returns users ranked by badge count
// @Tags badges
// @Produce json
// @Param limit query int false "Maximum entries"
// @Success 200 {array} domain.BadgeLeaderboardEntry
// @Router /badges/leaderboard [get]
func (h *AchievementHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(GetOptionalQueryParam(r, "limit", "0"))

	entries, err := h.service.Leaderboard(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, "get badge leaderboard", err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// HandleGlobalStats returns badge totals across all users
// @Summary Badge statistics
// @Description Returns global badge award statistics
// @Tags badges
// @Produce json
// @Success 200 {object} domain.BadgeGlobalStats
// @Router /badges/stats [get]
func (h *AchievementHandler) HandleGlobalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GlobalStats(r.Context())
	if err != nil {
		respondServiceError(w, r, "get badge stats", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
