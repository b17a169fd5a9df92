package achievement

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/nexuslan/arena/internal/domain"
	"github.com/nexuslan/arena/internal/event"
	"github.com/nexuslan/arena/internal/ledger"
	"github.com/nexuslan/arena/internal/logger"
	"github.com/nexuslan/arena/internal/repository"
)

// Service defines the interface for achievement operations
type Service interface {
	// CheckAndAward evaluates every badge the user does not yet hold and
	// awards the ones whose criteria are all met, crediting their rewards.
	// The triggering event and its payload are stored as award metadata.
	CheckAndAward(ctx context.Context, userID, trigger string, eventData map[string]interface{}) ([]domain.Badge, error)

	ListUserBadges(ctx context.Context, userID string) ([]domain.EarnedBadge, error)

	// ListAvailableBadges returns the catalog as seen by viewerID. Hidden
	// badges appear only to holders, or when the filter asks for them.
	ListAvailableBadges(ctx context.Context, viewerID string, filter domain.BadgeFilter) ([]domain.BadgeListing, error)

	GetProgress(ctx context.Context, userID, badgeID string) (*domain.BadgeProgress, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.BadgeLeaderboardEntry, error)
	GlobalStats(ctx context.Context) (*domain.BadgeGlobalStats, error)

	// RecordComment ingests a comment for the social badge metrics and
	// triggers a badge check for the author.
	RecordComment(ctx context.Context, userID, username, subject, body string) (*domain.Comment, error)

	// AdminAward grants a badge regardless of criteria on behalf of an
	// admin actor. Used for badges whose criteria have no automatic metric.
	AdminAward(ctx context.Context, actorID, userID, badgeID string) (*domain.EarnedBadge, error)
}

type service struct {
	registry  *Registry
	repo      repository.Badge
	users     repository.User
	src       MetricSource
	ledgerSvc ledger.Service
	bus       event.Bus
	cache     *aggregateCache
}

// NewService creates a new achievement service
func NewService(registry *Registry, repo repository.Badge, stats repository.Stats, users repository.User, ledgerSvc ledger.Service, bus event.Bus) Service {
	return &service{
		registry:  registry,
		repo:      repo,
		users:     users,
		src:       MetricSource{Stats: stats, Badges: repo},
		ledgerSvc: ledgerSvc,
		bus:       bus,
		cache:     newAggregateCache(CacheSize, CacheTTL),
	}
}

func (s *service) CheckAndAward(ctx context.Context, userID, trigger string, eventData map[string]interface{}) ([]domain.Badge, error) {
	log := logger.FromContext(ctx)

	profile, err := s.src.Stats.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	held, err := s.repo.ListUserBadges(ctx, userID)
	if err != nil {
		return nil, err
	}
	heldSet := make(map[string]bool, len(held))
	for _, award := range held {
		heldSet[award.BadgeID] = true
	}

	metadata := awardMetadata(trigger, eventData)

	var earned []domain.Badge
	for _, badge := range s.registry.All() {
		if heldSet[badge.ID] && !badge.Stackable {
			continue
		}

		met, err := s.allCriteriaMet(ctx, userID, badge)
		if err != nil {
			log.Warn(LogMsgCriteriaCheck, "badge_id", badge.ID, "error", err)
			continue
		}
		if !met {
			continue
		}

		awarded, err := s.award(ctx, userID, profile.Username, badge, metadata)
		if err != nil {
			return earned, err
		}
		if awarded {
			earned = append(earned, badge)
		}
	}
	return earned, nil
}

// awardMetadata captures what triggered an award on the badge row
func awardMetadata(trigger string, eventData map[string]interface{}) map[string]interface{} {
	if trigger == "" && len(eventData) == 0 {
		return nil
	}
	metadata := make(map[string]interface{}, len(eventData)+1)
	for k, v := range eventData {
		metadata[k] = v
	}
	if trigger != "" {
		metadata["trigger_event"] = trigger
	}
	return metadata
}

func (s *service) allCriteriaMet(ctx context.Context, userID string, badge domain.Badge) (bool, error) {
	for criterion, required := range badge.Criteria {
		_, met, err := criterionMet(ctx, s.src, userID, criterion, required)
		if err != nil {
			return false, err
		}
		if !met {
			return false, nil
		}
	}
	return true, nil
}

// award inserts the badge and credits its rewards. Returns false when a
// concurrent check already awarded it.
func (s *service) award(ctx context.Context, userID, username string, badge domain.Badge, metadata map[string]interface{}) (bool, error) {
	log := logger.FromContext(ctx)

	inserted, err := s.repo.AwardBadge(ctx, &domain.UserBadge{
		ID:       uuid.NewString(),
		UserID:   userID,
		BadgeID:  badge.ID,
		Metadata: metadata,
	}, badge.Stackable)
	if err != nil {
		return false, err
	}
	if !inserted && !badge.Stackable {
		return false, nil
	}

	if badge.CoinsReward > 0 || badge.XPReward > 0 {
		_, err = s.ledgerSvc.Credit(ctx, ledger.CreditParams{
			UserID:      userID,
			Amount:      badge.CoinsReward,
			XP:          badge.XPReward,
			Type:        domain.TransactionBadgeReward,
			Description: DescBadgeEarnedPrefix + badge.Name,
			ReferenceID: badge.ID,
		})
		if err != nil {
			// The badge row exists; the reward is the part that failed
			log.Error(LogMsgRewardFailed, "badge_id", badge.ID, "user_id", userID, "error", err)
		}
	}

	log.Info(LogMsgBadgeAwarded, "badge_id", badge.ID, "user_id", userID, "rarity", badge.Rarity)
	_ = s.bus.Publish(ctx, event.NewBadgeEarnedEvent(userID, username, badge.ID, badge.Name,
		string(badge.Rarity), badge.XPReward, badge.CoinsReward))
	return true, nil
}

func (s *service) ListUserBadges(ctx context.Context, userID string) ([]domain.EarnedBadge, error) {
	awards, err := s.repo.ListUserBadges(ctx, userID)
	if err != nil {
		return nil, err
	}

	earned := make([]domain.EarnedBadge, 0, len(awards))
	for _, award := range awards {
		badge, ok := s.registry.Get(award.BadgeID)
		if !ok {
			// Definition retired from the registry; skip the orphan row
			continue
		}
		earned = append(earned, domain.EarnedBadge{
			Badge:       badge,
			UserBadgeID: award.ID,
			ObtainedAt:  award.ObtainedAt,
			Count:       award.Count,
		})
	}
	return earned, nil
}

func (s *service) ListAvailableBadges(ctx context.Context, viewerID string, filter domain.BadgeFilter) ([]domain.BadgeListing, error) {
	heldCounts := make(map[string]int)
	if viewerID != "" {
		held, err := s.repo.ListUserBadges(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		for _, award := range held {
			heldCounts[award.BadgeID] = award.Count
		}
	}

	var badges []domain.BadgeListing
	for _, badge := range s.registry.All() {
		count, obtained := heldCounts[badge.ID]
		// Hidden badges surface only to their holders
		if badge.Hidden && !obtained && !filter.IncludeHidden {
			continue
		}
		if filter.Category != "" && badge.Category != filter.Category {
			continue
		}
		if filter.Rarity != "" && badge.Rarity != filter.Rarity {
			continue
		}
		badges = append(badges, domain.BadgeListing{
			Badge:         badge,
			Obtained:      obtained,
			ObtainedCount: count,
		})
	}
	return badges, nil
}

func (s *service) GetProgress(ctx context.Context, userID, badgeID string) (*domain.BadgeProgress, error) {
	badge, ok := s.registry.Get(badgeID)
	if !ok {
		return nil, domain.ErrBadgeNotFound
	}

	progress := &domain.BadgeProgress{
		BadgeID:   badge.ID,
		BadgeName: badge.Name,
		Criteria:  make(map[string]domain.CriterionProgress, len(badge.Criteria)),
	}

	completed := 0
	for criterion, required := range badge.Criteria {
		current, met, err := criterionMet(ctx, s.src, userID, criterion, required)
		if err != nil {
			return nil, err
		}
		progress.Criteria[criterion] = domain.CriterionProgress{
			Current:   current,
			Required:  required,
			Completed: met,
		}
		if met {
			completed++
		}
	}

	progress.OverallProgress = float64(completed) / float64(len(badge.Criteria))
	progress.Completed = completed == len(badge.Criteria)
	return progress, nil
}

func (s *service) Leaderboard(ctx context.Context, limit int) ([]domain.BadgeLeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	if entries, ok := s.cache.getLeaderboard(limit); ok {
		return entries, nil
	}

	entries, err := s.repo.GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		rarest, err := s.rarestBadge(ctx, entries[i].UserID)
		if err != nil {
			return nil, err
		}
		entries[i].RarestBadge = rarest
	}

	s.cache.putLeaderboard(limit, entries)
	return entries, nil
}

// rarestBadge returns the highest-rarity badge the user holds
func (s *service) rarestBadge(ctx context.Context, userID string) (*domain.Badge, error) {
	awards, err := s.repo.ListUserBadges(ctx, userID)
	if err != nil {
		return nil, err
	}

	var rarest *domain.Badge
	for _, award := range awards {
		badge, ok := s.registry.Get(award.BadgeID)
		if !ok {
			continue
		}
		if rarest == nil || badge.Rarity.Ordinal() > rarest.Rarity.Ordinal() {
			b := badge
			rarest = &b
		}
	}
	return rarest, nil
}

func (s *service) GlobalStats(ctx context.Context) (*domain.BadgeGlobalStats, error) {
	if stats, ok := s.cache.getGlobalStats(); ok {
		return stats, nil
	}

	counts, err := s.repo.CountAwardsByBadge(ctx)
	if err != nil {
		return nil, err
	}
	holders, err := s.repo.CountUsersWithBadges(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.BadgeGlobalStats{
		TotalBadgesAvailable: s.registry.Len(),
		UsersWithBadges:      holders,
		RarityDistribution:   make(map[domain.BadgeRarity]int),
	}

	for badgeID, count := range counts {
		stats.TotalBadgesEarned += count
		if badge, ok := s.registry.Get(badgeID); ok {
			stats.RarityDistribution[badge.Rarity] += count
		}
	}
	if holders > 0 {
		stats.AverageBadgesPerUser = float64(stats.TotalBadgesEarned) / float64(holders)
	}

	stats.MostPopularBadges = s.popularBadges(counts)

	s.cache.putGlobalStats(stats)
	return stats, nil
}

// popularBadges picks the most-earned badges from the award counts
func (s *service) popularBadges(counts map[string]int) []domain.PopularBadge {
	var popular []domain.PopularBadge
	for badgeID, count := range counts {
		badge, ok := s.registry.Get(badgeID)
		if !ok {
			continue
		}
		popular = append(popular, domain.PopularBadge{
			BadgeName:   badge.Name,
			BadgeIcon:   badge.Icon,
			TimesEarned: count,
		})
	}
	// Highest counts first, by name for equal counts
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].TimesEarned != popular[j].TimesEarned {
			return popular[i].TimesEarned > popular[j].TimesEarned
		}
		return popular[i].BadgeName < popular[j].BadgeName
	})
	if len(popular) > PopularBadgesLimit {
		popular = popular[:PopularBadgesLimit]
	}
	return popular
}

func (s *service) RecordComment(ctx context.Context, userID, username, subject, body string) (*domain.Comment, error) {
	if userID == "" || body == "" {
		return nil, domain.ErrInvalidInput
	}

	// Ensure the author's user row exists for the comment's reference
	if err := s.users.UpsertUser(ctx, &domain.User{ID: userID, Username: username}); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:      uuid.NewString(),
		UserID:  userID,
		Subject: subject,
		Body:    body,
	}
	if err := s.users.RecordComment(ctx, comment); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgCommentRecorded, "user_id", userID, "subject", subject)
	_ = s.bus.Publish(ctx, event.NewCommentPostedEvent(userID, subject))
	return comment, nil
}

func (s *service) AdminAward(ctx context.Context, actorID, userID, badgeID string) (*domain.EarnedBadge, error) {
	log := logger.FromContext(ctx)

	if err := repository.RequireAdmin(ctx, s.users, actorID); err != nil {
		return nil, err
	}

	badge, ok := s.registry.Get(badgeID)
	if !ok {
		return nil, domain.ErrBadgeNotFound
	}

	profile, err := s.src.Stats.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	metadata := map[string]interface{}{
		"awarded_by_admin": true,
		"awarded_by":       actorID,
	}
	awarded, err := s.award(ctx, userID, profile.Username, badge, metadata)
	if err != nil {
		return nil, err
	}
	if !awarded {
		return nil, domain.ErrBadgeAlreadyHeld
	}

	log.Info(LogMsgAdminBadgeGrant, "badge_id", badgeID, "user_id", userID, "actor_id", actorID)

	awards, err := s.repo.ListUserBadges(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, award := range awards {
		if award.BadgeID == badgeID {
			return &domain.EarnedBadge{
				Badge:       badge,
				UserBadgeID: award.ID,
				ObtainedAt:  award.ObtainedAt,
				Count:       award.Count,
			}, nil
		}
	}
	return nil, errors.New("awarded badge not found")
}
