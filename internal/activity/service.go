package activity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nexuslan/arena/internal/domain"
	"github.com/nexuslan/arena/internal/event"
	"github.com/nexuslan/arena/internal/logger"
	"github.com/nexuslan/arena/internal/repository"
)

// Service defines the interface for the public activity feed
type Service interface {
	ListFeed(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityEntry, error)

	// RegisterHandlers subscribes the feed recorder to the event bus
	RegisterHandlers(bus event.Bus)
}

type service struct {
	repo  repository.Activity
	title cases.Caser
}

// NewService creates a new activity feed service
func NewService(repo repository.Activity) Service {
	return &service{
		repo:  repo,
		title: cases.Title(language.English),
	}
}

func (s *service) ListFeed(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityEntry, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultFeedLimit
	}
	if filter.Limit > MaxFeedLimit {
		filter.Limit = MaxFeedLimit
	}
	return s.repo.ListEntries(ctx, filter)
}

func (s *service) RegisterHandlers(bus event.Bus) {
	bus.Subscribe(event.BadgeEarned, s.onBadgeEarned)
	bus.Subscribe(event.BetPlaced, s.onBetPlaced)
	bus.Subscribe(event.BetWon, s.onBetWon)
	bus.Subscribe(event.LevelUp, s.onLevelUp)
	bus.Subscribe(event.ItemPurchased, s.onItemPurchased)
	bus.Subscribe(event.BonusClaimed, s.onBonusClaimed)
}

// record inserts a feed row. Feed writes are best-effort: a failure is
// logged but never propagated back to the publishing operation.
func (s *service) record(ctx context.Context, userID, username string, activityType domain.ActivityType, message string) error {
	entry := &domain.ActivityEntry{
		ID:       uuid.NewString(),
		UserID:   userID,
		Username: username,
		Type:     activityType,
		Message:  message,
	}
	if err := s.repo.InsertEntry(ctx, entry); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEntryDropped, "type", activityType, "user_id", userID, "error", err)
	}
	return nil
}

func (s *service) onBadgeEarned(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.BadgeEarnedPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("%s earned the %s badge (%s)",
		payload.Username, payload.BadgeName, s.title.String(payload.Rarity))
	return s.record(ctx, payload.UserID, payload.Username, domain.ActivityBadgeEarned, msg)
}

func (s *service) onBetPlaced(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.BetPlacedPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("%s bet %d coins on %s in %s",
		payload.Username, payload.Amount, payload.OptionName, payload.MarketTitle)
	return s.record(ctx, payload.UserID, payload.Username, domain.ActivityBetPlaced, msg)
}

func (s *service) onBetWon(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.BetWonPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("%s won %d coins betting on %s",
		payload.Username, payload.Payout, payload.OptionName)
	return s.record(ctx, payload.UserID, payload.Username, domain.ActivityBetWon, msg)
}

func (s *service) onLevelUp(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("%s reached level %d", payload.Username, payload.NewLevel)
	return s.record(ctx, payload.UserID, payload.Username, domain.ActivityLevelUp, msg)
}

func (s *service) onItemPurchased(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.ItemPurchasedPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("%s bought %s for %d coins",
		payload.Username, payload.ItemName, payload.Price)
	return s.record(ctx, payload.UserID, payload.Username, domain.ActivityPurchase, msg)
}

func (s *service) onBonusClaimed(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.BonusClaimedPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("%s claimed the daily bonus (+%d coins)",
		payload.Username, payload.Coins)
	return s.record(ctx, payload.UserID, payload.Username, domain.ActivityBonusClaimed, msg)
}
