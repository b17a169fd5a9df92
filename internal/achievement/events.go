package achievement

import (
	"context"

	"github.com/nexuslan/arena/internal/domain"
	"github.com/nexuslan/arena/internal/event"
	"github.com/nexuslan/arena/internal/logger"
)

// EventHandler re-evaluates badge criteria when a user's metrics change
type EventHandler struct {
	service Service
}

// NewEventHandler creates a new achievement event handler
func NewEventHandler(service Service) *EventHandler {
	return &EventHandler{service: service}
}

// Register subscribes the handler to every event that can move a badge metric
func (e *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.BetPlaced, e.handle)
	bus.Subscribe(event.BetWon, e.handle)
	bus.Subscribe(event.ItemPurchased, e.handle)
	bus.Subscribe(event.BonusClaimed, e.handle)
	bus.Subscribe(event.CommentPosted, e.handle)
	bus.Subscribe(event.UserLoggedIn, e.handle)
	bus.Subscribe(event.CoinsEarned, e.handle)
}

// handle extracts the acting user from the payload and re-runs the badge
// check for them, passing the event along as award metadata. Failures are
// logged, never propagated: a missed check is repaired by the next one.
func (e *EventHandler) handle(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	userID := extractUserID(evt)
	if userID == "" {
		return nil
	}

	eventData, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil {
		eventData = nil
	}

	if _, err := e.service.CheckAndAward(ctx, userID, string(evt.Type), eventData); err != nil {
		log.Warn(LogMsgEventCheckFailed, "type", evt.Type, "user_id", userID, "error", err)
	}
	return nil
}

func extractUserID(evt event.Event) string {
	switch evt.Type {
	case event.BetPlaced:
		if p, err := event.DecodePayload[event.BetPlacedPayloadV1](evt.Payload); err == nil {
			return p.UserID
		}
	case event.BetWon:
		if p, err := event.DecodePayload[event.BetWonPayloadV1](evt.Payload); err == nil {
			return p.UserID
		}
	case event.ItemPurchased:
		if p, err := event.DecodePayload[event.ItemPurchasedPayloadV1](evt.Payload); err == nil {
			return p.UserID
		}
	case event.BonusClaimed:
		if p, err := event.DecodePayload[event.BonusClaimedPayloadV1](evt.Payload); err == nil {
			return p.UserID
		}
	case event.CommentPosted:
		if p, err := event.DecodePayload[event.CommentPostedPayloadV1](evt.Payload); err == nil {
			return p.UserID
		}
	case event.UserLoggedIn:
		if p, err := event.DecodePayload[event.UserLoggedInPayloadV1](evt.Payload); err == nil {
			return p.UserID
		}
	case event.CoinsEarned:
		p, err := event.DecodePayload[event.CoinsEarnedPayloadV1](evt.Payload)
		if err != nil {
			return ""
		}
		// Badge rewards already went through a check in the same cycle
		if p.Source == string(domain.TransactionBadgeReward) {
			return ""
		}
		return p.UserID
	}
	return ""
}
