package metrics

import (
	"context"

	"github.com/nexuslan/arena/internal/event"
	"github.com/nexuslan/arena/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.BadgeEarned,
		event.BetPlaced,
		event.BetWon,
		event.MarketSettled,
		event.LevelUp,
		event.BonusClaimed,
		event.ItemPurchased,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.BadgeEarned:
		if payload, err := event.DecodePayload[event.BadgeEarnedPayloadV1](evt.Payload); err == nil {
			BadgesAwarded.WithLabelValues(payload.BadgeID, payload.Rarity).Inc()
		}

	case event.BetPlaced:
		BetsPlaced.Inc()
		if payload, err := event.DecodePayload[event.BetPlacedPayloadV1](evt.Payload); err == nil {
			CoinsStaked.Add(float64(payload.Amount))
		}

	case event.BetWon:
		BetsWon.Inc()
		if payload, err := event.DecodePayload[event.BetWonPayloadV1](evt.Payload); err == nil {
			CoinsPaidOut.Add(float64(payload.Payout))
		}

	case event.MarketSettled:
		MarketsSettled.Inc()

	case event.LevelUp:
		LevelUps.Inc()

	case event.BonusClaimed:
		DailyBonusesClaimed.Inc()

	case event.ItemPurchased:
		if payload, err := event.DecodePayload[event.ItemPurchasedPayloadV1](evt.Payload); err == nil {
			ItemsPurchased.WithLabelValues(payload.ItemID).Inc()
		}
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
