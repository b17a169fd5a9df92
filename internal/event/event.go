package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Common event types
const (
	BadgeEarned         Type = "badge.earned"
	BetPlaced           Type = "bet.placed"
	BetWon              Type = "bet.won"
	MarketSettled       Type = "market.settled"
	MarketCancelled     Type = "market.cancelled"
	CoinsEarned         Type = "coins.earned"
	LevelUp             Type = "level.up"
	BonusClaimed        Type = "bonus.claimed"
	ItemPurchased       Type = "marketplace.purchased"
	TournamentCompleted Type = "tournament.completed"
	UserLoggedIn        Type = "user.logged_in"
	CommentPosted       Type = "comment.posted"
)

// Typed event payloads for type safety

// BadgeEarnedPayloadV1 is the typed payload for badge award events
type BadgeEarnedPayloadV1 struct {
	UserID      string `json:"user_id"`
	Username    string `json:"user_name"`
	BadgeID     string `json:"badge_id"`
	BadgeName   string `json:"badge_name"`
	Rarity      string `json:"rarity"`
	XPReward    int    `json:"xp_reward"`
	CoinsReward int    `json:"coins_reward"`
	Timestamp   int64  `json:"timestamp"`
}

// BetPlacedPayloadV1 is the typed payload for bet placement events
type BetPlacedPayloadV1 struct {
	UserID          string  `json:"user_id"`
	Username        string  `json:"user_name"`
	BetID           string  `json:"bet_id"`
	MarketID        string  `json:"market_id"`
	MarketTitle     string  `json:"market_title"`
	OptionName      string  `json:"option_name"`
	Amount          int     `json:"amount"`
	Odds            float64 `json:"odds"`
	PotentialPayout int     `json:"potential_payout"`
	Timestamp       int64   `json:"timestamp"`
}

// BetWonPayloadV1 is the typed payload for winning bet events
type BetWonPayloadV1 struct {
	UserID      string `json:"user_id"`
	Username    string `json:"user_name"`
	BetID       string `json:"bet_id"`
	MarketID    string `json:"market_id"`
	MarketTitle string `json:"market_title"`
	OptionName  string `json:"option_name"`
	Amount      int    `json:"amount"`
	Payout      int    `json:"payout"`
	Timestamp   int64  `json:"timestamp"`
}

// MarketSettledPayloadV1 is the typed payload for market settlement events
type MarketSettledPayloadV1 struct {
	MarketID      string `json:"market_id"`
	MarketTitle   string `json:"market_title"`
	WinningOption string `json:"winning_option"`
	WinnersCount  int    `json:"winners_count"`
	TotalPayouts  int    `json:"total_payouts"`
	Timestamp     int64  `json:"timestamp"`
}

// CoinsEarnedPayloadV1 is the typed payload for coin credit events
type CoinsEarnedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Amount    int    `json:"amount"`
	Source    string `json:"source"`
	Timestamp int64  `json:"timestamp"`
}

// LevelUpPayloadV1 is the typed payload for level up events
type LevelUpPayloadV1 struct {
	UserID     string `json:"user_id"`
	Username   string `json:"user_name"`
	OldLevel   int    `json:"old_level"`
	NewLevel   int    `json:"new_level"`
	CoinsBonus int    `json:"coins_bonus"`
	Timestamp  int64  `json:"timestamp"`
}

// BonusClaimedPayloadV1 is the typed payload for daily bonus events
type BonusClaimedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Username  string `json:"user_name"`
	Coins     int    `json:"coins"`
	XP        int    `json:"xp"`
	Timestamp int64  `json:"timestamp"`
}

// ItemPurchasedPayloadV1 is the typed payload for marketplace purchase events
type ItemPurchasedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Username  string `json:"user_name"`
	ItemID    string `json:"item_id"`
	ItemName  string `json:"item_name"`
	Price     int    `json:"price"`
	Timestamp int64  `json:"timestamp"`
}

// TournamentCompletedPayloadV1 is the typed payload for tournament completion events
type TournamentCompletedPayloadV1 struct {
	TournamentID string `json:"tournament_id"`
	Game         string `json:"game"`
	WinnerID     string `json:"winner_id"`
	Participants int    `json:"participants"`
	Timestamp    int64  `json:"timestamp"`
}

// UserLoggedInPayloadV1 is the typed payload for login events
type UserLoggedInPayloadV1 struct {
	UserID    string `json:"user_id"`
	Timestamp int64  `json:"timestamp"`
}

// CommentPostedPayloadV1 is the typed payload for comment events
type CommentPostedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Subject   string `json:"subject"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewBadgeEarnedEvent creates a new badge earned event
func NewBadgeEarnedEvent(userID, username, badgeID, badgeName, rarity string, xpReward, coinsReward int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BadgeEarned,
		Payload: BadgeEarnedPayloadV1{
			UserID:      userID,
			Username:    username,
			BadgeID:     badgeID,
			BadgeName:   badgeName,
			Rarity:      rarity,
			XPReward:    xpReward,
			CoinsReward: coinsReward,
			Timestamp:   time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewBetPlacedEvent creates a new bet placed event
func NewBetPlacedEvent(userID, username, betID, marketID, marketTitle, optionName string, amount int, odds float64, potentialPayout int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BetPlaced,
		Payload: BetPlacedPayloadV1{
			UserID:          userID,
			Username:        username,
			BetID:           betID,
			MarketID:        marketID,
			MarketTitle:     marketTitle,
			OptionName:      optionName,
			Amount:          amount,
			Odds:            odds,
			PotentialPayout: potentialPayout,
			Timestamp:       time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewBetWonEvent creates a new bet won event
func NewBetWonEvent(userID, username, betID, marketID, marketTitle, optionName string, amount, payout int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BetWon,
		Payload: BetWonPayloadV1{
			UserID:      userID,
			Username:    username,
			BetID:       betID,
			MarketID:    marketID,
			MarketTitle: marketTitle,
			OptionName:  optionName,
			Amount:      amount,
			Payout:      payout,
			Timestamp:   time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewMarketSettledEvent creates a new market settled event
func NewMarketSettledEvent(marketID, marketTitle, winningOption string, winnersCount, totalPayouts int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MarketSettled,
		Payload: MarketSettledPayloadV1{
			MarketID:      marketID,
			MarketTitle:   marketTitle,
			WinningOption: winningOption,
			WinnersCount:  winnersCount,
			TotalPayouts:  totalPayouts,
			Timestamp:     time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewCoinsEarnedEvent creates a new coins earned event
func NewCoinsEarnedEvent(userID string, amount int, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CoinsEarned,
		Payload: CoinsEarnedPayloadV1{
			UserID:    userID,
			Amount:    amount,
			Source:    source,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewLevelUpEvent creates a new level up event
func NewLevelUpEvent(userID, username string, oldLevel, newLevel, coinsBonus int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LevelUp,
		Payload: LevelUpPayloadV1{
			UserID:     userID,
			Username:   username,
			OldLevel:   oldLevel,
			NewLevel:   newLevel,
			CoinsBonus: coinsBonus,
			Timestamp:  time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewBonusClaimedEvent creates a new daily bonus claimed event
func NewBonusClaimedEvent(userID, username string, coins, xp int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BonusClaimed,
		Payload: BonusClaimedPayloadV1{
			UserID:    userID,
			Username:  username,
			Coins:     coins,
			XP:        xp,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewItemPurchasedEvent creates a new marketplace purchase event
func NewItemPurchasedEvent(userID, username, itemID, itemName string, price int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemPurchased,
		Payload: ItemPurchasedPayloadV1{
			UserID:    userID,
			Username:  username,
			ItemID:    itemID,
			ItemName:  itemName,
			Price:     price,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewTournamentCompletedEvent creates a new tournament completed event
func NewTournamentCompletedEvent(tournamentID, game, winnerID string, participants int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TournamentCompleted,
		Payload: TournamentCompletedPayloadV1{
			TournamentID: tournamentID,
			Game:         game,
			WinnerID:     winnerID,
			Participants: participants,
			Timestamp:    time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewUserLoggedInEvent creates a new login event
func NewUserLoggedInEvent(userID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    UserLoggedIn,
		Payload: UserLoggedInPayloadV1{
			UserID:    userID,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewCommentPostedEvent creates a new comment posted event
func NewCommentPostedEvent(userID, subject string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CommentPosted,
		Payload: CommentPostedPayloadV1{
			UserID:    userID,
			Subject:   subject,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously. Slow sinks wrap themselves in goroutines.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
