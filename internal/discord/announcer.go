package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/nexuslan/arena/internal/event"
	"github.com/nexuslan/arena/internal/logger"
)

// Announcer posts gamification highlights to a Discord channel. With an
// empty token it becomes a no-op so local setups run without Discord.
type Announcer struct {
	session   *discordgo.Session
	channelID string
	enabled   bool
}

// Config holds the announcer configuration
type Config struct {
	Token     string
	ChannelID string
}

// NewAnnouncer creates a new Discord announcer
func NewAnnouncer(cfg Config) (*Announcer, error) {
	if cfg.Token == "" || cfg.ChannelID == "" {
		return &Announcer{enabled: false}, nil
	}

	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	return &Announcer{
		session:   s,
		channelID: cfg.ChannelID,
		enabled:   true,
	}, nil
}

// Start opens the gateway connection. No-op when disabled.
func (a *Announcer) Start() error {
	if !a.enabled {
		return nil
	}
	if err := a.session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}
	return nil
}

// Stop closes the gateway connection
func (a *Announcer) Stop() {
	if a.enabled {
		a.session.Close()
	}
}

// RegisterHandlers subscribes the announcer to the event bus
func (a *Announcer) RegisterHandlers(bus event.Bus) {
	bus.Subscribe(event.BadgeEarned, a.onBadgeEarned)
	bus.Subscribe(event.BetWon, a.onBetWon)
	bus.Subscribe(event.MarketSettled, a.onMarketSettled)
	bus.Subscribe(event.LevelUp, a.onLevelUp)
}

// announce sends one channel message. Announcements are best-effort and
// never fail the operation that triggered them.
func (a *Announcer) announce(ctx context.Context, msg string) error {
	if !a.enabled {
		return nil
	}
	if _, err := a.session.ChannelMessageSend(a.channelID, msg); err != nil {
		logger.FromContext(ctx).Warn("Failed to send Discord announcement", "error", err)
	}
	return nil
}

func (a *Announcer) onBadgeEarned(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.BadgeEarnedPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	return a.announce(ctx, fmt.Sprintf(MsgBadgeEarned, payload.Username, payload.BadgeName, payload.Rarity))
}

func (a *Announcer) onBetWon(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.BetWonPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	return a.announce(ctx, fmt.Sprintf(MsgBetWon, payload.Username, payload.Payout, payload.OptionName))
}

func (a *Announcer) onMarketSettled(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.MarketSettledPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	return a.announce(ctx, fmt.Sprintf(MsgMarketSettled, payload.MarketTitle, payload.WinningOption, payload.WinnersCount))
}

func (a *Announcer) onLevelUp(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	return a.announce(ctx, fmt.Sprintf(MsgLevelUp, payload.Username, payload.NewLevel))
}
