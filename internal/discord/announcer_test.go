package discord

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexuslan/arena/internal/event"
)

func TestNewAnnouncer_DisabledWithoutToken(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"empty config", Config{}},
		{"token without channel", Config{Token: "abc"}},
		{"channel without token", Config{ChannelID: "123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			announcer, err := NewAnnouncer(tt.cfg)

			require.NoError(t, err)
			assert.False(t, announcer.enabled)
			assert.NoError(t, announcer.Start())
			announcer.Stop()
		})
	}
}

func TestDisabledAnnouncer_HandlersAreNoOps(t *testing.T) {
	ctx := context.Background()
	announcer, err := NewAnnouncer(Config{})
	require.NoError(t, err)

	bus := event.NewMemoryBus()
	announcer.RegisterHandlers(bus)

	// With no session configured, every handler must swallow its event
	assert.NoError(t, bus.Publish(ctx, event.NewBadgeEarnedEvent("user1", "gambler", "first_win", "First Victory", "common", 100, 50)))
	assert.NoError(t, bus.Publish(ctx, event.NewBetWonEvent("user1", "gambler", "bet1", "market1", "Grand Final", "Team Alpha", 100, 250)))
	assert.NoError(t, bus.Publish(ctx, event.NewLevelUpEvent("user1", "gambler", 4, 5, 100)))
}
