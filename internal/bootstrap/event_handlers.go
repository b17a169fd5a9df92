package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/nexuslan/arena/internal/achievement"
	"github.com/nexuslan/arena/internal/activity"
	"github.com/nexuslan/arena/internal/config"
	"github.com/nexuslan/arena/internal/discord"
	"github.com/nexuslan/arena/internal/event"
	"github.com/nexuslan/arena/internal/metrics"
)

// EventHandlerDependencies holds the dependencies needed for event handler
// registration.
type EventHandlerDependencies struct {
	EventBus           event.Bus
	AchievementService achievement.Service
	ActivityService    activity.Service
	Config             *config.Config
}

// RegisterEventHandlers sets up all event subscribers:
//   - badge checker (re-evaluates criteria when user metrics change)
//   - activity feed recorder
//   - metrics collector
//   - Discord announcer (when a token is configured)
//
// Returns the announcer so the caller can stop it on shutdown.
func RegisterEventHandlers(deps EventHandlerDependencies) (*discord.Announcer, error) {
	badgeChecker := achievement.NewEventHandler(deps.AchievementService)
	badgeChecker.Register(deps.EventBus)
	slog.Info(LogMsgBadgeCheckerRegistered)

	deps.ActivityService.RegisterHandlers(deps.EventBus)
	slog.Info(LogMsgActivityRecorderRegistered)

	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	announcer, err := discord.NewAnnouncer(discord.Config{
		Token:     deps.Config.DiscordToken,
		ChannelID: deps.Config.DiscordChannelID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedStartAnnouncer, err)
	}
	if deps.Config.DiscordToken == "" {
		slog.Info(LogMsgAnnouncerDisabled)
	} else {
		if err := announcer.Start(); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedStartAnnouncer, err)
		}
		announcer.RegisterHandlers(deps.EventBus)
		slog.Info(LogMsgAnnouncerRegistered, "channel_id", deps.Config.DiscordChannelID)
	}

	return announcer, nil
}
