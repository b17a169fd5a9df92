package bootstrap

import (
	"context"
	"log/slog"

	"github.com/nexuslan/arena/internal/discord"
	"github.com/nexuslan/arena/internal/event"
	"github.com/nexuslan/arena/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Announcer          *discord.Announcer
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops all application components in order: the HTTP
// server first so no new requests arrive, then the announcer, then the
// event publisher last so pending events are flushed.
// Errors during shutdown are logged but do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Announcer != nil {
		components.Announcer.Stop()
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	if err := components.ResilientPublisher.Close(); err != nil {
		slog.Error(LogMsgResilientPublisherFailed, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}
