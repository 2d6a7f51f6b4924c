package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/HomeboxBridge_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server *server.Server
	Entry  *Entry
}

// GracefulShutdown stops the HTTP server first so no new webhook deliveries
// or service calls arrive, then closes the bridge entry. Errors are logged
// and never stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Entry != nil {
		slog.Info(LogMsgShuttingDownBridge)
		components.Entry.Close(ctx)
	}

	slog.Info(LogMsgServerStopped)
}
