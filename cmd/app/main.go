// Command app runs the Homebox bridge: it polls one inventory server, keeps
// a sensor per item, mirrors them to Home Assistant over MQTT discovery and
// serves the webhook and service API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/osse101/HomeboxBridge_Go/internal/bootstrap"
	"github.com/osse101/HomeboxBridge_Go/internal/config"
	"github.com/osse101/HomeboxBridge_Go/internal/handler"
	"github.com/osse101/HomeboxBridge_Go/internal/server"
)

const shutdownTimeout = 10 * time.Second

// @title Homebox Bridge API
// @version 1.0
// @description Inventory sensors, location services and the inventory notifier webhook.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var envFile string
	var once bool

	flagSet := pflag.NewFlagSet("homebox-bridge", pflag.ContinueOnError)
	flagSet.StringVar(&envFile, "env-file", "", "load environment from this file instead of ./.env")
	flagSet.BoolVar(&once, "once", false, "run a single refresh pass, print a summary and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return fmt.Errorf("validate environment: %w", err)
	}

	if once {
		initLogger(cfg)
	} else {
		logFile, err := bootstrap.SetupLogger(cfg)
		if err != nil {
			return err
		}
		defer logFile.Close()
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	entry, err := bootstrap.Setup(ctx, cfg)
	if err != nil {
		return err
	}

	if once {
		defer entry.Close(context.Background())
		return printSummary(entry)
	}

	handler.Version = cfg.Version
	entry.Start(ctx)
	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, entry.ServerDeps())

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
		slog.Error("Server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{Server: srv, Entry: entry})
	return err
}

// printSummary writes the result of the setup pass to stdout
func printSummary(entry *bootstrap.Entry) error {
	status := entry.Coordinator.Status()
	fmt.Printf("state: %s\n", status.State)
	if status.LastError != "" {
		fmt.Printf("last error: %s\n", status.LastError)
	}
	fmt.Printf("items: %d\nlocations: %d\n", status.ItemCount, status.LocationCount)
	for _, v := range entry.Sensors.List() {
		fmt.Printf("  %-40s %s\n", v.Name, v.State)
	}
	if !status.Available {
		return fmt.Errorf("refresh failed: %s", status.LastError)
	}
	return nil
}
