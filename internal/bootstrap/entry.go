package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/osse101/HomeboxBridge_Go/internal/areasync"
	"github.com/osse101/HomeboxBridge_Go/internal/config"
	"github.com/osse101/HomeboxBridge_Go/internal/coordinator"
	"github.com/osse101/HomeboxBridge_Go/internal/domain"
	"github.com/osse101/HomeboxBridge_Go/internal/event"
	"github.com/osse101/HomeboxBridge_Go/internal/homebox"
	"github.com/osse101/HomeboxBridge_Go/internal/mqtt"
	"github.com/osse101/HomeboxBridge_Go/internal/scheduler"
	"github.com/osse101/HomeboxBridge_Go/internal/secret"
	"github.com/osse101/HomeboxBridge_Go/internal/sensor"
	"github.com/osse101/HomeboxBridge_Go/internal/server"
	"github.com/osse101/HomeboxBridge_Go/internal/sse"
	"github.com/osse101/HomeboxBridge_Go/internal/webhook"
	"github.com/osse101/HomeboxBridge_Go/internal/worker"
)

// Entry holds everything wired up for one inventory server
type Entry struct {
	Config      *config.Config
	Client      *homebox.Client
	Coordinator *coordinator.Coordinator
	Sensors     *sensor.Registry
	Bus         *event.MemoryBus
	Publisher   *event.ResilientPublisher
	Pool        *worker.Pool
	Scheduler   *scheduler.Scheduler
	MQTT        *mqtt.Client
	Discovery   *sensor.Publisher
	Hub         *sse.Hub
	Webhook     *webhook.Handler
}

// Setup connects to the inventory server and wires the bridge. A failed
// first login is fatal; a failed first refresh is not, the scheduler retries
// it. Nothing runs in the background until Start.
func Setup(ctx context.Context, cfg *config.Config) (*Entry, error) {
	password, err := resolvePassword(ctx, cfg.HomeboxPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgResolveSecret, err)
	}

	client := homebox.NewClient(homebox.Config{
		BaseURL:       cfg.HomeboxURL,
		Username:      cfg.HomeboxUsername,
		Password:      password,
		UseHTTPS:      cfg.UseHTTPS,
		VerifySSL:     cfg.VerifySSL,
		Timeout:       cfg.RequestTimeout,
		TokenLifetime: cfg.EffectiveTokenLifetime(),
	})
	if !client.TestConnection(ctx) {
		return nil, fmt.Errorf("%s: %w", ErrMsgConnectFailed, domain.ErrAuthFailed)
	}
	slog.Info(LogMsgConnected, "url", client.BaseURL())

	bus, publisher, err := InitializeEventSystem(cfg)
	if err != nil {
		return nil, err
	}

	e := &Entry{
		Config:    cfg,
		Client:    client,
		Bus:       bus,
		Publisher: publisher,
		Pool:      worker.NewPool(RefreshWorkers, RefreshQueueSize),
		Hub:       sse.NewHub(),
	}

	e.Coordinator = coordinator.New(client, publisher, coordinator.Options{
		LabelFilter: cfg.LabelFilter,
		Areas:       areaProvider(cfg),
		Queue:       e.Pool,
	})

	if err := e.setupDiscovery(ctx); err != nil {
		_ = publisher.Shutdown(ctx)
		return nil, err
	}
	e.Sensors.Register(bus)
	sse.NewSubscriber(e.Hub, bus).Subscribe()

	// Initial pass runs inline so the sensors exist before the HTTP server starts
	if _, err := e.Coordinator.Refresh(ctx); err != nil {
		if errors.Is(err, domain.ErrReauthRequired) {
			e.Close(ctx)
			return nil, fmt.Errorf("%s: %w", ErrMsgInitialRefresh, err)
		}
		slog.Warn(LogMsgInitialRefreshFailed, "error", err)
	}

	cfg.WebhookID = webhook.EnsureID(cfg.WebhookID)
	e.Webhook = webhook.NewHandler(cfg.WebhookID, bus, e.Coordinator)
	e.registerWebhook(ctx)

	slog.Info(LogMsgEntryReady,
		"sensors", e.Sensors.Len(),
		"mqtt", e.MQTT != nil,
		"poll_interval", cfg.PollInterval())
	return e, nil
}

// Start runs the refresh worker and the poll schedule until ctx is done or Close is called
func (e *Entry) Start(ctx context.Context) {
	e.Hub.Start()
	e.Pool.Start(ctx)
	e.Scheduler = scheduler.New(e.Pool)
	e.Scheduler.Schedule(e.Config.PollInterval(), e.Coordinator)
}

// ServerDeps exposes the entry to the HTTP router
func (e *Entry) ServerDeps() server.Deps {
	return server.Deps{
		Status:    e.Coordinator,
		Snapshots: e.Coordinator,
		Sensors:   e.Sensors,
		Services:  e.Coordinator,
		Webhook:   e.Webhook,
		Events:    e.Hub,
	}
}

// Close stops background work, marks the bridge offline and disconnects.
// Pending events are flushed last.
func (e *Entry) Close(ctx context.Context) {
	if e.Scheduler != nil {
		e.Scheduler.Stop()
	}
	e.Pool.Stop()

	if e.Discovery != nil {
		if err := e.Discovery.PublishAvailability(ctx, false); err != nil {
			slog.Warn(LogMsgAvailabilityFailed, "error", err)
		}
	}
	if e.MQTT != nil {
		e.MQTT.Close()
	}
	e.Hub.Stop()

	slog.Info(LogMsgShuttingDownEventPublisher)
	if err := e.Publisher.Shutdown(ctx); err != nil {
		slog.Error(LogMsgResilientPublisherFailed, "error", err)
	}
}

// setupDiscovery builds the sensor registry, connected to the broker when
// one is configured. Every (re)connect republishes the retained topics.
func (e *Entry) setupDiscovery(ctx context.Context) error {
	cfg := e.Config
	if !cfg.MQTTEnabled() {
		slog.Info(LogMsgMQTTDisabled)
		e.Sensors = sensor.NewRegistry(nil)
		return nil
	}

	var registry atomic.Pointer[sensor.Registry]
	client, err := mqtt.Connect(ctx, mqtt.Config{
		Broker:      cfg.MQTTBroker,
		Username:    cfg.MQTTUsername,
		Password:    cfg.MQTTPassword,
		ClientID:    cfg.MQTTClientID,
		WillTopic:   sensor.TopicAvailability,
		WillPayload: sensor.PayloadOffline,
		OnConnect: func() {
			if r := registry.Load(); r != nil {
				r.Republish(context.Background())
			}
		},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgMQTTConnect, err)
	}

	e.MQTT = client
	e.Discovery = sensor.NewPublisher(client, cfg.MQTTDiscoveryPrefix)
	e.Sensors = sensor.NewRegistry(e.Discovery)
	registry.Store(e.Sensors)
	return nil
}

// registerWebhook asks the inventory server to post change notifications
// to this bridge. Failures are logged; polling still keeps sensors current.
func (e *Entry) registerWebhook(ctx context.Context) {
	url := e.Config.WebhookURL()
	if url == "" {
		slog.Info(LogMsgWebhookNotRegistered)
		return
	}
	if _, err := webhook.Register(ctx, e.Client, url); err != nil {
		slog.Warn(LogMsgWebhookRegisterFailed, "error", err)
	}
}

func resolvePassword(ctx context.Context, value string) (string, error) {
	if !secret.IsReference(value) {
		return value, nil
	}
	slog.Info(LogMsgResolvingSecret)
	resolver, err := secret.NewDefaultSSMResolver(ctx)
	if err != nil {
		return "", err
	}
	return secret.Resolve(ctx, resolver, value)
}

// areaProvider prefers AREAS_FILE over HOST_AREAS
func areaProvider(cfg *config.Config) areasync.AreaProvider {
	if cfg.AreasFile != "" {
		slog.Info(LogMsgAreasFromFile, "path", cfg.AreasFile)
		return areasync.FileAreas{Path: cfg.AreasFile}
	}
	slog.Info(LogMsgAreasFromEnv, "count", len(cfg.HostAreas))
	return areasync.StaticAreas(cfg.HostAreas)
}
