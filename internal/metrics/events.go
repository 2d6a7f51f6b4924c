package metrics

import (
	"context"

	"github.com/osse101/HomeboxBridge_Go/internal/event"
	"github.com/osse101/HomeboxBridge_Go/internal/logger"
)

// EventMetricsCollector subscribes to bridge events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.SnapshotRefreshed,
		event.RefreshFailed,
		event.LocationsSynced,
		event.ItemCreated,
		event.ItemUpdated,
		event.ItemDeleted,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.SnapshotRefreshed:
		payload, err := event.DecodePayload[event.SnapshotRefreshedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type, "error", err)
			return nil
		}
		ItemsTracked.Set(float64(payload.ItemCount))
		LocationsTracked.Set(float64(payload.LocationCount))
		LastSuccess.Set(float64(payload.FetchedAt.Unix()))

	case event.LocationsSynced:
		payload, err := event.DecodePayload[event.LocationsSyncedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type, "error", err)
			return nil
		}
		LocationsCreated.Add(float64(payload.Created))
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
