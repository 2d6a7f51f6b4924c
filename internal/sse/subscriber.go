package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/HomeboxBridge_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for every event type forwarded to clients.
// Item updates are taken from the wildcard channel only.
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.SnapshotRefreshed, s.handleSnapshotRefreshed)
	s.bus.Subscribe(event.RefreshFailed, s.handleRefreshFailed)
	s.bus.Subscribe(event.LocationsSynced, s.handleLocationsSynced)
	s.bus.Subscribe(event.ItemCreated, s.handleItemChanged)
	s.bus.Subscribe(event.ItemUpdated, s.handleItemChanged)
	s.bus.Subscribe(event.ItemDeleted, s.handleItemChanged)

	slog.Info(LogMsgSubscriberReady,
		"types", []string{
			EventTypeSnapshotRefreshed,
			EventTypeRefreshFailed,
			EventTypeLocationsSynced,
			EventTypeItemCreated,
			EventTypeItemUpdated,
			EventTypeItemDeleted,
		})
}

func (s *Subscriber) handleSnapshotRefreshed(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.SnapshotRefreshedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgPayloadUnexpected, "type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeSnapshotRefreshed, SnapshotPayload{
		ItemCount:     payload.ItemCount,
		LocationCount: payload.LocationCount,
		FetchedAt:     payload.FetchedAt,
	})
	slog.Debug(LogMsgEventBroadcast, "event_type", EventTypeSnapshotRefreshed, "items", payload.ItemCount)
	return nil
}

func (s *Subscriber) handleRefreshFailed(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.RefreshFailedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgPayloadUnexpected, "type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeRefreshFailed, RefreshFailedPayload{
		Error:       payload.Error,
		NeedsReauth: payload.NeedsReauth,
	})
	return nil
}

func (s *Subscriber) handleLocationsSynced(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.LocationsSyncedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgPayloadUnexpected, "type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeLocationsSynced, LocationsSyncedPayload{Created: payload.Created})
	return nil
}

func (s *Subscriber) handleItemChanged(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.ItemChangedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgPayloadUnexpected, "type", evt.Type, "error", err)
		return nil
	}

	source, _ := evt.GetMetadataValue(event.MetadataKeySource).(string)
	s.hub.Broadcast(string(evt.Type), ItemChangedPayload{
		ItemID: payload.ItemID,
		Action: payload.Action,
		Source: source,
		Data:   payload.Data,
	})

	slog.Debug(LogMsgEventBroadcast, "event_type", evt.Type, "item_id", payload.ItemID)
	return nil
}
