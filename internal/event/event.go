package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/HomeboxBridge_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Common event types
const (
	// Coordinator outcomes
	SnapshotRefreshed Type = "snapshot.refreshed"
	RefreshFailed     Type = "refresh.failed"
	LocationsSynced   Type = "locations.synced"

	// Inbound webhook notifications. ItemUpdated is the wildcard channel;
	// ItemUpdatedFor(id) is the per-item channel.
	ItemCreated Type = "item.created"
	ItemUpdated Type = "item.updated"
	ItemDeleted Type = "item.deleted"
)

// ItemUpdatedFor returns the per-item update channel for itemID.
func ItemUpdatedFor(itemID string) Type {
	return ChannelFor(ItemUpdated, itemID)
}

// ChannelFor returns the per-record channel of an update type, such as
// location.updated:<id> for a location.
func ChannelFor(t Type, id string) Type {
	return Type(string(t) + ItemChannelSeparator + id)
}

// Typed event payloads for type safety

// SnapshotRefreshedPayloadV1 is the typed payload for snapshot.refreshed.
// Snapshot is only available to in-process subscribers.
type SnapshotRefreshedPayloadV1 struct {
	Snapshot      *domain.Snapshot `json:"-"`
	ItemCount     int              `json:"item_count"`
	LocationCount int              `json:"location_count"`
	FetchedAt     time.Time        `json:"fetched_at"`
}

// RefreshFailedPayloadV1 is the typed payload for refresh.failed
type RefreshFailedPayloadV1 struct {
	Error       string `json:"error"`
	NeedsReauth bool   `json:"needs_reauth"`
	Timestamp   int64  `json:"timestamp"`
}

// LocationsSyncedPayloadV1 is the typed payload for locations.synced
type LocationsSyncedPayloadV1 struct {
	Created   int   `json:"created"`
	Timestamp int64 `json:"timestamp"`
}

// ItemChangedPayloadV1 is the typed payload for item.* webhook events
type ItemChangedPayloadV1 struct {
	ItemID    string         `json:"item_id"`
	Action    string         `json:"action"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp int64          `json:"timestamp"`
}

// Type-safe event constructors

// NewSnapshotRefreshedEvent creates a snapshot.refreshed event
func NewSnapshotRefreshedEvent(snap *domain.Snapshot) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SnapshotRefreshed,
		Payload: SnapshotRefreshedPayloadV1{
			Snapshot:      snap,
			ItemCount:     len(snap.Items),
			LocationCount: len(snap.Locations),
			FetchedAt:     snap.FetchedAt,
		},
	}
}

// NewRefreshFailedEvent creates a refresh.failed event
func NewRefreshFailedEvent(err error, needsReauth bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RefreshFailed,
		Payload: RefreshFailedPayloadV1{
			Error:       err.Error(),
			NeedsReauth: needsReauth,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewLocationsSyncedEvent creates a locations.synced event
func NewLocationsSyncedEvent(created int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LocationsSynced,
		Payload: LocationsSyncedPayloadV1{
			Created:   created,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewItemChangedEvent creates an item event on the given channel.
// source is recorded in metadata (e.g. "webhook").
func NewItemChangedEvent(eventType Type, itemID, action string, data map[string]any, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: ItemChangedPayloadV1{
			ItemID:    itemID,
			Action:    action,
			Data:      data,
			Timestamp: time.Now().Unix(),
		},
		Metadata: Metadata{MetadataKeySource: source},
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

// Publish publishes an event to all subscribers. Handlers run synchronously
// in subscription order; every handler runs even if an earlier one fails.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

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

// HasSubscribers reports whether any handler listens on eventType.
func (b *MemoryBus) HasSubscribers(eventType Type) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType]) > 0
}

// SubscriptionCount returns the number of registered handlers across all types
func (b *MemoryBus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, hs := range b.handlers {
		n += len(hs)
	}
	return n
}
