package sensor

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/osse101/HomeboxBridge_Go/internal/domain"
	"github.com/osse101/HomeboxBridge_Go/internal/event"
	"github.com/osse101/HomeboxBridge_Go/internal/logger"
)

// Registry holds one entity per item in the latest snapshot
type Registry struct {
	publisher *Publisher

	mu       sync.RWMutex
	entities map[string]*Entity

	snapshot atomic.Pointer[domain.Snapshot]
}

// NewRegistry creates an empty registry. publisher may be nil when MQTT is disabled.
func NewRegistry(publisher *Publisher) *Registry {
	return &Registry{
		publisher: publisher,
		entities:  make(map[string]*Entity),
	}
}

// Register subscribes the registry to coordinator and webhook events.
// Updates arrive on the wildcard channel and are routed by item id, so the
// subscription set stays fixed however items come and go.
func (r *Registry) Register(bus event.Bus) {
	bus.Subscribe(event.SnapshotRefreshed, r.handleSnapshotRefreshed)
	bus.Subscribe(event.RefreshFailed, r.handleRefreshFailed)
	bus.Subscribe(event.ItemUpdated, r.handleItemUpdated)
	bus.Subscribe(event.ItemDeleted, r.handleItemDeleted)
}

// Snapshot returns the snapshot the entities were last rendered against
func (r *Registry) Snapshot() *domain.Snapshot {
	return r.snapshot.Load()
}

// ApplySnapshot replaces every entity record with the snapshot's items,
// creates entities for new items and removes entities whose item is gone.
func (r *Registry) ApplySnapshot(ctx context.Context, snap *domain.Snapshot) (added, removed []string) {
	log := logger.FromContext(ctx)
	r.snapshot.Store(snap)

	seen := make(map[string]struct{}, len(snap.Items))
	var toPublish []*Entity

	r.mu.Lock()
	for _, item := range snap.Items {
		id := item.ID()
		if id == "" {
			continue
		}
		seen[id] = struct{}{}

		if e, ok := r.entities[id]; ok {
			e.replace(item)
			toPublish = append(toPublish, e)
			continue
		}
		e := newEntity(item)
		r.entities[id] = e
		toPublish = append(toPublish, e)
		added = append(added, id)
	}
	for id := range r.entities {
		if _, ok := seen[id]; !ok {
			delete(r.entities, id)
			removed = append(removed, id)
		}
	}
	r.mu.Unlock()

	for _, id := range added {
		log.Debug(LogMsgEntityAdded, "item_id", id)
	}
	for _, id := range removed {
		log.Info(LogMsgEntityRemoved, "item_id", id)
		r.unpublish(ctx, id)
	}
	for _, e := range toPublish {
		r.publish(ctx, e)
	}

	log.Debug(LogMsgSnapshotApplied, "entities", len(seen), "added", len(added), "removed", len(removed))
	return added, removed
}

// ApplyUpdate merges webhook data into the item's entity. Returns false
// when no entity exists for itemID.
func (r *Registry) ApplyUpdate(ctx context.Context, itemID string, data map[string]any) bool {
	r.mu.RLock()
	e, ok := r.entities[itemID]
	r.mu.RUnlock()
	if !ok {
		logger.FromContext(ctx).Debug(LogMsgUpdateForUnknownItem, "item_id", itemID)
		return false
	}

	e.merge(data)
	logger.FromContext(ctx).Debug(LogMsgEntityMerged, "item_id", itemID)
	r.publish(ctx, e)
	return true
}

// Remove drops the entity for itemID
func (r *Registry) Remove(ctx context.Context, itemID string) bool {
	r.mu.Lock()
	_, ok := r.entities[itemID]
	delete(r.entities, itemID)
	r.mu.Unlock()
	if !ok {
		return false
	}

	logger.FromContext(ctx).Info(LogMsgEntityRemoved, "item_id", itemID)
	r.unpublish(ctx, itemID)
	return true
}

// Get renders the sensor for itemID
func (r *Registry) Get(itemID string) (View, bool) {
	r.mu.RLock()
	e, ok := r.entities[itemID]
	r.mu.RUnlock()
	if !ok {
		return View{}, false
	}
	return e.View(r.Snapshot()), true
}

// List renders every sensor ordered by name
func (r *Registry) List() []View {
	snap := r.Snapshot()

	r.mu.RLock()
	views := make([]View, 0, len(r.entities))
	for _, e := range r.entities {
		views = append(views, e.View(snap))
	}
	r.mu.RUnlock()

	sort.Slice(views, func(i, j int) bool {
		if views[i].Name != views[j].Name {
			return views[i].Name < views[j].Name
		}
		return views[i].ItemID < views[j].ItemID
	})
	return views
}

// Len returns the number of entities
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entities)
}

// Republish re-sends every entity, e.g. after an MQTT reconnect
func (r *Registry) Republish(ctx context.Context) {
	if r.publisher == nil {
		return
	}
	r.publisher.Reset()

	r.mu.RLock()
	entities := make([]*Entity, 0, len(r.entities))
	for _, e := range r.entities {
		entities = append(entities, e)
	}
	r.mu.RUnlock()

	for _, e := range entities {
		r.publish(ctx, e)
	}
	if r.Snapshot() != nil {
		_ = r.publisher.PublishAvailability(ctx, true)
	}
}

func (r *Registry) handleSnapshotRefreshed(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.SnapshotRefreshedPayloadV1](evt.Payload)
	if err != nil || payload.Snapshot == nil {
		logger.FromContext(ctx).Debug(LogMsgPayloadUnexpected, "type", evt.Type)
		return nil
	}
	r.ApplySnapshot(ctx, payload.Snapshot)
	if r.publisher != nil {
		_ = r.publisher.PublishAvailability(ctx, true)
	}
	return nil
}

func (r *Registry) handleRefreshFailed(ctx context.Context, _ event.Event) error {
	if r.publisher != nil {
		_ = r.publisher.PublishAvailability(ctx, false)
	}
	return nil
}

func (r *Registry) handleItemUpdated(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.ItemChangedPayloadV1](evt.Payload)
	if err != nil || payload.ItemID == "" {
		logger.FromContext(ctx).Debug(LogMsgPayloadUnexpected, "type", evt.Type)
		return nil
	}
	if len(payload.Data) > 0 {
		r.ApplyUpdate(ctx, payload.ItemID, payload.Data)
	}
	return nil
}

func (r *Registry) handleItemDeleted(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.ItemChangedPayloadV1](evt.Payload)
	if err != nil || payload.ItemID == "" {
		return nil
	}
	r.Remove(ctx, payload.ItemID)
	return nil
}

func (r *Registry) publish(ctx context.Context, e *Entity) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.PublishEntity(ctx, e, r.Snapshot()); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "item_id", e.ItemID(), "error", err)
	}
}

func (r *Registry) unpublish(ctx context.Context, itemID string) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.RemoveEntity(ctx, itemID); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "item_id", itemID, "error", err)
	}
}
