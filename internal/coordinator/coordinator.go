// Package coordinator drives the refresh cycle: it keeps the session valid,
// runs the daily location sync, fetches items and locations, and publishes
// each new snapshot on the event bus.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/HomeboxBridge_Go/internal/areasync"
	"github.com/osse101/HomeboxBridge_Go/internal/concurrency"
	"github.com/osse101/HomeboxBridge_Go/internal/domain"
	"github.com/osse101/HomeboxBridge_Go/internal/event"
	"github.com/osse101/HomeboxBridge_Go/internal/logger"
	"github.com/osse101/HomeboxBridge_Go/internal/metrics"
	"github.com/osse101/HomeboxBridge_Go/internal/worker"
)

// InventoryClient is the part of the inventory client the coordinator uses
type InventoryClient interface {
	EnsureTokenValid(ctx context.Context) bool
	ListItems(ctx context.Context, label string) ([]domain.Item, error)
	ListLocations(ctx context.Context) ([]domain.Location, error)
	CreateLocation(ctx context.Context, name string) bool
	UpdateItemLocation(ctx context.Context, itemID, locationID string) bool
}

// Enqueuer queues out-of-band refresh passes, normally a single-worker pool
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Options configures a Coordinator
type Options struct {
	// LabelFilter restricts fetched items to one label when non-empty
	LabelFilter string

	// Areas supplies host area names for location sync. Nil disables sync.
	Areas areasync.AreaProvider

	// SyncInterval is the minimum time between sync passes. Zero means DefaultSyncInterval.
	SyncInterval time.Duration

	// Queue receives out-of-band refresh requests. Nil makes RequestRefresh a no-op.
	Queue Enqueuer
}

// Status summarizes the outcome of the latest refresh pass
type Status struct {
	State         string    `json:"state"`
	Available     bool      `json:"available"`
	NeedsReauth   bool      `json:"needs_reauth"`
	LastError     string    `json:"last_error,omitempty"`
	LastSuccess   time.Time `json:"last_success"`
	LastSyncTime  time.Time `json:"last_sync_time"`
	ItemCount     int       `json:"item_count"`
	LocationCount int       `json:"location_count"`
}

// Coordinator owns the refresh cycle for one inventory server
type Coordinator struct {
	client       InventoryClient
	bus          event.Bus
	areas        areasync.AreaProvider
	labelFilter  string
	syncInterval time.Duration
	now          func() time.Time

	itemLocks *concurrency.LockManager

	queueMu sync.RWMutex
	queue   Enqueuer

	// mu serializes refresh and sync passes
	mu        sync.Mutex
	syncState domain.SyncState

	snapshot atomic.Pointer[domain.Snapshot]
	pending  atomic.Bool

	statusMu sync.RWMutex
	status   Status
}

// New creates a coordinator. Nothing runs until Refresh or Process is called.
func New(client InventoryClient, bus event.Bus, opts Options) *Coordinator {
	interval := opts.SyncInterval
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	return &Coordinator{
		client:       client,
		bus:          bus,
		areas:        opts.Areas,
		labelFilter:  opts.LabelFilter,
		syncInterval: interval,
		queue:        opts.Queue,
		itemLocks:    concurrency.NewLockManager(),
		now:          time.Now,
		status:       Status{State: StateStarting},
	}
}

// SetQueue sets the queue used by RequestRefresh. The pool that runs
// coordinator passes is usually built after the coordinator itself.
func (c *Coordinator) SetQueue(q Enqueuer) {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()
	c.queue = q
}

// Snapshot returns the latest snapshot, or nil before the first successful pass
func (c *Coordinator) Snapshot() *domain.Snapshot {
	return c.snapshot.Load()
}

// Status returns the outcome of the latest pass
func (c *Coordinator) Status() Status {
	c.statusMu.RLock()
	defer c.statusMu.RUnlock()
	return c.status
}

// Process implements worker.Job so the scheduler can run passes
func (c *Coordinator) Process(ctx context.Context) error {
	_, err := c.Refresh(ctx)
	return err
}

// Refresh runs one pass and returns the new snapshot. Failures wrap
// domain.ErrReauthRequired (credentials) or domain.ErrUpdateFailed (data).
func (c *Coordinator) Refresh(ctx context.Context) (*domain.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := logger.FromContext(ctx)
	start := c.now()
	log.Debug(LogMsgRefreshStarted, "label", c.labelFilter)

	snap, err := c.refresh(ctx)
	metrics.RefreshDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		needsReauth := errors.Is(err, domain.ErrReauthRequired)
		if needsReauth {
			metrics.RefreshPasses.WithLabelValues(metrics.ResultAuthFailure).Inc()
		} else {
			metrics.RefreshPasses.WithLabelValues(metrics.ResultFailure).Inc()
		}
		log.Error(LogMsgRefreshFailed, "error", err, "needs_reauth", needsReauth)
		c.recordFailure(err, needsReauth)
		c.publish(ctx, event.NewRefreshFailedEvent(err, needsReauth))
		return nil, err
	}

	metrics.RefreshPasses.WithLabelValues(metrics.ResultSuccess).Inc()
	log.Info(LogMsgRefreshSucceeded, "items", len(snap.Items), "locations", len(snap.Locations))
	c.recordSuccess(snap)
	c.publish(ctx, event.NewSnapshotRefreshedEvent(snap))
	return snap, nil
}

func (c *Coordinator) refresh(ctx context.Context) (*domain.Snapshot, error) {
	if !c.client.EnsureTokenValid(ctx) {
		return nil, fmt.Errorf("%w: %w", domain.ErrReauthRequired, domain.ErrAuthFailed)
	}

	if c.areas != nil {
		if c.syncState.Due(c.now(), c.syncInterval) {
			// sync failures never abort the pass and wait for the next window
			if err := c.syncLocations(ctx); err != nil {
				logger.FromContext(ctx).Warn(LogMsgLocationSyncFailed, "error", err)
				c.markSynced()
			}
		} else {
			logger.FromContext(ctx).Debug(LogMsgLocationSyncSkipped, "last_sync", c.syncState.LastSyncTime)
		}
	}

	items, err := c.client.ListItems(ctx, c.labelFilter)
	if err != nil {
		return nil, classify(err)
	}

	locations, err := c.client.ListLocations(ctx)
	if err != nil {
		return nil, classify(err)
	}

	snap := &domain.Snapshot{Items: items, Locations: locations, FetchedAt: c.now()}
	c.snapshot.Store(snap)
	return snap, nil
}

// classify maps client errors to refresh outcomes
func classify(err error) error {
	if errors.Is(err, domain.ErrAuthFailed) {
		return fmt.Errorf("%w: %w", domain.ErrReauthRequired, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrUpdateFailed, err)
}

// SyncLocations runs location sync now, regardless of when it last ran.
// The sync clock is reset only when the pass succeeds.
func (c *Coordinator) SyncLocations(ctx context.Context) error {
	if c.areas == nil {
		return fmt.Errorf("%w: no host areas configured", domain.ErrInvalidInput)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.syncLocations(ctx)
}

// syncLocations must be called with mu held
func (c *Coordinator) syncLocations(ctx context.Context) error {
	created, err := areasync.Sync(ctx, c.areas, c.client)
	if err != nil {
		return err
	}

	c.markSynced()
	c.publish(ctx, event.NewLocationsSyncedEvent(created))
	return nil
}

// markSynced restarts the sync interval; must be called with mu held
func (c *Coordinator) markSynced() {
	c.syncState.LastSyncTime = c.now()
	c.statusMu.Lock()
	c.status.LastSyncTime = c.syncState.LastSyncTime
	c.statusMu.Unlock()
}

// ChangeItemLocation moves an item on the inventory server, pushes the new
// location to listeners right away and queues a refresh.
func (c *Coordinator) ChangeItemLocation(ctx context.Context, itemID, locationID string) error {
	if itemID == "" || locationID == "" {
		return fmt.Errorf("%w: item_id and location_id are required", domain.ErrInvalidInput)
	}

	// moves of one item reach listeners in the order the server applied them
	unlock := c.itemLocks.Lock(itemID)
	defer unlock()

	log := logger.FromContext(ctx)
	if !c.client.UpdateItemLocation(ctx, itemID, locationID) {
		log.Warn(LogMsgItemMoveFailed, "item_id", itemID, "location_id", locationID)
		return fmt.Errorf("%w: could not move item %s", domain.ErrOperationFailed, itemID)
	}
	log.Info(LogMsgItemMoved, "item_id", itemID, "location_id", locationID)

	location := map[string]any{domain.FieldID: locationID}
	if loc, ok := c.Snapshot().LocationByID(locationID); ok {
		location[domain.FieldName] = loc.Name()
	}
	data := map[string]any{
		domain.FieldID:         itemID,
		domain.FieldLocationID: locationID,
		domain.FieldLocation:   location,
	}
	c.publish(ctx, event.NewItemChangedEvent(event.ItemUpdatedFor(itemID), itemID, string(event.ItemUpdated), data, event.SourceService))
	c.publish(ctx, event.NewItemChangedEvent(event.ItemUpdated, itemID, string(event.ItemUpdated), data, event.SourceService))

	c.RequestRefresh(ctx)
	return nil
}

// RequestRefresh queues an out-of-band pass. Requests made while a pass is
// already queued collapse into it; a request made while a pass is running
// queues one more pass behind it. Returns false when nothing could be queued.
func (c *Coordinator) RequestRefresh(ctx context.Context) bool {
	log := logger.FromContext(ctx)

	c.queueMu.RLock()
	queue := c.queue
	c.queueMu.RUnlock()
	if queue == nil {
		return false
	}

	if !c.pending.CompareAndSwap(false, true) {
		log.Debug(LogMsgRefreshCoalesced)
		return true
	}

	if !queue.TryEnqueue(refreshJob{c: c}) {
		c.pending.Store(false)
		log.Warn(LogMsgRefreshQueueFull)
		return false
	}

	log.Debug(LogMsgRefreshRequested)
	return true
}

// refreshJob clears the pending flag as soon as it starts so requests that
// arrive during the pass schedule a follow-up.
type refreshJob struct {
	c *Coordinator
}

func (j refreshJob) Process(ctx context.Context) error {
	j.c.pending.Store(false)
	return j.c.Process(ctx)
}

func (c *Coordinator) recordSuccess(snap *domain.Snapshot) {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()
	c.status.State = StateOK
	c.status.Available = true
	c.status.NeedsReauth = false
	c.status.LastError = ""
	c.status.LastSuccess = snap.FetchedAt
	c.status.ItemCount = len(snap.Items)
	c.status.LocationCount = len(snap.Locations)
}

func (c *Coordinator) recordFailure(err error, needsReauth bool) {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()
	c.status.Available = false
	c.status.NeedsReauth = needsReauth
	c.status.LastError = err.Error()
	if needsReauth {
		c.status.State = StateReauthRequired
	} else {
		c.status.State = StateUnavailable
	}
}

func (c *Coordinator) publish(ctx context.Context, evt event.Event) {
	if c.bus == nil {
		return
	}
	if err := c.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}
