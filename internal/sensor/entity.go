// Package sensor maps inventory items onto read-only sensor entities. The
// state of each sensor is the name of the item's current location.
package sensor

import (
	"sync"

	"github.com/osse101/HomeboxBridge_Go/internal/domain"
)

// Source keys read from the item record for the attribute set
const (
	fieldPurchaseDate    = "purchase_date"
	fieldPurchasePrice   = "purchase_price"
	fieldPurchaseFrom    = "purchase_from"
	fieldWarrantyExpires = "warranty_expires"
	fieldManufacturer    = "manufacturer"
	fieldModel           = "model"
	fieldSerialNumber    = "serial_number"
)

// View is a point-in-time rendering of a sensor
type View struct {
	UniqueID   string         `json:"unique_id"`
	ItemID     string         `json:"item_id"`
	Name       string         `json:"name"`
	State      string         `json:"state"`
	Attributes map[string]any `json:"attributes"`
}

// Entity is the sensor for one item. Its record is replaced on every
// snapshot and merged with webhook data in between.
type Entity struct {
	itemID string

	mu     sync.RWMutex
	record domain.Item
}

func newEntity(item domain.Item) *Entity {
	return &Entity{itemID: item.ID(), record: domain.Item(domain.Record(item).Clone())}
}

// ItemID returns the inventory item id
func (e *Entity) ItemID() string { return e.itemID }

// UniqueID returns the stable entity id
func (e *Entity) UniqueID() string { return UniqueIDPrefix + e.itemID }

// Record returns a copy of the cached item record
func (e *Entity) Record() domain.Item {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return domain.Item(domain.Record(e.record).Clone())
}

func (e *Entity) replace(item domain.Item) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record = domain.Item(domain.Record(item).Clone())
}

// merge overlays data onto the cached record. A new location_id without a
// matching embedded location drops the stale embedded object.
func (e *Entity) merge(data map[string]any) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for k, v := range data {
		if k == domain.FieldID {
			continue
		}
		e.record[k] = v
	}

	if _, hasLocation := data[domain.FieldLocation]; hasLocation {
		return
	}
	newID := domain.Record(data).String(domain.FieldLocationID)
	if newID == "" {
		return
	}
	if loc, ok := e.record[domain.FieldLocation].(map[string]any); ok {
		if domain.Record(loc).String(domain.FieldID) != newID {
			delete(e.record, domain.FieldLocation)
		}
	}
}

// Name returns the display name
func (e *Entity) Name() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return displayName(e.itemID, e.record)
}

func displayName(itemID string, record domain.Item) string {
	if name := record.Name(); name != "" {
		return name
	}
	return "Item " + itemID
}

// State resolves the item's location against snap, falling back to the
// embedded location name, then StateUnknown.
func (e *Entity) State(snap *domain.Snapshot) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return state(e.record, snap)
}

func state(record domain.Item, snap *domain.Snapshot) string {
	locationID := record.LocationID()
	if locationID == "" {
		return StateUnknown
	}
	if loc, ok := snap.LocationByID(locationID); ok && loc.Name() != "" {
		return loc.Name()
	}
	if name := record.LocationName(); name != "" {
		return name
	}
	return StateUnknown
}

// Attributes returns the extra state attributes
func (e *Entity) Attributes(snap *domain.Snapshot) map[string]any {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return attributes(e.itemID, e.record, snap)
}

func attributes(itemID string, record domain.Item, snap *domain.Snapshot) map[string]any {
	labels := record.Labels()
	if labels == nil {
		labels = []string{}
	}

	attrs := map[string]any{
		AttrItemID:          itemID,
		AttrDescription:     domain.Record(record).String(domain.FieldDescription),
		AttrPurchaseDate:    record[fieldPurchaseDate],
		AttrPurchasePrice:   record[fieldPurchasePrice],
		AttrPurchaseFrom:    record[fieldPurchaseFrom],
		AttrWarrantyExpires: record[fieldWarrantyExpires],
		AttrLocationID:      record.LocationID(),
		AttrLabels:          labels,
		AttrManufacturer:    record[fieldManufacturer],
		AttrModel:           record[fieldModel],
		AttrSerialNumber:    record[fieldSerialNumber],
		AttrLastUpdated:     record[domain.FieldUpdatedAt],
		AttrAttribution:     Attribution,
	}
	if snap != nil {
		attrs[AttrAllLocations] = snap.Locations
	}
	return attrs
}

// View renders the entity against snap
func (e *Entity) View(snap *domain.Snapshot) View {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return View{
		UniqueID:   e.UniqueID(),
		ItemID:     e.itemID,
		Name:       displayName(e.itemID, e.record),
		State:      state(e.record, snap),
		Attributes: attributes(e.itemID, e.record, snap),
	}
}

// model returns the device model shown in discovery
func (e *Entity) model() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if m := domain.Record(e.record).String(fieldModel); m != "" {
		return m
	}
	return DefaultModel
}
