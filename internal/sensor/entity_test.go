package sensor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/HomeboxBridge_Go/internal/domain"
)

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Items: []domain.Item{
			{"id": "i1", "name": "Drill", "location_id": "l1"},
		},
		Locations: []domain.Location{
			{"id": "l1", "name": "Garage"},
			{"id": "l2", "name": "Kitchen"},
		},
	}
}

func TestEntity_State(t *testing.T) {
	snap := testSnapshot()

	tests := []struct {
		name string
		item domain.Item
		want string
	}{
		{"resolved through snapshot", domain.Item{"id": "1", "location_id": "l2"}, "Kitchen"},
		{"nested location resolved through snapshot", domain.Item{"id": "1", "location": map[string]any{"id": "l1"}}, "Garage"},
		{"unknown id falls back to nested name", domain.Item{"id": "1", "location": map[string]any{"id": "lx", "name": "Attic"}}, "Attic"},
		{"unknown id without name", domain.Item{"id": "1", "location_id": "lx"}, StateUnknown},
		{"no location", domain.Item{"id": "1"}, StateUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newEntity(tt.item).State(snap))
		})
	}
}

func TestEntity_StateWithoutSnapshot(t *testing.T) {
	e := newEntity(domain.Item{"id": "1", "location_id": "l1"})
	assert.Equal(t, StateUnknown, e.State(nil))
}

func TestEntity_Attributes(t *testing.T) {
	snap := testSnapshot()
	e := newEntity(domain.Item{
		"id":            "i1",
		"name":          "Drill",
		"description":   "Cordless",
		"location_id":   "l1",
		"labels":        []any{map[string]any{"name": "tools"}},
		"serial_number": "SN-1",
		"updated_at":    "2026-01-01T00:00:00Z",
	})

	attrs := e.Attributes(snap)

	assert.Equal(t, "i1", attrs[AttrItemID])
	assert.Equal(t, "Cordless", attrs[AttrDescription])
	assert.Equal(t, "l1", attrs[AttrLocationID])
	assert.Equal(t, []string{"tools"}, attrs[AttrLabels])
	assert.Equal(t, "SN-1", attrs[AttrSerialNumber])
	assert.Equal(t, "2026-01-01T00:00:00Z", attrs[AttrLastUpdated])
	assert.Equal(t, Attribution, attrs[AttrAttribution])
	assert.Equal(t, snap.Locations, attrs[AttrAllLocations])
	assert.Nil(t, attrs[AttrPurchasePrice])
}

func TestEntity_AttributesDefaults(t *testing.T) {
	attrs := newEntity(domain.Item{"id": "i1"}).Attributes(nil)

	assert.Equal(t, "", attrs[AttrDescription])
	assert.Equal(t, []string{}, attrs[AttrLabels])
	assert.NotContains(t, attrs, AttrAllLocations)
}

func TestEntity_Merge(t *testing.T) {
	t.Run("overlays fields and keeps id", func(t *testing.T) {
		e := newEntity(domain.Item{"id": "i1", "name": "Drill"})
		e.merge(map[string]any{"id": "other", "name": "Hammer drill", "quantity": 2.0})

		rec := e.Record()
		assert.Equal(t, "i1", rec.ID())
		assert.Equal(t, "Hammer drill", rec.Name())
		assert.Equal(t, 2, rec.Quantity())
	})

	t.Run("new location id drops stale nested location", func(t *testing.T) {
		e := newEntity(domain.Item{"id": "i1", "location": map[string]any{"id": "l1", "name": "Garage"}})
		e.merge(map[string]any{"location_id": "l2"})

		rec := e.Record()
		assert.NotContains(t, rec, "location")
		assert.Equal(t, "Kitchen", e.State(testSnapshot()))
	})

	t.Run("same location id keeps nested location", func(t *testing.T) {
		e := newEntity(domain.Item{"id": "i1", "location": map[string]any{"id": "l1", "name": "Garage"}})
		e.merge(map[string]any{"location_id": "l1"})

		assert.Contains(t, e.Record(), "location")
	})

	t.Run("record copy is isolated", func(t *testing.T) {
		e := newEntity(domain.Item{"id": "i1", "name": "Drill"})
		rec := e.Record()
		rec["name"] = "changed"
		assert.Equal(t, "Drill", e.Name())
	})
}

func TestEntity_NameFallback(t *testing.T) {
	assert.Equal(t, "Item 42", newEntity(domain.Item{"id": "42"}).Name())
	assert.Equal(t, "homebox_item_42", newEntity(domain.Item{"id": 42.0}).UniqueID())
}
