package domain

import "time"

// Snapshot is the result of one refresh pass. It is never mutated after
// being published; the next pass replaces it.
type Snapshot struct {
	Items     []Item     `json:"items"`
	Locations []Location `json:"locations"`
	FetchedAt time.Time  `json:"fetched_at"`
}

// LocationByID resolves a location from the snapshot.
func (s *Snapshot) LocationByID(id string) (Location, bool) {
	if s == nil || id == "" {
		return nil, false
	}
	for _, loc := range s.Locations {
		if loc.ID() == id {
			return loc, true
		}
	}
	return nil, false
}

// ItemByID resolves an item from the snapshot.
func (s *Snapshot) ItemByID(id string) (Item, bool) {
	if s == nil || id == "" {
		return nil, false
	}
	for _, item := range s.Items {
		if item.ID() == id {
			return item, true
		}
	}
	return nil, false
}

// SyncState tracks the last successful location synchronization.
// A zero LastSyncTime means sync has never run in this process.
type SyncState struct {
	LastSyncTime time.Time
}

// Due reports whether a sync should run at now given the minimum interval.
func (s SyncState) Due(now time.Time, interval time.Duration) bool {
	return s.LastSyncTime.IsZero() || now.Sub(s.LastSyncTime) > interval
}
