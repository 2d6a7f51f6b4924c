package sse

import "time"

// SnapshotPayload is sent after every successful refresh pass
type SnapshotPayload struct {
	ItemCount     int       `json:"item_count"`
	LocationCount int       `json:"location_count"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// RefreshFailedPayload is sent when a refresh pass fails
type RefreshFailedPayload struct {
	Error       string `json:"error"`
	NeedsReauth bool   `json:"needs_reauth"`
}

// LocationsSyncedPayload is sent after a location sync pass
type LocationsSyncedPayload struct {
	Created int `json:"created"`
}

// ItemChangedPayload is sent for item notifications and location changes
type ItemChangedPayload struct {
	ItemID string         `json:"item_id"`
	Action string         `json:"action"`
	Source string         `json:"source,omitempty"` // webhook or service
	Data   map[string]any `json:"data,omitempty"`
}
