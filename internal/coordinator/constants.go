package coordinator

import "time"

// DefaultSyncInterval is the minimum time between location sync passes
const DefaultSyncInterval = 24 * time.Hour

// Status values reported by Status().State
const (
	StateOK             = "ok"
	StateUnavailable    = "unavailable"
	StateReauthRequired = "reauth_required"
	StateStarting       = "starting"
)

// Log messages
const (
	LogMsgRefreshStarted      = "Refreshing inventory snapshot"
	LogMsgRefreshSucceeded    = "Inventory snapshot refreshed"
	LogMsgRefreshFailed       = "Inventory refresh failed"
	LogMsgLocationSyncFailed  = "Location sync failed, will retry on a later pass"
	LogMsgLocationSyncSkipped = "Location sync not due"
	LogMsgPublishFailed       = "Failed to publish coordinator event"
	LogMsgRefreshRequested    = "Out-of-band refresh requested"
	LogMsgRefreshCoalesced    = "Refresh already pending, request coalesced"
	LogMsgRefreshQueueFull    = "Could not queue refresh"
	LogMsgItemMoved           = "Item moved"
	LogMsgItemMoveFailed      = "Failed to move item"
)
