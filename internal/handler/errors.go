package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Snapshot and sensor messages
	ErrMsgNoSnapshotYet  = "No data has been fetched from the inventory server yet"
	ErrMsgSensorNotFound = "Sensor not found"
	ErrMsgSyncFailed     = "Failed to sync locations"
	ErrMsgMoveItemFailed = "Failed to change item location"
	ErrMsgBridgeNotReady = "Bridge is not ready"
	ErrMsgReauthNeeded   = "Re-authentication with the inventory server is required"
)

// Success messages for API responses
const (
	MsgLocationsSynced = "Location sync completed"
	MsgItemMoved       = "Item location changed"
)

// Log messages
const (
	LogMsgDecodeFailed      = "Failed to decode request"
	LogMsgRequestDecoded    = "Request decoded"
	LogMsgServiceCallFailed = "Service call failed"
	LogMsgReadinessFailed   = "Readiness check failed"
)
