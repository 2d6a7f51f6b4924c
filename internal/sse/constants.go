package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// QueryParamTypes selects a comma-separated subset of event types
	QueryParamTypes = "types"
)

// Event types for SSE
const (
	EventTypeSnapshotRefreshed = "snapshot.refreshed"
	EventTypeRefreshFailed     = "refresh.failed"
	EventTypeLocationsSynced   = "locations.synced"
	EventTypeItemCreated       = "item.created"
	EventTypeItemUpdated       = "item.updated"
	EventTypeItemDeleted       = "item.deleted"

	// EventTypeConnected is sent once when a client attaches
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgBroadcastDropped   = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgSubscriberReady    = "SSE subscriber registered for event types"
	LogMsgPayloadUnexpected  = "Unexpected event payload for SSE"
)
