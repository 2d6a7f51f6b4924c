package mqtt

import "time"

// Connection defaults
const (
	DefaultConnectTimeout = 10 * time.Second
	DefaultPublishTimeout = 5 * time.Second
	DefaultKeepAlive      = 30 * time.Second
	DefaultQoS            = byte(1)

	// disconnectQuiesceMillis lets in-flight publishes finish on Close
	disconnectQuiesceMillis = 250
)

// Log messages
const (
	LogMsgConnecting     = "Connecting to MQTT broker"
	LogMsgConnected      = "Connected to MQTT broker"
	LogMsgConnectPending = "MQTT broker not reachable yet, retrying in background"
	LogMsgConnectionLost = "MQTT connection lost"
	LogMsgPublishFailed  = "MQTT publish failed"
	LogMsgDisconnecting  = "Disconnecting from MQTT broker"
)
