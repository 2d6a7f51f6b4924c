package areasync

// Log messages
const (
	LogMsgSyncStarted      = "Starting location sync"
	LogMsgSyncNothingToDo  = "All host areas already exist as locations"
	LogMsgSyncCompleted    = "Location sync completed"
	LogMsgSyncCreateFailed = "Failed to create location for host area"
	LogMsgAreasUnavailable = "Failed to read host areas"
	LogMsgLocationsFailed  = "Failed to read inventory locations, skipping sync"
)
