package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of log files kept, including the new one
	LogFileRetentionCount = 10
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingBridge      = "Starting Homebox bridge"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	LogMsgMetricsCollectorRegistered     = "Metrics collector registered"
	ErrMsgFailedRegisterMetrics          = "failed to register metrics collector"
)

// =============================================================================
// Setup
// =============================================================================

const (
	// RefreshWorkers is one so refresh passes never overlap
	RefreshWorkers = 1

	// RefreshQueueSize bounds out-of-band refresh requests waiting for the worker
	RefreshQueueSize = 4
)

const (
	LogMsgResolvingSecret       = "Resolving Homebox password from SSM"
	LogMsgConnected             = "Connected to Homebox"
	LogMsgMQTTDisabled          = "MQTT broker not configured, discovery disabled"
	LogMsgInitialRefreshFailed  = "Initial refresh failed, retrying on the next tick"
	LogMsgWebhookNotRegistered  = "EXTERNAL_URL not set, skipping webhook registration"
	LogMsgWebhookRegisterFailed = "Webhook registration failed"
	LogMsgAreasFromFile         = "Host areas read from file"
	LogMsgAreasFromEnv          = "Host areas read from environment"
	LogMsgEntryReady            = "Bridge ready"

	ErrMsgResolveSecret  = "failed to resolve Homebox password"
	ErrMsgConnectFailed  = "failed to connect to Homebox"
	ErrMsgMQTTConnect    = "failed to connect to MQTT broker"
	ErrMsgInitialRefresh = "initial refresh failed"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownBridge         = "Shutting down bridge..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgAvailabilityFailed         = "Failed to publish offline availability"
)
