package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Inventory server metric names
const (
	MetricNameAuthAttempts      = "homebox_auth_attempts_total"
	MetricNameAPIRequests       = "homebox_api_requests_total"
	MetricNameAPIRequestLatency = "homebox_api_request_duration_seconds"
)

// Bridge metric names
const (
	MetricNameRefreshPasses     = "bridge_refresh_passes_total"
	MetricNameRefreshDuration   = "bridge_refresh_duration_seconds"
	MetricNameLocationsCreated  = "bridge_locations_created_total"
	MetricNameWebhookDeliveries = "bridge_webhook_deliveries_total"
	MetricNameItemsTracked      = "bridge_items_tracked"
	MetricNameLocationsTracked  = "bridge_locations_tracked"
	MetricNameLastSuccess       = "bridge_last_success_timestamp_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Inventory server metric help text
const (
	HelpTextAuthAttempts      = "Total number of login attempts against the inventory server"
	HelpTextAPIRequests       = "Total number of inventory server API requests"
	HelpTextAPIRequestLatency = "Inventory server API request latency in seconds"
)

// Bridge metric help text
const (
	HelpTextRefreshPasses     = "Total number of refresh passes by result"
	HelpTextRefreshDuration   = "Refresh pass duration in seconds"
	HelpTextLocationsCreated  = "Total number of locations created by location sync"
	HelpTextWebhookDeliveries = "Total number of inbound webhook deliveries"
	HelpTextItemsTracked      = "Number of items in the latest snapshot"
	HelpTextLocationsTracked  = "Number of locations in the latest snapshot"
	HelpTextLastSuccess       = "Unix time of the last successful refresh pass"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelResult   = "result"
	LabelEndpoint = "endpoint"
)

// Label values
const (
	ResultSuccess     = "success"
	ResultFailure     = "failure"
	ResultAuthFailure = "auth_failure"
	StatusTransport   = "transport_error"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// RefreshLatencyBuckets covers refresh passes, which make several API calls
// each bounded by the request timeout.
var RefreshLatencyBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUnexpected = "Event payload has unexpected type"
	LogMsgMetricsRecorded        = "Metrics recorded for event"
)
