package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Inventory Server Metrics
var (
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAuthAttempts,
			Help: HelpTextAuthAttempts,
		},
		[]string{LabelResult},
	)

	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAPIRequests,
			Help: HelpTextAPIRequests,
		},
		[]string{LabelMethod, LabelEndpoint, LabelStatus},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameAPIRequestLatency,
			Help:    HelpTextAPIRequestLatency,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelEndpoint},
	)
)

// Bridge Metrics
var (
	RefreshPasses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRefreshPasses,
			Help: HelpTextRefreshPasses,
		},
		[]string{LabelResult},
	)

	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameRefreshDuration,
			Help:    HelpTextRefreshDuration,
			Buckets: RefreshLatencyBuckets,
		},
	)

	LocationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLocationsCreated,
			Help: HelpTextLocationsCreated,
		},
	)

	WebhookDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWebhookDeliveries,
			Help: HelpTextWebhookDeliveries,
		},
		[]string{LabelType, LabelStatus},
	)

	ItemsTracked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameItemsTracked,
			Help: HelpTextItemsTracked,
		},
	)

	LocationsTracked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameLocationsTracked,
			Help: HelpTextLocationsTracked,
		},
	)

	LastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameLastSuccess,
			Help: HelpTextLastSuccess,
		},
	)
)

// EndpointLabel reduces an API endpoint to its first path segment so item
// ids never become label values.
func EndpointLabel(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "/")
	if i := strings.IndexByte(endpoint, '/'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}
