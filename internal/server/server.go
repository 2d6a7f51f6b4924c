package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/HomeboxBridge_Go/internal/handler"
	"github.com/osse101/HomeboxBridge_Go/internal/logger"
	"github.com/osse101/HomeboxBridge_Go/internal/metrics"
	"github.com/osse101/HomeboxBridge_Go/internal/sse"
	"github.com/osse101/HomeboxBridge_Go/internal/webhook"
)

// Services is the coordinator surface behind the service endpoints
type Services interface {
	handler.LocationChanger
	handler.LocationSyncer
}

// Deps are the collaborators the router dispatches to. Webhook and Events
// are optional; their routes are not mounted when nil.
type Deps struct {
	Status    handler.StatusProvider
	Snapshots handler.SnapshotProvider
	Sensors   handler.SensorReader
	Services  Services
	Webhook   http.Handler
	Events    *sse.Hub
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, deps Deps) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.MetricsMiddleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Status))

	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	// Inbound notifier deliveries authenticate by the secret webhook id
	if deps.Webhook != nil {
		r.Method(http.MethodPost, webhook.PathPrefix+"{"+webhook.ParamWebhookID+"}", deps.Webhook)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", handler.HandleStatus(deps.Status))
		r.Get("/snapshot", handler.HandleGetSnapshot(deps.Snapshots))

		r.Route("/sensors", func(r chi.Router) {
			r.Get("/", handler.HandleListSensors(deps.Sensors))
			r.Get("/{"+handler.ParamItemID+"}", handler.HandleGetSensor(deps.Sensors))
			r.Post("/{"+handler.ParamItemID+"}/location", handler.HandleChangeSensorLocation(deps.Sensors, deps.Services))
		})

		r.Route("/services", func(r chi.Router) {
			r.Post("/sync_locations", handler.HandleSyncLocations(deps.Services))
			r.Post("/change_item_location", handler.HandleChangeItemLocation(deps.Services))
			r.Post("/move_item", handler.HandleChangeItemLocation(deps.Services))
		})

		if deps.Events != nil {
			r.Get("/events", sse.Handler(deps.Events))
		}
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		router: r,
	}
}

// Handler returns the root router
func (s *Server) Handler() http.Handler {
	return s.router
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush passes through to the underlying writer for the event stream
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for probes and scrapes
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		// The webhook id is a secret, keep it out of the log
		path := r.URL.Path
		if strings.HasPrefix(path, webhook.PathPrefix) {
			path = webhook.PathPrefix + RedactedValue
		}

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
