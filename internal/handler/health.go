package handler

import (
	"net/http"

	"github.com/osse101/HomeboxBridge_Go/internal/coordinator"
	"github.com/osse101/HomeboxBridge_Go/internal/logger"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	NeedsReauth bool   `json:"needs_reauth,omitempty"`
}

// StatusProvider reports the outcome of the latest refresh pass
type StatusProvider interface {
	Status() coordinator.Status
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the bridge process is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: coordinator.StateOK})
	}
}

// HandleReadyz reports ready only after a successful refresh pass. A
// credential failure is reported separately from a transient one so the
// operator knows to re-authenticate.
// @Summary Readiness check
// @Description Returns OK once a refresh pass against the inventory server has succeeded
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(status StatusProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := status.Status()
		if st.State == coordinator.StateOK {
			respondJSON(w, http.StatusOK, HealthResponse{Status: st.State})
			return
		}

		message := st.LastError
		switch {
		case st.NeedsReauth:
			message = ErrMsgReauthNeeded
		case message == "":
			message = ErrMsgBridgeNotReady
		}

		logger.FromContext(r.Context()).Warn(LogMsgReadinessFailed, "state", st.State, "error", st.LastError)
		respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:      st.State,
			Message:     message,
			NeedsReauth: st.NeedsReauth,
		})
	}
}

// HandleStatus returns the full coordinator status
// @Summary Bridge status
// @Description Refresh state, last success, last location sync and counts
// @Tags status
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} coordinator.Status
// @Router /api/v1/status [get]
func HandleStatus(status StatusProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, status.Status())
	}
}
