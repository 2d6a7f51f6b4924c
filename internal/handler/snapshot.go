package handler

import (
	"net/http"

	"github.com/osse101/HomeboxBridge_Go/internal/domain"
)

// SnapshotProvider exposes the latest refresh result
type SnapshotProvider interface {
	Snapshot() *domain.Snapshot
}

// HandleGetSnapshot returns the items and locations from the latest pass
// @Summary Latest snapshot
// @Description Items and locations fetched by the most recent successful refresh
// @Tags status
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} domain.Snapshot
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/snapshot [get]
func HandleGetSnapshot(provider SnapshotProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := provider.Snapshot()
		if snap == nil {
			respondError(w, http.StatusServiceUnavailable, ErrMsgNoSnapshotYet)
			return
		}
		respondJSON(w, http.StatusOK, snap)
	}
}
