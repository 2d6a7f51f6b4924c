package handler

import (
	"context"
	"net/http"
)

// LocationChanger moves an item on the inventory server
type LocationChanger interface {
	ChangeItemLocation(ctx context.Context, itemID, locationID string) error
}

// LocationSyncer pushes host areas to the inventory server
type LocationSyncer interface {
	SyncLocations(ctx context.Context) error
}

// ChangeItemLocationRequest is the body of change_item_location and move_item
type ChangeItemLocationRequest struct {
	ItemID     string `json:"item_id" validate:"required,notblank,max=64,excludesall=/?#"`
	LocationID string `json:"location_id" validate:"required,notblank,max=64,excludesall=/?#"`
}

// HandleSyncLocations runs location sync immediately
// @Summary Sync locations
// @Description Creates any host area that is missing on the inventory server
// @Tags services
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/services/sync_locations [post]
func HandleSyncLocations(syncer LocationSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := syncer.SyncLocations(r.Context()); err != nil {
			respondServiceError(w, r, ErrMsgSyncFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgLocationsSynced})
	}
}

// HandleChangeItemLocation moves an item. move_item is routed here too.
// @Summary Change item location
// @Tags services
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body ChangeItemLocationRequest true "Item and target location"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/services/change_item_location [post]
func HandleChangeItemLocation(mover LocationChanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChangeItemLocationRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Change item location"); err != nil {
			return
		}

		if err := mover.ChangeItemLocation(r.Context(), req.ItemID, req.LocationID); err != nil {
			respondServiceError(w, r, ErrMsgMoveItemFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Message: MsgItemMoved, Data: req})
	}
}
