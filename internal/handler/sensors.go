package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/HomeboxBridge_Go/internal/logger"
	"github.com/osse101/HomeboxBridge_Go/internal/sensor"
)

// ParamItemID is the chi URL parameter for sensor routes
const ParamItemID = "itemID"

// SensorReader lists the sensor entities
type SensorReader interface {
	List() []sensor.View
	Get(itemID string) (sensor.View, bool)
}

// ChangeSensorLocationRequest is the body of POST /sensors/{itemID}/location
type ChangeSensorLocationRequest struct {
	LocationID string `json:"location_id" validate:"required,notblank,max=64,excludesall=/?#"`
}

// HandleListSensors returns every sensor ordered by name
// @Summary List sensors
// @Tags sensors
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} sensor.View
// @Router /api/v1/sensors [get]
func HandleListSensors(sensors SensorReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, sensors.List())
	}
}

// HandleGetSensor returns one sensor
// @Summary Get sensor
// @Tags sensors
// @Produce json
// @Security ApiKeyAuth
// @Param itemID path string true "Item ID"
// @Success 200 {object} sensor.View
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sensors/{itemID} [get]
func HandleGetSensor(sensors SensorReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, ok := sensors.Get(chi.URLParam(r, ParamItemID))
		if !ok {
			respondError(w, http.StatusNotFound, ErrMsgSensorNotFound)
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}

// HandleChangeSensorLocation moves the sensor's item to another location
// @Summary Move a sensor's item
// @Tags sensors
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param itemID path string true "Item ID"
// @Param request body ChangeSensorLocationRequest true "Target location"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/sensors/{itemID}/location [post]
func HandleChangeSensorLocation(sensors SensorReader, mover LocationChanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := chi.URLParam(r, ParamItemID)
		if _, ok := sensors.Get(itemID); !ok {
			respondError(w, http.StatusNotFound, ErrMsgSensorNotFound)
			return
		}

		var req ChangeSensorLocationRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Change sensor location"); err != nil {
			return
		}

		logger.FromContext(r.Context()).Debug("Changing sensor location", "item_id", itemID, "location_id", req.LocationID)
		if err := mover.ChangeItemLocation(r.Context(), itemID, req.LocationID); err != nil {
			respondServiceError(w, r, ErrMsgMoveItemFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{
			Message: MsgItemMoved,
			Data:    ChangeItemLocationRequest{ItemID: itemID, LocationID: req.LocationID},
		})
	}
}
