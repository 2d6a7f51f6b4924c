package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HomeboxBridge_Go/internal/coordinator"
	"github.com/osse101/HomeboxBridge_Go/internal/domain"
	"github.com/osse101/HomeboxBridge_Go/internal/event"
	"github.com/osse101/HomeboxBridge_Go/internal/sensor"
	"github.com/osse101/HomeboxBridge_Go/internal/webhook"
)

const testAPIKey = "test-key"

type fakeBridge struct {
	status   coordinator.Status
	snapshot *domain.Snapshot
	views    []sensor.View
	moved    [][2]string
	synced   int
}

func (f *fakeBridge) Status() coordinator.Status { return f.status }
func (f *fakeBridge) Snapshot() *domain.Snapshot { return f.snapshot }
func (f *fakeBridge) List() []sensor.View { return f.views }

func (f *fakeBridge) Get(itemID string) (sensor.View, bool) {
	for _, v := range f.views {
		if v.ItemID == itemID {
			return v, true
		}
	}
	return sensor.View{}, false
}

func (f *fakeBridge) ChangeItemLocation(_ context.Context, itemID, locationID string) error {
	f.moved = append(f.moved, [2]string{itemID, locationID})
	return nil
}

func (f *fakeBridge) SyncLocations(context.Context) error {
	f.synced++
	return nil
}

func newTestServer(t *testing.T, bridge *fakeBridge) http.Handler {
	t.Helper()
	srv := NewServer(0, testAPIKey, nil, Deps{
		Status:    bridge,
		Snapshots: bridge,
		Sensors:   bridge,
		Services:  bridge,
		Webhook:   webhook.NewHandler("hook1", event.NewMemoryBus()),
	})
	return srv.Handler()
}

func do(h http.Handler, method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authed {
		req.Header.Set(HeaderAPIKey, testAPIKey)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_PublicRoutes(t *testing.T) {
	bridge := &fakeBridge{status: coordinator.Status{State: coordinator.StateOK}}
	h := newTestServer(t, bridge)

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/healthz", "", false).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/readyz", "", false).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/version", "", false).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/metrics", "", false).Code)

	rec := do(h, http.MethodGet, "/healthz", "", false)
	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
}

func TestServer_SwaggerIsPublic(t *testing.T) {
	h := newTestServer(t, &fakeBridge{})
	rec := do(h, http.MethodGet, "/swagger/index.html", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "swagger")
}

func TestServer_Webhook(t *testing.T) {
	h := newTestServer(t, &fakeBridge{})

	body := `{"type":"item.created","data":{"id":"1"}}`
	assert.Equal(t, http.StatusOK, do(h, http.MethodPost, "/api/webhook/hook1", body, false).Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodPost, "/api/webhook/other", body, false).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/api/webhook/hook1", "{", false).Code)
}

func TestServer_APIRequiresKey(t *testing.T) {
	h := newTestServer(t, &fakeBridge{})

	for _, path := range []string{"/api/v1/status", "/api/v1/snapshot", "/api/v1/sensors"} {
		assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, path, "", false).Code, path)
	}
	assert.Equal(t, http.StatusUnauthorized,
		do(h, http.MethodPost, "/api/v1/services/sync_locations", "", false).Code)
}

func TestServer_APIRoutes(t *testing.T) {
	bridge := &fakeBridge{
		status:   coordinator.Status{State: coordinator.StateOK, ItemCount: 1},
		snapshot: &domain.Snapshot{Items: []domain.Item{{"id": "i1"}}, FetchedAt: time.Now()},
		views:    []sensor.View{{UniqueID: "homebox_item_i1", ItemID: "i1", Name: "Drill", State: "Garage"}},
	}
	h := newTestServer(t, bridge)

	rec := do(h, http.MethodGet, "/api/v1/status", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"item_count":1`)

	rec = do(h, http.MethodGet, "/api/v1/snapshot", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"i1"`)

	rec = do(h, http.MethodGet, "/api/v1/sensors", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Drill")

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/v1/sensors/i1", "", true).Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/api/v1/sensors/nope", "", true).Code)

	rec = do(h, http.MethodPost, "/api/v1/sensors/i1/location", `{"location_id":"l9"}`, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodPost, "/api/v1/services/move_item", `{"item_id":"i1","location_id":"l2"}`, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodPost, "/api/v1/services/change_item_location", `{"item_id":"i1","location_id":"l3"}`, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodPost, "/api/v1/services/sync_locations", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, [][2]string{{"i1", "l9"}, {"i1", "l2"}, {"i1", "l3"}}, bridge.moved)
	assert.Equal(t, 1, bridge.synced)
}

func TestServer_EventsNotMountedWithoutHub(t *testing.T) {
	h := newTestServer(t, &fakeBridge{})
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/api/v1/events", "", true).Code)
}
