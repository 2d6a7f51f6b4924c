package homebox

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HomeboxBridge_Go/internal/domain"
)

func TestGetItems_ResponseShapes(t *testing.T) {
	items := []any{
		map[string]any{"id": "1", "name": "Drill"},
		map[string]any{"id": "2", "name": "Ladder"},
	}

	shapes := map[string]any{
		"items field": map[string]any{"items": items, "page": 1},
		"data field":  map[string]any{"data": items},
		"bare list":   items,
	}

	var results [][]domain.Item
	for name, shape := range shapes {
		t.Run(name, func(t *testing.T) {
			fs := newFakeServer(t)
			fs.handle(http.MethodGet, "/api/v1/items", jsonResponse(http.StatusOK, shape))

			got := fs.client().GetItems(context.Background(), "")
			require.Len(t, got, 2)
			results = append(results, got)
		})
	}

	require.Len(t, results, 3)
	assert.Equal(t, results[0], results[1])
	assert.Equal(t, results[1], results[2])
}

func TestGetItems_UnexpectedShape(t *testing.T) {
	fs := newFakeServer(t)
	fs.handle(http.MethodGet, "/api/v1/items", jsonResponse(http.StatusOK, map[string]any{"unexpected": "shape"}))

	got := fs.client().GetItems(context.Background(), "")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetItems_DegradesOnFailure(t *testing.T) {
	fs := newFakeServer(t)
	fs.handle(http.MethodGet, "/api/v1/items", rawResponse(http.StatusBadGateway, ""))

	assert.Empty(t, fs.client().GetItems(context.Background(), "tools"))
}

func TestListItems_ReturnsErrors(t *testing.T) {
	fs := newFakeServer(t)
	fs.handle(http.MethodGet, "/api/v1/items", rawResponse(http.StatusBadGateway, ""))

	_, err := fs.client().ListItems(context.Background(), "")
	assert.True(t, errors.Is(err, domain.ErrAPIFailed))
}

func TestListItems_LabelFilter(t *testing.T) {
	fs := newFakeServer(t)
	labels := make(chan string, 1)
	fs.handle(http.MethodGet, "/api/v1/items", func(w http.ResponseWriter, r *http.Request) {
		labels <- r.URL.Query().Get("label")
		jsonResponse(http.StatusOK, []any{})(w, r)
	})

	_, err := fs.client().ListItems(context.Background(), "asset")
	require.NoError(t, err)
	assert.Equal(t, "asset", <-labels)
}

func TestGetLocations(t *testing.T) {
	fs := newFakeServer(t)
	fs.handle(http.MethodGet, "/api/v1/locations", jsonResponse(http.StatusOK, map[string]any{
		"data": []any{map[string]any{"id": "l1", "name": "Garage"}},
	}))

	locations := fs.client().GetLocations(context.Background())
	require.Len(t, locations, 1)
	assert.Equal(t, "Garage", locations[0].Name())
}

func TestGetLocations_Failure(t *testing.T) {
	fs := newFakeServer(t)
	fs.handle(http.MethodGet, "/api/v1/locations", rawResponse(http.StatusInternalServerError, ""))

	assert.Empty(t, fs.client().GetLocations(context.Background()))
}

func TestCreateLocation(t *testing.T) {
	fs := newFakeServer(t)
	fs.handle(http.MethodPost, "/api/v1/locations", jsonResponse(http.StatusCreated, map[string]any{"id": "new"}))
	c := fs.client()

	assert.True(t, c.CreateLocation(context.Background(), "Attic"))
	assert.Equal(t, []map[string]any{{"name": "Attic"}}, fs.requestBodies(http.MethodPost, "/api/v1/locations"))

	fs.handle(http.MethodPost, "/api/v1/locations", rawResponse(http.StatusConflict, "exists"))
	assert.False(t, c.CreateLocation(context.Background(), "Attic"))
}

func TestUpdateItemLocation_PrimaryShape(t *testing.T) {
	fs := newFakeServer(t)
	fs.handle(http.MethodPatch, "/api/v1/items/item-1", jsonResponse(http.StatusOK, map[string]any{"id": "item-1"}))

	assert.True(t, fs.client().UpdateItemLocation(context.Background(), "item-1", "loc-9"))

	bodies := fs.requestBodies(http.MethodPatch, "/api/v1/items/item-1")
	require.Len(t, bodies, 1)
	assert.Equal(t, "loc-9", bodies[0]["location_id"])
}

func TestUpdateItemLocation_FallbackShape(t *testing.T) {
	tests := []struct {
		name     string
		fallback http.HandlerFunc
		want     bool
	}{
		{"fallback succeeds", jsonResponse(http.StatusOK, map[string]any{}), true},
		{"fallback fails", rawResponse(http.StatusUnprocessableEntity, "nope"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFakeServer(t)
			fs.handle(http.MethodPatch, "/api/v1/items/item-1", sequence(
				rawResponse(http.StatusUnprocessableEntity, "unknown field location_id"),
				tt.fallback,
			))

			assert.Equal(t, tt.want, fs.client().UpdateItemLocation(context.Background(), "item-1", "loc-9"))

			bodies := fs.requestBodies(http.MethodPatch, "/api/v1/items/item-1")
			require.Len(t, bodies, 2, "exactly one fallback attempt")
			assert.Equal(t, "loc-9", bodies[0]["location_id"])
			assert.Equal(t, map[string]any{"id": "loc-9"}, bodies[1]["location"])
		})
	}
}

func TestUpdateItemLocation_AuthFailureNotRetried(t *testing.T) {
	fs := newFakeServer(t)
	fs.handle(http.MethodPost, "/api/v1/users/login", sequence(
		loginOK(testToken, time.Now().Add(time.Hour)),
		rawResponse(http.StatusUnauthorized, ""),
	))
	fs.handle(http.MethodPatch, "/api/v1/items/item-1", rawResponse(http.StatusUnauthorized, ""))

	assert.False(t, fs.client().UpdateItemLocation(context.Background(), "item-1", "loc-9"))
	assert.Equal(t, 1, fs.count(http.MethodPatch, "/api/v1/items/item-1"))
}

func TestRegisterWebhook(t *testing.T) {
	fs := newFakeServer(t)
	fs.handle(http.MethodPost, "/api/v1/notifiers", jsonResponse(http.StatusOK, map[string]any{"id": "n1"}))
	c := fs.client()

	require.True(t, c.RegisterWebhook(context.Background(), "http://ha.local/api/webhook/abc", nil))
	require.True(t, c.RegisterWebhook(context.Background(), "http://ha.local/api/webhook/abc", []string{"item.updated"}))

	bodies := fs.requestBodies(http.MethodPost, "/api/v1/notifiers")
	require.Len(t, bodies, 2)
	assert.Equal(t, "http://ha.local/api/webhook/abc", bodies[0]["url"])
	assert.Equal(t, []any{"item.created", "item.updated", "item.deleted"}, bodies[0]["events"])
	assert.Equal(t, true, bodies[0]["is_active"])
	assert.Equal(t, []any{"item.updated"}, bodies[1]["events"])
}

func TestListWebhooks(t *testing.T) {
	fs := newFakeServer(t)
	fs.handle(http.MethodGet, "/api/v1/notifiers", jsonResponse(http.StatusOK, map[string]any{
		"data": []any{map[string]any{"id": "n1", "url": "http://ha.local/api/webhook/abc"}},
	}))

	hooks := fs.client().ListWebhooks(context.Background())
	require.Len(t, hooks, 1)
	assert.Equal(t, "http://ha.local/api/webhook/abc", hooks[0].URL())

	fs.handle(http.MethodGet, "/api/v1/notifiers", rawResponse(http.StatusInternalServerError, ""))
	assert.Empty(t, fs.client().ListWebhooks(context.Background()))
}
