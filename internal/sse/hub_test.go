package sse

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HomeboxBridge_Go/internal/domain"
	"github.com/osse101/HomeboxBridge_Go/internal/event"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)
	return hub
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, time.Second, 5*time.Millisecond)
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case evt := <-c.EventChannel:
		return evt
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHub_BroadcastRespectsFilter(t *testing.T) {
	hub := startHub(t)

	all := hub.Register(nil)
	onlyFailures := hub.Register([]string{EventTypeRefreshFailed})
	waitForClients(t, hub, 2)

	hub.Broadcast(EventTypeSnapshotRefreshed, SnapshotPayload{ItemCount: 3})
	hub.Broadcast(EventTypeRefreshFailed, RefreshFailedPayload{Error: "down"})

	assert.Equal(t, EventTypeSnapshotRefreshed, receive(t, all).Type)
	assert.Equal(t, EventTypeRefreshFailed, receive(t, all).Type)
	assert.Equal(t, EventTypeRefreshFailed, receive(t, onlyFailures).Type)
}

func TestHub_UnregisterClosesChannel(t *testing.T) {
	hub := startHub(t)
	c := hub.Register(nil)
	waitForClients(t, hub, 1)

	hub.Unregister(c.ID)
	waitForClients(t, hub, 0)

	_, open := <-c.EventChannel
	assert.False(t, open)
}

func TestHub_StopIsIdempotent(t *testing.T) {
	hub := NewHub()
	hub.Start()
	c := hub.Register(nil)
	waitForClients(t, hub, 1)

	hub.Stop()
	hub.Stop()

	_, open := <-c.EventChannel
	assert.False(t, open)
	assert.Nil(t, hub.Register(nil))
}

func TestFormatSSEMessage(t *testing.T) {
	msg, err := FormatSSEMessage(Event{ID: "1", Type: EventTypeItemUpdated, Payload: ItemChangedPayload{ItemID: "42"}})
	require.NoError(t, err)

	s := string(msg)
	assert.True(t, strings.HasPrefix(s, "id: 1\nevent: item.updated\ndata: {"))
	assert.Contains(t, s, `"item_id":"42"`)
	assert.True(t, strings.HasSuffix(s, "\n\n"))
}

func TestSubscriber_ForwardsBusEvents(t *testing.T) {
	hub := startHub(t)
	bus := event.NewMemoryBus()
	NewSubscriber(hub, bus).Subscribe()

	c := hub.Register(nil)
	waitForClients(t, hub, 1)
	ctx := context.Background()

	snap := &domain.Snapshot{Items: []domain.Item{{"id": "1"}}, Locations: []domain.Location{{"id": "l"}}}
	require.NoError(t, bus.Publish(ctx, event.NewSnapshotRefreshedEvent(snap)))
	evt := receive(t, c)
	assert.Equal(t, EventTypeSnapshotRefreshed, evt.Type)
	assert.Equal(t, 1, evt.Payload.(SnapshotPayload).ItemCount)

	require.NoError(t, bus.Publish(ctx, event.NewRefreshFailedEvent(errors.New("auth"), true)))
	evt = receive(t, c)
	assert.True(t, evt.Payload.(RefreshFailedPayload).NeedsReauth)

	require.NoError(t, bus.Publish(ctx, event.NewItemChangedEvent(event.ItemUpdated, "42", "item.updated", nil, event.SourceWebhook)))
	evt = receive(t, c)
	assert.Equal(t, EventTypeItemUpdated, evt.Type)
	assert.Equal(t, ItemChangedPayload{ItemID: "42", Action: "item.updated", Source: event.SourceWebhook}, evt.Payload)

	// per-item channels are not forwarded
	require.NoError(t, bus.Publish(ctx, event.NewItemChangedEvent(event.ItemUpdatedFor("42"), "42", "item.updated", nil, event.SourceWebhook)))
	select {
	case evt := <-c.EventChannel:
		t.Fatalf("unexpected event %s", evt.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHandler_Streams(t *testing.T) {
	hub := startHub(t)
	srv := httptest.NewServer(Handler(hub))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?types=item.updated", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	reader := bufio.NewReader(resp.Body)

	readEventType := func() string {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if strings.HasPrefix(line, "event: ") {
				return strings.TrimSpace(strings.TrimPrefix(line, "event: "))
			}
		}
	}

	assert.Equal(t, EventTypeConnected, readEventType())
	waitForClients(t, hub, 1)

	hub.Broadcast(EventTypeSnapshotRefreshed, SnapshotPayload{})
	hub.Broadcast(EventTypeItemUpdated, ItemChangedPayload{ItemID: "1"})
	assert.Equal(t, EventTypeItemUpdated, readEventType())
}
