// Package webhook receives change notifications from the inventory server
// and registers the bridge's endpoint with it.
package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/HomeboxBridge_Go/internal/domain"
	"github.com/osse101/HomeboxBridge_Go/internal/event"
	"github.com/osse101/HomeboxBridge_Go/internal/logger"
	"github.com/osse101/HomeboxBridge_Go/internal/metrics"
)

// Refresher schedules an out-of-band refresh pass
type Refresher interface {
	RequestRefresh(ctx context.Context) bool
}

// Payload is an inbound notification. Data is kept raw so a malformed
// data field does not reject the whole delivery.
type Payload struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Handler serves POST /api/webhook/{webhookID}
type Handler struct {
	webhookID  string
	bus        event.Bus
	refreshers []Refresher
}

// NewHandler creates a webhook handler accepting only webhookID. Every
// accepted delivery requests a refresh from each refresher.
func NewHandler(webhookID string, bus event.Bus, refreshers ...Refresher) *Handler {
	return &Handler{webhookID: webhookID, bus: bus, refreshers: refreshers}
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if id := chi.URLParam(r, ParamWebhookID); id == "" || id != h.webhookID {
		log.Warn(LogMsgUnknownWebhookID)
		h.reply(w, TypeUnknown, http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes))
	if err != nil {
		log.Warn(LogMsgInvalidPayload, "error", err)
		h.reply(w, TypeUnknown, http.StatusBadRequest)
		return
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Warn(LogMsgInvalidPayload, "error", err)
		h.reply(w, TypeUnknown, http.StatusBadRequest)
		return
	}

	typ := normalizeType(payload.Type)
	if err := h.safeHandle(r.Context(), typ, payload.Data); err != nil {
		log.Error(LogMsgHandlerFailed, "type", typ, "error", err)
		h.reply(w, typ, http.StatusInternalServerError)
		return
	}

	h.reply(w, typ, http.StatusOK)
}

// safeHandle dispatches the notification, converting a panic into an error
func (h *Handler) safeHandle(ctx context.Context, typ string, data json.RawMessage) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.FromContext(ctx).Error(LogMsgHandlerPanic, "type", typ, "panic", rec)
			err = fmt.Errorf("webhook handler panic: %v", rec)
		}
	}()

	if err := h.handle(ctx, typ, decodeData(data)); err != nil {
		return err
	}

	for _, rf := range h.refreshers {
		rf.RequestRefresh(ctx)
	}
	return nil
}

func (h *Handler) handle(ctx context.Context, typ string, data map[string]any) error {
	log := logger.FromContext(ctx)
	itemID := domain.Record(data).String(domain.FieldID)

	switch {
	case strings.HasSuffix(typ, updatedSuffix):
		// any <kind>.updated goes to its per-id channel, then the wildcard
		if itemID == "" {
			log.Warn(LogMsgUpdateWithoutID, "type", typ)
			return nil
		}
		wildcard := event.Type(typ)
		if err := h.publish(ctx, event.NewItemChangedEvent(event.ChannelFor(wildcard, itemID), itemID, typ, data, event.SourceWebhook)); err != nil {
			return err
		}
		if err := h.publish(ctx, event.NewItemChangedEvent(wildcard, itemID, typ, data, event.SourceWebhook)); err != nil {
			return err
		}
		log.Debug(LogMsgUpdateProcessed, "type", typ, "id", itemID)

	case typ == TypeItemCreated:
		log.Debug(LogMsgCreateProcessed, "item_id", itemID)
		return h.publish(ctx, event.NewItemChangedEvent(event.ItemCreated, itemID, typ, data, event.SourceWebhook))

	case typ == TypeItemDeleted:
		log.Debug(LogMsgDeleteProcessed, "item_id", itemID)
		return h.publish(ctx, event.NewItemChangedEvent(event.ItemDeleted, itemID, typ, data, event.SourceWebhook))

	default:
		log.Warn(LogMsgUnhandledType, "type", typ)
	}
	return nil
}

func (h *Handler) publish(ctx context.Context, evt event.Event) error {
	if h.bus == nil {
		return nil
	}
	return h.bus.Publish(ctx, evt)
}

func (h *Handler) reply(w http.ResponseWriter, typ string, status int) {
	metrics.WebhookDeliveries.WithLabelValues(metricType(typ), strconv.Itoa(status)).Inc()
	w.WriteHeader(status)
}

// normalizeType maps legacy asset.* names onto item.* and defaults to unknown
func normalizeType(typ string) string {
	if typ == "" {
		return TypeUnknown
	}
	if rest, ok := strings.CutPrefix(typ, legacyPrefix); ok {
		return itemPrefix + rest
	}
	return typ
}

// metricType keeps the metric label set bounded
func metricType(typ string) string {
	switch typ {
	case TypeItemUpdated, TypeItemCreated, TypeItemDeleted, TypeLocationUpdated:
		return typ
	}
	return TypeUnknown
}

// decodeData returns the data object, or nil when it is absent or not an object
func decodeData(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil
	}
	return data
}
