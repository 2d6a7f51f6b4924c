package homebox

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/osse101/HomeboxBridge_Go/internal/domain"
	"github.com/osse101/HomeboxBridge_Go/internal/logger"
)

// ListLocations fetches all locations. Auth and API failures are returned;
// an unexpected response shape yields an empty list.
func (c *Client) ListLocations(ctx context.Context) ([]domain.Location, error) {
	resp, err := c.Request(ctx, http.MethodGet, EndpointLocations, nil, nil)
	if err != nil {
		return nil, err
	}

	list, ok := ExtractList(resp.Body, fieldData)
	if !ok {
		logger.FromContext(ctx).Warn(LogMsgNoListFound, "endpoint", EndpointLocations, "body", excerpt(resp.Body))
		return []domain.Location{}, nil
	}

	locations := make([]domain.Location, len(list))
	for i, rec := range list {
		locations[i] = domain.Location(rec)
	}
	return locations, nil
}

// GetLocations is the tolerant form of ListLocations: failures are logged
// and an empty list is returned.
func (c *Client) GetLocations(ctx context.Context) []domain.Location {
	locations, err := c.ListLocations(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgGetLocationsFailed, "error", err)
		return []domain.Location{}
	}
	return locations
}

// CreateLocation creates a location with the given name.
func (c *Client) CreateLocation(ctx context.Context, name string) bool {
	log := logger.FromContext(ctx)
	if _, err := c.Request(ctx, http.MethodPost, EndpointLocations, map[string]any{domain.FieldName: name}, nil); err != nil {
		log.Error(LogMsgCreateLocationFailed, "name", name, "error", err)
		return false
	}
	log.Info(LogMsgCreateLocationOK, "name", name)
	return true
}

// ListItems fetches items, filtered by label when label is non-empty.
// Auth and API failures are returned; an unexpected shape yields an empty list.
func (c *Client) ListItems(ctx context.Context, label string) ([]domain.Item, error) {
	var query url.Values
	if label != "" {
		query = url.Values{fieldLabel: []string{label}}
	}

	resp, err := c.Request(ctx, http.MethodGet, EndpointItems, nil, query)
	if err != nil {
		return nil, err
	}

	list, ok := ExtractList(resp.Body, fieldItems, fieldData)
	if !ok {
		logger.FromContext(ctx).Warn(LogMsgNoListFound, "endpoint", EndpointItems, "body", excerpt(resp.Body))
		return []domain.Item{}, nil
	}

	items := make([]domain.Item, len(list))
	for i, rec := range list {
		items[i] = domain.Item(rec)
	}
	return items, nil
}

// GetItems is the tolerant form of ListItems.
func (c *Client) GetItems(ctx context.Context, label string) []domain.Item {
	items, err := c.ListItems(ctx, label)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgGetItemsFailed, "label", label, "error", err)
		return []domain.Item{}
	}
	return items
}

// UpdateItemLocation moves an item. Servers disagree on the payload shape,
// so an API rejection of {location_id} is retried once as {location: {id}}.
// Auth failures are not retried.
func (c *Client) UpdateItemLocation(ctx context.Context, itemID, locationID string) bool {
	log := logger.FromContext(ctx)
	endpoint := EndpointItems + "/" + url.PathEscape(itemID)

	_, err := c.Request(ctx, http.MethodPatch, endpoint, map[string]any{domain.FieldLocationID: locationID}, nil)
	if err == nil {
		log.Info(LogMsgUpdateLocationOK, "item_id", itemID, "location_id", locationID)
		return true
	}

	if errors.Is(err, domain.ErrAuthFailed) {
		log.Error(LogMsgUpdateLocationFailed, "item_id", itemID, "error", err)
		return false
	}

	log.Debug(LogMsgUpdateLocationRetry, "item_id", itemID, "error", err)
	nested := map[string]any{domain.FieldLocation: map[string]any{domain.FieldID: locationID}}
	if _, err := c.Request(ctx, http.MethodPatch, endpoint, nested, nil); err != nil {
		log.Error(LogMsgUpdateLocationFailed, "item_id", itemID, "error", err)
		return false
	}

	log.Info(LogMsgUpdateLocationOK, "item_id", itemID, "location_id", locationID, "format", "nested")
	return true
}

// RegisterWebhook registers a notifier pointing at webhookURL. A nil or
// empty events list subscribes to DefaultWebhookEvents.
func (c *Client) RegisterWebhook(ctx context.Context, webhookURL string, events []string) bool {
	if len(events) == 0 {
		events = DefaultWebhookEvents
	}

	log := logger.FromContext(ctx)
	payload := map[string]any{
		domain.FieldURL: webhookURL,
		fieldEvents:     events,
		fieldIsActive:   true,
	}
	if _, err := c.Request(ctx, http.MethodPost, EndpointNotifiers, payload, nil); err != nil {
		log.Error(LogMsgRegisterWebhookFailed, "url", webhookURL, "error", err)
		return false
	}
	log.Info(LogMsgRegisterWebhookOK, "url", webhookURL)
	return true
}

// ListWebhooks returns the registered notifiers, or an empty list on any failure.
func (c *Client) ListWebhooks(ctx context.Context) []domain.Notifier {
	log := logger.FromContext(ctx)

	resp, err := c.Request(ctx, http.MethodGet, EndpointNotifiers, nil, nil)
	if err != nil {
		log.Error(LogMsgListWebhooksFailed, "error", err)
		return []domain.Notifier{}
	}

	list, ok := ExtractList(resp.Body, fieldData)
	if !ok {
		log.Warn(LogMsgNoListFound, "endpoint", EndpointNotifiers, "body", excerpt(resp.Body))
		return []domain.Notifier{}
	}

	notifiers := make([]domain.Notifier, len(list))
	for i, rec := range list {
		notifiers[i] = domain.Notifier(rec)
	}
	return notifiers
}
