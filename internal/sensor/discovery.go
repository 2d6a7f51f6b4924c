package sensor

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/HomeboxBridge_Go/internal/domain"
	"github.com/osse101/HomeboxBridge_Go/internal/logger"
)

// MQTTPublisher is the part of the MQTT client the publisher needs
type MQTTPublisher interface {
	Publish(topic string, payload []byte, retained bool) error
}

// DeviceInfo groups the sensor under a device in the host platform
type DeviceInfo struct {
	Identifiers  []string `json:"identifiers"`
	Name         string   `json:"name"`
	Model        string   `json:"model,omitempty"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	ViaDevice    string   `json:"via_device,omitempty"`
}

// DiscoveryConfig is the retained discovery payload for one sensor
type DiscoveryConfig struct {
	Name                string      `json:"name"`
	ObjectID            string      `json:"object_id,omitempty"`
	UniqueID            string      `json:"unique_id"`
	StateTopic          string      `json:"state_topic"`
	JSONAttributesTopic string      `json:"json_attributes_topic,omitempty"`
	AvailabilityTopic   string      `json:"availability_topic,omitempty"`
	Icon                string      `json:"icon,omitempty"`
	Device              *DeviceInfo `json:"device,omitempty"`
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// ObjectID derives the entity object id from the item name
func ObjectID(name, itemID string) string {
	slug := nonSlug.ReplaceAllString(cases.Lower(language.Und).String(name), "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = itemID
	}
	return "homebox_" + slug
}

// DiscoveryTopic returns the retained config topic for an item
func DiscoveryTopic(prefix, itemID string) string {
	return fmt.Sprintf(TopicDiscoveryFormat, prefix, itemID)
}

// StateTopic returns the state topic for an item
func StateTopic(itemID string) string {
	return fmt.Sprintf(TopicStateFormat, itemID)
}

// AttributesTopic returns the attributes topic for an item
func AttributesTopic(itemID string) string {
	return fmt.Sprintf(TopicAttributeFormat, itemID)
}

// NewDiscoveryConfig builds the discovery payload for e
func NewDiscoveryConfig(e *Entity) DiscoveryConfig {
	name := e.Name()
	return DiscoveryConfig{
		Name:                name,
		ObjectID:            ObjectID(name, e.ItemID()),
		UniqueID:            e.UniqueID(),
		StateTopic:          StateTopic(e.ItemID()),
		JSONAttributesTopic: AttributesTopic(e.ItemID()),
		AvailabilityTopic:   TopicAvailability,
		Icon:                Icon,
		Device: &DeviceInfo{
			Identifiers:  []string{e.UniqueID()},
			Name:         name,
			Model:        e.model(),
			Manufacturer: Manufacturer,
			ViaDevice:    BridgeDeviceID,
		},
	}
}

// Publisher mirrors sensors to the host platform over MQTT discovery
type Publisher struct {
	client MQTTPublisher
	prefix string
	cache  *publishCache
}

// NewPublisher creates a publisher writing discovery configs under prefix
func NewPublisher(client MQTTPublisher, prefix string) *Publisher {
	return &Publisher{
		client: client,
		prefix: prefix,
		cache:  newPublishCache(DefaultCacheSize, DefaultCacheTTL),
	}
}

// PublishEntity sends the discovery config, state and attributes of e.
// Payloads identical to the last ones sent are skipped.
func (p *Publisher) PublishEntity(ctx context.Context, e *Entity, snap *domain.Snapshot) error {
	config, err := json.Marshal(NewDiscoveryConfig(e))
	if err != nil {
		return fmt.Errorf("marshal discovery config: %w", err)
	}
	if err := p.publish(DiscoveryTopic(p.prefix, e.ItemID()), config); err != nil {
		return err
	}

	if err := p.publish(StateTopic(e.ItemID()), []byte(e.State(snap))); err != nil {
		return err
	}

	attrs, err := json.Marshal(e.Attributes(snap))
	if err != nil {
		return fmt.Errorf("marshal attributes: %w", err)
	}
	return p.publish(AttributesTopic(e.ItemID()), attrs)
}

// RemoveEntity clears the retained discovery config so the host platform
// drops the sensor.
func (p *Publisher) RemoveEntity(ctx context.Context, itemID string) error {
	topic := DiscoveryTopic(p.prefix, itemID)
	if err := p.client.Publish(topic, []byte{}, true); err != nil {
		return err
	}
	p.cache.Invalidate(topic)
	p.cache.Invalidate(StateTopic(itemID))
	p.cache.Invalidate(AttributesTopic(itemID))
	return nil
}

// PublishAvailability marks the bridge online or offline
func (p *Publisher) PublishAvailability(ctx context.Context, online bool) error {
	payload := PayloadOffline
	if online {
		payload = PayloadOnline
	}
	if err := p.publish(TopicAvailability, []byte(payload)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgAvailabilityFailed, "error", err)
		return err
	}
	return nil
}

// Reset forgets every published payload so the next pass re-sends all of them
func (p *Publisher) Reset() {
	p.cache.Clear()
}

func (p *Publisher) publish(topic string, payload []byte) error {
	if p.cache.Unchanged(topic, payload) {
		return nil
	}
	if err := p.client.Publish(topic, payload, true); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	p.cache.Set(topic, payload)
	return nil
}
