package sensor

import "time"

// Entity identity and presentation
const (
	UniqueIDPrefix = "homebox_item_"
	StateUnknown   = "Unknown"
	Attribution    = "Data provided by Homebox"
	Manufacturer   = "Homebox"
	DefaultModel   = "Item"
	Icon           = "mdi:package-variant-closed"
	BridgeDeviceID = "homebox_bridge"
)

// Attribute keys exposed on every sensor
const (
	AttrItemID          = "item_id"
	AttrDescription     = "description"
	AttrPurchaseDate    = "purchase_date"
	AttrPurchasePrice   = "purchase_price"
	AttrPurchaseFrom    = "purchase_from"
	AttrWarrantyExpires = "warranty_expires"
	AttrLocationID      = "location_id"
	AttrLabels          = "labels"
	AttrManufacturer    = "manufacturer"
	AttrModel           = "model"
	AttrSerialNumber    = "serial_number"
	AttrLastUpdated     = "last_updated"
	AttrAttribution     = "attribution"
	AttrAllLocations    = "all_locations"
)

// MQTT topics. %s is the item id unless noted.
const (
	TopicDiscoveryFormat = "%s/sensor/" + UniqueIDPrefix + "%s/config" // prefix, item id
	TopicStateFormat     = "homebox/item/%s/state"
	TopicAttributeFormat = "homebox/item/%s/attributes"
	TopicAvailability    = "homebox/bridge/availability"

	PayloadOnline  = "online"
	PayloadOffline = "offline"
)

// Publish de-duplication cache
const (
	// CacheSchemaVersion invalidates cached payloads when the discovery format changes
	CacheSchemaVersion = "1.0"

	DefaultCacheSize = 4096
	DefaultCacheTTL  = 6 * time.Hour
)

// Log messages
const (
	LogMsgEntityAdded          = "Sensor entity added"
	LogMsgEntityRemoved        = "Sensor entity removed"
	LogMsgEntityMerged         = "Merged webhook update into sensor"
	LogMsgUpdateForUnknownItem = "Update received for unknown item"
	LogMsgSnapshotApplied      = "Applied snapshot to sensors"
	LogMsgPublishFailed        = "Failed to publish sensor over MQTT"
	LogMsgAvailabilityFailed   = "Failed to publish bridge availability"
	LogMsgPayloadUnexpected    = "Unexpected event payload"
)
