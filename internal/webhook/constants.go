package webhook

// Routing
const (
	// ParamWebhookID is the chi URL parameter holding the webhook id
	ParamWebhookID = "webhookID"

	// PathPrefix is where the inventory server posts notifications
	PathPrefix = "/api/webhook/"

	// MaxBodyBytes bounds the size of an inbound notification
	MaxBodyBytes = 1 << 20
)

// Notification types
const (
	TypeItemUpdated = "item.updated"
	TypeItemCreated = "item.created"
	TypeItemDeleted = "item.deleted"
	TypeUnknown     = "unknown"

	TypeLocationUpdated = "location.updated"

	// updatedSuffix marks update notifications of any record kind
	updatedSuffix = ".updated"

	// legacyPrefix is accepted for servers that still send asset.* types
	legacyPrefix = "asset."
	itemPrefix   = "item."
)

// Log messages
const (
	LogMsgUnknownWebhookID   = "Webhook called with unknown id"
	LogMsgInvalidPayload     = "Webhook payload is not valid JSON"
	LogMsgUpdateWithoutID    = "Received update webhook without record ID"
	LogMsgUpdateProcessed    = "Processed update webhook"
	LogMsgCreateProcessed    = "Processed item creation webhook"
	LogMsgDeleteProcessed    = "Processed item deletion webhook"
	LogMsgUnhandledType      = "Unhandled webhook type"
	LogMsgHandlerFailed      = "Error handling webhook"
	LogMsgHandlerPanic       = "Webhook handler panicked"
	LogMsgRegistrationExists = "Webhook already registered with inventory server"
	LogMsgRegistered         = "Webhook registered with inventory server"
	LogMsgRegistrationFailed = "Could not register webhook with inventory server"
	LogMsgWebhookDisabled    = "External URL not configured, webhook functionality disabled"
)
