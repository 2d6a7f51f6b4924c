package homebox

import "time"

// API paths, relative to <base>/api/v1/
const (
	APIPrefix         = "/api/v1/"
	EndpointLogin     = "users/login"
	EndpointLocations = "locations"
	EndpointItems     = "items"
	EndpointNotifiers = "notifiers"
)

// Webhook event names understood by the inventory server
const (
	EventItemCreated = "item.created"
	EventItemUpdated = "item.updated"
	EventItemDeleted = "item.deleted"
)

// DefaultWebhookEvents is used by RegisterWebhook when no events are given.
var DefaultWebhookEvents = []string{EventItemCreated, EventItemUpdated, EventItemDeleted}

// Session and transport defaults
const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultTokenLifetime  = 60 * time.Minute

	// TokenRefreshMargin is how long before expiry a token is treated as stale.
	TokenRefreshMargin = 5 * time.Minute

	// ErrorDetailMaxLength bounds the response body excerpt kept on an APIError.
	ErrorDetailMaxLength = 200

	SchemeHTTP   = "http://"
	SchemeHTTPS  = "https://"
	BearerPrefix = "Bearer "
)

// Response field names
const (
	fieldToken     = "token"
	fieldData      = "data"
	fieldExpires   = "expires"
	fieldExpiresAt = "expiresAt"
	fieldItems     = "items"
	fieldStayIn    = "stayLoggedIn"
	fieldUsername  = "username"
	fieldPassword  = "password"
	fieldLabel     = "label"
	fieldEvents    = "events"
	fieldIsActive  = "is_active"
)

// HTTP headers
const (
	HeaderAccept        = "Accept"
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	ContentTypeJSON     = "application/json"
)

// Log messages
const (
	LogMsgAuthenticating        = "Authenticating with inventory server"
	LogMsgAuthSucceeded         = "Authenticated with inventory server"
	LogMsgAuthFailed            = "Failed to authenticate with inventory server"
	LogMsgAuthNoToken           = "Login response did not contain a token"
	LogMsgAuthBadExpiry         = "Login response carried an unparseable expiry"
	LogMsgAuthExpiryInPast      = "Login response expiry already passed, using default lifetime"
	LogMsgTokenRejected         = "Token rejected, re-authenticating once"
	LogMsgRetryAfterReauth      = "Re-authentication succeeded, retrying request"
	LogMsgAPIRequest            = "Inventory server request"
	LogMsgAPIResponse           = "Inventory server response"
	LogMsgNonJSONResponse       = "Response is not valid JSON, returning text"
	LogMsgNoListFound           = "Unexpected response format, no list found"
	LogMsgGetLocationsFailed    = "Failed to get locations"
	LogMsgCreateLocationOK      = "Created inventory location"
	LogMsgCreateLocationFailed  = "Failed to create inventory location"
	LogMsgGetItemsFailed        = "Failed to get items"
	LogMsgUpdateLocationOK      = "Updated item location"
	LogMsgUpdateLocationRetry   = "Item location update rejected, trying nested location format"
	LogMsgUpdateLocationFailed  = "Failed to update item location"
	LogMsgRegisterWebhookOK     = "Registered webhook with inventory server"
	LogMsgRegisterWebhookFailed = "Failed to register webhook"
	LogMsgListWebhooksFailed    = "Failed to list webhooks"
)
