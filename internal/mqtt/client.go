// Package mqtt wraps the paho client with the small surface the sensor
// publisher needs: retained publishes, a last-will topic and a reconnect hook.
package mqtt

import (
	"context"
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/osse101/HomeboxBridge_Go/internal/logger"
)

// ErrPublishTimeout is returned when the broker does not acknowledge a publish in time
var ErrPublishTimeout = errors.New("mqtt publish timed out")

// Config holds broker connection settings
type Config struct {
	Broker   string
	Username string
	Password string
	ClientID string

	// WillTopic receives WillPayload (retained) when the connection drops uncleanly
	WillTopic   string
	WillPayload string

	ConnectTimeout time.Duration
	PublishTimeout time.Duration

	// OnConnect runs after every successful (re)connect, e.g. to republish discovery
	OnConnect func()
}

// Client is a connected MQTT session
type Client struct {
	client         paho.Client
	publishTimeout time.Duration
}

// newOptions translates Config into paho options
func newOptions(cfg Config) *paho.ClientOptions {
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetKeepAlive(DefaultKeepAlive).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetCleanSession(true)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	if cfg.WillTopic != "" {
		opts.SetWill(cfg.WillTopic, cfg.WillPayload, DefaultQoS, true)
	}

	opts.SetOnConnectHandler(func(paho.Client) {
		logger.Info(LogMsgConnected, "broker", cfg.Broker)
		if cfg.OnConnect != nil {
			cfg.OnConnect()
		}
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		logger.Warn(LogMsgConnectionLost, "broker", cfg.Broker, "error", err)
	})
	return opts
}

// Connect opens a session with the broker. If the broker cannot be reached
// within the connect timeout the client keeps retrying in the background and
// Connect returns the not-yet-connected client; publishes fail until then.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Broker == "" {
		return nil, errors.New("mqtt broker address is empty")
	}

	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	publishTimeout := cfg.PublishTimeout
	if publishTimeout <= 0 {
		publishTimeout = DefaultPublishTimeout
	}

	log := logger.FromContext(ctx)
	log.Info(LogMsgConnecting, "broker", cfg.Broker, "client_id", cfg.ClientID)

	client := paho.NewClient(newOptions(cfg))
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		log.Warn(LogMsgConnectPending, "broker", cfg.Broker, "timeout", connectTimeout)
	} else if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.Broker, err)
	}

	return &Client{client: client, publishTimeout: publishTimeout}, nil
}

// Publish sends payload to topic at QoS 1 and waits for the broker's acknowledgement
func (c *Client) Publish(topic string, payload []byte, retained bool) error {
	token := c.client.Publish(topic, DefaultQoS, retained, payload)
	if !token.WaitTimeout(c.publishTimeout) {
		return fmt.Errorf("%w: %s", ErrPublishTimeout, topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish %s: %w", topic, err)
	}
	return nil
}

// IsConnected reports whether the session is currently up
func (c *Client) IsConnected() bool {
	return c.client.IsConnected()
}

// Close disconnects from the broker
func (c *Client) Close() {
	logger.Info(LogMsgDisconnecting)
	c.client.Disconnect(disconnectQuiesceMillis)
}
