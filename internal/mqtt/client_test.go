package mqtt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptions(t *testing.T) {
	opts := newOptions(Config{
		Broker:      "tcp://broker.local:1883",
		Username:    "bridge",
		Password:    "secret",
		ClientID:    "homebox-bridge",
		WillTopic:   "homebox/bridge/availability",
		WillPayload: "offline",
	})

	require.Len(t, opts.Servers, 1)
	assert.Equal(t, "broker.local:1883", opts.Servers[0].Host)
	assert.Equal(t, "homebox-bridge", opts.ClientID)
	assert.Equal(t, "bridge", opts.Username)
	assert.Equal(t, "secret", opts.Password)
	assert.True(t, opts.AutoReconnect)
	assert.True(t, opts.ConnectRetry)

	assert.True(t, opts.WillEnabled)
	assert.Equal(t, "homebox/bridge/availability", opts.WillTopic)
	assert.Equal(t, []byte("offline"), opts.WillPayload)
	assert.True(t, opts.WillRetained)
}

func TestNewOptions_Anonymous(t *testing.T) {
	opts := newOptions(Config{Broker: "tcp://localhost:1883", ClientID: "x"})

	assert.Empty(t, opts.Username)
	assert.False(t, opts.WillEnabled)
}

func TestConnect_RequiresBroker(t *testing.T) {
	_, err := Connect(context.Background(), Config{})
	assert.Error(t, err)
}
