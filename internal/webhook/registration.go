package webhook

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/HomeboxBridge_Go/internal/domain"
	"github.com/osse101/HomeboxBridge_Go/internal/logger"
)

// NotifierClient is the part of the inventory client used for registration
type NotifierClient interface {
	ListWebhooks(ctx context.Context) []domain.Notifier
	RegisterWebhook(ctx context.Context, webhookURL string, events []string) bool
}

// EnsureID returns id, or a new random id when id is empty
func EnsureID(id string) string {
	if id != "" {
		return id
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Register makes sure the inventory server posts to webhookURL. It returns
// true when a new notifier was created and false when one already existed.
func Register(ctx context.Context, client NotifierClient, webhookURL string) (bool, error) {
	log := logger.FromContext(ctx)
	if webhookURL == "" {
		log.Warn(LogMsgWebhookDisabled)
		return false, fmt.Errorf("%w: webhook URL is empty", domain.ErrInvalidInput)
	}

	for _, n := range client.ListWebhooks(ctx) {
		if n.URL() == webhookURL {
			log.Info(LogMsgRegistrationExists, "url", webhookURL, "notifier_id", n.ID())
			return false, nil
		}
	}

	if !client.RegisterWebhook(ctx, webhookURL, nil) {
		log.Warn(LogMsgRegistrationFailed, "url", webhookURL)
		return false, fmt.Errorf("%w: register webhook %s", domain.ErrOperationFailed, webhookURL)
	}

	log.Info(LogMsgRegistered, "url", webhookURL)
	return true, nil
}
