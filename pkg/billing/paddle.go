package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"
)

// PaddleConfig holds configuration for the Paddle billing provider.
// The API key is optional for webhook-only deployments.
type PaddleConfig struct {
	APIKey        string `env:"PADDLE_API_KEY"`
	WebhookSecret string `env:"PADDLE_WEBHOOK_SECRET,required"`
	Environment   string `env:"PADDLE_ENVIRONMENT" envDefault:"production"`
}

// PaddleProvider implements Provider for Paddle.
type PaddleProvider struct {
	client   *paddle.SDK
	verifier *paddle.WebhookVerifier
}

// NewPaddleProvider creates a Paddle billing provider.
func NewPaddleProvider(cfg PaddleConfig) (*PaddleProvider, error) {
	if cfg.WebhookSecret == "" {
		return nil, ErrMissingWebhookSecret
	}

	p := &PaddleProvider{
		verifier: paddle.NewWebhookVerifier(cfg.WebhookSecret),
	}

	if cfg.APIKey != "" {
		var (
			client *paddle.SDK
			err    error
		)
		switch strings.ToLower(cfg.Environment) {
		case "sandbox":
			client, err = paddle.NewSandbox(cfg.APIKey)
		case "production", "":
			client, err = paddle.New(cfg.APIKey)
		default:
			return nil, fmt.Errorf("%w: %s", ErrInvalidEnvironment, cfg.Environment)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create paddle client: %w", err)
		}
		p.client = client
	}

	return p, nil
}

// ParseWebhook verifies the Paddle-Signature header against the payload
// and normalizes the event for the sync service.
func (p *PaddleProvider) ParseWebhook(ctx context.Context, payload []byte, signature string) (*Event, error) {
	// The SDK verifier works on an http.Request, so rebuild one.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/webhook", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build verification request: %w", err)
	}
	req.Header.Set("Paddle-Signature", signature)

	valid, err := p.verifier.Verify(req)
	if err != nil {
		return nil, errors.Join(ErrVerificationFailed, err)
	}
	if !valid {
		return nil, ErrVerificationFailed
	}

	var paddleEvent struct {
		EventID   string         `json:"event_id"`
		EventType string         `json:"event_type"`
		Data      map[string]any `json:"data"`
	}
	if err := json.Unmarshal(payload, &paddleEvent); err != nil {
		return nil, errors.Join(ErrMalformedPayload, err)
	}

	event := &Event{
		Type:          mapPaddleEventType(paddleEvent.EventType),
		ProviderEvent: paddleEvent.EventType,
		Raw:           paddleEvent.Data,
	}

	if id, ok := paddleEvent.Data["id"].(string); ok {
		event.SubscriptionID = id
	}
	if subID, ok := paddleEvent.Data["subscription_id"].(string); ok {
		event.SubscriptionID = subID
	}
	if status, ok := paddleEvent.Data["status"].(string); ok {
		event.Status = status
	}

	// Checkout stores our tenant ID in the transaction custom data and
	// Paddle echoes it back on every subscription lifecycle event.
	if customData, ok := paddleEvent.Data["custom_data"].(map[string]any); ok {
		if tenantID, ok := customData["tenant_id"].(string); ok {
			event.TenantID = tenantID
		}
	}

	if items, ok := paddleEvent.Data["items"].([]any); ok && len(items) > 0 {
		if item, ok := items[0].(map[string]any); ok {
			if price, ok := item["price"].(map[string]any); ok {
				if priceID, ok := price["id"].(string); ok {
					event.PlanID = priceID
				}
			}
			if priceID, ok := item["price_id"].(string); ok {
				event.PlanID = priceID
			}
		}
	}

	return event, nil
}

// mapPaddleEventType maps Paddle event names to normalized types.
func mapPaddleEventType(paddleEvent string) EventType {
	switch paddleEvent {
	case "subscription.created", "subscription.activated":
		return EventSubscriptionCreated
	case "subscription.updated":
		return EventSubscriptionUpdated
	case "subscription.canceled":
		return EventSubscriptionCancelled
	case "subscription.resumed":
		return EventSubscriptionResumed
	case "subscription.paused", "subscription.past_due":
		return EventSubscriptionPaused
	case "subscription.trialing":
		return EventSubscriptionTrialing
	case "transaction.payment_failed":
		return EventPaymentFailed
	default:
		return EventUnknown
	}
}
