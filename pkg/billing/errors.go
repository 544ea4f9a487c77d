package billing

import "errors"

var (
	// ErrMissingWebhookSecret is returned when the provider is created
	// without a webhook secret.
	ErrMissingWebhookSecret = errors.New("billing webhook secret is required")

	// ErrInvalidEnvironment is returned for unknown provider environments.
	ErrInvalidEnvironment = errors.New("invalid billing environment")

	// ErrVerificationFailed is returned when a webhook signature does
	// not verify. The payload must be discarded.
	ErrVerificationFailed = errors.New("webhook signature verification failed")

	// ErrMalformedPayload is returned when a verified payload cannot be
	// parsed.
	ErrMalformedPayload = errors.New("malformed webhook payload")

	// ErrUnknownTenant is returned when a webhook references a tenant
	// that does not exist in the directory.
	ErrUnknownTenant = errors.New("webhook references unknown tenant")
)
