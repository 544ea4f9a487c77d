package email

import (
	"context"
	"fmt"
	"html"

	"github.com/yardbook/yardbook/pkg/tenant"
)

// StatusNotifier mails the operations inbox when billing sync changes
// a tenant's subscription status. It satisfies the billing service's
// Notifier interface.
type StatusNotifier struct {
	sender Sender
	to     string
}

// NewStatusNotifier creates a notifier delivering to the given address.
func NewStatusNotifier(sender Sender, to string) (*StatusNotifier, error) {
	if to == "" || !emailRegex.MatchString(to) {
		return nil, fmt.Errorf("%w: notification address %q", ErrInvalidConfig, to)
	}
	return &StatusNotifier{sender: sender, to: to}, nil
}

// NotifyStatusChange sends a short notice naming the tenant and the
// transition. Suspensions are the case the operations team acts on.
func (n *StatusNotifier) NotifyStatusChange(ctx context.Context, t *tenant.Tenant, from, to tenant.Status) error {
	subject := fmt.Sprintf("Tenant %s: %s -> %s", t.Subdomain, from, to)
	body := fmt.Sprintf(
		"<p>Subscription status for tenant <strong>%s</strong> (%s) changed from <strong>%s</strong> to <strong>%s</strong>.</p>",
		html.EscapeString(t.Name), t.ID, from, to,
	)
	return n.sender.Send(ctx, Message{
		To:       n.to,
		Subject:  subject,
		BodyHTML: body,
		Tag:      "tenant-status-change",
	})
}
