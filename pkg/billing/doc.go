// Package billing syncs subscription status from the payment provider
// into the tenant directory.
//
// The provider (Paddle) is the source of truth for billing state; this
// package listens to its webhooks, verifies signatures, and writes the
// one field the resolution core enforces: subscription.status. Status
// changes also invalidate the resolution cache so a suspension takes
// effect on the next request, not when the cache TTL expires.
package billing
