// Package email sends transactional mail through Postmark, with a
// file-backed dev sender for local development.
//
// The Sender interface keeps callers provider-agnostic. StatusNotifier
// adapts a Sender to the billing service's notification hook so the
// operations team hears about subscription suspensions.
package email
