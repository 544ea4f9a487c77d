// Package httpserver wraps net/http with graceful shutdown, environment
// driven configuration, and health probe handlers.
//
// Run blocks until the context is cancelled or SIGINT/SIGTERM arrives,
// then drains in-flight requests within the shutdown timeout. The
// health handlers plug the mongo and redis probe functions into
// /health/live and /health/ready endpoints.
package httpserver
