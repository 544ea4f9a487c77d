// Package mongo manages the connection to the MongoDB deployment that
// stores the tenant directory.
//
// Connect retries with a configurable interval so the service tolerates
// a database that starts after it, then verifies the connection with a
// ping before returning. Healthcheck produces a probe function for the
// HTTP server's readiness endpoint.
package mongo
