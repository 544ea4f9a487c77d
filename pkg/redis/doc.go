// Package redis connects to the Redis server backing the shared tenant
// resolution cache.
//
// Connect retries at startup so the service tolerates a cache that
// comes up after it; the resolution path itself treats Redis failures
// as cache misses, so Redis is a performance dependency rather than an
// availability one.
package redis
