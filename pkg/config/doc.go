// Package config loads application configuration from environment
// variables into tagged structs.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
// the default .env file is read once per process (if present), then
// env.Parse fills the struct from `env` field tags with support for
// defaults and required values.
//
// Each package that needs configuration declares its own Config struct
// (see tenant.Config, mongo.Config, redis.Config) and the binary loads
// them independently at startup with MustLoad.
package config
