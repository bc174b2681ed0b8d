// Package config assembles the configuration of every part of the
// service from environment variables and an optional .env file.
//
// Each section lives next to the code it configures (server.Config,
// upstream.Config, grid.Config, ...) and declares its defaults through
// struct tags. Environment variables map onto nested keys with
// underscores, e.g. UPSTREAM_CACHE_TTL_SECONDS -> upstream.cache_ttl_seconds.
package config
