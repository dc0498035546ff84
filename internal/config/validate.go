package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Adapters accepted by storage.adapter.
var Adapters = []string{"fs", "memory", "redis", "sqlite"}

// Validate checks enumerations and adapter specific settings.
func (c *Config) Validate() error {
	if !slices.Contains(Adapters, c.Storage.Adapter) {
		return fmt.Errorf("storage.adapter must be one of %s (got %q)", strings.Join(Adapters, ", "), c.Storage.Adapter)
	}
	if c.Storage.Adapter == "redis" && c.Storage.Redis.Addr == "" {
		return fmt.Errorf("storage.redis.addr is required for the redis adapter")
	}
	switch c.Entitlement.Provider {
	case "local", "stub":
	default:
		return fmt.Errorf("entitlement.provider must be local or stub (got %q)", c.Entitlement.Provider)
	}
	if c.Seed != "samples" && c.Seed != "none" {
		return fmt.Errorf("seed must be samples or none (got %q)", c.Seed)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}
	return nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(l.Level))
	return level, err
}
