package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the
// availability service.
type Config struct {
	HTTPPort          int
	ContentDSN        string
	SnapshotCacheSize int
	SnapshotCacheTTL  time.Duration
}

// Load parses configuration values from the current process environment.
//
// The loader applies defaults for optional fields while validating required
// values, accumulating every missing or malformed entry so operators see the
// full list in one pass.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:          8080,
		SnapshotCacheSize: 256,
		SnapshotCacheTTL:  30 * time.Second,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("CONCIERGE_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "CONCIERGE_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("CONCIERGE_CONTENT_DSN")); dsn == "" {
		missing = append(missing, "CONCIERGE_CONTENT_DSN")
	} else {
		cfg.ContentDSN = dsn
	}

	if sizeValue := strings.TrimSpace(os.Getenv("CONCIERGE_SNAPSHOT_CACHE_SIZE")); sizeValue != "" {
		size, err := strconv.Atoi(sizeValue)
		if err != nil || size <= 0 {
			invalid = append(invalid, "CONCIERGE_SNAPSHOT_CACHE_SIZE")
		} else {
			cfg.SnapshotCacheSize = size
		}
	}

	if ttlValue := strings.TrimSpace(os.Getenv("CONCIERGE_SNAPSHOT_CACHE_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "CONCIERGE_SNAPSHOT_CACHE_TTL")
		} else {
			cfg.SnapshotCacheTTL = ttl
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("environment variables have invalid values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
