package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Path pattern; "*" matches one segment, a trailing "/" any suffix
	Method string        // HTTP method (GET, PUT, DELETE)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig reads the limiter settings from the process environment.
func LoadConfig() *Config {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from RATE_LIMIT_* variables resolved through
// lookup. Unparseable values fall back to their defaults.
func FromLookup(lookup func(string) (string, bool)) *Config {
	e := env{lookup: lookup}
	if !e.boolean("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	endpoints := DefaultEndpointConfigs()
	if pdf := e.integer("RATE_LIMIT_EXPORT_LIMIT", 0); pdf > 0 {
		for i := range endpoints {
			if strings.HasSuffix(endpoints[i].Path, "/pdf") {
				endpoints[i].Limit = pdf
			}
		}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    e.integer("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   e.duration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: e.duration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       ipSet(e.str("RATE_LIMIT_WHITELIST")),
		Blacklist:       ipSet(e.str("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: endpoints,
	}
}

// DefaultEndpointConfigs returns the per-route limits for the CV registry.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Exports launch a rasterizer per request
		{Path: "/api/cv/*/pdf", Method: "GET", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/api/cv/*/doc", Method: "GET", Limit: 120, Window: time.Hour, Burst: 10},

		// Writes come from debounced saves, so bursts stay small
		{Path: "/api/cv/*", Method: "PUT", Limit: 600, Window: time.Minute, Burst: 30},
		{Path: "/api/cv/*", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},

		// Reads use the default limit; /health is never limited
	}
}

type env struct {
	lookup func(string) (string, bool)
}

func (e env) str(key string) string {
	v, _ := e.lookup(key)
	return strings.TrimSpace(v)
}

func (e env) integer(key string, def int) int {
	if n, err := strconv.Atoi(e.str(key)); err == nil {
		return n
	}
	return def
}

func (e env) boolean(key string, def bool) bool {
	if b, err := strconv.ParseBool(e.str(key)); err == nil {
		return b
	}
	return def
}

func (e env) duration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(e.str(key)); err == nil {
		return d
	}
	return def
}

// ipSet turns "a, b,,c" into {a, b, c}.
func ipSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
