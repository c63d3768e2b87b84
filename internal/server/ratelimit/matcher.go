package ratelimit

import (
	"strings"
)

// unlimited is returned for endpoints that are never rate limited.
var unlimited = &EndpointConfig{Path: "/health", Method: "GET"}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
//
// Patterns are matched segment by segment: "*" matches exactly one segment
// (so "/api/cv/*/pdf" matches "/api/cv/cv_1/pdf"), and a pattern ending in
// "/" matches any path below it. Exact patterns win over wildcard ones.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return unlimited
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && matchPattern(config.Path, path) {
			return config
		}
	}

	return nil
}

func matchPattern(pattern, path string) bool {
	prefix := strings.HasSuffix(pattern, "/")
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")

	if len(got) < len(want) || (!prefix && len(got) != len(want)) {
		return false
	}
	if prefix && len(got) == len(want) && !strings.HasSuffix(path, "/") {
		return false
	}
	for i, seg := range want {
		if seg != "*" && seg != got[i] {
			return false
		}
	}
	return true
}
