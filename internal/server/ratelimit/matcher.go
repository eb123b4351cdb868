package ratelimit

import "strings"

// unlimited lists the GET routes that are never rate limited.
var unlimited = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// matches reports whether c applies to path. A Path ending in "/" is a
// prefix covering every route below it.
func (c *EndpointConfig) matches(path string, prefix bool) bool {
	if prefix {
		return strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path)
	}
	return c.Path == path
}

// MatchEndpoint returns the configuration for a request, or nil when the
// default limit applies. Exact paths win over prefixes. Unlimited routes
// get a zero-limit configuration.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == "GET" && unlimited[path] {
		return &EndpointConfig{}
	}

	for _, prefix := range []bool{false, true} {
		for i := range configs {
			if configs[i].Method == method && configs[i].matches(path, prefix) {
				return &configs[i]
			}
		}
	}
	return nil
}
