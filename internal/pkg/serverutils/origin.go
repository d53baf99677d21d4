package serverutils

import "strings"

// OriginMatcher evaluates the CORS allow-list as a pure predicate so the
// policy is testable without the transport layer.
type OriginMatcher struct {
	patterns []string
}

// NewOriginMatcher parses a comma-separated allow-list. A pattern is
// either an exact origin ("https://app.example.com"), a wildcard
// subdomain ("https://*.example.com"), or "*" for any origin.
func NewOriginMatcher(allowList string) *OriginMatcher {
	var patterns []string
	for _, p := range strings.Split(allowList, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			patterns = append(patterns, p)
		}
	}
	return &OriginMatcher{patterns: patterns}
}

// Allow reports whether the given request origin is permitted.
func (m *OriginMatcher) Allow(origin string) bool {
	for _, p := range m.patterns {
		if p == "*" || p == origin {
			return true
		}
		if scheme, host, ok := splitWildcard(p); ok {
			if strings.HasPrefix(origin, scheme) && strings.HasSuffix(strings.TrimPrefix(origin, scheme), host) {
				return true
			}
		}
	}
	return false
}

// splitWildcard decomposes "https://*.example.com" into scheme and host
// suffix (".example.com").
func splitWildcard(pattern string) (scheme, hostSuffix string, ok bool) {
	idx := strings.Index(pattern, "://*.")
	if idx < 0 {
		return "", "", false
	}
	return pattern[:idx+3], pattern[idx+4:], true
}
