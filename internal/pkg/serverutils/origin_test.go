package serverutils

import "testing"

func TestOriginMatcherAllow(t *testing.T) {
	tests := []struct {
		name      string
		allowList string
		origin    string
		want      bool
	}{
		{
			name:      "exact match",
			allowList: "http://localhost:5173,http://localhost:3000",
			origin:    "http://localhost:5173",
			want:      true,
		},
		{
			name:      "second entry",
			allowList: "http://localhost:5173,http://localhost:3000",
			origin:    "http://localhost:3000",
			want:      true,
		},
		{
			name:      "unlisted origin",
			allowList: "http://localhost:5173",
			origin:    "http://evil.example.com",
			want:      false,
		},
		{
			name:      "substring is not a match",
			allowList: "http://localhost:5173",
			origin:    "http://localhost:51734",
			want:      false,
		},
		{
			name:      "wildcard any",
			allowList: "*",
			origin:    "https://anything.example.com",
			want:      true,
		},
		{
			name:      "wildcard subdomain match",
			allowList: "https://*.example.com",
			origin:    "https://app.example.com",
			want:      true,
		},
		{
			name:      "wildcard subdomain scheme mismatch",
			allowList: "https://*.example.com",
			origin:    "http://app.example.com",
			want:      false,
		},
		{
			name:      "wildcard subdomain different domain",
			allowList: "https://*.example.com",
			origin:    "https://app.other.com",
			want:      false,
		},
		{
			name:      "whitespace tolerated",
			allowList: " http://localhost:5173 , http://localhost:3000 ",
			origin:    "http://localhost:3000",
			want:      true,
		},
		{
			name:      "empty allow list denies everything",
			allowList: "",
			origin:    "http://localhost:5173",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewOriginMatcher(tt.allowList)
			if got := m.Allow(tt.origin); got != tt.want {
				t.Errorf("Allow(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}
