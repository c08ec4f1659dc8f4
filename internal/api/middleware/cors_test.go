package middleware

import "testing"

func TestIsOriginAllowed(t *testing.T) {
	testCases := []struct {
		name    string
		origin  string
		config  CORSConfig
		allowed bool
	}{
		{
			name:    "allow all origins",
			origin:  "https://evil.example",
			config:  CORSConfig{AllowAllOrigins: true},
			allowed: true,
		},
		{
			name:    "origin in allowed list",
			origin:  "https://app.example",
			config:  CORSConfig{AllowedOrigins: []string{"https://app.example"}},
			allowed: true,
		},
		{
			name:    "origin match is case insensitive",
			origin:  "https://App.Example",
			config:  CORSConfig{AllowedOrigins: []string{"https://app.example"}},
			allowed: true,
		},
		{
			name:    "wildcard entry",
			origin:  "https://anything.example",
			config:  CORSConfig{AllowedOrigins: []string{"*"}},
			allowed: true,
		},
		{
			name:    "origin not in list",
			origin:  "https://evil.example",
			config:  CORSConfig{AllowedOrigins: []string{"https://app.example"}},
			allowed: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsOriginAllowed(tc.origin, tc.config); got != tc.allowed {
				t.Errorf("IsOriginAllowed(%q): got %v, want %v", tc.origin, got, tc.allowed)
			}
		})
	}
}
