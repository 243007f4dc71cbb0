package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBrowser(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{
			name: "chrome on desktop, not safari",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			want: "Chrome",
		},
		{
			name: "firefox",
			ua:   "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0",
			want: "Firefox",
		},
		{
			name: "safari without chrome",
			ua:   "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.1 Safari/605.1.15",
			want: "Safari",
		},
		{
			name: "edge classifies as chrome by precedence",
			// Edge UAs embed "Chrome"; the Chrome check runs first and wins.
			// The ordering is deliberate and observable.
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0",
			want: "Chrome",
		},
		{
			name: "bare edge token",
			ua:   "SomeFetcher/1.0 Edg/120.0",
			want: "Edge",
		},
		{
			name: "opera token without chrome",
			ua:   "Opera/9.80 (Windows NT 6.0) Presto/2.12.388 Version/12.14",
			want: "Opera",
		},
		{
			name: "unknown",
			ua:   "curl/8.0.1",
			want: "Other",
		},
		{
			name: "empty",
			ua:   "",
			want: "Other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyBrowser(tt.ua))
		})
	}
}

func TestClassifyDevice(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{
			name: "android mobile",
			ua:   "Mozilla/5.0 (Linux; Android 13; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Mobile Safari/537.36",
			want: DeviceMobile,
		},
		{
			name: "ipad",
			ua:   "Mozilla/5.0 (iPad; CPU OS 16_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.1 Safari/605.1.15",
			want: DeviceTablet,
		},
		{
			name: "android tablet without mobile token",
			ua:   "Mozilla/5.0 (Linux; Android 13; Tablet) AppleWebKit/537.36",
			want: DeviceTablet,
		},
		{
			name: "desktop",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			want: DeviceDesktop,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDevice(tt.ua))
		})
	}
}
