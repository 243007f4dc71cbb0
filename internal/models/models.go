// Package models defines the request and response data structures used
// for communication between clients and the shortener service.
package models

import (
	"time"

	"github.com/avasilev/go-shortlinks/internal/storage"
)

// ShortenRequest represents a request to shorten a URL.
type ShortenRequest struct {
	// URL is the original URL to be shortened. Must be absolute.
	URL string `json:"url"`

	// CustomAlias is an optional user-chosen identifier. It shares the
	// uniqueness namespace with generated codes.
	CustomAlias string `json:"custom_alias,omitempty"`

	// ExpiresAt is an optional expiry timestamp.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ShortenResponse represents the response containing the shortened URL.
type ShortenResponse struct {
	Code      string     `json:"code"`
	ShortURL  string     `json:"short_url"`
	LongURL   string     `json:"long_url"`
	Clicks    int64      `json:"clicks"`
	IsActive  bool       `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// PreviewResponse describes a link without redirecting or recording a
// click.
type PreviewResponse struct {
	Code        string     `json:"code"`
	CustomAlias string     `json:"custom_alias,omitempty"`
	LongURL     string     `json:"long_url"`
	Clicks      int64      `json:"clicks"`
	IsActive    bool       `json:"is_active"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ByUserResponse is one link owned by the requesting visitor.
type ByUserResponse struct {
	ShortURL    string `json:"short_url"`
	OriginalURL string `json:"original_url"`
}

// LinkStats is the aggregated analytics view of one link.
type LinkStats struct {
	Code         string                `json:"code"`
	LongURL      string                `json:"long_url"`
	TotalClicks  int64                 `json:"total_clicks"`
	Buckets      []storage.BucketCount `json:"buckets"`
	TopCountries []storage.KeyCount    `json:"top_countries"`
	TopReferers  []storage.KeyCount    `json:"top_referers"`
	Devices      []storage.KeyCount    `json:"devices"`
	Browsers     []storage.KeyCount    `json:"browsers"`
	PeakHours    []storage.HourCount   `json:"peak_hours"`
	Suspicious   bool                  `json:"suspicious"`
	GeneratedAt  time.Time             `json:"generated_at"`
}
