// Package geoip calls the external geo-IP resolver. Lookups are a
// best-effort enrichment: any failure or timeout degrades to an empty
// country code and is never surfaced to the caller.
package geoip

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// lookupTimeout caps the external call so a slow resolver cannot stall
// a redirect.
const lookupTimeout = time.Second

type Resolver struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// New builds a resolver for the given endpoint. The endpoint is expected
// to answer GET {endpoint}/{ip} with a JSON body carrying countryCode.
func New(endpoint string, logger *zap.Logger) *Resolver {
	return &Resolver{
		endpoint: endpoint,
		client:   &http.Client{Timeout: lookupTimeout},
		logger:   logger,
	}
}

type lookupResponse struct {
	CountryCode string `json:"countryCode"`
}

// Lookup resolves ip to a 2-letter country code, or "" when the ip is
// empty, the resolver is not configured, or the call fails.
func (r *Resolver) Lookup(ctx context.Context, ip string) string {
	if r.endpoint == "" || ip == "" {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"/"+url.PathEscape(ip), nil)
	if err != nil {
		return ""
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Debug("geoip lookup failed", zap.String("ip", ip), zap.Error(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Debug("geoip lookup status", zap.Int("status", resp.StatusCode))
		return ""
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		r.logger.Debug("geoip decode failed", zap.Error(err))
		return ""
	}

	if len(body.CountryCode) != 2 {
		return ""
	}
	return body.CountryCode
}
