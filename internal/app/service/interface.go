package service

import (
	"context"
	"time"

	"github.com/avasilev/go-shortlinks/internal/models"
	"github.com/avasilev/go-shortlinks/internal/storage"
)

// ShortenInput carries a validated-on-entry shorten request.
type ShortenInput struct {
	LongURL     string
	CustomAlias string
	ExpiresAt   *time.Time
	UserID      string
}

// Visit carries the request metadata recorded with a resolved visit.
type Visit struct {
	IPAddress string
	UserAgent string
	Referer   string
}

// StatsQuery bounds and shapes a stats request.
type StatsQuery struct {
	Bucket storage.Bucket
	From   *time.Time
	To     *time.Time
	TopN   int
}

// LinkServiceIface is the handler-facing surface of the link service.
type LinkServiceIface interface {
	Shorten(ctx context.Context, in ShortenInput) (*storage.LinkRecord, error)
	Resolve(ctx context.Context, code string, visit Visit) (string, error)
	Preview(ctx context.Context, code string) (*storage.LinkRecord, error)
	Deactivate(ctx context.Context, code string) error
	LinksByUser(ctx context.Context, userID string) ([]models.ByUserResponse, error)
	Totals(ctx context.Context) (storage.Totals, error)
	PingContext(ctx context.Context) error
}

// StatsServiceIface is the handler-facing surface of the stats service.
type StatsServiceIface interface {
	Summary(ctx context.Context, code string, q StatsQuery) (*models.LinkStats, error)
}

// GeoResolver is the external geo-IP collaborator. Lookup never fails:
// on error or timeout it returns an empty country code.
type GeoResolver interface {
	Lookup(ctx context.Context, ip string) string
}
