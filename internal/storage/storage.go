// Package storage defines the persistent records of the shortener and the
// Store interface implemented by the postgres repository and the in-memory
// storage.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no link resolves to the requested code.
var ErrNotFound = errors.New("link not found")

// ErrConflict is returned when a code or custom alias is already claimed.
// The unique constraint in the store is the authoritative guard; callers
// treat this error as a retry signal, not as a failure of the pre-check.
var ErrConflict = errors.New("code already exists")

// LinkRecord is one stored short link. Code and CustomAlias share a single
// uniqueness namespace: no two records may share a resolvable identifier.
type LinkRecord struct {
	ID          string     `json:"id"`
	LongURL     string     `json:"long_url"`
	Code        string     `json:"code"`
	CustomAlias string     `json:"custom_alias,omitempty"`
	UserID      string     `json:"user_id,omitempty"`
	Clicks      int64      `json:"clicks"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ClickRecord is one recorded visit. Records are immutable once written
// and are removed only by retention sweeps or cascade delete of the owner.
type ClickRecord struct {
	ID        string    `json:"id"`
	LinkID    string    `json:"link_id"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Referer   string    `json:"referer,omitempty"`
	Country   string    `json:"country,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Bucket is a time-truncation granularity for click aggregation.
type Bucket string

const (
	BucketHour  Bucket = "hour"
	BucketDay   Bucket = "day"
	BucketWeek  Bucket = "week"
	BucketMonth Bucket = "month"
)

// Valid reports whether b is a known granularity.
func (b Bucket) Valid() bool {
	switch b {
	case BucketHour, BucketDay, BucketWeek, BucketMonth:
		return true
	}
	return false
}

// BucketCount is one aggregation row: clicks and distinct visitors within
// a truncated time bucket.
type BucketCount struct {
	Bucket   time.Time `json:"bucket"`
	Clicks   int64     `json:"clicks"`
	Visitors int64     `json:"visitors"`
}

// KeyCount is a grouped click count, keyed by country or referer.
type KeyCount struct {
	Key    string `json:"key"`
	Clicks int64  `json:"clicks"`
}

// HourCount is a click count for one hour of day (0-23).
type HourCount struct {
	Hour   int   `json:"hour"`
	Clicks int64 `json:"clicks"`
}

// Totals is the service-wide link and click count.
type Totals struct {
	Links  int64 `json:"links"`
	Clicks int64 `json:"clicks"`
}

// Store is the link store consumed by the service layer.
type Store interface {
	// Insert persists a new link. It is an insert-if-absent: a code or
	// alias collision yields ErrConflict and no partial write.
	Insert(ctx context.Context, r LinkRecord) (*LinkRecord, error)

	// FindByCode resolves a code or custom alias to its link.
	FindByCode(ctx context.Context, code string) (*LinkRecord, error)

	// CodeExists reports whether a code or alias is already claimed.
	CodeExists(ctx context.Context, code string) (bool, error)

	// FindByUserID returns all links created by one visitor id.
	FindByUserID(ctx context.Context, userID string) ([]LinkRecord, error)

	// RecordClick inserts the click event and increments the owner's
	// click counter as one atomic operation.
	RecordClick(ctx context.Context, linkID string, c ClickRecord) error

	// SetActive flips the active flag of a link.
	SetActive(ctx context.Context, code string, active bool) error

	// DeactivateBatch flips the active flag off for many codes at once.
	DeactivateBatch(ctx context.Context, codes []string) error

	// CountByBucket returns time-bucketed click and distinct-visitor
	// counts, newest bucket first. from/to bound the range when non-nil.
	CountByBucket(ctx context.Context, linkID string, b Bucket, from, to *time.Time) ([]BucketCount, error)

	// TopCountries returns the n most frequent countries, ties broken by
	// country code ascending.
	TopCountries(ctx context.Context, linkID string, n int) ([]KeyCount, error)

	// TopReferers returns the n most frequent referers, ties broken by
	// referer ascending.
	TopReferers(ctx context.Context, linkID string, n int) ([]KeyCount, error)

	// ClicksByHourOfDay groups all clicks by hour of day (0-23), most
	// clicked hours first.
	ClicksByHourOfDay(ctx context.Context, linkID string) ([]HourCount, error)

	// CountClicksSince counts clicks recorded at or after the given time.
	CountClicksSince(ctx context.Context, linkID string, since time.Time) (int64, error)

	// ClickEvents returns a page of click events, newest first.
	ClickEvents(ctx context.Context, linkID string, limit, offset int) ([]ClickRecord, error)

	// Totals returns service-wide link and click counts.
	Totals(ctx context.Context) (Totals, error)

	// DeleteExpiredBefore removes links whose expiry passed before cutoff,
	// cascading to their click events. Returns the number of links removed.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteClicksBefore removes click events older than cutoff. Returns
	// the number of events removed.
	DeleteClicksBefore(ctx context.Context, cutoff time.Time) (int64, error)

	PingContext(ctx context.Context) error
}
