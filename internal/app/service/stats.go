package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/avasilev/go-shortlinks/internal/models"
	"github.com/avasilev/go-shortlinks/internal/storage"
)

const (
	defaultTopN = 10
	peakHoursN  = 5

	// uaScanPage bounds a single click-event page when classifying user
	// agents.
	uaScanPage = 1000
)

// StatsService derives read-only summary views from the click history of
// one link. All aggregations tolerate zero rows and never error on an
// empty history.
type StatsService struct {
	store  storage.Store
	logger *zap.Logger

	// fraud heuristic: more than fraudThreshold clicks within the
	// trailing fraudWindow flags the link as suspicious
	fraudWindow    time.Duration
	fraudThreshold int64
}

func NewStats(store storage.Store, logger *zap.Logger) *StatsService {
	return &StatsService{
		store:          store,
		logger:         logger,
		fraudWindow:    5 * time.Minute,
		fraudThreshold: 50,
	}
}

// Summary aggregates the click history of the link identified by code.
func (s *StatsService) Summary(ctx context.Context, code string, q StatsQuery) (*models.LinkStats, error) {
	link, err := s.store.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	bucket := q.Bucket
	if !bucket.Valid() {
		bucket = storage.BucketDay
	}
	topN := q.TopN
	if topN <= 0 {
		topN = defaultTopN
	}

	buckets, err := s.store.CountByBucket(ctx, link.ID, bucket, q.From, q.To)
	if err != nil {
		return nil, err
	}

	countries, err := s.store.TopCountries(ctx, link.ID, topN)
	if err != nil {
		return nil, err
	}

	referers, err := s.store.TopReferers(ctx, link.ID, topN)
	if err != nil {
		return nil, err
	}

	hours, err := s.store.ClicksByHourOfDay(ctx, link.ID)
	if err != nil {
		return nil, err
	}
	if len(hours) > peakHoursN {
		hours = hours[:peakHoursN]
	}

	devices, browsers, err := s.classifyAgents(ctx, link.ID)
	if err != nil {
		return nil, err
	}

	recent, err := s.store.CountClicksSince(ctx, link.ID, time.Now().Add(-s.fraudWindow))
	if err != nil {
		return nil, err
	}

	return &models.LinkStats{
		Code:         link.Code,
		LongURL:      link.LongURL,
		TotalClicks:  link.Clicks,
		Buckets:      buckets,
		TopCountries: countries,
		TopReferers:  referers,
		Devices:      devices,
		Browsers:     browsers,
		PeakHours:    hours,
		Suspicious:   recent > s.fraudThreshold,
		GeneratedAt:  time.Now(),
	}, nil
}

// classifyAgents pages through the click history and buckets user agents
// by device and browser.
func (s *StatsService) classifyAgents(ctx context.Context, linkID string) ([]storage.KeyCount, []storage.KeyCount, error) {
	devices := make(map[string]int64)
	browsers := make(map[string]int64)

	for offset := 0; ; offset += uaScanPage {
		page, err := s.store.ClickEvents(ctx, linkID, uaScanPage, offset)
		if err != nil {
			return nil, nil, err
		}
		for _, c := range page {
			devices[ClassifyDevice(c.UserAgent)]++
			browsers[ClassifyBrowser(c.UserAgent)]++
		}
		if len(page) < uaScanPage {
			break
		}
	}

	return sortedCounts(devices), sortedCounts(browsers), nil
}

func sortedCounts(m map[string]int64) []storage.KeyCount {
	out := make([]storage.KeyCount, 0, len(m))
	for k, v := range m {
		out = append(out, storage.KeyCount{Key: k, Clicks: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Clicks != out[j].Clicks {
			return out[i].Clicks > out[j].Clicks
		}
		return out[i].Key < out[j].Key
	})
	return out
}
