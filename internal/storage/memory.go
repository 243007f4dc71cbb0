package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage is an in-memory Store used when no database DSN is
// configured, and by tests. It mirrors the repository semantics: one
// uniqueness namespace over codes and aliases, and an atomic
// insert-plus-increment for clicks.
type MemoryStorage struct {
	mu     sync.RWMutex
	links  map[string]*LinkRecord // keyed by id
	byCode map[string]string      // code or alias -> id
	clicks map[string][]ClickRecord
}

func CreateMemoryStorage() (*MemoryStorage, error) {
	return &MemoryStorage{
		links:  make(map[string]*LinkRecord),
		byCode: make(map[string]string),
		clicks: make(map[string][]ClickRecord),
	}, nil
}

func (m *MemoryStorage) Insert(ctx context.Context, r LinkRecord) (*LinkRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byCode[r.Code]; taken {
		return nil, ErrConflict
	}
	if r.CustomAlias != "" {
		if _, taken := m.byCode[r.CustomAlias]; taken {
			return nil, ErrConflict
		}
	}

	now := time.Now()
	stored := r
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	stored.Clicks = 0
	stored.CreatedAt = now
	stored.UpdatedAt = now

	m.links[stored.ID] = &stored
	m.byCode[stored.Code] = stored.ID
	if stored.CustomAlias != "" {
		m.byCode[stored.CustomAlias] = stored.ID
	}

	copied := stored
	return &copied, nil
}

func (m *MemoryStorage) FindByCode(ctx context.Context, code string) (*LinkRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byCode[code]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *m.links[id]
	return &copied, nil
}

func (m *MemoryStorage) CodeExists(ctx context.Context, code string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.byCode[code]
	return ok, nil
}

func (m *MemoryStorage) FindByUserID(ctx context.Context, userID string) ([]LinkRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]LinkRecord, 0)
	for _, l := range m.links {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *MemoryStorage) RecordClick(ctx context.Context, linkID string, c ClickRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.links[linkID]
	if !ok {
		return ErrNotFound
	}

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.LinkID = linkID
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	m.clicks[linkID] = append(m.clicks[linkID], c)
	l.Clicks++
	l.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryStorage) SetActive(ctx context.Context, code string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byCode[code]
	if !ok {
		return ErrNotFound
	}
	l := m.links[id]
	l.IsActive = active
	l.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryStorage) DeactivateBatch(ctx context.Context, codes []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for _, code := range codes {
		if id, ok := m.byCode[code]; ok {
			m.links[id].IsActive = false
			m.links[id].UpdatedAt = now
		}
	}
	return nil
}

// truncateBucket truncates t to the start of its bucket in UTC. Weeks
// start on Monday, matching date_trunc('week', ...) in postgres.
func truncateBucket(t time.Time, b Bucket) time.Time {
	t = t.UTC()
	switch b {
	case BucketHour:
		return t.Truncate(time.Hour)
	case BucketWeek:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case BucketMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

func (m *MemoryStorage) CountByBucket(ctx context.Context, linkID string, b Bucket, from, to *time.Time) ([]BucketCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[time.Time]int64)
	visitors := make(map[time.Time]map[string]struct{})

	for _, c := range m.clicks[linkID] {
		if from != nil && c.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && c.CreatedAt.After(*to) {
			continue
		}
		key := truncateBucket(c.CreatedAt, b)
		counts[key]++
		if visitors[key] == nil {
			visitors[key] = make(map[string]struct{})
		}
		visitors[key][c.IPAddress] = struct{}{}
	}

	out := make([]BucketCount, 0, len(counts))
	for key, n := range counts {
		out = append(out, BucketCount{Bucket: key, Clicks: n, Visitors: int64(len(visitors[key]))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bucket.After(out[j].Bucket) })
	return out, nil
}

func (m *MemoryStorage) topBy(linkID string, n int, key func(ClickRecord) string) []KeyCount {
	counts := make(map[string]int64)
	for _, c := range m.clicks[linkID] {
		k := key(c)
		if k == "" {
			continue
		}
		counts[k]++
	}

	out := make([]KeyCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, KeyCount{Key: k, Clicks: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Clicks != out[j].Clicks {
			return out[i].Clicks > out[j].Clicks
		}
		return out[i].Key < out[j].Key
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func (m *MemoryStorage) TopCountries(ctx context.Context, linkID string, n int) ([]KeyCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topBy(linkID, n, func(c ClickRecord) string { return c.Country }), nil
}

func (m *MemoryStorage) TopReferers(ctx context.Context, linkID string, n int) ([]KeyCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topBy(linkID, n, func(c ClickRecord) string { return c.Referer }), nil
}

func (m *MemoryStorage) ClicksByHourOfDay(ctx context.Context, linkID string) ([]HourCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var counts [24]int64
	for _, c := range m.clicks[linkID] {
		counts[c.CreatedAt.UTC().Hour()]++
	}

	out := make([]HourCount, 0)
	for h, n := range counts {
		if n > 0 {
			out = append(out, HourCount{Hour: h, Clicks: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Clicks != out[j].Clicks {
			return out[i].Clicks > out[j].Clicks
		}
		return out[i].Hour < out[j].Hour
	})
	return out, nil
}

func (m *MemoryStorage) CountClicksSince(ctx context.Context, linkID string, since time.Time) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, c := range m.clicks[linkID] {
		if !c.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStorage) ClickEvents(ctx context.Context, linkID string, limit, offset int) ([]ClickRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.clicks[linkID]
	out := make([]ClickRecord, len(all))
	copy(out, all)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if offset >= len(out) {
		return []ClickRecord{}, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStorage) Totals(ctx context.Context) (Totals, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t := Totals{Links: int64(len(m.links))}
	for _, cs := range m.clicks {
		t.Clicks += int64(len(cs))
	}
	return t, nil
}

func (m *MemoryStorage) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	for id, l := range m.links {
		if l.ExpiresAt != nil && l.ExpiresAt.Before(cutoff) {
			delete(m.links, id)
			delete(m.byCode, l.Code)
			if l.CustomAlias != "" {
				delete(m.byCode, l.CustomAlias)
			}
			delete(m.clicks, id)
			removed++
		}
	}
	return removed, nil
}

func (m *MemoryStorage) DeleteClicksBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	for id, cs := range m.clicks {
		kept := cs[:0]
		for _, c := range cs {
			if c.CreatedAt.Before(cutoff) {
				removed++
				continue
			}
			kept = append(kept, c)
		}
		m.clicks[id] = kept
	}
	return removed, nil
}

func (m *MemoryStorage) PingContext(ctx context.Context) error {
	return nil
}
