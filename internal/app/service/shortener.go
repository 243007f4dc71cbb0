package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/avasilev/go-shortlinks/internal/models"
	"github.com/avasilev/go-shortlinks/internal/storage"
)

// ErrLinkGone is returned when a link resolves but is inactive or expired.
var ErrLinkGone = errors.New("link gone")

// insertRetries bounds the shorten loop when the storage unique
// constraint reports a race on a generated code.
const insertRetries = 3

// LinkService implements shortening, redirect resolution and link
// lifecycle on top of a Store.
type LinkService struct {
	store   storage.Store
	gen     *CodeGenerator
	geo     GeoResolver
	logger  *zap.Logger
	baseURL string
	ch      chan<- string
}

// NewLink builds the link service. deactivations is the channel feeding
// the background worker that flushes deactivation batches.
func NewLink(store storage.Store, gen *CodeGenerator, geo GeoResolver, logger *zap.Logger, baseURL string, deactivations chan<- string) *LinkService {
	return &LinkService{
		store:   store,
		gen:     gen,
		geo:     geo,
		logger:  logger,
		baseURL: baseURL,
		ch:      deactivations,
	}
}

func validateLongURL(raw string) (string, error) {
	long := strings.TrimSpace(raw)
	if long == "" {
		return "", fmt.Errorf("%w: url is required", ErrValidation)
	}

	u, err := url.Parse(long)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("%w: url must be absolute", ErrValidation)
	}
	return long, nil
}

// Shorten validates the input, generates a unique code and persists the
// link. Code generation and insert are one logical unit: a uniqueness
// race detected by the store restarts the loop with a fresh code, so a
// creation failure never leaves a partially persisted link.
func (s *LinkService) Shorten(ctx context.Context, in ShortenInput) (*storage.LinkRecord, error) {
	long, err := validateLongURL(in.LongURL)
	if err != nil {
		return nil, err
	}

	if in.CustomAlias != "" {
		if err := ValidateAlias(in.CustomAlias); err != nil {
			return nil, err
		}
		// fast-path check only; the insert below is the real guard
		if taken, err := s.store.CodeExists(ctx, in.CustomAlias); err != nil {
			return nil, err
		} else if taken {
			return nil, storage.ErrConflict
		}
	}

	if in.ExpiresAt != nil && in.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("%w: expires_at is in the past", ErrValidation)
	}

	for attempt := 0; attempt < insertRetries; attempt++ {
		code, err := s.gen.Generate(ctx, DefaultCodeLength)
		if err != nil {
			return nil, err
		}

		stored, err := s.store.Insert(ctx, storage.LinkRecord{
			LongURL:     long,
			Code:        code,
			CustomAlias: in.CustomAlias,
			UserID:      in.UserID,
			ExpiresAt:   in.ExpiresAt,
			IsActive:    true,
		})
		if errors.Is(err, storage.ErrConflict) {
			// either the generated code raced or the alias got claimed
			// since the pre-check
			if in.CustomAlias != "" {
				if taken, checkErr := s.store.CodeExists(ctx, in.CustomAlias); checkErr == nil && taken {
					return nil, storage.ErrConflict
				}
			}
			s.logger.Info("generated code raced, retrying", zap.String("code", code))
			continue
		}
		if err != nil {
			return nil, err
		}
		return stored, nil
	}

	return nil, ErrCapacityExhausted
}

// Resolve runs the visit state machine: lookup, active check, expiry
// check, click recording. Failures before the recording step record no
// click. Expiry flips the link inactive permanently; moving expires_at
// back later does not resurrect it.
func (s *LinkService) Resolve(ctx context.Context, code string, visit Visit) (string, error) {
	link, err := s.store.FindByCode(ctx, code)
	if err != nil {
		return "", err
	}

	if !link.IsActive {
		return "", ErrLinkGone
	}

	if link.ExpiresAt != nil && link.ExpiresAt.Before(time.Now()) {
		if err := s.store.SetActive(ctx, link.Code, false); err != nil {
			s.logger.Error("deactivate expired link", zap.String("code", link.Code), zap.Error(err))
		}
		return "", ErrLinkGone
	}

	country := ""
	if s.geo != nil {
		country = s.geo.Lookup(ctx, visit.IPAddress)
	}

	err = s.store.RecordClick(ctx, link.ID, storage.ClickRecord{
		IPAddress: visit.IPAddress,
		UserAgent: visit.UserAgent,
		Referer:   visit.Referer,
		Country:   country,
	})
	if err != nil {
		return "", err
	}

	return link.LongURL, nil
}

// Preview returns link metadata without recording a click.
func (s *LinkService) Preview(ctx context.Context, code string) (*storage.LinkRecord, error) {
	return s.store.FindByCode(ctx, code)
}

// Deactivate queues the link for batch deactivation by the background
// worker. The link must exist; the flip itself is asynchronous.
func (s *LinkService) Deactivate(ctx context.Context, code string) error {
	if _, err := s.store.FindByCode(ctx, code); err != nil {
		return err
	}

	s.ch <- code
	return nil
}

func (s *LinkService) LinksByUser(ctx context.Context, userID string) ([]models.ByUserResponse, error) {
	links, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]models.ByUserResponse, 0, len(links))
	for _, l := range links {
		out = append(out, models.ByUserResponse{
			ShortURL:    s.baseURL + "/" + l.Code,
			OriginalURL: l.LongURL,
		})
	}
	return out, nil
}

func (s *LinkService) Totals(ctx context.Context) (storage.Totals, error) {
	return s.store.Totals(ctx)
}

func (s *LinkService) PingContext(ctx context.Context) error {
	return s.store.PingContext(ctx)
}
