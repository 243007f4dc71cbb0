// Package worker runs the background maintenance of the shortener: batched
// link deactivation fed by a channel, and periodic retention sweeps that
// purge expired links and stale click events.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Repo is the slice of the store the workers need.
type Repo interface {
	DeactivateBatch(ctx context.Context, codes []string) error
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteClicksBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

const (
	flushBatchSize = 25
	flushInterval  = 10 * time.Second
	flushTimeout   = 3 * time.Second
)

// DeactivateWorker accumulates codes from its input channel and flips
// them inactive in batches, either when the batch grows past
// flushBatchSize or on a flushInterval tick.
type DeactivateWorker struct {
	in     chan string
	logger *zap.Logger
	repo   Repo
}

func NewDeactivateWorker(logger *zap.Logger, repo Repo) *DeactivateWorker {
	return &DeactivateWorker{
		in:     make(chan string),
		logger: logger,
		repo:   repo,
	}
}

// GetInChannel returns the send side of the worker's input channel.
func (w *DeactivateWorker) GetInChannel() chan<- string {
	return w.in
}

// FlushRecords runs the batching loop. It blocks and is meant to be
// started in its own goroutine.
func (w *DeactivateWorker) FlushRecords() {
	w.logger.Info("deactivation worker started")
	ticker := time.NewTicker(flushInterval)
	var codes []string

	sendBatch := func() {
		w.logger.Info("deactivating links", zap.Int("count", len(codes)))
		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()

		if err := w.repo.DeactivateBatch(ctx, codes); err != nil {
			w.logger.Error("cannot deactivate links", zap.Error(err))
		}
		codes = codes[:0]
	}

	for {
		select {
		case code := <-w.in:
			codes = append(codes, code)
			if len(codes) > flushBatchSize {
				sendBatch()
			}
		case <-ticker.C:
			if len(codes) == 0 {
				continue
			}
			sendBatch()
		}
	}
}

// RetentionSweeper periodically deletes expired links and click events
// older than the configured retention windows.
type RetentionSweeper struct {
	logger        *zap.Logger
	repo          Repo
	interval      time.Duration
	linkRetention time.Duration
	clickKeep     time.Duration
}

func NewRetentionSweeper(logger *zap.Logger, repo Repo, interval time.Duration, linkRetentionDays, clickRetentionDays int) *RetentionSweeper {
	return &RetentionSweeper{
		logger:        logger,
		repo:          repo,
		interval:      interval,
		linkRetention: time.Duration(linkRetentionDays) * 24 * time.Hour,
		clickKeep:     time.Duration(clickRetentionDays) * 24 * time.Hour,
	}
}

// Run sweeps on every tick until ctx is cancelled. It blocks and is
// meant to be started in its own goroutine.
func (s *RetentionSweeper) Run(ctx context.Context) {
	s.logger.Info("retention sweeper started",
		zap.Duration("interval", s.interval),
		zap.Duration("link_retention", s.linkRetention),
		zap.Duration("click_retention", s.clickKeep),
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("retention sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep performs a single retention pass.
func (s *RetentionSweeper) Sweep(ctx context.Context) {
	now := time.Now()

	links, err := s.repo.DeleteExpiredBefore(ctx, now.Add(-s.linkRetention))
	if err != nil {
		s.logger.Error("cannot purge expired links", zap.Error(err))
	}

	clicks, err := s.repo.DeleteClicksBefore(ctx, now.Add(-s.clickKeep))
	if err != nil {
		s.logger.Error("cannot purge old clicks", zap.Error(err))
	}

	if links > 0 || clicks > 0 {
		s.logger.Info("retention sweep done",
			zap.Int64("links_purged", links),
			zap.Int64("clicks_purged", clicks),
		)
	}
}
