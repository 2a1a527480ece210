// Package scheduler owns the background work of the platform: promoting
// time-delayed articles to published and sweeping old read notifications.
// It is stateless between ticks; eligibility is re-derived from storage on
// every run, which makes it safe to restart mid-operation.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pressroom/backend/internal/db"
	"github.com/pressroom/backend/internal/lifecycle"
	"github.com/pressroom/backend/internal/metrics"
)

const (
	DefaultInterval       = time.Minute
	DefaultArticleTimeout = 30 * time.Second
	DefaultRetention      = 30 * 24 * time.Hour

	retentionSweepSpec = "@every 1h"
)

// Engine is the transition gate the scheduler drives articles through.
// *lifecycle.Manager implements it.
type Engine interface {
	ApplyTransition(ctx context.Context, articleID int, requested lifecycle.Status,
		role lifecycle.Role, reason string) (*lifecycle.TransitionResult, error)
}

// Store is the storage surface the scheduler scans. *db.Repository
// implements it.
type Store interface {
	ScheduledDue(ctx context.Context, now time.Time) ([]db.Article, error)
	DeleteReadNotificationsBefore(ctx context.Context, cutoff time.Time) (int, error)
}

type Config struct {
	Interval       time.Duration // time between promotion ticks
	ArticleTimeout time.Duration // per-article bound within a tick
	Retention      time.Duration // read notifications older than this are swept
}

type Scheduler struct {
	cron    *cron.Cron
	engine  Engine
	db      Store
	metrics metrics.Recorder
	log     *slog.Logger
	cfg     Config
}

func New(engine Engine, store Store, rec metrics.Recorder,
	log *slog.Logger, cfg Config) *Scheduler {

	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.ArticleTimeout <= 0 {
		cfg.ArticleTimeout = DefaultArticleTimeout
	}
	if cfg.Retention <= 0 {
		cfg.Retention = DefaultRetention
	}

	return &Scheduler{
		cron:    cron.New(),
		engine:  engine,
		db:      store,
		metrics: rec,
		log:     log,
		cfg:     cfg,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.cfg.Interval), func() {
		s.Tick(context.Background(), time.Now())
	})
	if err != nil {
		return fmt.Errorf("register promotion tick: %w", err)
	}

	_, err = s.cron.AddFunc(retentionSweepSpec, func() {
		s.sweepNotifications(context.Background(), time.Now())
	})
	if err != nil {
		return fmt.Errorf("register retention sweep: %w", err)
	}

	s.cron.Start()
	s.log.Info("scheduler started",
		"interval", s.cfg.Interval, "retention", s.cfg.Retention)

	return nil
}

// Stop halts the timers and waits for any running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// Tick scans for scheduled articles whose publish time has elapsed and
// drives each one through the engine independently: one article's failure
// never aborts the batch. Overlapping ticks are safe — the second attempt
// either sees the article already published (no-op) or loses the
// conditional write and skips.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) {
	due, err := s.db.ScheduledDue(ctx, now)
	if err != nil {
		s.log.Error("scheduler: due scan failed", "error", err)
		return
	}
	if len(due) == 0 {
		return
	}

	s.log.Info("scheduler: promoting due articles", "count", len(due))

	for i := range due {
		s.promote(ctx, due[i].ID)
	}
}

func (s *Scheduler) promote(ctx context.Context, articleID int) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ArticleTimeout)
	defer cancel()

	result, err := s.engine.ApplyTransition(
		ctx, articleID, lifecycle.StatusPublished, lifecycle.RoleScheduler, "")

	switch {
	case errors.Is(err, lifecycle.ErrConflict):
		// Another actor moved the article first; the next tick will
		// reconsider it only if it is still eligible.
		s.log.Debug("scheduler: lost promotion race", "articleId", articleID)
	case errors.Is(err, lifecycle.ErrArticleNotFound):
		s.log.Warn("scheduler: due article disappeared", "articleId", articleID)
	case err != nil:
		s.log.Error("scheduler: promotion failed",
			"error", err, "articleId", articleID)
	case result.Changed:
		s.metrics.RecordScheduledPromotion()
		s.log.Info("scheduler: article published", "articleId", articleID)
	}
}

func (s *Scheduler) sweepNotifications(ctx context.Context, now time.Time) {
	deleted, err := s.db.DeleteReadNotificationsBefore(ctx, now.Add(-s.cfg.Retention))
	if err != nil {
		s.log.Error("scheduler: notification sweep failed", "error", err)
		return
	}
	if deleted > 0 {
		s.log.Info("scheduler: swept read notifications", "count", deleted)
	}
}
