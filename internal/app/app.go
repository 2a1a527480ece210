package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"

	"github.com/pressroom/backend/config"
	"github.com/pressroom/backend/internal/db"
	"github.com/pressroom/backend/internal/events"
	"github.com/pressroom/backend/internal/lifecycle"
	"github.com/pressroom/backend/internal/metrics"
	"github.com/pressroom/backend/internal/notify"
	"github.com/pressroom/backend/internal/rest"
	"github.com/pressroom/backend/internal/rpc"
	"github.com/pressroom/backend/internal/scheduler"
)

type App struct {
	DB        *db.Repository
	Logger    *slog.Logger
	Echo      *echo.Echo
	Scheduler *scheduler.Scheduler
	Fanout    *notify.Fanout
	Config    *config.Config
}

func New(cfg *config.Config, dbConnect *pg.DB, logger *slog.Logger) *App {
	database := db.New(dbConnect)
	collector := metrics.NewCollector()
	hub := events.NewHub(logger)

	fanout := notify.New(
		database,
		notify.NewLogMailer(logger),
		collector,
		logger,
		cfg.Notify.Timeout.Std(),
	)

	engine := lifecycle.NewManager(database, hub, fanout, collector, logger)

	sched := scheduler.New(engine, database, collector, logger, scheduler.Config{
		Interval:       cfg.Scheduler.Interval.Std(),
		ArticleTimeout: cfg.Scheduler.ArticleTimeout.Std(),
		Retention:      cfg.Scheduler.Retention.Std(),
	})

	handler := rest.NewHandler(engine, database, hub, collector.Handler(), logger)
	e := handler.RegisterRoutes()

	rpcServer := rpc.New(logger, engine)
	e.Any("/rpc", echo.WrapHandler(rpcServer))

	return &App{
		DB:        database,
		Logger:    logger,
		Echo:      e,
		Scheduler: sched,
		Fanout:    fanout,
		Config:    cfg,
	}
}

// Run starts the scheduler and serves HTTP until the server stops.
func (a *App) Run(ctx context.Context, port int) error {
	if err := a.Scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	addr := fmt.Sprintf(":%d", port)
	return a.Echo.Start(addr)
}

// GracefulShutdown stops the HTTP server, the scheduler, and waits for
// in-flight notification fanout to drain.
func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if err == http.ErrServerClosed {
		err = nil
	}

	a.Scheduler.Stop()
	a.Fanout.Wait()

	return err
}
