// Command api runs the funnel backend: visitor session capture, the guided
// lead funnel, analytics dispatch and the WhatsApp deep-link fallback.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"funnel_backend/internal/analytics"
	"funnel_backend/internal/attribution"
	"funnel_backend/internal/funnel"
	apphttp "funnel_backend/internal/http"
	"funnel_backend/internal/http/router"
	"funnel_backend/internal/notification"
	"funnel_backend/internal/scoring"
	"funnel_backend/internal/submission"
	"funnel_backend/internal/whatsapp"
	"funnel_backend/platform/config"
	"funnel_backend/platform/db"
	"funnel_backend/platform/events"
	"funnel_backend/platform/logger"
	"funnel_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("production").Error("config load failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)
	if !strings.EqualFold(cfg.Env, "development") {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	bus := events.NewInMemoryBus(log)
	val := validator.New()

	// Lead persistence is optional: without a database the funnel still runs
	// and submissions fail over to the WhatsApp deep link.
	var repo *submission.Repository
	if cfg.IsDatabaseConfigured() {
		migrationsDir := os.Getenv("MIGRATIONS_DIR")
		if migrationsDir == "" {
			migrationsDir = "migrations"
		}
		if err := db.RunMigrations(ctx, cfg, migrationsDir); err != nil {
			return err
		}

		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		repo = submission.NewRepository(pool)
		log.Info("lead persistence enabled")
	} else {
		log.Warn("DATABASE_URL not set, lead persistence disabled")
	}
	gateway := submission.NewService(repo, log)

	attribModule := attribution.NewModule(cfg, val, log)

	dataLayer := analytics.NewDataLayer(cfg, log)
	defer dataLayer.Close()
	pixel := analytics.NewPixelSink(cfg, log)
	pipeline := analytics.NewPipeline(attribModule.Store(), log, dataLayer, pixel)
	analyticsModule := analytics.NewModule(pipeline, val)

	weights, err := scoring.LoadWeights(cfg.GetScoringWeightsPath())
	if err != nil {
		// LoadWeights falls back to the defaults on error.
		log.Warn("scoring weights override not loaded", "error", err)
	}
	engine := scoring.NewEngine(weights)

	funnelModule, err := funnel.NewModule(pipeline, gateway, engine, attribModule.Store(), bus, val, log)
	if err != nil {
		return err
	}

	whatsappModule := whatsapp.NewModule(cfg, cfg, attribModule.Store())
	notification.NewService(cfg, bus, log)

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: bus,
		Modules: []apphttp.Module{
			attribModule,
			analyticsModule,
			funnelModule,
			whatsappModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return dataLayer.Run(gctx)
	})

	g.Go(func() error {
		return sweepSessions(gctx, cfg, log, funnelModule, attribModule.Store())
	})

	return g.Wait()
}

// sweepSessions expires idle funnel sessions and attribution snapshots on a
// fixed interval.
func sweepSessions(ctx context.Context, cfg config.SessionConfig, log *logger.Logger, fm *funnel.Module, store *attribution.Store) error {
	ticker := time.NewTicker(cfg.GetSessionSweepInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			expired := fm.Sweep(ctx, cfg.GetSessionTTL())
			swept := store.Sweep(cfg.GetSessionTTL())
			if expired > 0 || swept > 0 {
				log.Info("session sweep",
					"funnel_expired", expired,
					"attribution_swept", swept,
					"funnel_live", fm.Service().Len(),
				)
			}
		}
	}
}
