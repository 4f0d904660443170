package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/odyssey-erp/salesdash/cmd/salesdash/cli"
	"github.com/odyssey-erp/salesdash/internal/app"
	"github.com/odyssey-erp/salesdash/internal/chart"
	"github.com/odyssey-erp/salesdash/internal/dashboard"
	dashboardhttp "github.com/odyssey-erp/salesdash/internal/dashboard/http"
	"github.com/odyssey-erp/salesdash/internal/dataset"
	"github.com/odyssey-erp/salesdash/internal/notify"
	"github.com/odyssey-erp/salesdash/internal/observability"
	"github.com/odyssey-erp/salesdash/internal/platform/cache"
	"github.com/odyssey-erp/salesdash/internal/platform/db"
	"github.com/odyssey-erp/salesdash/internal/theme"
	"github.com/odyssey-erp/salesdash/internal/view"
	"github.com/odyssey-erp/salesdash/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if len(os.Args) > 1 {
		if err := runCommand(ctx, cfg, os.Args[1:]); err != nil {
			logger.Error("command failed", slog.String("command", os.Args[1]), slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	redisClient, err := cache.New(ctx, cache.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	if err != nil {
		logger.Warn("redis unavailable, running without cache", slog.Any("error", err))
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	var pool *pgxpool.Pool
	if cfg.DatasetSource == string(dataset.SourcePostgres) {
		pool, err = db.New(ctx, cfg.PGDSN, db.Options{})
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
	}

	source, err := dataset.NewLoader(dataset.Options{
		Source:  dataset.Source(cfg.DatasetSource),
		Path:    cfg.DatasetPath,
		URL:     cfg.DatasetURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
		Pool:    rowQuerier(pool),
		Timeout: cfg.DashboardLoadTimeout,
	})
	if err != nil {
		logger.Error("build dataset loader", slog.Any("error", err))
		os.Exit(1)
	}
	datasetCache := dataset.NewCache(redisClient, cfg.DatasetCacheTTL)
	loader := dataset.CachedLoader{Cache: datasetCache, Next: source}

	metrics := observability.NewMetrics()

	themes := theme.NewController(ctx, themeStore(cfg, redisClient, logger), cfg.ThemePrefersDark, logger)
	themes.Subscribe(func(t theme.Theme) { metrics.ThemeToggled(t.String()) })

	dash := dashboard.New(dashboard.Params{
		Loader: loader,
		Theme:  themes,
		Charts: chart.NewRenderer(logger, metrics),
		Notes:  notify.New(logger, notify.WithRecorder(metrics)),
		Logger: logger,
	})
	defer dash.Close()

	initErr := dash.Init(ctx)
	metrics.DatasetLoaded(initErr)
	if initErr != nil {
		logger.Warn("dashboard init", slog.Any("error", initErr))
	}

	go func() {
		err := datasetCache.Subscribe(ctx, func(version int64) {
			logger.Info("dataset version bumped, reloading", slog.Int64("version", version))
			metrics.DatasetLoaded(dash.Init(ctx))
		})
		if err != nil && ctx.Err() == nil {
			logger.Warn("dataset subscription ended", slog.Any("error", err))
		}
	}()

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr, DB: cfg.RedisDB}
	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobClient, err := jobs.NewClient(redisOpts)
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		DashboardHandler: dashboardhttp.NewHandler(logger, dash, templates, cfg.CORSOrigins),
		JobHandler:       jobs.NewHandler(inspector, jobClient, logger),
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

// rowQuerier keeps a nil pool from becoming a non-nil interface.
func rowQuerier(pool *pgxpool.Pool) dataset.RowQuerier {
	if pool == nil {
		return nil
	}
	return pool
}

func themeStore(cfg *app.Config, client *redis.Client, logger *slog.Logger) theme.Store {
	if cfg.UsesRedisThemeStore() && client != nil {
		return theme.NewRedisStore(client, "salesdash")
	}
	if cfg.UsesRedisThemeStore() {
		logger.Warn("theme store falls back to memory")
	}
	return theme.NewMemoryStore()
}

func runCommand(ctx context.Context, cfg *app.Config, args []string) error {
	ops, err := cli.NewJobsCLI(cfg.RedisAddr)
	if err != nil {
		return err
	}
	defer func() { _ = ops.Close() }()

	switch args[0] {
	case "warmup":
		info, err := ops.Trigger(ctx, jobs.TaskDatasetWarmup)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "queued %s (%s)\n", info.ID, info.Type)
	case "queue":
		stats, err := ops.InspectQueue(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%s pending=%d active=%d scheduled=%d retry=%d\n",
			stats.Queue, stats.Pending, stats.Active, stats.Scheduled, stats.Retry)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}
