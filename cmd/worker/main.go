package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/salesdash/internal/app"
	"github.com/odyssey-erp/salesdash/internal/dataset"
	jobmetrics "github.com/odyssey-erp/salesdash/internal/jobs"
	"github.com/odyssey-erp/salesdash/internal/platform/cache"
	"github.com/odyssey-erp/salesdash/internal/platform/db"
	"github.com/odyssey-erp/salesdash/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	redisClient, err := cache.New(ctx, cache.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	opts := dataset.Options{
		Source: dataset.Source(cfg.DatasetSource),
		Path:   cfg.DatasetPath,
		URL:    cfg.DatasetURL,
		Client: &http.Client{Timeout: 15 * time.Second},
	}
	if cfg.DatasetSource == string(dataset.SourcePostgres) {
		var pool *pgxpool.Pool
		pool, err = db.New(ctx, cfg.PGDSN, db.Options{})
		if err != nil {
			logger.Error("connect database", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		opts.Pool = pool
	}
	source, err := dataset.NewLoader(opts)
	if err != nil {
		logger.Error("build dataset loader", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := jobmetrics.NewMetrics(nil)
	warmupJob := jobs.NewDatasetWarmupJob(source, dataset.NewCache(redisClient, cfg.DatasetCacheTTL), logger, metrics)

	warmupTask, err := jobs.NewDatasetWarmupTask("scheduled")
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr, DB: cfg.RedisDB},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskDatasetWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.WarmupCron, Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
