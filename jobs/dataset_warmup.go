package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/salesdash/internal/dataset"
	jobmetrics "github.com/odyssey-erp/salesdash/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// DatasetWarmupJob reads the dataset from its source, validates it and
// publishes it under a fresh cache version.
type DatasetWarmupJob struct {
	Source  dataset.Loader
	Cache   *dataset.Cache
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewDatasetWarmupJob wires dependencies for the warmup handler.
func NewDatasetWarmupJob(source dataset.Loader, cache *dataset.Cache, logger *slog.Logger, metrics *jobmetrics.Metrics) *DatasetWarmupJob {
	return &DatasetWarmupJob{
		Source:  source,
		Cache:   cache,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes dataset warmup tasks.
func (j *DatasetWarmupJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Source == nil {
		return errors.New("dataset warmup: handler not configured")
	}
	payload := DatasetWarmupPayload{Reason: "scheduled"}
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("dataset warmup: decode payload: %w", asynq.SkipRetry)
		}
	}

	tracker := j.metrics().Track(TaskDatasetWarmup)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.String("reason", payload.Reason))
	logger.Info("starting dataset warmup")

	ds, err := j.Source.Load(ctx)
	if err != nil {
		logger.Error("load dataset", slog.Any("error", err))
		return fmt.Errorf("dataset warmup: %w", err)
	}
	if err := ds.Validate(); err != nil {
		logger.Error("reject dataset", slog.Any("error", err))
		return fmt.Errorf("dataset warmup: %v: %w", err, asynq.SkipRetry)
	}
	version, err := j.Cache.Publish(ctx, ds)
	if err != nil {
		return fmt.Errorf("dataset warmup: publish: %w", err)
	}
	j.metrics().DatasetWarmed(version, j.now())
	logger.Info("dataset warmup complete", slog.Int64("version", version))
	return nil
}

func (j *DatasetWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *DatasetWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

func (j *DatasetWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
