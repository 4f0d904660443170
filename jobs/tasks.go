package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDatasetWarmup reloads the dataset from its source into the Redis cache.
	TaskDatasetWarmup = "dataset:warmup"
)

// DatasetWarmupPayload describes why a warmup was requested.
type DatasetWarmupPayload struct {
	Reason string `json:"reason"`
}

// NewDatasetWarmupTask constructs an Asynq task.
func NewDatasetWarmupTask(reason string) (*asynq.Task, error) {
	data, err := json.Marshal(DatasetWarmupPayload{Reason: reason})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDatasetWarmup, data), nil
}
