package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

func (q *Queue) HandlePublishDuePostsTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishDuePostsPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}
	}

	summary, err := q.publisher.Run(ctx)
	if err != nil {
		slog.Error(err.Error(), "trigger", payload.Trigger)
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	slog.Info("publish run finished",
		"trigger", payload.Trigger,
		"published", summary.Published,
		"failed", summary.Failed,
		"skipped", summary.Skipped)
	return nil
}

// Mux routes the publish task to q.
func (q *Queue) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypePublishDuePosts, q.HandlePublishDuePostsTask)
	return mux
}
