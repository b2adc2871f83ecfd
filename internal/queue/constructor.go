package queue

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron"
)

// NewPublishDuePostsTask builds the periodic task. Uniqueness keeps replicas
// that share a scheduler from piling up runs inside one interval, and the
// next tick stands in for a retry.
func NewPublishDuePostsTask(uniqueFor time.Duration) (*asynq.Task, error) {
	payload, err := json.Marshal(PublishDuePostsPayload{Trigger: "scheduler"})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TaskTypePublishDuePosts, payload,
		asynq.MaxRetry(0),
		asynq.Unique(uniqueFor),
	), nil
}

// ScheduleInterval returns the gap between two ticks of cronspec. The spec
// is read the way the asynq scheduler reads it: five fields or a descriptor
// such as "@every 1m".
func ScheduleInterval(cronspec string, from time.Time) (time.Duration, error) {
	schedule, err := cron.ParseStandard(cronspec)
	if err != nil {
		return 0, fmt.Errorf("invalid schedule %q: %w", cronspec, err)
	}

	next := schedule.Next(from)
	window := schedule.Next(next).Sub(next)
	if window < time.Second {
		return 0, fmt.Errorf("invalid schedule %q: interval %s is below one second", cronspec, window)
	}
	return window, nil
}

// RegisterPeriodic registers the publish task on the scheduler using a cron
// spec such as "@every 1m".
func RegisterPeriodic(scheduler *asynq.Scheduler, cronspec string, uniqueFor time.Duration) (string, error) {
	task, err := NewPublishDuePostsTask(uniqueFor)
	if err != nil {
		return "", err
	}

	entryID, err := scheduler.Register(cronspec, task)
	if err != nil {
		return "", err
	}

	slog.Info("publish task registered", "entry_id", entryID, "schedule", cronspec)
	return entryID, nil
}
