package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/maheshrc27/pagepost/internal/models"
	"github.com/maheshrc27/pagepost/internal/monitoring"
	"github.com/maheshrc27/pagepost/internal/repository"
	"github.com/maheshrc27/pagepost/internal/service"
	"github.com/maheshrc27/pagepost/internal/telemetry"
	"github.com/maheshrc27/pagepost/pkg/utils"
)

// ErrPageNotFound fails a due post whose destination page is gone.
var ErrPageNotFound = errors.New("Page not found for post")

// Summary counts the posts a run moved to published or failed. Posts that
// another run claimed first are only reported in Skipped.
type Summary struct {
	Published int `json:"published"`
	Failed    int `json:"failed"`
	Skipped   int `json:"-"`
}

// LogArchiver receives a copy of every log entry the job appends.
type LogArchiver interface {
	ArchivePostLog(ctx context.Context, pl *models.PostLog) error
}

type PublishPostsJob struct {
	posts    repository.ScheduledPostRepository
	logs     repository.PostLogRepository
	fb       service.FacebookService
	cipher   utils.TokenCipher
	metrics  *monitoring.Metrics
	archiver LogArchiver
	now      func() time.Time
}

// NewPublishPostsJob wires the job. metrics and archiver may be nil.
func NewPublishPostsJob(
	posts repository.ScheduledPostRepository,
	logs repository.PostLogRepository,
	fb service.FacebookService,
	cipher utils.TokenCipher,
	metrics *monitoring.Metrics,
	archiver LogArchiver) *PublishPostsJob {
	return &PublishPostsJob{
		posts:    posts,
		logs:     logs,
		fb:       fb,
		cipher:   cipher,
		metrics:  metrics,
		archiver: archiver,
		now:      time.Now,
	}
}

// PublishDuePosts is the cron entry point.
func (j *PublishPostsJob) PublishDuePosts() {
	summary, err := j.Run(context.Background())
	if err != nil {
		slog.Error(err.Error())
		return
	}
	slog.Info("publish run finished", "published", summary.Published, "failed", summary.Failed, "skipped", summary.Skipped)
}

// Run publishes every post that is due at the moment the run starts. Only a
// failure to read the due posts aborts the run; every other failure is
// recorded against the post it belongs to.
func (j *PublishPostsJob) Run(ctx context.Context) (*Summary, error) {
	started := time.Now()
	now := j.now().UTC()

	runID, err := gonanoid.New()
	if err != nil {
		runID = fmt.Sprintf("%d", started.UnixNano())
	}
	logger := telemetry.WithRunID(telemetry.FromContext(ctx), runID)
	ctx = telemetry.WithLogger(ctx, logger)

	due, err := j.posts.FetchDue(ctx, now)
	if err != nil {
		logger.Error("unable to fetch due posts", "error", err)
		j.metrics.ObserveRun("error", time.Since(started))
		return nil, fmt.Errorf("Failed to fetch scheduled posts: %w", err)
	}

	summary := &Summary{}
	if len(due) == 0 {
		j.metrics.ObserveRun("ok", time.Since(started))
		return summary, nil
	}

	logger.Info("publishing due posts", "count", len(due))

	for _, dp := range due {
		switch j.process(ctx, dp, now) {
		case models.PostStatusPublished:
			summary.Published++
		case models.PostStatusFailed:
			summary.Failed++
		default:
			summary.Skipped++
		}
	}

	j.metrics.ObserveRun("ok", time.Since(started))
	return summary, nil
}

const outcomeSkipped = "skipped"

// process returns the status the post ended in, or outcomeSkipped when
// another run changed it first.
func (j *PublishPostsJob) process(ctx context.Context, dp *models.DuePost, now time.Time) string {
	logger := telemetry.WithPostID(telemetry.FromContext(ctx), dp.Post.ID.String())
	ctx = telemetry.WithLogger(ctx, logger)

	outcome := j.settle(ctx, dp, now)
	j.metrics.IncPosts(outcome)
	return outcome
}

func (j *PublishPostsJob) settle(ctx context.Context, dp *models.DuePost, now time.Time) string {
	logger := telemetry.FromContext(ctx)

	fbPostID, err := j.publishAndMark(ctx, dp, now)
	switch {
	case err == nil:
		j.appendLog(ctx, dp, &fbPostID, models.PostStatusPublished, now)
		logger.Info("post published", "facebook_post_id", fbPostID)
		return models.PostStatusPublished

	case errors.Is(err, repository.ErrAlreadyClaimed):
		logger.Info("post already claimed, skipping")
		return outcomeSkipped

	case fbPostID != "":
		// the Graph post exists; keep its id on the failed log entry
		logger.Error("unable to mark post published", "error", err)
		return j.fail(ctx, dp, &fbPostID, err, now)

	default:
		return j.fail(ctx, dp, nil, err, now)
	}
}

// publishAndMark publishes the post and moves it to published. A panic in
// either step comes back as an error. fbPostID is set once the Graph call
// succeeded, even when the status update did not.
func (j *PublishPostsJob) publishAndMark(ctx context.Context, dp *models.DuePost, now time.Time) (fbPostID string, err error) {
	defer func() {
		if r := recover(); r != nil {
			telemetry.FromContext(ctx).Error("panic while publishing post", "panic", r)
			err = fmt.Errorf("unexpected error: %v", r)
		}
	}()

	fbPostID, err = j.publish(ctx, dp)
	if err != nil {
		return "", err
	}

	return fbPostID, j.posts.MarkPublished(ctx, dp.Post.ID, fbPostID, now)
}

func (j *PublishPostsJob) publish(ctx context.Context, dp *models.DuePost) (string, error) {
	if !dp.HasDestination() {
		return "", ErrPageNotFound
	}

	accessToken, err := j.cipher.Open(dp.PageAccessToken)
	if err != nil {
		return "", fmt.Errorf("unable to decrypt page access token: %w", err)
	}

	result, err := j.fb.PublishPost(ctx, accessToken, dp.FacebookPageID, dp.Post.Content)
	if err != nil {
		return "", err
	}

	return result.ID, nil
}

func (j *PublishPostsJob) fail(ctx context.Context, dp *models.DuePost, fbPostID *string, cause error, now time.Time) string {
	logger := telemetry.FromContext(ctx)
	logger.Info("post failed", "error", cause)

	if err := j.markFailed(ctx, dp, cause, now); err != nil {
		if errors.Is(err, repository.ErrAlreadyClaimed) {
			logger.Info("post already claimed, skipping")
			return outcomeSkipped
		}
		logger.Error("unable to mark post failed", "error", err)
	}

	j.appendLog(ctx, dp, fbPostID, models.PostStatusFailed, now)
	return models.PostStatusFailed
}

func (j *PublishPostsJob) markFailed(ctx context.Context, dp *models.DuePost, cause error, now time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected error: %v", r)
		}
	}()
	return j.posts.MarkFailed(ctx, dp.Post.ID, cause.Error(), now)
}

// appendLog never lets a log or archive failure change the post's outcome.
func (j *PublishPostsJob) appendLog(ctx context.Context, dp *models.DuePost, fbPostID *string, status string, now time.Time) {
	logger := telemetry.FromContext(ctx)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic while appending post log", "status", status, "panic", r)
		}
	}()

	pl := &models.PostLog{
		UserID:         dp.Post.UserID,
		PageID:         dp.Post.PageID,
		Content:        dp.Post.Content,
		FacebookPostID: fbPostID,
		Status:         status,
		PublishedAt:    now,
	}

	id, err := j.logs.Create(ctx, pl)
	if err != nil {
		logger.Error("unable to append post log", "status", status, "error", err)
		return
	}
	pl.ID = id

	if j.archiver == nil {
		return
	}
	if err := j.archiver.ArchivePostLog(ctx, pl); err != nil {
		logger.Warn("unable to archive post log", "log_id", id, "error", err)
	}
}
