package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/maheshrc27/pagepost/internal/models"
	"github.com/maheshrc27/pagepost/internal/repository"
	"github.com/maheshrc27/pagepost/internal/transfer"
)

// scheduledTimeLayouts are tried in order; the second is what an HTML
// datetime-local input submits and is read as UTC.
var scheduledTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04"}

type PostService interface {
	CreatePost(ctx context.Context, userID uuid.UUID, pc *transfer.PostCreation) (uuid.UUID, error)
	List(ctx context.Context, userID uuid.UUID) ([]*models.ScheduledPost, error)
	Remove(ctx context.Context, userID, postID uuid.UUID) error
	ListLogs(ctx context.Context, userID uuid.UUID) ([]*models.PostLog, error)
}

type postService struct {
	pr  repository.ScheduledPostRepository
	fp  repository.FacebookPageRepository
	pl  repository.PostLogRepository
	now func() time.Time
}

func NewPostService(
	pr repository.ScheduledPostRepository,
	fp repository.FacebookPageRepository,
	pl repository.PostLogRepository) PostService {
	return &postService{
		pr:  pr,
		fp:  fp,
		pl:  pl,
		now: time.Now,
	}
}

func (s *postService) CreatePost(ctx context.Context, userID uuid.UUID, pc *transfer.PostCreation) (uuid.UUID, error) {
	if pc == nil {
		return uuid.Nil, invalid("post creation data is nil")
	}

	content := strings.TrimSpace(pc.Content)
	if content == "" {
		return uuid.Nil, invalid("content cannot be empty")
	}
	if utf8.RuneCountInString(content) > models.MaxPostContentLength {
		return uuid.Nil, invalid("content cannot exceed %d characters", models.MaxPostContentLength)
	}

	pageID, err := uuid.Parse(pc.PageID)
	if err != nil {
		return uuid.Nil, invalid("invalid page id")
	}

	scheduledTime, err := parseScheduledTime(pc.ScheduledTime)
	if err != nil {
		slog.Info(err.Error())
		return uuid.Nil, err
	}
	if !scheduledTime.After(s.now()) {
		return uuid.Nil, invalid("scheduled time must be in the future")
	}

	owned, err := s.fp.CheckByUserID(ctx, pageID, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if !owned {
		return uuid.Nil, ErrNotOwned
	}

	postID, err := s.pr.Create(ctx, &models.ScheduledPost{
		UserID:        userID,
		PageID:        pageID,
		Content:       content,
		ScheduledTime: scheduledTime,
		Status:        models.PostStatusPending,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("error creating post: %w", err)
	}

	return postID, nil
}

func parseScheduledTime(value string) (time.Time, error) {
	for _, layout := range scheduledTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, invalid("invalid scheduled time format: %q", value)
}

func (s *postService) List(ctx context.Context, userID uuid.UUID) ([]*models.ScheduledPost, error) {
	posts, err := s.pr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Error getting posts: %w", err)
	}
	return posts, nil
}

func (s *postService) Remove(ctx context.Context, userID, postID uuid.UUID) error {
	if userID == uuid.Nil || postID == uuid.Nil {
		err := invalid("post_id is not valid")
		slog.Info(err.Error())
		return err
	}

	isValid, err := s.pr.CheckByUserID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if !isValid {
		slog.Info("post doesn't exist", "post_id", postID, "user_id", userID)
		return ErrNotOwned
	}

	if err := s.pr.Remove(ctx, postID); err != nil {
		return fmt.Errorf("Error removing post: %w", err)
	}

	return nil
}

// ListLogs returns the publish history of the user, newest first.
func (s *postService) ListLogs(ctx context.Context, userID uuid.UUID) ([]*models.PostLog, error) {
	logs, err := s.pl.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Error getting post logs: %w", err)
	}
	return logs, nil
}
