package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/maheshrc27/pagepost/internal/models"
)

type ScheduledPostRepository interface {
	FetchDue(ctx context.Context, now time.Time) ([]*models.DuePost, error)
	MarkPublished(ctx context.Context, id uuid.UUID, facebookPostID string, publishedAt time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string, occurredAt time.Time) error
	Create(ctx context.Context, post *models.ScheduledPost) (uuid.UUID, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.ScheduledPost, error)
	CheckByUserID(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type scheduledPostRepository struct {
	db *sql.DB
}

func NewScheduledPostRepository(db *sql.DB) ScheduledPostRepository {
	return &scheduledPostRepository{db: db}
}

const scheduledPostColumns = `id, user_id, page_id, content, scheduled_time, status,
	facebook_post_id, published_at, error_message, created_at, updated_at`

func (r *scheduledPostRepository) FetchDue(ctx context.Context, now time.Time) ([]*models.DuePost, error) {
	query := `
		SELECT sp.id, sp.user_id, sp.page_id, sp.content, sp.scheduled_time, sp.status,
			sp.created_at, sp.updated_at, fp.page_id, fp.page_access_token
		FROM scheduled_posts sp
		LEFT JOIN facebook_pages fp ON fp.id = sp.page_id
		WHERE sp.status = $1 AND sp.scheduled_time <= $2
		ORDER BY sp.scheduled_time ASC, sp.created_at ASC, sp.id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, models.PostStatusPending, now)
	if err != nil {
		slog.Info(err.Error())
		return nil, storeError("fetch due posts", err)
	}
	defer rows.Close()

	var due []*models.DuePost
	for rows.Next() {
		var dp models.DuePost
		var pageID, accessToken sql.NullString
		err := rows.Scan(&dp.Post.ID, &dp.Post.UserID, &dp.Post.PageID, &dp.Post.Content,
			&dp.Post.ScheduledTime, &dp.Post.Status, &dp.Post.CreatedAt, &dp.Post.UpdatedAt,
			&pageID, &accessToken)
		if err != nil {
			slog.Info(err.Error())
			return nil, storeError("scan due post", err)
		}
		dp.FacebookPageID = pageID.String
		dp.PageAccessToken = accessToken.String
		due = append(due, &dp)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, storeError("fetch due posts", err)
	}

	return due, nil
}

func (r *scheduledPostRepository) MarkPublished(ctx context.Context, id uuid.UUID, facebookPostID string, publishedAt time.Time) error {
	query := `
		UPDATE scheduled_posts
		SET status = $2,
			facebook_post_id = $3,
			published_at = $4,
			error_message = NULL,
			updated_at = $4
		WHERE id = $1 AND status = $5
	`
	result, err := r.db.ExecContext(ctx, query, id, models.PostStatusPublished, facebookPostID, publishedAt, models.PostStatusPending)
	if err != nil {
		slog.Info(err.Error())
		return storeError("mark published", err)
	}
	return r.checkTransition(ctx, "mark published", id, result)
}

func (r *scheduledPostRepository) MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string, occurredAt time.Time) error {
	query := `
		UPDATE scheduled_posts
		SET status = $2,
			error_message = $3,
			updated_at = $4
		WHERE id = $1 AND status = $5
	`
	result, err := r.db.ExecContext(ctx, query, id, models.PostStatusFailed, errorMessage, occurredAt, models.PostStatusPending)
	if err != nil {
		slog.Info(err.Error())
		return storeError("mark failed", err)
	}
	return r.checkTransition(ctx, "mark failed", id, result)
}

// checkTransition tells a lost race (row no longer pending) apart from a
// missing row when a conditional update affected nothing.
func (r *scheduledPostRepository) checkTransition(ctx context.Context, op string, id uuid.UUID, result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return storeError(op, err)
	}
	if affected == 1 {
		return nil
	}

	var status string
	err = r.db.QueryRowContext(ctx, `SELECT status FROM scheduled_posts WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storeError(op, ErrNotFound)
		}
		slog.Info(err.Error())
		return storeError(op, err)
	}

	return ErrAlreadyClaimed
}

func (r *scheduledPostRepository) Create(ctx context.Context, post *models.ScheduledPost) (uuid.UUID, error) {
	query := `
		INSERT INTO scheduled_posts (user_id, page_id, content, scheduled_time, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, query, post.UserID, post.PageID, post.Content, post.ScheduledTime, models.PostStatusPending).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return uuid.Nil, storeError("create post", err)
	}

	return id, nil
}

func (r *scheduledPostRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.ScheduledPost, error) {
	query := `SELECT ` + scheduledPostColumns + ` FROM scheduled_posts WHERE user_id = $1 ORDER BY scheduled_time ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, storeError("list posts", err)
	}
	defer rows.Close()

	var posts []*models.ScheduledPost
	for rows.Next() {
		var post models.ScheduledPost
		err := rows.Scan(&post.ID, &post.UserID, &post.PageID, &post.Content, &post.ScheduledTime, &post.Status,
			&post.FacebookPostID, &post.PublishedAt, &post.ErrorMessage, &post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, storeError("scan post", err)
		}
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, storeError("list posts", err)
	}

	return posts, nil
}

func (r *scheduledPostRepository) CheckByUserID(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	query := "SELECT 1 FROM scheduled_posts WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(&result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		slog.Info(err.Error())
		return false, storeError("check post owner", err)
	}

	return result == 1, nil
}

func (r *scheduledPostRepository) Remove(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM scheduled_posts WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		slog.Info(err.Error())
		return storeError("remove post", err)
	}
	return nil
}
