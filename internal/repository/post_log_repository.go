package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/maheshrc27/pagepost/internal/models"
)

// PostLogRepository is insert-only: log rows are never updated or deleted.
type PostLogRepository interface {
	Create(ctx context.Context, pl *models.PostLog) (uuid.UUID, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.PostLog, error)
}

type postLogRepository struct {
	db *sql.DB
}

func NewPostLogRepository(db *sql.DB) PostLogRepository {
	return &postLogRepository{db: db}
}

func (r *postLogRepository) Create(ctx context.Context, pl *models.PostLog) (uuid.UUID, error) {
	query := `
		INSERT INTO post_logs (user_id, page_id, content, facebook_post_id, status, published_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, query, pl.UserID, pl.PageID, pl.Content, pl.FacebookPostID, pl.Status, pl.PublishedAt).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return uuid.Nil, storeError("append post log", err)
	}

	return id, nil
}

func (r *postLogRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.PostLog, error) {
	query := `
		SELECT id, user_id, page_id, content, facebook_post_id, status, published_at, created_at
		FROM post_logs
		WHERE user_id = $1
		ORDER BY published_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, storeError("list post logs", err)
	}
	defer rows.Close()

	var logs []*models.PostLog
	for rows.Next() {
		var pl models.PostLog
		err := rows.Scan(&pl.ID, &pl.UserID, &pl.PageID, &pl.Content, &pl.FacebookPostID, &pl.Status, &pl.PublishedAt, &pl.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, storeError("scan post log", err)
		}
		logs = append(logs, &pl)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, storeError("list post logs", err)
	}

	return logs, nil
}
