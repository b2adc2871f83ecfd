package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/maheshrc27/pagepost/internal/models"
)

type FacebookPageRepository interface {
	Upsert(ctx context.Context, page *models.FacebookPage) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.FacebookPage, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.FacebookPage, error)
	CheckByUserID(ctx context.Context, pageID, userID uuid.UUID) (bool, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type facebookPageRepository struct {
	db *sql.DB
}

func NewFacebookPageRepository(db *sql.DB) FacebookPageRepository {
	return &facebookPageRepository{db: db}
}

// Upsert stores a page connected by the user, refreshing the name, picture
// and access token when the same page is connected again.
func (r *facebookPageRepository) Upsert(ctx context.Context, page *models.FacebookPage) (uuid.UUID, error) {
	query := `
		INSERT INTO facebook_pages (
			user_id,
			page_id,
			page_name,
			page_access_token,
			page_picture_url,
			connected_at
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, page_id) DO UPDATE
		SET page_name = EXCLUDED.page_name,
			page_access_token = EXCLUDED.page_access_token,
			page_picture_url = EXCLUDED.page_picture_url,
			connected_at = EXCLUDED.connected_at
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, query,
		page.UserID,
		page.PageID,
		page.PageName,
		page.PageAccessToken,
		page.PagePictureURL,
		page.ConnectedAt,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return uuid.Nil, storeError("upsert page", err)
	}

	return id, nil
}

func (r *facebookPageRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.FacebookPage, error) {
	query := `
		SELECT id, user_id, page_id, page_name, page_access_token, page_picture_url, connected_at, created_at
		FROM facebook_pages
		WHERE id = $1
	`

	var p models.FacebookPage
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.UserID, &p.PageID, &p.PageName,
		&p.PageAccessToken, &p.PagePictureURL, &p.ConnectedAt, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		slog.Info(err.Error())
		return nil, storeError("get page", err)
	}

	return &p, nil
}

func (r *facebookPageRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.FacebookPage, error) {
	query := `
		SELECT id, user_id, page_id, page_name, page_picture_url, connected_at, created_at
		FROM facebook_pages
		WHERE user_id = $1
		ORDER BY connected_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, storeError("list pages", err)
	}
	defer rows.Close()

	var pages []*models.FacebookPage
	for rows.Next() {
		var p models.FacebookPage
		err := rows.Scan(&p.ID, &p.UserID, &p.PageID, &p.PageName, &p.PagePictureURL, &p.ConnectedAt, &p.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, storeError("scan page", err)
		}
		pages = append(pages, &p)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, storeError("list pages", err)
	}

	return pages, nil
}

func (r *facebookPageRepository) CheckByUserID(ctx context.Context, pageID, userID uuid.UUID) (bool, error) {
	query := "SELECT 1 FROM facebook_pages WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, pageID, userID).Scan(&result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		slog.Info(err.Error())
		return false, storeError("check page owner", err)
	}

	return result == 1, nil
}

func (r *facebookPageRepository) Remove(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM facebook_pages WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		slog.Info(err.Error())
		return storeError("remove page", err)
	}
	return nil
}
