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

// UserRepository touches only the Facebook columns of the users table; the
// rows themselves are created by the identity provider.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, bool, error)
	SetFacebookToken(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, bool, error) {
	var user models.User
	query := `
		SELECT id, email, facebook_access_token, facebook_user_id, facebook_name, token_expires_at
		FROM users
		WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Email, &user.FacebookAccessToken,
		&user.FacebookUserID, &user.FacebookName, &user.TokenExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, storeError("get user", err)
	}
	return &user, true, nil
}

func (r *userRepository) SetFacebookToken(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET facebook_access_token = $2,
			facebook_user_id = $3,
			facebook_name = $4,
			token_expires_at = $5,
			updated_at = $6
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, user.ID, user.FacebookAccessToken, user.FacebookUserID,
		user.FacebookName, user.TokenExpiresAt, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return storeError("set facebook token", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return storeError("set facebook token", err)
	}
	if affected != 1 {
		slog.Info("no rows affected; user may not exist", "user_id", user.ID)
		return storeError("set facebook token", ErrNotFound)
	}

	return nil
}
