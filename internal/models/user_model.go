package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	Email               string     `db:"email" json:"email"`
	FacebookAccessToken *string    `db:"facebook_access_token" json:"-"`
	FacebookUserID      *string    `db:"facebook_user_id" json:"facebook_user_id"`
	FacebookName        *string    `db:"facebook_name" json:"facebook_name"`
	TokenExpiresAt      *time.Time `db:"token_expires_at" json:"token_expires_at"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}
