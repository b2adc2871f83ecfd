package models

import (
	"time"

	"github.com/google/uuid"
)

type FacebookPage struct {
	ID              uuid.UUID `db:"id" json:"id"`
	UserID          uuid.UUID `db:"user_id" json:"user_id"`
	PageID          string    `db:"page_id" json:"page_id"`
	PageName        string    `db:"page_name" json:"page_name"`
	PageAccessToken string    `db:"page_access_token" json:"-"`
	PagePictureURL  *string   `db:"page_picture_url" json:"page_picture_url"`
	ConnectedAt     time.Time `db:"connected_at" json:"connected_at"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
