package models

import (
	"time"

	"github.com/google/uuid"
)

// PostLog is an append-only audit record written once per processed post.
type PostLog struct {
	ID             uuid.UUID `db:"id" json:"id"`
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	PageID         uuid.UUID `db:"page_id" json:"page_id"`
	Content        string    `db:"content" json:"content"`
	FacebookPostID *string   `db:"facebook_post_id" json:"facebook_post_id"`
	Status         string    `db:"status" json:"status"`
	PublishedAt    time.Time `db:"published_at" json:"published_at"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
