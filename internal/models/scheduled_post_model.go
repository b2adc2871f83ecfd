package models

import (
	"time"

	"github.com/google/uuid"
)

const MaxPostContentLength = 2000

type ScheduledPost struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	UserID         uuid.UUID  `db:"user_id" json:"user_id"`
	PageID         uuid.UUID  `db:"page_id" json:"page_id"`
	Content        string     `db:"content" json:"content"`
	ScheduledTime  time.Time  `db:"scheduled_time" json:"scheduled_time"`
	Status         string     `db:"status" json:"status"` // pending, published, failed
	FacebookPostID *string    `db:"facebook_post_id" json:"facebook_post_id"`
	PublishedAt    *time.Time `db:"published_at" json:"published_at"`
	ErrorMessage   *string    `db:"error_message" json:"error_message"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

const (
	PostStatusPending   = "pending"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
)

// DuePost is a pending post joined with the Graph page id and access token
// of its destination. Both are empty when the page row no longer exists.
type DuePost struct {
	Post            ScheduledPost
	FacebookPageID  string
	PageAccessToken string
}

func (d *DuePost) HasDestination() bool {
	return d.FacebookPageID != "" && d.PageAccessToken != ""
}
