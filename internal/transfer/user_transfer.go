package transfer

import (
	"time"

	"github.com/google/uuid"
)

type UserInfo struct {
	ID                uuid.UUID  `json:"id"`
	Email             string     `json:"email"`
	FacebookConnected bool       `json:"facebook_connected"`
	FacebookName      *string    `json:"facebook_name"`
	TokenExpiresAt    *time.Time `json:"token_expires_at"`
}
