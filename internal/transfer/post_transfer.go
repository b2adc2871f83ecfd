package transfer

import "github.com/golang-jwt/jwt/v5"

type PostCreation struct {
	PageID        string `json:"page_id"`
	Content       string `json:"content"`
	ScheduledTime string `json:"scheduled_time"`
}

// CustomClaims are the claims of the identity provider's session tokens and
// of the OAuth state tokens this service signs. Subject carries the user id.
type CustomClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
