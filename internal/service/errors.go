package service

import (
	"errors"
	"fmt"

	"github.com/maheshrc27/pagepost/internal/transfer"
)

// PublishError is returned by every failed publish attempt, whatever the
// cause: transport failure, a Graph error payload, or a malformed response.
type PublishError struct {
	Message string
	Err     error
}

func (e *PublishError) Error() string {
	return "Post publishing failed: " + e.Message
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// ValidationError marks a request the caller can fix.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

var (
	ErrNotOwned               = errors.New("resource doesn't exist")
	ErrFacebookNotConnected   = errors.New("Facebook account is not connected")
	errMissingGraphIdentifier = errors.New("no id returned from Facebook")
)

func graphErrorMessage(ge *transfer.GraphError) string {
	if ge == nil || ge.Message == "" {
		return "Unknown error"
	}
	return ge.Message
}
