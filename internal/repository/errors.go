package repository

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrAlreadyClaimed is returned by a conditional status update that
	// matched no pending row because another run already moved it.
	ErrAlreadyClaimed = errors.New("post already claimed by another run")
)

// StoreError reports a failed read or write against the database.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
