package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrAlreadyExists         = errors.New("already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEmailNotVerified      = errors.New("email not verified")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrForbidden             = errors.New("forbidden")
	ErrEmptyItems            = errors.New("no items provided")
)

// InsufficientStockError reports which catalog item blocked an order
// and by how much.
type InsufficientStockError struct {
	Title     string
	Requested int32
	Available int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("requested quantity (%d) for %q exceeds available stock (%d)", e.Requested, e.Title, e.Available)
}
