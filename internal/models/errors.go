package models

import "errors"

// Common errors used throughout the application
var (
	ErrPhotoNotFound = errors.New("photo not found")
	ErrInvalidState  = errors.New("invalid state")
	ErrInvalidTab    = errors.New("invalid tab")
	ErrInvalidInput  = errors.New("invalid input")
	ErrEmptyCatalog  = errors.New("catalog is empty")
	ErrPaymentFailed = errors.New("payment failed")
)
