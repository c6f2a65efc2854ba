package services

import "errors"

// Service-level errors
var (
	// Dataset errors
	ErrDatasetNotLoaded = errors.New("dataset not loaded")
	ErrDatasetNotFound  = errors.New("dataset source not found")
	ErrBankNotFound     = errors.New("bank not found")

	// Analytics errors
	ErrStateNoData      = errors.New("no branch data for state")
	ErrInvalidThreshold = errors.New("invalid underserved threshold")

	// General errors
	ErrInvalidInput       = errors.New("invalid input")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)
