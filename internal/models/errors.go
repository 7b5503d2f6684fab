package models

import (
	"errors"
)

var (
	ErrInvalidCoordinate  = errors.New("models: invalid coordinate")
	ErrInvalidFilterState = errors.New("models: invalid filter state")
	ErrFetchFailed        = errors.New("models: fetch failed")
	ErrStaleResponse      = errors.New("models: stale response discarded")
	ErrServiceNotFound    = errors.New("models: service not found")
	ErrNoSession          = errors.New("models: no active session")
	ErrSessionExpired     = errors.New("models: session expired")
	ErrUnauthorized       = errors.New("models: unauthorized")
	ErrMalformedRecord    = errors.New("models: malformed record")
)
