package client

import "errors"

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrSessionExpired = errors.New("session expired, please log in again")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("already exists")
	ErrRejected       = errors.New("request rejected")
)
