package session

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
	ErrNotAuthenticated   = errors.New("not authenticated")
)
