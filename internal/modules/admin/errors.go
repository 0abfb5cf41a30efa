package admin

import "errors"

var (
	ErrNotFound           = errors.New("reservation not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation error")
)
