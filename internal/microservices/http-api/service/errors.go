package service

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these to HTTP status codes with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrUpstream     = errors.New("upstream error")
)

var (
	ErrNameInUse             = kindError(ErrConflict, "username already in use")
	ErrEmailInUse            = kindError(ErrConflict, "email already in use")
	ErrInvalidCredentials    = kindError(ErrUnauthorized, "invalid credentials")
	ErrInvalidToken          = kindError(ErrUnauthorized, "invalid token")
	ErrMovieIdentityRequired = kindError(ErrValidation, "movie identity required")
	ErrUserNotFound          = kindError(ErrNotFound, "user not found")
	ErrMovieNotFound         = kindError(ErrNotFound, "movie not found")
	ErrLogNotFound           = kindError(ErrNotFound, "movie log not found")
	ErrWatchlistNotFound     = kindError(ErrNotFound, "watchlist item not found")
)

// Error carries a client-facing message and the kind it belongs to.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func kindError(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func validationError(format string, args ...any) error {
	return kindError(ErrValidation, fmt.Sprintf(format, args...))
}
