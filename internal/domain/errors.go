package domain

import (
	"errors"
	"fmt"
)

// Categories. Handlers map these to status codes with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrExpired         = errors.New("expired")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrExternalService = errors.New("external service failure")
	ErrPersistence     = errors.New("persistence failure")
)

var (
	ErrAccountNotFound      = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrMessageNotFound      = fmt.Errorf("%w: message not found", ErrNotFound)
	ErrIncorrectCode        = fmt.Errorf("%w: incorrect verification code", ErrValidation)
	ErrCodeExpired          = fmt.Errorf("%w: verification code has expired, sign up again", ErrExpired)
	ErrNotAcceptingMessages = fmt.Errorf("%w: user is not accepting messages", ErrForbidden)
	ErrUsernameTaken        = fmt.Errorf("%w: username is already taken", ErrConflict)
	ErrEmailTaken           = fmt.Errorf("%w: user already exists with this email", ErrConflict)
	ErrAlreadyVerified      = fmt.Errorf("%w: account is already verified", ErrConflict)
	ErrInvalidCredentials   = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrAccountNotVerified   = fmt.Errorf("%w: please verify your account before logging in", ErrForbidden)
)
