package impl

import (
	"errors"
	"fmt"

	"truefeedback/internal/domain"
)

var (
	ErrEmptyPassword   = errors.New("empty password")
	ErrEmptyCredential = fmt.Errorf("%w: identifier and password are required", domain.ErrValidation)
	ErrInvalidToken    = fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	ErrEmailDelivery   = fmt.Errorf("%w: failed to send verification email", domain.ErrExternalService)
)
