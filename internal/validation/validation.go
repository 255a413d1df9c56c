// Package validation holds the field rules shared by the HTTP handlers, the
// services and the CLI. Every failure is a *FieldError that matches
// domain.ErrValidation.
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"truefeedback/internal/domain"
)

const (
	MinUsernameLength = 2
	MaxUsernameLength = 20
	MinPasswordLength = 6
	VerifyCodeLength  = 6
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// FieldError names the offending field and the rule it broke ("min", "max",
// "format", "required").
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string { return e.Message }

func (e *FieldError) Is(target error) bool { return target == domain.ErrValidation }

func fieldError(field, rule, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// MessageContent counts characters, not bytes.
func MessageContent(content string) error {
	n := utf8.RuneCountInString(content)
	switch {
	case n < domain.MinMessageLength:
		return fieldError("content", "min", "Content must be at least %d characters", domain.MinMessageLength)
	case n > domain.MaxMessageLength:
		return fieldError("content", "max", "Content must be no longer than %d characters", domain.MaxMessageLength)
	}
	return nil
}

func Username(username string) error {
	n := utf8.RuneCountInString(username)
	switch {
	case n < MinUsernameLength:
		return fieldError("username", "min", "Username must be at least %d characters", MinUsernameLength)
	case n > MaxUsernameLength:
		return fieldError("username", "max", "Username must be no more than %d characters", MaxUsernameLength)
	case !usernamePattern.MatchString(username):
		return fieldError("username", "format", "Username must not contain special characters")
	}
	return nil
}

func Email(email string) error {
	if strings.TrimSpace(email) == "" {
		return fieldError("email", "required", "Email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fieldError("email", "format", "Invalid email address")
	}
	return nil
}

func Password(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fieldError("password", "min", "Password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

func VerifyCode(code string) error {
	if len(code) != VerifyCodeLength {
		return fieldError("code", "format", "Verification code must be %d digits", VerifyCodeLength)
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return fieldError("code", "format", "Verification code must be %d digits", VerifyCodeLength)
		}
	}
	return nil
}
