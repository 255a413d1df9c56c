package service

import (
	"context"

	"truefeedback/internal/domain"
	"truefeedback/internal/dto"
)

type AccountService interface {
	SignUp(ctx context.Context, r dto.SignUpRequest) (*dto.SignUpResponse, error)
	VerifyCode(ctx context.Context, r dto.VerifyCodeRequest) error
	ResendCode(ctx context.Context, username string) error
	SignIn(ctx context.Context, r dto.SignInRequest) (*dto.TokenResponse, error)
	// UsernameAvailable reports whether sign-up would accept username: no
	// account holds it, or only an unverified one whose code has expired.
	UsernameAvailable(ctx context.Context, username string) (bool, error)
	AcceptingMessages(ctx context.Context, id domain.AccountID) (bool, error)
	SetAcceptingMessages(ctx context.Context, id domain.AccountID, accepting bool) error
}
