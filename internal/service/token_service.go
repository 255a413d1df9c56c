package service

import (
	"context"

	"truefeedback/internal/domain"
	"truefeedback/internal/dto"
)

type TokenService interface {
	Issue(ctx context.Context, account *domain.Account) (*dto.TokenResponse, error)
	Parse(ctx context.Context, token string) (dto.Principal, error)
}
