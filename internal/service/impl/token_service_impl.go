package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"truefeedback/internal/domain"
	"truefeedback/internal/dto"
	"truefeedback/internal/observability/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenConfig struct {
	Issuer     string
	AccessTTL  time.Duration
	SigningKey []byte // HS256 secret
}

type AccessClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type TokenServiceImpl struct {
	cfg    TokenConfig
	logger *slog.Logger
	now    func() time.Time
}

func NewTokenServiceHS256(cfg TokenConfig, logger *slog.Logger) *TokenServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenServiceImpl{cfg: cfg, logger: logger, now: time.Now}
}

func (t *TokenServiceImpl) Issue(ctx context.Context, account *domain.Account) (*dto.TokenResponse, error) {
	now := t.now().UTC()
	claims := AccessClaims{
		Username: account.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   account.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.cfg.SigningKey)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	t.logger.InfoContext(ctx, "issued access token",
		"account_id", account.ID,
		"request_id", middleware.RequestIDFromContext(ctx),
		"trace_id", middleware.TraceIDFromContext(ctx),
	)
	return &dto.TokenResponse{AccessToken: signed, ExpiresIn: int64(t.cfg.AccessTTL.Seconds())}, nil
}

func (t *TokenServiceImpl) Parse(ctx context.Context, token string) (dto.Principal, error) {
	claims := &AccessClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.cfg.SigningKey, nil
	})
	if err != nil {
		return dto.Principal{}, errors.Join(ErrInvalidToken, err)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return dto.Principal{}, ErrInvalidToken
	}
	return dto.Principal{AccountID: claims.Subject, Username: claims.Username}, nil
}
