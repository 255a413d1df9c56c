package impl

import (
	"context"
	"testing"
	"time"

	"truefeedback/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokens(now time.Time) *TokenServiceImpl {
	ts := NewTokenServiceHS256(TokenConfig{Issuer: "truefeedback", AccessTTL: time.Hour, SigningKey: []byte("secret")}, nil)
	ts.now = func() time.Time { return now }
	return ts
}

func TestTokenIssueAndParse(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := newTestTokens(now)
	acc := &domain.Account{ID: domain.NewID(), Username: "alice"}

	tok, err := ts.Issue(context.Background(), acc)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), tok.ExpiresIn)

	p, err := ts.Parse(context.Background(), tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, acc.ID.String(), p.AccountID)
	assert.Equal(t, "alice", p.Username)

	ts.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = ts.Parse(context.Background(), tok.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenParseRejectsForeignTokens(t *testing.T) {
	now := time.Now()
	ts := newTestTokens(now)
	ctx := context.Background()

	other := NewTokenServiceHS256(TokenConfig{Issuer: "truefeedback", AccessTTL: time.Hour, SigningKey: []byte("other-secret")}, nil)
	tok, err := other.Issue(ctx, &domain.Account{ID: domain.NewID(), Username: "mallory"})
	require.NoError(t, err)
	_, err = ts.Parse(ctx, tok.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer := NewTokenServiceHS256(TokenConfig{Issuer: "elsewhere", AccessTTL: time.Hour, SigningKey: []byte("secret")}, nil)
	tok, err = wrongIssuer.Issue(ctx, &domain.Account{ID: domain.NewID(), Username: "mallory"})
	require.NoError(t, err)
	_, err = ts.Parse(ctx, tok.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": uuid.NewString(), "iss": "truefeedback"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ts.Parse(ctx, none)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ts.Parse(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyCodeShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := newVerifyCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.NotEqual(t, byte('0'), code[0])
	}
}
