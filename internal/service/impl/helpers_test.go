package impl

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"truefeedback/internal/domain"
	"truefeedback/internal/dto"
	"truefeedback/internal/store"
	"truefeedback/internal/store/storetest"

	"github.com/stretchr/testify/require"
)

var testParams = Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

type sentEmail struct {
	to, username, code string
}

type recordingEmailService struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (r *recordingEmailService) SendVerification(ctx context.Context, to, username, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, sentEmail{to: to, username: username, code: code})
	return nil
}

func (r *recordingEmailService) last(t *testing.T) sentEmail {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.sent, "no verification email sent")
	return r.sent[len(r.sent)-1]
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type fixture struct {
	store    *store.Store
	accounts *AccountServiceImpl
	messages *MessageServiceImpl
	tokens   *TokenServiceImpl
	email    *recordingEmailService
	clock    *clock
	codes    []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.New(storetest.Open(t))
	f := &fixture{
		store: st,
		email: &recordingEmailService{},
		clock: &clock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
	}
	f.tokens = NewTokenServiceHS256(TokenConfig{Issuer: "truefeedback-test", AccessTTL: time.Hour, SigningKey: []byte("test-secret")}, nil)
	f.tokens.now = f.clock.Now
	f.accounts = NewAccountServiceImpl(st, NewPasswordServiceArgon2id(1, testParams), f.tokens, f.email, time.Hour, nil)
	f.accounts.now = f.clock.Now
	f.accounts.newCode = func() (string, error) {
		if len(f.codes) == 0 {
			return newVerifyCode()
		}
		c := f.codes[0]
		f.codes = f.codes[1:]
		return c, nil
	}
	f.messages = NewMessageServiceImpl(st, nil)
	f.messages.now = f.clock.Now
	return f
}

// verifiedAccount signs up and verifies username, returning the stored row.
func (f *fixture) verifiedAccount(t *testing.T, username string) *domain.Account {
	t.Helper()
	ctx := context.Background()
	_, err := f.accounts.SignUp(ctx, dto.SignUpRequest{Username: username, Email: username + "@example.com", Password: "hunter22"})
	require.NoError(t, err)
	code := f.email.last(t).code
	require.NoError(t, f.accounts.VerifyCode(ctx, dto.VerifyCodeRequest{Username: username, Code: code}))
	acc, err := f.store.Accounts().GetByUsername(ctx, username)
	require.NoError(t, err)
	return acc
}

var errBoom = errors.New("boom")
