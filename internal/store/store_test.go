package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"truefeedback/internal/domain"
	"truefeedback/internal/store"
	"truefeedback/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, st *store.Store, username, email string) *domain.Account {
	t.Helper()
	acc := &domain.Account{
		Username:          username,
		Email:             email,
		PasswordAlgo:      "argon2id",
		PasswordHash:      []byte("hash"),
		PasswordSalt:      []byte("salt"),
		PasswordParams:    []byte("{}"),
		PasswordVer:       1,
		VerifyCode:        "123456",
		VerifyCodeExpiry:  time.Now().UTC().Add(time.Hour),
		AcceptingMessages: true,
	}
	require.NoError(t, st.Accounts().Create(context.Background(), acc))
	return acc
}

func TestAccountLookupsAreCaseSensitive(t *testing.T) {
	st := store.New(storetest.Open(t))
	ctx := context.Background()
	acc := seedAccount(t, st, "Alice", "alice@example.com")

	got, err := st.Accounts().GetByUsername(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)

	_, err = st.Accounts().GetByUsername(ctx, "alice")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	got, err = st.Accounts().GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Username)
}

func TestAccountUniqueUsername(t *testing.T) {
	st := store.New(storetest.Open(t))
	seedAccount(t, st, "bob", "bob@example.com")

	err := st.Accounts().Create(context.Background(), &domain.Account{
		Username: "bob", Email: "other@example.com",
		PasswordHash: []byte("h"), PasswordSalt: []byte("s"), PasswordParams: []byte("{}"),
		VerifyCodeExpiry: time.Now().UTC(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrDuplicate)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAccountColumnUpdates(t *testing.T) {
	st := store.New(storetest.Open(t))
	ctx := context.Background()
	acc := seedAccount(t, st, "carol", "carol@example.com")

	require.NoError(t, st.Accounts().MarkVerified(ctx, acc.ID))
	require.NoError(t, st.Accounts().SetAcceptingMessages(ctx, acc.ID, false))

	got, err := st.Accounts().GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, got.Verified)
	assert.False(t, got.AcceptingMessages)

	err = st.Accounts().MarkVerified(ctx, domain.NewID())
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestDeleteUnverified(t *testing.T) {
	st := store.New(storetest.Open(t))
	ctx := context.Background()
	pending := seedAccount(t, st, "pending", "pending@example.com")
	done := seedAccount(t, st, "done", "done@example.com")
	require.NoError(t, st.Accounts().MarkVerified(ctx, done.ID))

	require.NoError(t, st.Accounts().DeleteUnverified(ctx, pending.ID))
	_, err := st.Accounts().GetByID(ctx, pending.ID)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	assert.ErrorIs(t, st.Accounts().DeleteUnverified(ctx, done.ID), store.ErrRecordNotFound)
	_, err = st.Accounts().GetByID(ctx, done.ID)
	assert.NoError(t, err)
}

func TestMessageAppendListDelete(t *testing.T) {
	st := store.New(storetest.Open(t))
	ctx := context.Background()
	acc := seedAccount(t, st, "dave", "dave@example.com")

	base := time.Now().UTC().Add(-time.Minute)
	first := &domain.Message{Content: "first message", CreatedAt: base}
	second := &domain.Message{Content: "second message", CreatedAt: base.Add(time.Second)}
	require.NoError(t, st.Messages().Append(ctx, "dave", first))
	require.NoError(t, st.Messages().Append(ctx, "dave", second))

	msgs, err := st.Messages().ListByAccount(ctx, acc.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "second message", msgs[0].Content)
	assert.Equal(t, "first message", msgs[1].Content)
	assert.Equal(t, acc.ID, msgs[0].AccountID)

	assert.ErrorIs(t, st.Messages().Delete(ctx, domain.NewID(), first.ID), store.ErrRecordNotFound)
	require.NoError(t, st.Messages().Delete(ctx, acc.ID, first.ID))

	n, err := st.Messages().CountByAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestMessageAppendUnknownAccount(t *testing.T) {
	st := store.New(storetest.Open(t))
	err := st.Messages().Append(context.Background(), "nobody", &domain.Message{Content: "hello there"})
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestWithTxRollsBack(t *testing.T) {
	st := store.New(storetest.Open(t))
	ctx := context.Background()
	boom := errors.New("boom")

	err := st.WithTx(ctx, func(tx *store.Store) error {
		seedAccount(t, tx, "erin", "erin@example.com")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = st.Accounts().GetByUsername(ctx, "erin")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := store.Open(store.Config{Driver: "oracle"})
	assert.Error(t, err)
}

