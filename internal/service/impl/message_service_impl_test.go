package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"truefeedback/internal/domain"
	"truefeedback/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestSendAppendsMessage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acc := f.verifiedAccount(t, "alice")

	msg, err := f.messages.Send(ctx, dto.SendMessageRequest{Username: "alice", Content: "You did a great job today"})
	require.NoError(t, err)
	assert.Equal(t, acc.ID, msg.AccountID)

	msgs, err := f.messages.List(ctx, acc.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "You did a great job today", msgs[0].Content)
	assert.True(t, msgs[0].CreatedAt.Equal(f.clock.Now()))
}

func TestSendContentBounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acc := f.verifiedAccount(t, "alice")

	cases := []struct {
		content string
		ok      bool
	}{
		{strings.Repeat("a", 7), false},
		{strings.Repeat("a", 8), true},
		{strings.Repeat("a", 300), true},
		{strings.Repeat("a", 301), false},
		{strings.Repeat("é", 8), true},
	}
	want := 0
	for _, tc := range cases {
		_, err := f.messages.Send(ctx, dto.SendMessageRequest{Username: "alice", Content: tc.content})
		if tc.ok {
			want++
			assert.NoError(t, err, "len %d", len(tc.content))
		} else {
			assert.ErrorIs(t, err, domain.ErrValidation, "len %d", len(tc.content))
		}
	}
	n, err := f.store.Messages().CountByAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(want), n)
}

func TestSendRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acc := f.verifiedAccount(t, "alice")

	_, err := f.messages.Send(ctx, dto.SendMessageRequest{Username: "ghost", Content: "hello there friend"})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = f.messages.Send(ctx, dto.SendMessageRequest{Username: "Alice", Content: "hello there friend"})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = f.accounts.SignUp(ctx, dto.SignUpRequest{Username: "pending", Email: "pending@example.com", Password: "hunter22"})
	require.NoError(t, err)
	_, err = f.messages.Send(ctx, dto.SendMessageRequest{Username: "pending", Content: "hello there friend"})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	require.NoError(t, f.accounts.SetAcceptingMessages(ctx, acc.ID, false))
	_, err = f.messages.Send(ctx, dto.SendMessageRequest{Username: "alice", Content: "hello there friend"})
	assert.ErrorIs(t, err, domain.ErrNotAcceptingMessages)

	n, err := f.store.Messages().CountByAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestConcurrentSendsAreAllKept(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acc := f.verifiedAccount(t, "alice")

	const senders = 8
	var g errgroup.Group
	for i := 0; i < senders; i++ {
		g.Go(func() error {
			_, err := f.messages.Send(ctx, dto.SendMessageRequest{Username: "alice", Content: "concurrent feedback"})
			return err
		})
	}
	require.NoError(t, g.Wait())

	n, err := f.store.Messages().CountByAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(senders), n)
}

func TestListNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acc := f.verifiedAccount(t, "alice")

	for _, c := range []string{"first message", "second message", "third message"} {
		_, err := f.messages.Send(ctx, dto.SendMessageRequest{Username: "alice", Content: c})
		require.NoError(t, err)
		f.clock.Advance(time.Minute)
	}
	msgs, err := f.messages.List(ctx, acc.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "third message", msgs[0].Content)
	assert.Equal(t, "first message", msgs[2].Content)
}

func TestDeleteIsOwnerScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.verifiedAccount(t, "alice")
	bob := f.verifiedAccount(t, "bob")

	msg, err := f.messages.Send(ctx, dto.SendMessageRequest{Username: "alice", Content: "for alice only"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.messages.Delete(ctx, bob.ID, msg.ID), domain.ErrMessageNotFound)
	require.NoError(t, f.messages.Delete(ctx, alice.ID, msg.ID))
	assert.ErrorIs(t, f.messages.Delete(ctx, alice.ID, msg.ID), domain.ErrMessageNotFound)
	assert.ErrorIs(t, f.messages.Delete(ctx, alice.ID, domain.NewID()), domain.ErrMessageNotFound)
}
