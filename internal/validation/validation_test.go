package validation

import (
	"errors"
	"strings"
	"testing"

	"truefeedback/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageContentBounds(t *testing.T) {
	cases := []struct {
		name    string
		content string
		rule    string
	}{
		{name: "empty", content: "", rule: "min"},
		{name: "seven chars", content: "1234567", rule: "min"},
		{name: "eight chars", content: "12345678"},
		{name: "three hundred chars", content: strings.Repeat("a", 300)},
		{name: "three hundred one chars", content: strings.Repeat("a", 301), rule: "max"},
		{name: "multibyte counts runes", content: strings.Repeat("é", 300)},
		{name: "multibyte short", content: "ééééééé", rule: "min"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := MessageContent(tc.content)
			if tc.rule == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, "content", fe.Field)
			assert.Equal(t, tc.rule, fe.Rule)
		})
	}
}

func TestUsername(t *testing.T) {
	assert.NoError(t, Username("alice_01"))
	assert.Error(t, Username("a"))
	assert.Error(t, Username(strings.Repeat("b", 21)))
	assert.Error(t, Username("bad name"))
	assert.Error(t, Username("émile"))
}

func TestEmailAndPassword(t *testing.T) {
	assert.NoError(t, Email("alice@example.com"))
	assert.Error(t, Email(""))
	assert.Error(t, Email("not-an-email"))
	assert.Error(t, Email("Alice <alice@example.com>"))

	assert.NoError(t, Password("secret"))
	assert.Error(t, Password("short"))
}

func TestVerifyCode(t *testing.T) {
	assert.NoError(t, VerifyCode("123456"))
	assert.Error(t, VerifyCode("12345"))
	assert.Error(t, VerifyCode("12345a"))
	assert.Error(t, VerifyCode("1234567"))
}
