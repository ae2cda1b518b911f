package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateTokenRoundTrip(t *testing.T) {
	t.Parallel()

	v := NewValidator("test-signing-key")
	token, err := v.IssueToken("user-42", time.Hour)
	require.NoError(t, err)

	userID, err := v.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-42", userID)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	t.Parallel()

	token, err := NewValidator("key-one").IssueToken("user-42", time.Hour)
	require.NoError(t, err)

	_, err = NewValidator("key-two").ValidateToken(token)
	require.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	v := NewValidator("test-signing-key")
	token, err := v.IssueToken("user-42", -time.Minute)
	require.NoError(t, err)

	_, err = v.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := NewValidator("test-signing-key").ValidateToken("not-a-jwt")
	require.Error(t, err)
}
