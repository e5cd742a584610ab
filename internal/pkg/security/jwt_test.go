package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "secret", "identity", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret", "identity")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
}

func TestValidateTokenRejects(t *testing.T) {
	token, err := GenerateToken(42, "secret", "identity", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other", "identity")
	assert.Error(t, err)

	_, err = ValidateToken(token, "secret", "someone-else")
	assert.Error(t, err)

	expired, err := GenerateToken(42, "secret", "identity", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(expired, "secret", "identity")
	assert.Error(t, err)
}

func TestExtractSignature(t *testing.T) {
	sig, err := ExtractSignature("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "c", sig)

	_, err = ExtractSignature("broken")
	assert.Error(t, err)
}
