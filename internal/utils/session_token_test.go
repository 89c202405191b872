package utils

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenCodec_IssueAndVerify(t *testing.T) {
	codec := NewSessionTokenCodec("test-secret")

	token, err := codec.Issue("user-123", "alice@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, 2, len(strings.Split(token, ".")), "token should have exactly two segments")

	claims, status := codec.Verify(token)
	require.Equal(t, TokenValid, status)
	require.NotNil(t, claims)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Greater(t, claims.ExpiresAt, claims.IssuedAt)
}

func TestSessionTokenCodec_Expired(t *testing.T) {
	codec := NewSessionTokenCodec("test-secret")

	token, err := codec.Issue("user-123", "", -time.Minute)
	require.NoError(t, err)

	claims, status := codec.Verify(token)
	assert.Equal(t, TokenExpired, status)
	assert.Nil(t, claims, "claims must not be returned for an expired token")
}

func TestSessionTokenCodec_TamperedPayload(t *testing.T) {
	codec := NewSessionTokenCodec("test-secret")

	token, err := codec.Issue("user-123", "", time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	require.NoError(t, err)

	// Flip a single bit in the payload and keep the original signature.
	payload[0] ^= 0x01
	tampered := base64.RawURLEncoding.EncodeToString(payload) + "." + parts[1]

	claims, status := codec.Verify(tampered)
	assert.Equal(t, TokenInvalid, status)
	assert.Nil(t, claims)
}

func TestSessionTokenCodec_TamperedSignature(t *testing.T) {
	codec := NewSessionTokenCodec("test-secret")

	token, err := codec.Issue("user-123", "", time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	sig[len(sig)-1] ^= 0x80
	tampered := parts[0] + "." + base64.RawURLEncoding.EncodeToString(sig)

	_, status := codec.Verify(tampered)
	assert.Equal(t, TokenInvalid, status)
}

func TestSessionTokenCodec_WrongSecret(t *testing.T) {
	issuer := NewSessionTokenCodec("secret-a")
	verifier := NewSessionTokenCodec("secret-b")

	token, err := issuer.Issue("user-123", "", time.Hour)
	require.NoError(t, err)

	_, status := verifier.Verify(token)
	assert.Equal(t, TokenInvalid, status)
}

func TestSessionTokenCodec_MalformedInputs(t *testing.T) {
	codec := NewSessionTokenCodec("test-secret")

	testCases := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "no separator", token: "abcdef"},
		{name: "too many segments", token: "a.b.c"},
		{name: "invalid base64 payload", token: "!!!.c2ln"},
		{name: "invalid base64 signature", token: "cGF5bG9hZA.!!!"},
		{name: "valid base64 garbage", token: base64.RawURLEncoding.EncodeToString([]byte("junk")) + "." + base64.RawURLEncoding.EncodeToString([]byte("junk"))},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			claims, status := codec.Verify(tc.token)
			assert.Equal(t, TokenInvalid, status)
			assert.Nil(t, claims)
		})
	}
}

func TestSessionTokenCodec_MissingUserID(t *testing.T) {
	codec := NewSessionTokenCodec("test-secret")

	// A correctly signed token with an empty uid is still not acceptable.
	token, err := codec.Issue("", "", time.Hour)
	require.NoError(t, err)

	_, status := codec.Verify(token)
	assert.Equal(t, TokenInvalid, status)
}
