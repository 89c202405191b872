package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TokenStatus is the outcome of verifying a signed session token. Verification
// never returns an error: every possible input maps onto one of these states.
type TokenStatus int

const (
	// TokenValid means the signature checked out and the token has not expired.
	TokenValid TokenStatus = iota
	// TokenExpired means the signature checked out but the expiry has passed.
	TokenExpired
	// TokenInvalid means the token is malformed or its signature does not match.
	TokenInvalid
)

// SessionClaims is the payload carried inside a signed session token.
type SessionClaims struct {
	UserID    string `json:"uid"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat"` // unix seconds
	ExpiresAt int64  `json:"exp"` // unix seconds
}

// SessionTokenCodec mints and verifies stateless HMAC-signed session tokens of
// the form base64url(payload) + "." + base64url(HMAC-SHA256(secret, payload)).
//
// The codec holds no mutable state beyond the secret set at construction, so a
// single instance is safe for concurrent use. Validity of an issued token is a
// pure function of its bytes and the wall clock; there is no server-side
// revocation for this token type. Flows that need revocation use the DB-backed
// session records instead.
type SessionTokenCodec struct {
	secret []byte
}

// NewSessionTokenCodec creates a codec signing with the given secret. The
// secret is injected rather than read from package state so tests can supply
// deterministic keys and deployments can rotate them.
func NewSessionTokenCodec(secret string) *SessionTokenCodec {
	return &SessionTokenCodec{secret: []byte(secret)}
}

// Issue builds and signs a token for the given principal, valid for ttl.
func (c *SessionTokenCodec) Issue(userID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:    userID,
		Email:     email,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session token payload: %w", err)
	}
	sig := c.sign(payload)
	return base64.RawURLEncoding.EncodeToString(payload) + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// Verify checks a token's signature and expiry. The two checks are
// independent: a tampered token is TokenInvalid regardless of its timestamps,
// and a genuine token past its expiry is TokenExpired. Claims are returned
// only for TokenValid.
//
// Verify is total over all byte strings: malformed base64, a missing
// separator, or garbage payload all come back as TokenInvalid.
func (c *SessionTokenCodec) Verify(token string) (*SessionClaims, TokenStatus) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return nil, TokenInvalid
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, TokenInvalid
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, TokenInvalid
	}
	// hmac.Equal is constant time, so the comparison leaks nothing about where
	// a forged signature first diverges.
	if !hmac.Equal(sig, c.sign(payload)) {
		return nil, TokenInvalid
	}
	var claims SessionClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, TokenInvalid
	}
	if claims.UserID == "" {
		return nil, TokenInvalid
	}
	if time.Now().Unix() >= claims.ExpiresAt {
		return nil, TokenExpired
	}
	return &claims, TokenValid
}

func (c *SessionTokenCodec) sign(payload []byte) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(payload)
	return mac.Sum(nil)
}
