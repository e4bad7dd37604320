package managers

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTManager(t *testing.T) JWTMgr {
	t.Helper()

	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	return NewJWTManager(privateKey, publicKey)
}

func TestJWTRoundTrip(t *testing.T) {
	jwtMgr := newTestJWTManager(t)

	token, err := jwtMgr.GenerateJWT(jwtMgr.GenerateClaims("user-123", "a@x.com"))
	require.NoError(t, err)

	parsed, err := jwtMgr.ValidateJWT(token)
	require.NoError(t, err)

	claims := parsed.(jwt.MapClaims)
	assert.Equal(t, "user-123", claims["sub"])
	assert.Equal(t, "a@x.com", claims["email"])
	assert.Equal(t, "activity-atlas", claims["iss"])

	expiry, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry.Time, time.Minute)
}

func TestExpiredTokenRejected(t *testing.T) {
	jwtMgr := newTestJWTManager(t)

	claims := jwt.MapClaims{
		"iss":   "activity-atlas",
		"iat":   time.Now().Add(-2 * time.Hour).Unix(),
		"exp":   time.Now().Add(-time.Hour).Unix(),
		"sub":   "user-123",
		"email": "a@x.com",
	}
	token, err := jwtMgr.GenerateJWT(claims)
	require.NoError(t, err)

	_, err = jwtMgr.ValidateJWT(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTamperedTokenRejected(t *testing.T) {
	jwtMgr := newTestJWTManager(t)

	token, err := jwtMgr.GenerateJWT(jwtMgr.GenerateClaims("user-123", "a@x.com"))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Forged payload, original signature
	forgedPayload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"someone-else"}`))
	forged := parts[0] + "." + forgedPayload + "." + parts[2]

	_, err = jwtMgr.ValidateJWT(forged)
	assert.Error(t, err)
}

func TestForeignKeyRejected(t *testing.T) {
	issuer := newTestJWTManager(t)
	verifier := newTestJWTManager(t)

	token, err := issuer.GenerateJWT(issuer.GenerateClaims("user-123", "a@x.com"))
	require.NoError(t, err)

	_, err = verifier.ValidateJWT(token)
	assert.Error(t, err)
}

func TestKeyPairPersistedAcrossRestarts(t *testing.T) {
	t.Setenv("KEY_PAIR_PATH", filepath.Join(t.TempDir(), "keypair"))

	first, err := NewJWTManagerFromFile()
	require.NoError(t, err)

	token, err := first.GenerateJWT(first.GenerateClaims("user-123", "a@x.com"))
	require.NoError(t, err)

	second, err := NewJWTManagerFromFile()
	require.NoError(t, err)

	_, err = second.ValidateJWT(token)
	assert.NoError(t, err)
}
