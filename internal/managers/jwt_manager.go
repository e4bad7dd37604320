package managers

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/activity-atlas/server/internal/schemas"
	"github.com/activity-atlas/server/internal/utils"
)

// tokenLifetime is the fixed TTL of every issued token. There is no
// revocation mechanism; a token stays valid until it expires.
const tokenLifetime = time.Hour

const bearerPrefix = "Bearer "

var errInvalidAuthHeader = errors.New("invalid authorization header")

// JWTMgr defines the interface for the token service: issuing and verifying
// signed, time-limited bearer tokens, plus the middleware binding a verified
// identity to the request context.
type JWTMgr interface {
	GenerateClaims(userId, email string) jwt.Claims
	GenerateJWT(claims jwt.Claims) (string, error)
	ValidateJWT(tokenString string) (jwt.Claims, error)
	JWTMiddleware() gin.HandlerFunc
}

// JWTManager handles JWT generation, signing, and validation with an Ed25519 key pair.
type JWTManager struct {
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey
}

// NewJWTManager creates a new JWTManager with the given key pair.
func NewJWTManager(privateKey ed25519.PrivateKey, publicKey ed25519.PublicKey) JWTMgr {
	return &JWTManager{
		privateKey: privateKey,
		publicKey:  publicKey,
	}
}

// NewJWTManagerFromFile creates a new JWTManager with the key pair stored at
// KEY_PAIR_PATH, generating and persisting a fresh pair on first startup.
// A failure here is a startup-class error, not a per-request one.
func NewJWTManagerFromFile() (JWTMgr, error) {
	path := os.Getenv("KEY_PAIR_PATH")

	privateKey, publicKey, err := loadKeyPair(path)
	if err != nil {
		privateKey, publicKey, err = generateKeyPair(path)
		if err != nil {
			return nil, err
		}
	}

	return NewJWTManager(privateKey, publicKey), nil
}

// GenerateClaims generates the claims for the given user identity.
func (jm *JWTManager) GenerateClaims(userId, email string) jwt.Claims {
	now := time.Now()
	return jwt.MapClaims{
		"iss":   "activity-atlas",
		"iat":   now.Unix(),
		"exp":   now.Add(tokenLifetime).Unix(),
		"sub":   userId,
		"email": email,
	}
}

// GenerateJWT generates a new JWT with the given claims.
func (jm *JWTManager) GenerateJWT(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	return token.SignedString(jm.privateKey)
}

// ValidateJWT validates the given JWT and returns the claims if valid.
// Expired, tampered and malformed tokens all fail here.
func (jm *JWTManager) ValidateJWT(tokenString string) (jwt.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodEdDSA.Alg() {
			return nil, fmt.Errorf("invalid signing method")
		}

		return jm.publicKey, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return token.Claims, nil
}

// JWTMiddleware extracts and verifies the bearer token of the request and attaches
// the verified claims to the request context. The attached claims are the only
// trusted source of request identity; request bodies are never consulted for it.
func (jm *JWTManager) JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) || len(authHeader) <= len(bearerPrefix) {
			utils.WriteAndLogError(c, schemas.Unauthenticated, http.StatusUnauthorized, errInvalidAuthHeader)
			c.Abort()
			return
		}

		claims, err := jm.ValidateJWT(authHeader[len(bearerPrefix):])
		if err != nil {
			utils.WriteAndLogError(c, schemas.Unauthenticated, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		c.Set(utils.ClaimsKey.String(), claims)
		c.Next()
	}
}

// generateKeyPair generates a new key pair and saves it to a file.
func generateKeyPair(path string) (ed25519.PrivateKey, ed25519.PublicKey, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}

	if err = saveKeyPair(privateKey, publicKey, path); err != nil {
		return nil, nil, err
	}

	return privateKey, publicKey, nil
}

// saveKeyPair saves the key pair to the specified file.
func saveKeyPair(privateKey ed25519.PrivateKey, publicKey ed25519.PublicKey, path string) error {
	keyPairBytes := append(privateKey, publicKey...)
	return os.WriteFile(path, keyPairBytes, 0600)
}

// loadKeyPair loads the key pair from the specified file.
func loadKeyPair(path string) (ed25519.PrivateKey, ed25519.PublicKey, error) {
	keyPairBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	// The key pair is the concatenation of private and public keys
	if len(keyPairBytes) != ed25519.PrivateKeySize+ed25519.PublicKeySize {
		return nil, nil, fmt.Errorf("invalid key pair format")
	}

	return keyPairBytes[:ed25519.PrivateKeySize], keyPairBytes[ed25519.PrivateKeySize:], nil
}
