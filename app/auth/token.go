package auth

import (
	"errors"
	"fmt"
	"time"

	"griddle/app/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is how long issued tokens remain valid. There is no
// server-side revocation: logout is client-side discard, and a token
// stays usable until its expiry elapses.
const DefaultTokenTTL = 24 * time.Hour

var (
	// ErrTokenMalformed is returned for tokens that are not
	// structurally valid JWTs or use a disallowed algorithm.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenSignature is returned when the signature does not verify
	// against the server secret.
	ErrTokenSignature = errors.New("token signature is invalid")
	// ErrTokenExpired is returned for well-formed, correctly signed
	// tokens whose expiry has elapsed.
	ErrTokenExpired = errors.New("token has expired")
)

// Claims is the decoded payload of a verified bearer token. The role
// is as of issuance time: a role change does not take effect until the
// holder's token expires and a new one is issued.
type Claims struct {
	UserID   int         `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the claims carry the admin role.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == models.RoleAdmin
}

// TokenManager mints and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager with the given secret and the
// default TTL.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: DefaultTokenTTL}
}

// NewTokenManagerWithTTL creates a TokenManager with an explicit TTL.
func NewTokenManagerWithTTL(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue mints a signed token carrying the user's identity and role.
func (m *TokenManager) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %v", err)
	}
	return signed, nil
}

// Verify decodes and validates a bearer token, returning its claims.
// Failures map to ErrTokenMalformed, ErrTokenSignature or
// ErrTokenExpired.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrTokenSignature
	default:
		return nil, ErrTokenMalformed
	}
}
