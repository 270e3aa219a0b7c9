package jwt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenExpired is returned when a token is well-formed and signed but past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for bad signatures, malformed payloads and wrong algorithms.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenMissing is returned when a request carries no token.
	ErrTokenMissing = errors.New("token missing")
)

// Claims is the signed payload of both access and refresh tokens.
// ID (jti) is random per token so two tokens issued in the same second differ.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// JWT issues and verifies one class of tokens. Access and refresh tokens
// use separate instances with separate secrets and lifetimes.
type JWT struct {
	SecretKey  string        // Secret key for signing tokens
	Exp        time.Duration // Token expiration duration
	CookieName string        // Cookie consulted before the Authorization header
}

// Opt configures a JWT.
type Opt func(*JWT)

// WithSecretKey sets the signing secret.
func WithSecretKey(secret string) Opt {
	return func(j *JWT) { j.SecretKey = secret }
}

// WithExpiration sets the token lifetime.
func WithExpiration(exp time.Duration) Opt {
	return func(j *JWT) { j.Exp = exp }
}

// WithCookieName sets the cookie GetTokenFromRequest reads first.
func WithCookieName(name string) Opt {
	return func(j *JWT) { j.CookieName = name }
}

// New creates a new JWT instance. Expiration defaults to 15 minutes.
func New(opts ...Opt) *JWT {
	j := &JWT{Exp: 15 * time.Minute}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Generate creates a signed token for userID.
func (j *JWT) Generate(ctx context.Context, userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.Exp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.SecretKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// GetClaims verifies tokenString and returns its claims.
// It fails with ErrTokenExpired or ErrTokenInvalid.
func (j *JWT) GetClaims(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(j.SecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// GetTokenFromRequest extracts the token from the configured cookie, or
// from an "Authorization: Bearer <token>" header. The cookie wins.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	if j.CookieName != "" {
		if c, err := r.Cookie(j.CookieName); err == nil && c.Value != "" {
			return c.Value, nil
		}
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrTokenMissing
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}
