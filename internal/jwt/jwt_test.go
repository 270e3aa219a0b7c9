package jwt

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_GenerateAndGetClaims(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(time.Minute))

	userID := uuid.New()
	ctx := context.Background()

	token, err := j.Generate(ctx, userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := j.GetClaims(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestJWT_TokensIssuedTogetherDiffer(t *testing.T) {
	j := New(WithSecretKey("test-secret"))
	ctx := context.Background()
	userID := uuid.New()

	first, err := j.Generate(ctx, userID)
	require.NoError(t, err)
	second, err := j.Generate(ctx, userID)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(-time.Minute))

	ctx := context.Background()
	token, err := j.Generate(ctx, uuid.New())
	assert.NoError(t, err)

	claims, err := j.GetClaims(ctx, token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Nil(t, claims)
}

func TestJWT_InvalidToken(t *testing.T) {
	j := New(WithSecretKey("secret"))
	ctx := context.Background()

	claims, err := j.GetClaims(ctx, "invalid.token.string")
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.Nil(t, claims)
}

func TestJWT_GetClaims_WrongSecret(t *testing.T) {
	access := New(WithSecretKey("access-secret"))
	refresh := New(WithSecretKey("refresh-secret"))
	ctx := context.Background()

	token, err := access.Generate(ctx, uuid.New())
	assert.NoError(t, err)

	_, err = refresh.GetClaims(ctx, token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWT_RejectsOtherAlgorithms(t *testing.T) {
	j := New(WithSecretKey("secret"))
	ctx := context.Background()

	claims := Claims{
		UserID: uuid.New(),
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = j.GetClaims(ctx, token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWT_RejectsMissingUserID(t *testing.T) {
	j := New(WithSecretKey("secret"))
	ctx := context.Background()

	claims := gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Minute))}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = j.GetClaims(ctx, token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWT_GetTokenFromRequest(t *testing.T) {
	j := New(WithCookieName("accessToken"))
	ctx := context.Background()

	tests := []struct {
		name          string
		header        string
		cookie        string
		expectedToken string
		expectError   bool
	}{
		{"ValidBearer", "Bearer mytoken123", "", "mytoken123", false},
		{"LowercaseBearer", "bearer mytoken123", "", "mytoken123", false},
		{"CookieOnly", "", "cookietoken", "cookietoken", false},
		{"CookieWins", "Bearer headertoken", "cookietoken", "cookietoken", false},
		{"NoHeader", "", "", "", true},
		{"InvalidFormat", "Token mytoken123", "", "", true},
		{"TooManyParts", "Bearer a b c", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "accessToken", Value: tt.cookie})
			}

			token, err := j.GetTokenFromRequest(ctx, req)
			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedToken, token)
			}
		})
	}
}

func TestJWT_TamperedPayload(t *testing.T) {
	j := New(WithSecretKey("secret"))
	ctx := context.Background()

	token, err := j.Generate(ctx, uuid.New())
	require.NoError(t, err)

	other, err := j.Generate(ctx, uuid.New())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	parts[1] = strings.Split(other, ".")[1]

	_, err = j.GetClaims(ctx, strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
