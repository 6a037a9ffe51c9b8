package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placenet/portal/internal/app/models"
	"github.com/placenet/portal/internal/pkg/apperrors"
)

func newTestJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "placenet.test",
	})
}

func testUser() *models.User {
	return &models.User{
		UserID: "21CS042",
		Email:  "student@college.edu",
		Role:   models.RoleStudent,
		Name:   "Test Student",
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	accessToken, refreshToken, expiresIn, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "21CS042", claims.UserID)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "placenet.test", claims.Issuer)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)

	accessToken, _, _, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)

	claims, err := svc.ValidateToken(accessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	// The decoded claims survive expiry so callers can report when the
	// token expired.
	require.NotNil(t, claims)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.Time.Before(time.Now()))
}

func TestValidateToken_WrongSecret(t *testing.T) {
	other := NewJWTService(JWTConfig{
		SecretKey:       "a-different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "placenet.test",
	})

	accessToken, _, _, err := other.GenerateTokenPair(testUser())
	require.NoError(t, err)

	svc := newTestJWTService(time.Hour)
	_, err = svc.ValidateToken(accessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestValidateToken_NotActiveYet(t *testing.T) {
	now := time.Now()
	claims := &Claims{
		UserID: "21CS042",
		Role:   "student",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(2 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	svc := newTestJWTService(time.Hour)
	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotActive)
}

func TestValidateToken_Malformed(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.ValidateToken(tokenString)
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid, "token %q", tokenString)
	}
}

func TestValidateToken_RejectsUnknownRole(t *testing.T) {
	now := time.Now()
	claims := &Claims{
		UserID: "21CS042",
		Role:   "superuser",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	svc := newTestJWTService(time.Hour)
	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	// A raw token without the Bearer prefix is accepted as-is.
	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, apperrors.ErrNoToken)
}
