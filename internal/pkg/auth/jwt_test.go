package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekurt/gradebook/internal/app/models"
)

func newTestJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "gradebook.test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	service := newTestJWTService(time.Hour)
	user := &models.User{ID: 7, Email: "jsmith@example.com", Role: models.RoleLecturer}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := service.GenerateTokenPair(user)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, 3600, expiresIn)
	assert.Equal(t, 86400, refreshExpiresIn)

	claims, err := service.ValidateAndExtractClaims(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "jsmith@example.com", claims.Email)
	assert.Equal(t, string(models.RoleLecturer), claims.Role)
	assert.Equal(t, "gradebook.test", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	service := newTestJWTService(time.Hour)
	user := &models.User{ID: 1, Email: "a@example.com", Role: models.RoleAdmin}

	accessToken, _, _, _, err := service.GenerateTokenPair(user)
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "different-secret", AccessTokenExp: time.Hour})
	_, err = other.ValidateToken(accessToken)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	service := newTestJWTService(-time.Minute)
	user := &models.User{ID: 1, Email: "a@example.com", Role: models.RoleAdmin}

	accessToken, _, _, _, err := service.GenerateTokenPair(user)
	require.NoError(t, err)

	_, err = service.ValidateToken(accessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateAndExtractClaimsEmptyToken(t *testing.T) {
	service := newTestJWTService(time.Hour)
	_, err := service.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
