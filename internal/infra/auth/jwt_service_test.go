package auth

import (
	"testing"
	"time"

	"artisan/config"
	"artisan/internal/domain/entity"
	"artisan/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret

	return cfg
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("test_access_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken("user-1", entity.RoleSeller, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.ActorID())
	assert.Equal(t, entity.RoleSeller, claims.UserType)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_MissingSecret(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(""))
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestJWTService_InvalidTokens(t *testing.T) {
	secret := "test_access_secret_key_very_long_for_testing"
	svc, err := NewJWTService(newTestConfig(secret))
	require.NoError(t, err)

	other, err := NewJWTService(newTestConfig("another_secret_key_very_long_for_testing"))
	require.NoError(t, err)
	foreign, err := other.GenerateAccessToken("user-1", entity.RoleCustomer, time.Hour)
	require.NoError(t, err)

	expired, err := svc.GenerateAccessToken("user-1", entity.RoleCustomer, -time.Minute)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &service.Claims{
		UserType:         entity.RoleCustomer,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &service.Claims{
		UserType: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, &service.Claims{
		UserType: entity.RoleCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "malformed", token: "clearly-not-a-jwt-token-format"},
		{name: "wrong secret", token: foreign},
		{name: "expired", token: expired},
		{name: "no expiry", token: noExpiry},
		{name: "unknown user type", token: badRole},
		{name: "unsigned", token: noneAlg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_GenerateRejectsBadInput(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("test_access_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	_, err = svc.GenerateAccessToken("", entity.RoleCustomer, time.Hour)
	assert.Error(t, err)

	_, err = svc.GenerateAccessToken("user-1", "admin", time.Hour)
	assert.Error(t, err)
}
