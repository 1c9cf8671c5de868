// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"artisan/config"
	"artisan/internal/domain/entity"
	"artisan/internal/domain/service"
	"artisan/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret []byte
	now          func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt access secret must be provided")
	}

	return &jwtService{
		accessSecret: []byte(cfg.SecretKey.Access),
		now:          time.Now,
	}, nil
}

// GenerateAccessToken signs an HS256 access token for userID.
func (s *jwtService) GenerateAccessToken(userID string, role entity.Role, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	if !role.IsValid() {
		return "", errors.Errorf("invalid role %q", role)
	}

	now := s.now()
	claims := &service.Claims{
		UserID:   userID,
		UserType: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.accessSecret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}

	return signed, nil
}

// ValidateToken parses and verifies an access token.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.accessSecret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Wrap(err, "invalid access token")
	}
	if !token.Valid {
		return nil, errors.New("invalid access token")
	}
	if claims.ActorID() == "" {
		return nil, errors.New("access token has no subject")
	}
	if !claims.UserType.IsValid() {
		return nil, errors.Errorf("access token has invalid user type %q", claims.UserType)
	}

	return claims, nil
}
