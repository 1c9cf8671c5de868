package service

import (
	"time"

	"artisan/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims of the access tokens accepted by the API.
type Claims struct {
	UserID   string      `json:"userId"`
	UserType entity.Role `json:"userType"`
	jwt.RegisteredClaims
}

// ActorID returns the authenticated user id, preferring the registered subject.
func (c *Claims) ActorID() string {
	if c.RegisteredClaims.Subject != "" {
		return c.RegisteredClaims.Subject
	}

	return c.UserID
}

// TokenService defines the interface for validating JWTs.
// Token issuance belongs to the identity service; GenerateAccessToken exists for local tooling and tests.
type TokenService interface {
	// GenerateAccessToken creates a signed access token for userID with the given role.
	GenerateAccessToken(userID string, role entity.Role, ttl time.Duration) (string, error)

	// ValidateToken checks the validity of a token string and returns its claims.
	ValidateToken(tokenString string) (*Claims, error)
}
