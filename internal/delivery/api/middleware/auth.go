package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "artisan/internal/delivery/context"
	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	keyClaims    = "claims"
	bearerPrefix = "Bearer "
)

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	Logger       *slog.Logger
}

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc: params.TokenService,
		logger:   params.Logger,
	}
}

// Authenticate requires a valid bearer access token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := bearerToken(c)
		if err != nil {
			return err
		}
		if tokenString == "" {
			return domainerrors.ErrUnauthorized.WithDetails("authorization header is missing")
		}

		if err := m.authenticate(c, tokenString); err != nil {
			return err
		}

		return next(c)
	}
}

// OptionalAuthenticate identifies the caller when a token is present. A request
// without a token continues anonymously; an invalid token is still rejected.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := bearerToken(c)
		if err != nil {
			return err
		}
		if tokenString != "" {
			if err := m.authenticate(c, tokenString); err != nil {
				return err
			}
		}

		return next(c)
	}
}

// RequireRole checks the authenticated user's role. It must be used after Authenticate.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := GetClaims(c)
			if !ok {
				return domainerrors.ErrUnauthorized
			}
			if claims.UserType != requiredRole {
				return domainerrors.ErrForbidden.WithDetails("requires role " + requiredRole.String())
			}

			return next(c)
		}
	}
}

func (m *AuthMiddleware) authenticate(c echo.Context, tokenString string) error {
	claims, err := m.tokenSvc.ValidateToken(tokenString)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
			Debug("Rejected access token", slog.Any("error", err))

		return domainerrors.ErrUnauthorized.WithDetails("invalid or expired token")
	}

	c.Set(keyClaims, claims)

	return nil
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", nil
	}

	token, found := strings.CutPrefix(header, bearerPrefix)
	if !found || strings.TrimSpace(token) == "" {
		return "", domainerrors.ErrUnauthorized.WithDetails("invalid token format, must be Bearer token")
	}

	return strings.TrimSpace(token), nil
}

// GetClaims returns the claims stored by Authenticate.
func GetClaims(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(keyClaims).(*service.Claims)

	return claims, ok && claims != nil
}

// GetUserID returns the authenticated user id, or false for anonymous requests.
func GetUserID(c echo.Context) (string, bool) {
	claims, ok := GetClaims(c)
	if !ok {
		return "", false
	}

	return claims.ActorID(), true
}
