package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/unrolled/secure"
)

// SecureHeaders sets the browser hardening headers of a JSON API.
// isDevelopment relaxes the checks for plain HTTP local runs.
func SecureHeaders(isDevelopment bool) echo.MiddlewareFunc {
	sec := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         isDevelopment,
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := sec.Process(c.Response().Writer, c.Request()); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "request rejected by security policy")
			}

			return next(c)
		}
	}
}
