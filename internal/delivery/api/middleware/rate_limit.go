package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"artisan/internal/delivery/api/response"
	deliverycontext "artisan/internal/delivery/context"

	"github.com/go-chi/httprate"
	"github.com/labstack/echo/v4"
)

// RateLimit limits requests per client IP to requestsPerMinute. A non-positive
// limit disables the middleware.
func RateLimit(requestsPerMinute int) echo.MiddlewareFunc {
	if requestsPerMinute <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	limiter := httprate.Limit(
		requestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(writeRateLimited),
	)

	return echo.WrapMiddleware(limiter)
}

func writeRateLimited(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w.Header().Set(echo.HeaderRetryAfter, strconv.Itoa(int(time.Minute.Seconds())))
	w.WriteHeader(http.StatusTooManyRequests)

	_ = json.NewEncoder(w).Encode(response.ErrorResponse{
		Error: &response.ErrorInfo{
			Code:      "RATE_LIMITED",
			Message:   "Too many requests, please slow down",
			Retryable: true,
		},
		Meta: &response.MetaInfo{
			RequestID: deliverycontext.GetRequestIDFromContext(r.Context()),
		},
	})
}
