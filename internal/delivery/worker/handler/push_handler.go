// Package handler contains the worker's Pub/Sub push handlers.
package handler

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"artisan/config"
	deliverycontext "artisan/internal/delivery/context"
	"artisan/internal/domain/constants"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/service"
	"artisan/internal/usecase"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// TokenVerifier checks the OIDC token of a push request.
type TokenVerifier func(req *http.Request, audience string) error

// PushHandler reconciles like counts from like.toggled push messages
type PushHandler struct {
	verifyPushAuth bool
	audience       string
	verify         TokenVerifier
	logger         *slog.Logger
	likeUC         usecase.LikeUsecase
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	LikeUC usecase.LikeUsecase
}

// NewPushHandler creates a new Pub/Sub push handler. Push tokens are verified
// when an audience is configured, or for the Google provider outside development.
func NewPushHandler(params PushHandlerParams) *PushHandler {
	audience := ""
	if params.Config.Worker != nil {
		audience = params.Config.Worker.PushAudience
	}
	verifyPushAuth := audience != "" || (params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop)

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		audience:       audience,
		verify:         verifyPubSubToken,
		logger:         params.Logger,
		likeUC:         params.LikeUC,
	}
}

// HandlePush handles incoming Pub/Sub push messages. Retryable failures answer
// 503 so Pub/Sub redelivers; anything else is acknowledged.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verify(c.Request(), h.audience); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	if eventType := pushMsg.Message.Attributes["event_type"]; eventType != "" && eventType != service.EventTypeLikeToggled {
		h.logger.Debug("[Worker] Ignoring event", slog.String("event_type", eventType))

		return c.NoContent(http.StatusOK)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.LikeToggledEvent
	if err := json.Unmarshal(data, &event); err != nil || event.ProductID == "" {
		h.logger.Error("[Worker] Failed to parse like event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	ctx = deliverycontext.WithRequestScope(ctx, h.logger, requestID)
	reqLogger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	count, err := h.likeUC.ReconcileLikeCount(ctx, event.ProductID)
	if err != nil {
		retryable := domainerrors.IsRetryable(err)
		reqLogger.Error("[Worker] Failed to reconcile like count",
			slog.String("product_id", event.ProductID),
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err),
			slog.Bool("retryable", retryable),
		)
		if retryable {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Debug("[Worker] Like count reconciled",
		slog.String("product_id", event.ProductID),
		slog.Int("like_count", count),
	)

	return c.NoContent(http.StatusOK)
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.LikeToggledEvent) string {
	// 1. Try message attributes (from Pub/Sub)
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	// 2. Try event field (from JSON payload)
	if event.RequestID != "" {
		return event.RequestID
	}

	// 3. Try existing context (from RequestIDMiddleware via X-Request-Id header)
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests.
// An empty audience defaults to the URL of the push endpoint.
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request, audience string) error {
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found {
		return errors.New("invalid authorization header format")
	}

	if audience == "" {
		scheme := "https"
		if req.TLS == nil {
			scheme = "http"
		}
		audience = fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
	}

	payload, err := idtoken.Validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
