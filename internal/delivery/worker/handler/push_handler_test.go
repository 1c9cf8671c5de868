package handler

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"artisan/config"
	deliverycontext "artisan/internal/delivery/context"
	"artisan/internal/domain/constants"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/service"
	mocks "artisan/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPushHandler(t *testing.T, cfg *config.Config) (*PushHandler, *mocks.MockLikeUsecase) {
	t.Helper()

	likeUC := mocks.NewMockLikeUsecase(t)
	h := NewPushHandler(PushHandlerParams{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		LikeUC: likeUC,
	})

	return h, likeUC
}

func pushBody(t *testing.T, event *service.LikeToggledEvent, attributes map[string]string) string {
	t.Helper()

	data, err := json.Marshal(event)
	require.NoError(t, err)

	msg := PubSubMessage{Subscription: "projects/test/subscriptions/like-reconciler"}
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.MessageID = "m-1"
	msg.Message.Attributes = attributes

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func servePush(h *PushHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	_ = h.HandlePush(e.NewContext(req, rec))

	return rec
}

func TestHandlePush_Reconciles(t *testing.T) {
	h, likeUC := newPushHandler(t, &config.Config{})
	likeUC.EXPECT().ReconcileLikeCount(mock.Anything, "p1").Return(3, nil).Once()

	rec := servePush(h, pushBody(t, &service.LikeToggledEvent{ProductID: "p1", UserID: "u1", Liked: true}, map[string]string{
		"event_type": service.EventTypeLikeToggled,
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlePush_PropagatesRequestID(t *testing.T) {
	h, likeUC := newPushHandler(t, &config.Config{})
	likeUC.EXPECT().ReconcileLikeCount(mock.Anything, "p1").
		RunAndReturn(func(ctx context.Context, _ string) (int, error) {
			assert.Equal(t, "req-from-attr", deliverycontext.GetRequestIDFromContext(ctx))

			return 1, nil
		}).Once()

	rec := servePush(h, pushBody(t, &service.LikeToggledEvent{ProductID: "p1", RequestID: "req-from-event"}, map[string]string{
		"request_id": "req-from-attr",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlePush_Failures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "store unavailable is redelivered",
			err:      domainerrors.NewStoreUnavailableError(errors.New("deadline exceeded"), "reconcile"),
			wantCode: http.StatusServiceUnavailable,
		},
		{
			name:     "missing product is acknowledged",
			err:      domainerrors.ErrProductNotFound,
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, likeUC := newPushHandler(t, &config.Config{})
			likeUC.EXPECT().ReconcileLikeCount(mock.Anything, "p1").Return(0, tt.err).Once()

			rec := servePush(h, pushBody(t, &service.LikeToggledEvent{ProductID: "p1"}, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandlePush_BadMessages(t *testing.T) {
	h, _ := newPushHandler(t, &config.Config{})

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "{"},
		{name: "not base64", body: `{"message":{"data":"%%%"}}`},
		{name: "no product", body: pushBody(t, &service.LikeToggledEvent{UserID: "u1"}, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, servePush(h, tt.body).Code)
		})
	}
}

func TestHandlePush_IgnoresOtherEvents(t *testing.T) {
	h, _ := newPushHandler(t, &config.Config{})

	rec := servePush(h, pushBody(t, &service.LikeToggledEvent{ProductID: "p1"}, map[string]string{
		"event_type": "product.deleted",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlePush_VerifiesToken(t *testing.T) {
	cfg := &config.Config{
		Worker: &config.WorkerConfig{PushAudience: "https://worker.example.com/push"},
		PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle},
	}
	h, likeUC := newPushHandler(t, cfg)
	require.True(t, h.verifyPushAuth)

	var gotAudience string
	h.verify = func(_ *http.Request, audience string) error {
		gotAudience = audience

		return errors.New("bad token")
	}

	rec := servePush(h, pushBody(t, &service.LikeToggledEvent{ProductID: "p1"}, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "https://worker.example.com/push", gotAudience)

	h.verify = func(*http.Request, string) error { return nil }
	likeUC.EXPECT().ReconcileLikeCount(mock.Anything, "p1").Return(0, nil).Once()

	rec = servePush(h, pushBody(t, &service.LikeToggledEvent{ProductID: "p1"}, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewPushHandler_VerificationDefaults(t *testing.T) {
	develop := &config.Config{PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle}}
	develop.Env.Env = constants.EnvDevelop
	h, _ := newPushHandler(t, develop)
	assert.False(t, h.verifyPushAuth)

	production := &config.Config{PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle}}
	production.Env.Env = "production"
	h, _ = newPushHandler(t, production)
	assert.True(t, h.verifyPushAuth)
}
