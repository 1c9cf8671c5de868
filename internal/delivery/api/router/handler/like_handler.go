package handler

import (
	"log/slog"
	"net/http"

	"artisan/internal/delivery/api/middleware"
	"artisan/internal/delivery/api/response"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// LikeHandlerParams holds dependencies for LikeHandler, injected by Fx.
type LikeHandlerParams struct {
	fx.In

	LikeUC usecase.LikeUsecase
	Logger *slog.Logger
}

// LikeHandler serves the like toggle endpoint.
type LikeHandler struct {
	likeUC usecase.LikeUsecase
	logger *slog.Logger
}

// NewLikeHandler is the constructor for LikeHandler
func NewLikeHandler(params LikeHandlerParams) *LikeHandler {
	return &LikeHandler{
		likeUC: params.LikeUC,
		logger: params.Logger,
	}
}

// ToggleLike handles POST /api/v1/products/:id/like
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	result, err := h.likeUC.ToggleLike(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, LikeResponse{
		Liked:     result.Liked,
		LikeCount: result.LikeCount,
	})
}
