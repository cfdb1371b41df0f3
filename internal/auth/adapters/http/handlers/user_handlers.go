package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"authgate/internal/auth/adapters/http/dto"
	"authgate/internal/auth/adapters/http/middleware"
	"authgate/internal/auth/ports/api"
	"authgate/pkg/logger"
)

// LogHandlerMe - сообщение лога для GET /api/me.
const LogHandlerMe = "user handler: me"

// UserHandler отдает данные текущего пользователя.
type UserHandler struct {
	userUseCase api.UserUseCase
}

// NewUserHandler создает обработчик пользователя.
func NewUserHandler(userUseCase api.UserUseCase) *UserHandler {
	return &UserHandler{userUseCase: userUseCase}
}

// Me обрабатывает GET /api/me. Требует NewAuthMiddleware перед собой.
func (h *UserHandler) Me(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerMe)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.Status(http.StatusUnauthorized).JSON(dto.MessageResponse{Message: middleware.MessageAuthRequired})
	}

	user, profile, err := h.userUseCase.GetProfile(requestCtx, userID)
	if err != nil {
		return sendError(ctx, err)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.MeResponse{
		User:    dto.NewUserView(user),
		Profile: dto.NewProfileView(profile),
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
