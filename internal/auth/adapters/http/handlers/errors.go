package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"authgate/internal/auth/adapters/http/dto"
	"authgate/internal/auth/adapters/http/middleware"
	"authgate/internal/auth/domain/entities"
	"authgate/pkg/logger"
)

// ErrorFailedToServeRequest - сообщение лога для внутренних ошибок.
const ErrorFailedToServeRequest = "failed to serve request"

// StatusFor выбирает HTTP статус по категории ошибки.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, entities.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, entities.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// sendError отвечает сообщением доменной ошибки или общим текстом для внутренней.
func sendError(ctx fiber.Ctx, err error) error {
	status := StatusFor(err)
	message := middleware.MessageInternalError

	var domainErr *entities.Error
	if status != http.StatusInternalServerError && errors.As(err, &domainErr) {
		message = domainErr.Message()
	} else {
		requestCtx := middleware.RequestContext(ctx)
		logger.Log(requestCtx).Error(requestCtx, ErrorFailedToServeRequest,
			zap.String("path", ctx.Path()), zap.Error(err))
		status = http.StatusInternalServerError
	}

	if sendErr := ctx.Status(status).JSON(dto.MessageResponse{Message: message}); sendErr != nil {
		return fmt.Errorf("error sending response: %w", sendErr)
	}
	return nil
}

// decodeBody читает тело как JSON объект. Пустое, битое или не объектное тело дает пустую карту.
func decodeBody(ctx fiber.Ctx) map[string]any {
	var body map[string]any
	if err := ctx.Bind().JSON(&body); err != nil || body == nil {
		requestCtx := middleware.RequestContext(ctx)
		logger.Log(requestCtx).Debug(requestCtx, "request body is not a JSON object, treating as empty")
		return map[string]any{}
	}
	return body
}
