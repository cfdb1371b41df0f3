package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"authgate/internal/auth/adapters/http/dto"
	"authgate/internal/auth/ports/services"
	"authgate/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "token validation failed"

	MessageAuthRequired = "Authentication required."
	MessageInvalidToken = "Invalid or expired token."
)

const (
	bearerPrefix = "Bearer "
	localUserID  = "userID"
)

// NewAuthMiddleware проверяет bearer токен и кладет ID пользователя в Locals.
func NewAuthMiddleware(tokenService services.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return unauthorized(ctx, MessageAuthRequired)
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return unauthorized(ctx, MessageAuthRequired)
		}

		userID, err := tokenService.ValidateAccessToken(requestCtx, strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix)))
		if err != nil {
			log.Debug(requestCtx, ErrorInvalidToken, zap.Error(err))
			return unauthorized(ctx, MessageInvalidToken)
		}

		ctx.Locals(localUserID, userID)
		return ctx.Next()
	}
}

// UserID возвращает ID пользователя, установленный NewAuthMiddleware.
func UserID(ctx fiber.Ctx) (string, bool) {
	userID, ok := ctx.Locals(localUserID).(string)
	return userID, ok && userID != ""
}

func unauthorized(ctx fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{Message: message})
}
