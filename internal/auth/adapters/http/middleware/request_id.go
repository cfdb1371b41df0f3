// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"authgate/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

const localRequestContext = "requestContext"

// NewRequestIDMiddleware берет X-Request-ID клиента или генерирует новый,
// возвращает его в ответе и кладет контекст запроса с ID в Locals.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}

		ctx.Set(HeaderRequestID, requestID)
		ctx.Locals(localRequestContext, logger.NewRequestIDContext(ctx, requestID))

		return ctx.Next()
	}
}

// RequestContext возвращает контекст запроса с request id, если он был установлен.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(localRequestContext).(context.Context); ok {
		return requestCtx
	}
	return ctx
}
