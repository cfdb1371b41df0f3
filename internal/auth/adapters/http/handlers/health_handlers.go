package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"authgate/internal/auth/adapters/http/middleware"
	"authgate/pkg/logger"
)

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler отвечает на GET /health.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler создает обработчик проверки здоровья.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health возвращает {"status":"ok"} или 503, если база недоступна.
func (h *HealthHandler) Health(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	if err := h.db.Ping(requestCtx); err != nil {
		logger.Log(requestCtx).Warn(requestCtx, "health check failed", zap.Error(err))
		return ctx.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}

	return ctx.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
}
