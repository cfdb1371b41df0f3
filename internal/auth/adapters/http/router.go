// Package http собирает Fiber приложение сервиса аутентификации.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"

	"authgate/internal/auth/adapters/http/dto"
	"authgate/internal/auth/adapters/http/handlers"
	"authgate/internal/auth/adapters/http/middleware"
	"authgate/internal/auth/config"
	"authgate/internal/auth/ports/api"
	"authgate/internal/auth/ports/services"
)

// MessageRouteNotFound - ответ на неизвестный маршрут.
const MessageRouteNotFound = "Route not found."

// Dependencies - все, что нужно маршрутам.
type Dependencies struct {
	AuthUseCase  api.AuthUseCase
	UserUseCase  api.UserUseCase
	TokenService services.TokenService
	DB           handlers.Pinger
	CORS         config.CORSConfig
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.AuthUseCase)
	userHandler := handlers.NewUserHandler(deps.UserUseCase)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/health", healthHandler.Health)

	apiGroup := app.Group("/api")
	apiGroup.Use(cors.New(cors.Config{
		AllowOrigins: deps.CORS.AllowOrigins,
	}))

	apiGroup.Post("/signup", authHandler.Signup)
	apiGroup.Post("/login", authHandler.Login)

	// Защищенные маршруты.
	apiGroup.Get("/me", middleware.NewAuthMiddleware(deps.TokenService), userHandler.Me)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.MessageResponse{
			Message: MessageRouteNotFound,
		})
	})
}
