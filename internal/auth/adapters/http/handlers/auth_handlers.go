// Package handlers содержит HTTP обработчики сервиса аутентификации.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"authgate/internal/auth/adapters/http/dto"
	"authgate/internal/auth/adapters/http/middleware"
	"authgate/internal/auth/app"
	"authgate/internal/auth/ports/api"
	"authgate/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerSignup = "auth handler: signup"
	LogHandlerLogin  = "auth handler: login"

	MessageSignupSuccess = "Account created successfully."
	MessageLoginSuccess  = "Logged in successfully."
)

// AuthHandler обрабатывает регистрацию и вход.
type AuthHandler struct {
	authUseCase api.AuthUseCase
}

// NewAuthHandler создает обработчик авторизации.
func NewAuthHandler(authUseCase api.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase}
}

// Signup обрабатывает POST /api/signup.
func (h *AuthHandler) Signup(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerSignup)

	creds := dto.CredentialsFromMap(decodeBody(ctx))

	result, err := h.authUseCase.Register(requestCtx, creds.Username, creds.Email, creds.Password)
	if err != nil {
		return sendError(ctx, err)
	}

	if err := ctx.Status(http.StatusCreated).JSON(dto.AuthResponse{
		Message: MessageSignupSuccess,
		Token:   result.Token,
		User:    dto.NewUserView(result.User),
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Login обрабатывает POST /api/login. Идентификатор - username, если он задан, иначе email.
func (h *AuthHandler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	creds := dto.CredentialsFromMap(decodeBody(ctx))
	identifier := app.LoginIdentifier(creds.Username, creds.Email)

	result, err := h.authUseCase.Login(requestCtx, identifier, creds.Password)
	if err != nil {
		log.Debug(requestCtx, "login rejected", zap.Error(err))
		return sendError(ctx, err)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.AuthResponse{
		Message: MessageLoginSuccess,
		Token:   result.Token,
		User:    dto.NewUserView(result.User),
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
