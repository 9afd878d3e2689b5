// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	svc "projectathena/internal/auth/ports/services"
	"projectathena/pkg/logger"
)

// Ключи, под которыми middleware кладет данные сессии в Locals.
const (
	UserIDKey = "userID"
	RoleKey   = "userRole"
	EmailKey  = "userEmail"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorTokenRejected      = "token rejected"
)

// NewAuthMiddleware создает промежуточное ПО, проверяющее Bearer токен
// и кладущее идентификатор и роль пользователя в Locals запроса.
func NewAuthMiddleware(tokenSvc svc.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorNoAuthHeader,
			})
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorInvalidTokenFormat,
			})
		}

		claims, err := tokenSvc.ValidateAccessToken(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorTokenRejected, zap.Error(err))
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorTokenRejected,
			})
		}

		ctx.Locals(UserIDKey, claims.UserID)
		ctx.Locals(RoleKey, claims.Role)
		ctx.Locals(EmailKey, claims.Email)

		return ctx.Next()
	}
}
