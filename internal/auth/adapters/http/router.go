// Package http содержит компоненты HTTP сервера сервиса аутентификации.
package http

import (
	"github.com/gofiber/fiber/v3"

	"projectathena/internal/auth/adapters/http/auth"
	"projectathena/internal/auth/adapters/http/middleware"
	"projectathena/internal/auth/ports/api"
	svc "projectathena/internal/auth/ports/services"
)

// SetupRouter настраивает маршрутизацию HTTP сервера.
func SetupRouter(app *fiber.App, authUseCase api.AuthUseCase, userUseCase api.UserUseCase, tokenSvc svc.TokenService) {
	authHandler := auth.NewHandler(authUseCase, userUseCase)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Auth routes (публичные).
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Post("/validate", authHandler.ValidateToken)

	// Auth routes, требующие действующего access токена.
	authRoutes.Post("/logout", authHandler.Logout, middleware.NewAuthMiddleware(tokenSvc))
	authRoutes.Post("/change-password", authHandler.ChangePassword, middleware.NewAuthMiddleware(tokenSvc))

	// Защищенные маршруты профиля.
	userRoutes := apiV1.Group("/user")
	userRoutes.Use(middleware.NewAuthMiddleware(tokenSvc))
	userRoutes.Get("/profile", authHandler.GetProfile)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
