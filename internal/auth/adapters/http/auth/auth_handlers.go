// Package auth содержит HTTP обработчики сервиса аутентификации.
package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"projectathena/internal/auth/adapters/http/middleware"
	"projectathena/internal/auth/app/dto"
	"projectathena/internal/auth/domain/entities"
	"projectathena/internal/auth/domain/services"
	"projectathena/internal/auth/ports/api"
	"projectathena/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister       = "auth handler: register"
	LogHandlerLogin          = "auth handler: login"
	LogHandlerRefresh        = "auth handler: refresh"
	LogHandlerLogout         = "auth handler: logout"
	LogHandlerChangePassword = "auth handler: change password"
	LogHandlerValidateToken  = "auth handler: validate token"
	LogHandlerGetProfile     = "auth handler: get profile"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
	ErrorUnauthorized         = "unauthorized"
)

// Вспомогательная функция для отправки ошибки HTTP.
func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// statusForAuthError переводит доменные ошибки в HTTP статусы. Причины
// отказа в аутентификации не раскрываются клиенту сверх категории.
func statusForAuthError(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, services.ErrAccountLockedOut):
		return http.StatusLocked, "account temporarily locked"
	case errors.Is(err, services.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, services.ErrEmailAlreadyExists):
		return http.StatusConflict, "user with this email already exists"
	case errors.Is(err, services.ErrPasswordConfirmation):
		return http.StatusBadRequest, "password confirmation does not match"
	case errors.Is(err, services.ErrPolicyViolation):
		return http.StatusBadRequest, "password or role violates account policy"
	case errors.Is(err, entities.ErrInvalidEmail),
		errors.Is(err, entities.ErrEmptyName),
		errors.Is(err, entities.ErrInvalidRole):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, entities.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// Handler содержит HTTP обработчики для аутентификации и профиля.
type Handler struct {
	authUseCase api.AuthUseCase
	userUseCase api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authUseCase api.AuthUseCase, userUseCase api.UserUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" || req.FirstName == "" || req.LastName == "" || req.Password == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "email, first_name, last_name and password are required")
	}

	role, err := entities.ParseRole(req.Role)
	if err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	user, err := h.authUseCase.Register(requestCtx, api.RegisterInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
		Password:  req.Password,
	})
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		status, message := statusForAuthError(err)
		return sendErrorResponse(ctx, status, message)
	}

	if err := ctx.Status(http.StatusCreated).JSON(profileResponse(user)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" || req.Password == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "email and password are required")
	}

	pair, err := h.authUseCase.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		status, message := statusForAuthError(err)
		return sendErrorResponse(ctx, status, message)
	}

	if err := ctx.Status(http.StatusOK).JSON(tokenResponse(pair)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Refresh обрабатывает запрос на обновление пары токенов.
func (h *Handler) Refresh(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRefresh)

	var req dto.RefreshRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.AccessToken == "" || req.RefreshToken == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "access token and refresh token are required")
	}

	pair, err := h.authUseCase.Refresh(requestCtx, req.AccessToken, req.RefreshToken)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		status, message := statusForAuthError(err)
		return sendErrorResponse(ctx, status, message)
	}

	if err := ctx.Status(http.StatusOK).JSON(tokenResponse(pair)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Logout обрабатывает запрос на выход пользователя.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogout)

	userID, ok := ctx.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	if err := h.authUseCase.Logout(requestCtx, userID); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, "internal server error")
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "logged out successfully",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// ChangePassword обрабатывает запрос на смену пароля.
func (h *Handler) ChangePassword(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerChangePassword)

	userID, ok := ctx.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.ChangePasswordRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "current, new and confirmation passwords are required")
	}

	err := h.authUseCase.ChangePassword(requestCtx, userID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		status, message := statusForAuthError(err)
		return sendErrorResponse(ctx, status, message)
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "password changed successfully",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// ValidateToken обрабатывает запрос на проверку access токена.
// Всегда отвечает 200 с булевым вердиктом.
func (h *Handler) ValidateToken(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerValidateToken)

	var req dto.ValidateTokenRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	valid := h.authUseCase.ValidateToken(requestCtx, req.AccessToken)

	if err := ctx.Status(http.StatusOK).JSON(dto.ValidateTokenResponse{Valid: valid}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// GetProfile обрабатывает запрос на получение профиля пользователя.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetProfile)

	userID, ok := ctx.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	user, err := h.userUseCase.GetUserProfile(requestCtx, userID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		status, message := statusForAuthError(err)
		return sendErrorResponse(ctx, status, message)
	}

	if err := ctx.Status(http.StatusOK).JSON(profileResponse(user)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

func tokenResponse(pair *services.TokenPair) dto.TokenResponse {
	return dto.TokenResponse{
		UserID:       pair.UserID,
		Email:        pair.Email,
		FirstName:    pair.FirstName,
		LastName:     pair.LastName,
		Role:         string(pair.Role),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}
}

func profileResponse(user *entities.User) dto.UserProfileResponse {
	return dto.UserProfileResponse{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		LastLogin: user.LastLoginAt,
		CreatedAt: user.CreatedAt,
	}
}
