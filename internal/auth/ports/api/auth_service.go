// Package api определяет входные порты сервиса аутентификации.
package api

import (
	"context"

	"projectathena/internal/auth/domain/entities"
	"projectathena/internal/auth/domain/services"
)

// RegisterInput содержит данные для регистрации нового пользователя.
type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Role      entities.Role
	Password  string
}

// AuthUseCase определяет основной порт для операций аутентификации.
type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)

	Register(ctx context.Context, input RegisterInput) (*entities.User, error)

	// Refresh восстанавливает личность из истекшего access токена и
	// обменивает refresh токен на новую пару (ротация).
	Refresh(ctx context.Context, accessToken, refreshToken string) (*services.TokenPair, error)

	Logout(ctx context.Context, userID string) error

	ChangePassword(ctx context.Context, userID, current, next, confirm string) error

	// ValidateToken - снисходительная булева проверка access токена;
	// любая ошибка трактуется как false.
	ValidateToken(ctx context.Context, token string) bool
}
