// Package services предоставляет реализации вспомогательных сервисов
// аутентификации: работу с паролями и JWT токенами.
package services

import (
	"fmt"
	"time"

	"projectathena/internal/auth/ports/services"
)

// ServiceFactory создает все необходимые сервисы для аутентификации.
type ServiceFactory struct {
	passwordService services.PasswordService
	tokenService    services.TokenService
}

// NewServiceFactory создает новую фабрику сервисов. Возвращает ошибку,
// если секретный ключ подписи не задан.
func NewServiceFactory(
	jwtSecretKey string,
	accessTokenTTL time.Duration,
	bcryptCost int,
) (*ServiceFactory, error) {
	tokenService, err := NewJWT(jwtSecretKey, accessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("creating service factory: %w", err)
	}

	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenService:    tokenService,
	}, nil
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() services.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис для работы с токенами.
func (f *ServiceFactory) TokenService() services.TokenService {
	return f.tokenService
}
