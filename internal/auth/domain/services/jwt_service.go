package services

import (
	"errors"
	"time"

	"projectathena/internal/auth/domain/entities"
)

// Ошибки, связанные с JWT токенами.
var (
	ErrInvalidJWTToken    = errors.New("invalid JWT token")
	ErrExpiredJWTToken    = errors.New("JWT token has expired")
	ErrGeneratingJWTToken = errors.New("failed to generate JWT token")
	// ErrMissingSecretKey - фатальная ошибка конфигурации: сервис не должен
	// стартовать без секретного ключа подписи.
	ErrMissingSecretKey = errors.New("JWT secret key is not configured")
)

// JWTConfig содержит настройки для JWT сервиса.
type JWTConfig struct {
	SecretKey      []byte
	AccessTokenTTL time.Duration
}

// AccessTokenClaims определяет доменное представление claims access токена.
type AccessTokenClaims struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
	Role      entities.Role
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
