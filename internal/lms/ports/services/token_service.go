// Package services определяет интерфейсы сервисов для сервиса курсов.
package services

import (
	"context"
	"errors"
)

// SessionClaims содержит данные сессии, извлеченные из access токена.
type SessionClaims struct {
	UserID string
	Email  string
	Role   string
}

// TokenService определяет интерфейс проверки access токенов. Сервис
// курсов владеет только проверяющей половиной: токены выдает сервис
// аутентификации с тем же общим секретом.
type TokenService interface {
	ValidateAccessToken(ctx context.Context, token string) (*SessionClaims, error)
}

// Ошибки, связанные с JWT токенами.
var (
	ErrInvalidJWTToken = errors.New("invalid JWT token")
	ErrExpiredJWTToken = errors.New("JWT token has expired")
)
