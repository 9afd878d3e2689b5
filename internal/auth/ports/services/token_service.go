// Package services определяет порты вспомогательных сервисов аутентификации.
package services

import (
	"context"
	"time"

	"projectathena/internal/auth/domain/entities"
	"projectathena/internal/auth/domain/services"
)

// TokenService определяет интерфейс для операций с токенами.
type TokenService interface {
	// IssueAccessToken создает подписанный access токен с claims
	// пользователя и возвращает момент его истечения.
	IssueAccessToken(ctx context.Context, user *entities.User) (string, time.Time, error)

	// ValidateAccessToken полностью проверяет токен, включая срок действия.
	ValidateAccessToken(ctx context.Context, token string) (*services.AccessTokenClaims, error)

	// ExtractClaimsIgnoringExpiry проверяет подпись и алгоритм, но
	// игнорирует срок действия. Используется ТОЛЬКО потоком обновления
	// токенов для восстановления личности из уже истекшего access токена.
	ExtractClaimsIgnoringExpiry(ctx context.Context, token string) (*services.AccessTokenClaims, error)

	// GenerateRefreshSecret возвращает криптографически случайную
	// непрозрачную строку без внутренней структуры.
	GenerateRefreshSecret(ctx context.Context) (string, error)
}
