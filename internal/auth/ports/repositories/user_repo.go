// Package repositories определяет порты хранения данных сервиса аутентификации.
package repositories

import (
	"context"

	"projectathena/internal/auth/domain/entities"
)

// UserRepository определяет интерфейс хранилища учетных данных. Политика
// блокировки учетной записи (счетчик неудачных входов и окно блокировки)
// реализуется хранилищем; вызывающая сторона ее только потребляет.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	// RecordLoginFailure увеличивает счетчик неудачных входов и включает
	// блокировку при достижении порога. Возвращает true, если учетная
	// запись заблокирована после этой неудачи.
	RecordLoginFailure(ctx context.Context, id string) (bool, error)

	// RecordLoginSuccess сбрасывает счетчик неудачных входов и фиксирует
	// время последнего входа.
	RecordLoginSuccess(ctx context.Context, id string) error

	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
