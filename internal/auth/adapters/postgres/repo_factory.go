package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"projectathena/internal/auth/ports/repositories"
)

// RepositoryFactory создает репозитории сервиса аутентификации,
// размещенные в PostgreSQL.
type RepositoryFactory struct {
	userRepo repositories.UserRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool *pgxpool.Pool) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo: NewUserRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}
