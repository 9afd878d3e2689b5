// Package postgres содержит реализацию хранилища учетных данных поверх PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"projectathena/internal/auth/domain/entities"
	"projectathena/internal/auth/domain/services"
	"projectathena/internal/auth/ports/repositories"
	"projectathena/pkg/logger"
)

// PgxPoolInterface определяет используемое подмножество pgxpool.Pool.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// Политика блокировки учетной записи. Принадлежит хранилищу учетных
// данных; оркестратор сессий ее только потребляет.
const (
	maxFailedLoginAttempts = 5
	lockoutDuration        = 15 * time.Minute
)

// uniqueViolationCode - код ошибки PostgreSQL для нарушения уникальности.
const uniqueViolationCode = "23505"

const userColumns = `id, email, first_name, last_name, role, is_active, password_hash,
               failed_login_attempts, locked_until, last_login_at, created_at, updated_at`

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.IsActive,
		&user.PasswordHash,
		&user.FailedLoginAttempts,
		&user.LockedUntil,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE id = $1
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return user, nil
}

// FindByEmail находит пользователя по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmail"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE email = $1
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("email", email))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by email", zap.Error(err))
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}

	return user, nil
}

// Create создает нового пользователя. Нарушение уникальности email
// преобразуется в services.ErrEmailAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (email, first_name, last_name, role, is_active, password_hash)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + userColumns + `
    `

	createdUser, err := scanUser(r.pool.QueryRow(ctx, query,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Role,
		user.IsActive,
		user.PasswordHash,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			log.Debug(ctx, "email already registered", zap.String("email", user.Email))
			return nil, services.ErrEmailAlreadyExists
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return createdUser, nil
}

// RecordLoginFailure увеличивает счетчик неудачных входов и включает
// блокировку при достижении порога. Возвращает true, если учетная запись
// заблокирована после этой неудачи.
func (r *UserRepository) RecordLoginFailure(ctx context.Context, id string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "RecordLoginFailure"))

	query := `
        UPDATE users
        SET failed_login_attempts = failed_login_attempts + 1,
            locked_until = CASE
                WHEN failed_login_attempts + 1 >= $2 THEN NOW() + $3::interval
                ELSE locked_until
            END,
            updated_at = NOW()
        WHERE id = $1
        RETURNING failed_login_attempts, locked_until
    `

	var attempts int
	var lockedUntil *time.Time
	err := r.pool.QueryRow(ctx, query, id, maxFailedLoginAttempts, lockoutDuration.String()).
		Scan(&attempts, &lockedUntil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, entities.ErrUserNotFound
		}
		log.Error(ctx, "error recording login failure", zap.Error(err))
		return false, fmt.Errorf("error recording login failure: %w", err)
	}

	locked := lockedUntil != nil && time.Now().Before(*lockedUntil)
	if locked {
		log.Info(ctx, "account locked out", zap.String("id", id), zap.Int("attempts", attempts))
	}

	return locked, nil
}

// RecordLoginSuccess сбрасывает счетчик неудачных входов и фиксирует
// время последнего входа.
func (r *UserRepository) RecordLoginSuccess(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "RecordLoginSuccess"))

	query := `
        UPDATE users
        SET failed_login_attempts = 0,
            locked_until = NULL,
            last_login_at = NOW(),
            updated_at = NOW()
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		log.Error(ctx, "error recording login success", zap.Error(err))
		return fmt.Errorf("error recording login success: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for login success", zap.String("id", id))
		return entities.ErrUserNotFound
	}

	return nil
}

// UpdatePassword обновляет хэш пароля пользователя.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "UpdatePassword"))

	query := `
        UPDATE users
        SET password_hash = $2, updated_at = NOW()
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, id, passwordHash)
	if err != nil {
		log.Error(ctx, "error updating password", zap.Error(err))
		return fmt.Errorf("error updating password: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for password update", zap.String("id", id))
		return entities.ErrUserNotFound
	}

	return nil
}
