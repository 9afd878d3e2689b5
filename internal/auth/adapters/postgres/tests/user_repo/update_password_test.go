package userrepo_test

import (
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectathena/internal/auth/adapters/postgres"
	"projectathena/internal/auth/domain/entities"
)

func TestUserRepository_UpdatePassword(t *testing.T) {
	ctx := testContext(t)

	t.Run("Успешное обновление хэша", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("(?s)UPDATE users.+SET password_hash").
			WithArgs("user-123", "new_hash").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := postgres.NewUserRepository(mock)
		err = repo.UpdatePassword(ctx, "user-123", "new_hash")

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("(?s)UPDATE users.+SET password_hash").
			WithArgs("missing", "new_hash").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := postgres.NewUserRepository(mock)
		err = repo.UpdatePassword(ctx, "missing", "new_hash")

		assert.ErrorIs(t, err, entities.ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка БД", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("(?s)UPDATE users.+SET password_hash").
			WithArgs("user-123", "new_hash").
			WillReturnError(errors.New("connection reset"))

		repo := postgres.NewUserRepository(mock)
		err = repo.UpdatePassword(ctx, "user-123", "new_hash")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "error updating password")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
