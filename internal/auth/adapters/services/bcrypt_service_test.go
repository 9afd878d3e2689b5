package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	adapters "projectathena/internal/auth/adapters/services"
	"projectathena/internal/auth/domain/services"
)

func TestBcryptHashAndVerify(t *testing.T) {
	svc := adapters.NewBcrypt(bcrypt.MinCost)
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		hash, err := svc.Hash(ctx, "Passw0rd")
		require.NoError(t, err)
		require.NotEmpty(t, hash)
		assert.True(t, strings.HasPrefix(hash, "$2"))

		ok, err := svc.Verify(ctx, "Passw0rd", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong password is a verdict, not an error", func(t *testing.T) {
		hash, err := svc.Hash(ctx, "Passw0rd")
		require.NoError(t, err)

		ok, err := svc.Verify(ctx, "WrongPass1", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("same password yields different hashes", func(t *testing.T) {
		first, err := svc.Hash(ctx, "Passw0rd")
		require.NoError(t, err)
		second, err := svc.Hash(ctx, "Passw0rd")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("empty password rejected", func(t *testing.T) {
		_, err := svc.Hash(ctx, "")
		assert.ErrorIs(t, err, services.ErrInvalidPassword)
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := svc.Hash(ctx, "short1")
		assert.ErrorIs(t, err, services.ErrInvalidPassword)
	})

	t.Run("malformed hash is an error", func(t *testing.T) {
		_, err := svc.Verify(ctx, "Passw0rd", "not-a-bcrypt-hash")
		assert.Error(t, err)
	})
}
