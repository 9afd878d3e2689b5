package db_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/undefinedlabs/go-mpatch"

	"projectathena/internal/auth/config"
	"projectathena/internal/auth/db"
	"projectathena/pkg/db/postgres"
	"projectathena/pkg/logger"
)

const migrationsDir = "./migrations"

var (
	errMigration  = errors.New("migration error")
	errConnection = errors.New("connection error")
	errPath       = errors.New("path error")
)

func safeUnpatch(t *testing.T, p *mpatch.Patch) {
	t.Helper()
	if err := p.Unpatch(); err != nil {
		t.Errorf("failed to unpatch: %v", err)
	}
}

func testConfig() *config.PostgresConfig {
	return &config.PostgresConfig{
		Host:     "testhost",
		Port:     5432,
		User:     "testuser",
		Password: "testpass",
		Database: "testdb",
		MinConn:  1,
		MaxConn:  10,
	}
}

func TestNew(t *testing.T) {
	err := logger.InitGlobalLoggerWithLevel(logger.Development, "info")
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("migration error aborts initialization", func(t *testing.T) {
		migratePatch, err := mpatch.PatchMethod(postgres.MigrateDSN, func(_ context.Context, _, _ string) error {
			return errMigration
		})
		require.NoError(t, err)
		defer safeUnpatch(t, migratePatch)

		database, err := db.New(ctx, testConfig(), migrationsDir)

		require.Error(t, err)
		assert.Nil(t, database)
		require.ErrorContains(t, err, db.ErrDBMigrations)
		assert.ErrorIs(t, err, errMigration)
	})

	t.Run("connection error after successful migration", func(t *testing.T) {
		migratePatch, err := mpatch.PatchMethod(postgres.MigrateDSN, func(_ context.Context, _, _ string) error {
			return nil
		})
		require.NoError(t, err)
		defer safeUnpatch(t, migratePatch)

		newPatch, err := mpatch.PatchMethod(postgres.New, func(_ context.Context, _ string, _, _ int) (*postgres.Database, error) {
			return nil, errConnection
		})
		require.NoError(t, err)
		defer safeUnpatch(t, newPatch)

		database, err := db.New(ctx, testConfig(), migrationsDir)

		require.Error(t, err)
		assert.Nil(t, database)
		require.ErrorContains(t, err, db.ErrDBConnection)
		assert.ErrorIs(t, err, errConnection)
	})

	t.Run("relative migrations path resolution failure", func(t *testing.T) {
		absPatch, err := mpatch.PatchMethod(filepath.Abs, func(_ string) (string, error) {
			return "", errPath
		})
		require.NoError(t, err)
		defer safeUnpatch(t, absPatch)

		database, err := db.New(ctx, testConfig(), "./relative/path")

		require.Error(t, err)
		assert.Nil(t, database)
		require.ErrorContains(t, err, db.ErrGetPath)
		assert.ErrorIs(t, err, errPath)
	})
}

func TestClose(t *testing.T) {
	err := logger.InitGlobalLoggerWithLevel(logger.Development, "info")
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("close delegates to the underlying database", func(t *testing.T) {
		closeCalled := false

		closePatch, err := mpatch.PatchInstanceMethodByName(reflect.TypeOf(&postgres.Database{}), "Close", func(_ *postgres.Database, _ context.Context) {
			closeCalled = true
		})
		require.NoError(t, err)
		defer safeUnpatch(t, closePatch)

		migratePatch, err := mpatch.PatchMethod(postgres.MigrateDSN, func(_ context.Context, _, _ string) error {
			return nil
		})
		require.NoError(t, err)
		defer safeUnpatch(t, migratePatch)

		newPatch, err := mpatch.PatchMethod(postgres.New, func(_ context.Context, _ string, _, _ int) (*postgres.Database, error) {
			return &postgres.Database{}, nil
		})
		require.NoError(t, err)
		defer safeUnpatch(t, newPatch)

		database, err := db.New(ctx, testConfig(), migrationsDir)
		require.NoError(t, err)

		database.Close(ctx)

		require.True(t, closeCalled)
	})
}
