package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-crm/internal/config"
	"sales-crm/internal/datastore"
	"sales-crm/internal/logger"
)

func TestConnectMigrateTwice(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dm, err := NewDBManager(config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(dir, "nested", "crm.db")}, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, dm.Connect(ctx))
	defer dm.Close()

	require.NoError(t, dm.ApplyMigrations(ctx))
	require.NoError(t, dm.ApplyMigrations(ctx), "schema is idempotent")

	store, err := dm.Store()
	require.NoError(t, err)
	assert.NoError(t, store.Ping(ctx))

	ts, err := dm.InitTokenStore("")
	require.NoError(t, err)
	defer ts.Close()
	assert.FileExists(t, filepath.Join(dir, "nested", "tokens.db"))
}

func TestUnknownDriver(t *testing.T) {
	_, err := NewDBManager(config.DatabaseConfig{Driver: "oracle"}, logger.NewNop())
	assert.Error(t, err)
}

func TestStoreBeforeConnect(t *testing.T) {
	dm, err := NewDBManager(config.DatabaseConfig{Driver: "postgres", DSN: "postgres://x"}, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, datastore.DialectPostgres, dm.Dialect())
	_, err = dm.Store()
	assert.Error(t, err)
	assert.Error(t, dm.ApplyMigrations(context.Background()))
}
