package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"sales-crm/internal/config"
	"sales-crm/internal/datastore"
	"sales-crm/internal/logger"
	"sales-crm/internal/tokenstore"
)

type DBManager struct {
	DB      *sql.DB
	cfg     config.DatabaseConfig
	dialect datastore.Dialect
	Log     logger.Logger
}

func NewDBManager(cfg config.DatabaseConfig, log logger.Logger) (*DBManager, error) {
	dialect, err := datastore.DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	return &DBManager{cfg: cfg, dialect: dialect, Log: log}, nil
}

func (dm *DBManager) Dialect() datastore.Dialect { return dm.dialect }

func (dm *DBManager) Connect(ctx context.Context) error {
	var (
		driverName string
		source     string
	)
	switch dm.dialect {
	case datastore.DialectPostgres:
		driverName, source = "pgx", dm.cfg.DSN
		dm.Log.Info("Connecting to postgres")
	default:
		driverName, source = "sqlite", dm.cfg.Path
		if _, err := os.Stat(dm.cfg.Path); err != nil {
			dm.Log.Info("No database found at %s. Creating database...", dm.cfg.Path)
			if dir := filepath.Dir(dm.cfg.Path); dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create database directory: %w", err)
				}
			}
		}
	}

	db, err := sql.Open(driverName, source)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	if dm.dialect == datastore.DialectSQLite {
		// sqlite serialises writers; one connection keeps transactions from tripping SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		db.Close() // Close if ping fails
		return fmt.Errorf("failed to ping database: %w", err)
	}

	dm.DB = db
	dm.Log.Info("Successfully connected to %s database.", dm.dialect)
	return nil
}

func (dm *DBManager) Close() error {
	if dm.DB != nil {
		dm.Log.Info("Closing database connection.")
		return dm.DB.Close()
	}
	return nil
}

// Store wraps the open connection in the generic CRUD adapter.
func (dm *DBManager) Store() (*datastore.SQLStore, error) {
	if dm.DB == nil {
		return nil, errors.New("database connection is not established, call Connect() first")
	}
	return datastore.NewSQLStore(dm.DB, dm.dialect, dm.Log), nil
}

// InitTokenStore opens the credential and id-token store. Without an explicit
// path it lives next to the sqlite file.
func (dm *DBManager) InitTokenStore(path string) (*tokenstore.BuntDBTokenStore, error) {
	if path == "" {
		dir := "data"
		if dm.dialect == datastore.DialectSQLite {
			dir = filepath.Dir(dm.cfg.Path)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create token store directory: %w", err)
		}
		path = filepath.Join(dir, "tokens.db")
	}
	return tokenstore.NewBuntDBTokenStore(path)
}

func (dm *DBManager) ApplyMigrations(ctx context.Context) error {
	if dm.DB == nil {
		return errors.New("database connection is not established, call Connect() first")
	}

	dm.Log.Info("Applying database migrations...")
	schema := sqliteSchemaSQL
	if dm.dialect == datastore.DialectPostgres {
		schema = postgresSchemaSQL
	}
	if _, err := dm.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	dm.Log.Info("Database migrations applied successfully.")
	return nil
}
