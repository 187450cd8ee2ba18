package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/dailyword/internal/config"
	"github.com/at-ishikawa/dailyword/internal/database"
)

// Open returns the store selected by cfg.Driver. SQL stores are migrated before use.
func Open(ctx context.Context, cfg config.StorageConfig, dbCfg config.DatabaseConfig) (Store, error) {
	var db *sqlx.DB
	var err error
	switch cfg.Driver {
	case config.DriverFile, "":
		return NewFileStore(cfg.Directory), nil
	case config.DriverSQLite:
		db, err = database.OpenSQLite(cfg.SQLitePath)
	case config.DriverMySQL:
		db, err = database.OpenMySQL(dbCfg)
	case config.DriverPostgres:
		db, err = database.OpenPostgres(dbCfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s database > %w", cfg.Driver, err)
	}

	store := NewSQLStore(db)
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store.Migrate() > %w", err)
	}
	return store, nil
}
