package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/dailyword/schemas"
)

const (
	selectRecordQuery = "SELECT value FROM kv_records WHERE record_key = ?"
	deleteRecordQuery = "DELETE FROM kv_records WHERE record_key IN (?)"

	upsertMySQLQuery = "INSERT INTO kv_records (record_key, value, updated_at) VALUES (?, ?, ?) " +
		"ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = VALUES(updated_at)"
	upsertQuery = "INSERT INTO kv_records (record_key, value, updated_at) VALUES (?, ?, ?) " +
		"ON CONFLICT (record_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at"
)

// SQLStore keeps records in the kv_records table of a SQLite, MySQL or PostgreSQL database.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{
		db:  db,
		now: time.Now,
	}
}

// Migrate creates the kv_records table for the database's driver when it does not exist.
func (s *SQLStore) Migrate(ctx context.Context) error {
	name := "kv/" + s.db.DriverName() + ".sql"
	schema, err := fs.ReadFile(schemas.KeyValue, name)
	if err != nil {
		return fmt.Errorf("fs.ReadFile(%s) > %w", name, err)
	}
	if _, err := s.db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("db.ExecContext(%s) > %w", name, err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.GetContext(ctx, &value, s.db.Rebind(selectRecordQuery), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(kv_records) > %w", err)
	}
	return value, nil
}

func (s *SQLStore) Put(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	query := upsertQuery
	if s.db.DriverName() == "mysql" {
		query = upsertMySQLQuery
	}
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), key, value, s.now().UTC()); err != nil {
		return fmt.Errorf("db.ExecContext(upsert kv_records) > %w", err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	for _, key := range keys {
		if err := validateKey(key); err != nil {
			return err
		}
	}

	query, args, err := sqlx.In(deleteRecordQuery, keys)
	if err != nil {
		return fmt.Errorf("sqlx.In() > %w", err)
	}
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("db.ExecContext(delete kv_records) > %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
