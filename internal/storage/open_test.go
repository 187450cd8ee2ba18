package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/dailyword/internal/config"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.StorageConfig
		wantErr bool
	}{
		{name: "file", cfg: config.StorageConfig{Driver: config.DriverFile, Directory: filepath.Join(dir, "files")}},
		{name: "sqlite", cfg: config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(dir, "db", "dailyword.db")}},
		{name: "unknown driver", cfg: config.StorageConfig{Driver: "redis"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(ctx, tt.cfg, config.DatabaseConfig{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer func() {
				assert.NoError(t, store.Close())
			}()

			_, err = store.Get(ctx, "progress")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Put(ctx, "progress", []byte("streak: 1\n")))
			require.NoError(t, store.Put(ctx, "progress", []byte("streak: 2\n")))
			got, err := store.Get(ctx, "progress")
			require.NoError(t, err)
			assert.Equal(t, "streak: 2\n", string(got))

			require.NoError(t, store.Delete(ctx, "progress"))
			_, err = store.Get(ctx, "progress")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}
