package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	store := NewFileStore(dir)

	_, err := store.Get(ctx, "progress")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "progress", []byte("streak: 1\n")))
	require.NoError(t, store.Put(ctx, "progress", []byte("streak: 2\n")))
	got, err := store.Get(ctx, "progress")
	require.NoError(t, err)
	assert.Equal(t, "streak: 2\n", string(got))
	assert.FileExists(t, filepath.Join(dir, "progress.yml"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")

	require.NoError(t, store.Put(ctx, "language_preferences", []byte("native_language: tr\n")))
	require.NoError(t, store.Delete(ctx, "progress", "language_preferences", "missing"))
	_, err = store.Get(ctx, "progress")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(ctx, "language_preferences")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Close())
}

func TestFileStore_InvalidKey(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir())

	for _, key := range []string{"", "../progress", "a/b", "Progress"} {
		t.Run(key, func(t *testing.T) {
			_, err := store.Get(ctx, key)
			assert.ErrorIs(t, err, ErrInvalidKey)
			assert.ErrorIs(t, store.Put(ctx, key, nil), ErrInvalidKey)
			assert.ErrorIs(t, store.Delete(ctx, key), ErrInvalidKey)
		})
	}
}

func TestFileStore_FailedPutLeavesNoTemporaryFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewFileStore(dir)

	// A directory in place of the record makes the rename fail.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "progress.yml", "child"), 0o755))
	assert.Error(t, store.Put(ctx, "progress", []byte("streak: 4\n")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "progress.yml", entries[0].Name())
	assert.True(t, entries[0].IsDir())
}

func TestFileStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewFileStore(t.TempDir())

	assert.ErrorIs(t, store.Put(ctx, "progress", []byte("x")), context.Canceled)
	_, err := store.Get(ctx, "progress")
	assert.ErrorIs(t, err, context.Canceled)
}
