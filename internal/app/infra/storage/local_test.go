package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePutAndDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	key, err := store.Put(context.Background(), []byte("image-data"), "lesion.JPG")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "scan-"))
	assert.True(t, strings.HasSuffix(key, ".jpg")) // 扩展名统一小写

	data, err := os.ReadFile(filepath.Join(store.Dir(), key))
	require.NoError(t, err)
	assert.Equal(t, []byte("image-data"), data)

	require.NoError(t, store.Delete(context.Background(), key))
	_, err = os.Stat(filepath.Join(store.Dir(), key))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStoreUniqueKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		key, err := store.Put(context.Background(), []byte("x"), "same-name.png")
		require.NoError(t, err)
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}

func TestLocalStoreDeleteMissingKey(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	err = store.Delete(context.Background(), "scan-123-456.jpg")
	assert.Error(t, err)
}

func TestLocalStoreDeleteIgnoresPathTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	outside := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))

	// 穿越路径被压成基名，目录外文件不受影响
	_ = store.Delete(context.Background(), "../secret.txt")
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestNewLocalStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewLocalStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
