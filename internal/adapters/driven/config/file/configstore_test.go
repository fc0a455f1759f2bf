package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set(KeyAuthor, "alice"))
	require.NoError(t, store.Set(KeyMaxAttempts, 5))
	require.NoError(t, store.Set("verbose", true))
	require.NoError(t, store.Set(KeyPropertyAnalyzers, []string{"attachment/caption"}))

	assert.Equal(t, "alice", store.GetString(KeyAuthor))
	assert.Equal(t, 5, store.GetInt(KeyMaxAttempts))
	assert.True(t, store.GetBool("verbose"))
	assert.Equal(t, []string{"attachment/caption"}, store.GetStringSlice(KeyPropertyAnalyzers))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_WrongTypesReturnZeroValues(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set(KeyAuthor, 42))

	assert.Equal(t, "", store.GetString(KeyAuthor))
	assert.Equal(t, 0, store.GetInt("missing"))
	assert.False(t, store.GetBool(KeyAuthor))
	assert.Nil(t, store.GetStringSlice(KeyAuthor))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store1, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store1.Set(KeyDebounceMS, 500))
	require.NoError(t, store1.Set(KeyAuthor, "alice"))

	store2, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 500, store2.GetInt(KeyDebounceMS))
	assert.Equal(t, "alice", store2.GetString(KeyAuthor))
}

func TestConfigStore_LoadFlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[watch]\nauthor = \"bob\"\ndebounce_ms = 250\n\n[notify]\nrate = 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "bob", store.GetString(KeyAuthor))
	assert.Equal(t, 250, store.GetInt(KeyDebounceMS))
	assert.Equal(t, 3, store.GetInt(KeyNotifyRate))
}

func TestConfigStore_LoadInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [valid"), 0600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set(KeyAuthor, "alice"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
