package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheTimMir/dnlit-quest-bot/internal/domain"
)

func TestFileStore_LoadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "data.json"))

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := NewFileStore(path)

	snap := domain.Snapshot{
		"9A":    {100, 200},
		"other": {},
		"admin": {1},
	}
	require.NoError(t, store.Save(context.Background(), snap))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Snapshot{"9A": {100, 200}}))
	require.NoError(t, store.Save(ctx, domain.Snapshot{"9A": {100}}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Snapshot{"9A": {100}}, loaded)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_DedupesOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	raw := []byte(`{"9A": [100, 200, 100, 100], "9B": [300]}`)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	loaded, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 200}, loaded["9A"])
	assert.Equal(t, []int64{300}, loaded["9B"])
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
}
