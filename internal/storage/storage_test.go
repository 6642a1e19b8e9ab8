package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	local, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	payload := []byte(`[{"text":"bread","category":"Bread/Buns","checked":false,"source":"manual","count":1}]`)
	require.NoError(t, local.SaveCollection("shoppingList", payload))

	got, err := local.LoadCollection("shoppingList")
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(got))
}

func TestLoadMissingCollection(t *testing.T) {
	local, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	got, err := local.LoadCollection("meals")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	local, err := NewLocal(dir)
	require.NoError(t, err)

	require.NoError(t, local.SaveCollection("aisles", []byte(`["Produce"]`)))
	require.NoError(t, local.SaveCollection("aisles", []byte(`["Fruit/Veg","Frozen"]`)))

	got, err := local.LoadCollection("aisles")
	require.NoError(t, err)
	assert.JSONEq(t, `["Fruit/Veg","Frozen"]`, string(got))

	// No stray temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, ".json", filepath.Ext(e.Name()))
	}
}

func TestNewLocalCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := NewLocal(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
