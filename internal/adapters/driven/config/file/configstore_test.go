package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showroom-labs/vendorsync/internal/core/domain"
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
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSetAndGet(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("github.token", "ghp_test"))
	require.NoError(t, store.Set("odoo.endpoint", "http://localhost:8080/mcp"))

	assert.Equal(t, "ghp_test", store.GetString("github.token"))
	assert.Equal(t, "http://localhost:8080/mcp", store.GetString("odoo.endpoint"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestSet_PersistsAcrossLoads(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("github.issue", int64(7)))
	require.NoError(t, store.Set("vendors.flair.data_dir", "/data/flair"))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 7, reloaded.GetInt("github.issue"))
	assert.Equal(t, "/data/flair", reloaded.GetString("vendors.flair.data_dir"))
}

func TestVendor_BuildsProfile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("vendors.flair.display_name", "FLAIR Showers"))
	require.NoError(t, store.Set("vendors.flair.data_dir", "/data/flair"))
	require.NoError(t, store.Set("vendors.flair.categories", []string{"Bifold Doors", "Sliding Doors"}))
	require.NoError(t, store.Set("vendors.flair.batch_size", int64(5)))
	require.NoError(t, store.Set("vendors.flair.import_images", true))

	vendor, err := store.Vendor("flair")

	require.NoError(t, err)
	assert.Equal(t, "flair", vendor.Name)
	assert.Equal(t, "FLAIR Showers", vendor.DisplayName)
	assert.Equal(t, "/data/flair", vendor.DataDir)
	assert.Equal(t, []string{"Bifold Doors", "Sliding Doors"}, vendor.Categories)
	assert.Equal(t, 5, vendor.BatchSize)
	assert.True(t, vendor.ImportImages)
	// Unset settings pick up defaults.
	assert.Equal(t, domain.DefaultReportInterval, vendor.ReportInterval)
}

func TestVendor_Unknown(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Vendor("acme")

	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestVendors_SortedNames(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("vendors.flair.data_dir", "/data/flair"))
	require.NoError(t, store.Set("vendors.acme.data_dir", "/data/acme"))
	require.NoError(t, store.Set("github.token", "ghp_test"))

	assert.Equal(t, []string{"acme", "flair"}, store.Vendors())
}

func TestLoad_RoundTripsNestedTables(t *testing.T) {
	dir := t.TempDir()
	config := `
[github]
token = "ghp_test"

[vendors.flair]
data_dir = "/data/flair"
create_variants = true
`
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(config), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "ghp_test", store.GetString("github.token"))
	vendor, err := store.Vendor("flair")
	require.NoError(t, err)
	assert.True(t, vendor.CreateVariants)
}

func TestGetStringSlice_FromTOMLArray(t *testing.T) {
	dir := t.TempDir()
	config := `
[vendors.flair]
categories = ["Bifold Doors", "Pivot Doors"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(config), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Bifold Doors", "Pivot Doors"}, store.GetStringSlice("vendors.flair.categories"))
}
