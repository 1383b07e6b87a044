package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Alert Index", "index on low_stock_alerts")
	require.NoError(t, err)

	assert.Len(t, mf.Version, 14)
	assert.Contains(t, mf.UpPath, "_add_alert_index.up.sql")
	assert.Contains(t, mf.DownPath, "_add_alert_index.down.sql")

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Add Alert Index")
	assert.Contains(t, string(up), "-- index on low_stock_alerts")

	_, err = os.Stat(mf.DownPath)
	assert.NoError(t, err)
}

func TestCreateMigrationMakesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "migrations")

	_, err := CreateMigration(dir, "init", "")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{
		"20250301000002_partners.up.sql",
		"20250301000002_partners.down.sql",
		"20250301000001_catalog.up.sql",
		"20250301000001_catalog.down.sql",
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- stub\n"), 0o644))
	}

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"20250301000001_catalog",
		"20250301000002_partners",
	}, names)
}

func TestListMigrationsMissingDirectory(t *testing.T) {
	names, err := ListMigrations(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Add Alert Index":    "add_alert_index",
		"create-users-table": "create_users_table",
		"  spaced   out  ":   "spaced_out",
		"MixedCase123":       "mixedcase123",
		"trailing_":          "trailing",
	}

	for in, want := range cases {
		assert.Equal(t, want, slugify(in), "input %q", in)
	}
}
