package migration

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase passthrough", "add_purchases", "add_purchases"},
		{"spaces to underscores", "add webhook events table", "add_webhook_events_table"},
		{"mixed case", "Add-Certificates", "add_certificates"},
		{"collapses separators", "a  - b", "a_b"},
		{"strips punctuation", "init!@#schema", "initschema"},
		{"trailing separator", "plans_", "plans"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Holder Profiles")
	require.NoError(t, err)

	assert.Contains(t, mf.UpPath, "_add_holder_profiles.up.sql")
	assert.Contains(t, mf.DownPath, "_add_holder_profiles.down.sql")
	assert.Len(t, mf.Version, 14)

	for _, path := range []string{mf.UpPath, mf.DownPath} {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "-- Migration: Add Holder Profiles"))
	}
}

func TestListMigrations(t *testing.T) {
	t.Run("missing directory is empty", func(t *testing.T) {
		migrations, err := ListMigrations("/nonexistent/migrations")
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("lists up migrations once", func(t *testing.T) {
		dir := t.TempDir()
		_, err := CreateMigration(dir, "first")
		require.NoError(t, err)

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		require.Len(t, migrations, 1)
		assert.True(t, strings.HasSuffix(migrations[0], "_first"))
	})
}
