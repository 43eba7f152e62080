package db

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsHaveUpAndDown(t *testing.T) {
	files, err := fs.Glob(migrationsFS, migrationsDir+"/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		body, err := fs.ReadFile(migrationsFS, name)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", name)
		assert.Contains(t, string(body), "-- +goose Down", name)
	}
}

func TestSchemaEnforcesStorageInvariants(t *testing.T) {
	body, err := fs.ReadFile(migrationsFS, migrationsDir+"/00001_init_schema.sql")
	require.NoError(t, err)
	schema := strings.ToLower(string(body))

	requiredFragments := []string{
		"constraint users_username_key unique (username)",
		"constraint users_email_key unique (email)",
		"create unique index property_images_single_cover on property_images (property_id) where is_cover",
		"references property_types (id) on delete restrict",
		"references countries (id) on delete restrict",
		"references business_types (id) on delete restrict",
		"references users (id) on delete restrict",
		"references properties (id) on delete cascade",
		"check (price >= 0)",
	}

	for _, fragment := range requiredFragments {
		assert.Contains(t, schema, fragment)
	}
}
