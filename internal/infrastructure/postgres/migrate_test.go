package postgres

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estate-hub/estate-hub/internal/migrations"
)

func TestMigrationFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"002_indexes.sql": {Data: []byte("CREATE INDEX x ON y (z);")},
		"001_init.sql":    {Data: []byte("CREATE TABLE y (z int);")},
		"README.md":       {Data: []byte("docs")},
		"archive/003.sql": {Data: []byte("-- ignored")},
	}

	files, err := migrationFiles(fsys)

	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_indexes.sql"}, files)
}

func TestMigrationFiles_Embedded(t *testing.T) {
	files, err := migrationFiles(migrations.FS)

	require.NoError(t, err)
	assert.Contains(t, files, "001_init.sql")
}
