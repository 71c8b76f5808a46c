package infra

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationURL(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@localhost:5432/chainsearch?sslmode=disable": "pgx5://u:p@localhost:5432/chainsearch?sslmode=disable",
		"postgresql://localhost/chainsearch":                        "pgx5://localhost/chainsearch",
		"pgx5://localhost/chainsearch":                              "pgx5://localhost/chainsearch",
	}
	for in, want := range cases {
		assert.Equal(t, want, migrationURL(in), in)
	}
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)
	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	assert.Positive(t, ups)
	assert.Equal(t, ups, downs, "every up migration needs a down")
}
