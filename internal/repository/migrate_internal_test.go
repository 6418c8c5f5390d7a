package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrateURL(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"postgres://u:p@db:5432/treemap?sslmode=disable":   "pgx5://u:p@db:5432/treemap?sslmode=disable",
		"postgresql://u:p@db:5432/treemap?sslmode=disable": "pgx5://u:p@db:5432/treemap?sslmode=disable",
		"pgx5://u:p@db:5432/treemap":                       "pgx5://u:p@db:5432/treemap",
	}
	for in, want := range tests {
		assert.Equal(t, want, migrateURL(in))
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	t.Parallel()

	entries, err := migrationsFS.ReadDir("migrations")

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}
