package cmd

import (
	"path/filepath"
	"testing"

	"bjjtracker/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCreatesSchema(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "tracker.db")
	t.Setenv("JWT_SECRET", "test_jwt_secret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", dsn)

	rootCmd.SetArgs([]string{"migrate"})
	require.NoError(t, Execute())

	db, err := database.OpenGORM("sqlite", dsn)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	for _, table := range []string{"users", "trainings", "techniques", "competitions"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex("trainings", "idx_trainings_owner_date"))
}

func TestMigrateRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", filepath.Join(t.TempDir(), "tracker.db"))

	rootCmd.SetArgs([]string{"migrate"})
	assert.Error(t, Execute())
}
