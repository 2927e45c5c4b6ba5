// Package testutil provides shared test helpers for config files and migrated sqlite databases.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/quizbot/internal/config"
	"github.com/at-ishikawa/quizbot/internal/database"
	"github.com/at-ishikawa/quizbot/schemas"
)

// SetupTestConfig writes a config file that points at a sqlite database under tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	configContent := fmt.Sprintf(`database:
  driver: sqlite
  path: %s
evaluation:
  timeout: 5s
`, filepath.Join(tmpDir, "quizbot.db"))

	configPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	return configPath
}

// SetupTestDB opens an in-memory sqlite database with every migration applied.
// The connection is closed when the test finishes.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = database.Migrate(context.Background(), db, schemas.Migrations)
	require.NoError(t, err)
	return db
}
