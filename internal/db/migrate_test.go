package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func userVersion(t *testing.T, db *sql.DB) int {
	t.Helper()
	var v int
	require.NoError(t, db.QueryRow(`PRAGMA user_version`).Scan(&v))
	return v
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
	assert.Equal(t, SchemaVersion, userVersion(t, db))
}

func TestMigrate_CreatesTablesAndIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, tc := range []struct{ kind, name string }{
		{"table", "merged_blocks"},
		{"table", "generation_log"},
		{"index", "idx_generation_log_created"},
	} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = ? AND name = ?`, tc.kind, tc.name).Scan(&name)
		require.NoError(t, err, "%s %s should exist", tc.kind, tc.name)
	}
}

func TestMigrate_RejectsNewerSchema(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`PRAGMA user_version = 99`)
	require.NoError(t, err)

	err = Migrate(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer than this build")
}

func TestMigrate_ActionConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO generation_log (id, note, action, created_at) VALUES ('1', 'n', 'print', 'now')`)
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO generation_log (id, note, action, created_at) VALUES ('2', 'n', 'amend', 'now')`)
	assert.NoError(t, err)
}

func TestMigrate_KeepsLogRowsAcrossRebuild(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "old.db"))
	require.NoError(t, err)
	defer db.Close()

	// Stop at the first three migrations, as an older build would.
	for i, stmt := range migrations[:3] {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "migration %d", i)
	}
	_, err = db.Exec(`PRAGMA user_version = 3`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO generation_log (id, note, action, details, created_at)
		VALUES ('old', 'n', 'hold', '#1 glp1/start', 'then')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	assert.Equal(t, SchemaVersion, userVersion(t, db))

	var details string
	require.NoError(t, db.QueryRow(`SELECT details FROM generation_log WHERE id = 'old'`).Scan(&details))
	assert.Equal(t, "#1 glp1/start", details)

	var scenario string
	_, err = db.Exec(`INSERT INTO merged_blocks (id, note, seq, created_at) VALUES ('b', 'n', 1, 'now')`)
	require.NoError(t, err)
	require.NoError(t, db.QueryRow(`SELECT scenario FROM merged_blocks WHERE id = 'b'`).Scan(&scenario))
	assert.Empty(t, scenario)
}

func TestOpenDB_CreatesFileDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "soapnote.db")

	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, path)
	assert.Equal(t, SchemaVersion, userVersion(t, db))
}
