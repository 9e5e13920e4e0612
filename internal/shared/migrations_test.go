package shared

import (
	"database/sql"
	"testing"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()

	var count int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&count)
	if err != nil {
		t.Fatalf("failed to check table %s: %v", name, err)
	}
	return count > 0
}

func TestRunMigrations(t *testing.T) {
	t.Run("CreatesCatalogTables", func(t *testing.T) {
		db := setupTestDB(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		for _, table := range []string{"users", "playlists", "songs", "playlist_songs", "schema_migrations"} {
			if !tableExists(t, db, table) {
				t.Errorf("expected table %s after migration", table)
			}
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		db := setupTestDB(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		if err := RunMigrations(db); err != nil {
			t.Fatalf("second run failed: %v", err)
		}
	})

	t.Run("RecordsVersions", func(t *testing.T) {
		db := setupTestDB(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("failed to count migrations: %v", err)
		}
		if count == 0 {
			t.Error("expected at least one recorded migration")
		}
	})
}

func TestRollbackMigration(t *testing.T) {
	t.Run("DropsTables", func(t *testing.T) {
		db := setupTestDB(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to roll back: %v", err)
		}

		if tableExists(t, db, "users") {
			t.Error("users table should be gone after rollback")
		}
	})

	t.Run("NothingToRollback", func(t *testing.T) {
		db := setupTestDB(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
		if err := RollbackMigration(db); err != nil {
			t.Fatalf("first rollback failed: %v", err)
		}
		if err := RollbackMigration(db); err == nil {
			t.Error("expected error when no migrations remain")
		}
	})
}

func TestDatabaseSchema(t *testing.T) {
	t.Run("CascadesPlaylistDelete", func(t *testing.T) {
		db := setupTestDB(t)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			t.Fatalf("failed to enable foreign keys: %v", err)
		}
		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		if _, err := db.Exec("INSERT INTO users (name) VALUES ('Ana')"); err != nil {
			t.Fatalf("failed to insert user: %v", err)
		}
		if _, err := db.Exec("INSERT INTO playlists (user_id, name) VALUES (1, 'Mix')"); err != nil {
			t.Fatalf("failed to insert playlist: %v", err)
		}
		if _, err := db.Exec("INSERT INTO songs (title, artist) VALUES ('Aurora', 'V-Squared')"); err != nil {
			t.Fatalf("failed to insert song: %v", err)
		}
		if _, err := db.Exec("INSERT INTO playlist_songs (playlist_id, song_id) VALUES (1, 1)"); err != nil {
			t.Fatalf("failed to insert edge: %v", err)
		}

		if _, err := db.Exec("DELETE FROM playlists WHERE id = 1"); err != nil {
			t.Fatalf("failed to delete playlist: %v", err)
		}

		var edges int
		if err := db.QueryRow("SELECT COUNT(*) FROM playlist_songs").Scan(&edges); err != nil {
			t.Fatalf("failed to count edges: %v", err)
		}
		if edges != 0 {
			t.Errorf("expected cascade to remove edges, %d remain", edges)
		}
	})
}
