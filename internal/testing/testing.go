// package testing contains shared testing utilities
package testing

import (
	"context"
	"database/sql"
	"testing"

	"github.com/levi-tabosa/jukebox/internal/models"
	"github.com/levi-tabosa/jukebox/internal/repositories"
	"github.com/levi-tabosa/jukebox/internal/shared"
)

// SetupDB creates an in-memory SQLite database with migrations applied.
func SetupDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// SetupStore creates a store over a fresh in-memory database.
func SetupStore(t *testing.T, variant repositories.Variant) *repositories.Store {
	t.Helper()
	return repositories.NewStore(SetupDB(t), variant)
}

// MustCreateUser inserts a user and fails the test on error.
func MustCreateUser(t *testing.T, store *repositories.Store, name string, age *int64) models.User {
	t.Helper()
	user := models.User{Name: name, Age: age}
	if err := store.Users.Create(context.Background(), &user); err != nil {
		t.Fatalf("failed to create user %q: %v", name, err)
	}
	return user
}

// MustCreatePlaylist inserts a playlist and fails the test on error.
func MustCreatePlaylist(t *testing.T, store *repositories.Store, userID int64, name string) models.Playlist {
	t.Helper()
	playlist := models.Playlist{UserID: userID, Name: name}
	if err := store.Playlists.Create(context.Background(), &playlist); err != nil {
		t.Fatalf("failed to create playlist %q: %v", name, err)
	}
	return playlist
}

// MustCreateSong inserts a song and fails the test on error.
func MustCreateSong(t *testing.T, store *repositories.Store, title, artist string) models.Song {
	t.Helper()
	song := models.Song{Title: title, Artist: artist}
	if err := store.Songs.Create(context.Background(), &song); err != nil {
		t.Fatalf("failed to create song %q: %v", title, err)
	}
	return song
}

// MustAttach links a song to a playlist and fails the test on error.
func MustAttach(t *testing.T, store *repositories.Store, playlistID, songID int64) {
	t.Helper()
	if err := store.Playlists.AttachSong(context.Background(), playlistID, songID); err != nil {
		t.Fatalf("failed to attach song %d to playlist %d: %v", songID, playlistID, err)
	}
}

// Int64 returns a pointer to v, for optional fields in fixtures.
func Int64(v int64) *int64 {
	return &v
}
