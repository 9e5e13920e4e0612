package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/levi-tabosa/jukebox/internal/models"
	"github.com/levi-tabosa/jukebox/internal/shared"
)

// Store aggregates the three repositories behind the lookup surface the
// dispatch layer consumes. Infrastructure failures are wrapped as
// [shared.ErrStoreFailure] so callers can tell them apart from NotFound.
type Store struct {
	Users     *UserRepository
	Playlists *PlaylistRepository
	Songs     *SongRepository

	variant Variant
}

// NewStore creates a Store reading the given Playlist↔Song edge variant.
func NewStore(db *sql.DB, variant Variant) *Store {
	return &Store{
		Users:     NewUserRepository(db),
		Playlists: NewPlaylistRepository(db, variant),
		Songs:     NewSongRepository(db, variant),
		variant:   variant,
	}
}

// Variant returns the membership variant this store reads.
func (s *Store) Variant() Variant {
	return s.variant
}

// User looks up a single user by ID.
func (s *Store) User(ctx context.Context, id int64) (models.User, error) {
	user, err := s.Users.Get(ctx, id)
	return user, storeErr(err)
}

// AllUsers returns every user in insertion order.
func (s *Store) AllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.Users.List(ctx)
	return users, storeErr(err)
}

// AllSongs returns every song in insertion order.
func (s *Store) AllSongs(ctx context.Context) ([]models.Song, error) {
	songs, err := s.Songs.List(ctx)
	return songs, storeErr(err)
}

// PlaylistsByUser returns the playlists owned by a user.
func (s *Store) PlaylistsByUser(ctx context.Context, userID int64) ([]models.Playlist, error) {
	playlists, err := s.Playlists.ListByUser(ctx, userID)
	return playlists, storeErr(err)
}

// SongsByPlaylist returns the songs of a playlist through the active edge.
func (s *Store) SongsByPlaylist(ctx context.Context, playlistID int64) ([]models.Song, error) {
	songs, err := s.Songs.ListByPlaylist(ctx, playlistID)
	return songs, storeErr(err)
}

// PlaylistsBySong returns every playlist containing a song, each exactly once.
func (s *Store) PlaylistsBySong(ctx context.Context, songID int64) ([]models.Playlist, error) {
	playlists, err := s.Playlists.ListBySong(ctx, songID)
	return playlists, storeErr(err)
}

// storeErr wraps infrastructure errors as ErrStoreFailure while letting
// NotFound pass through untouched.
func storeErr(err error) error {
	if err == nil || errors.Is(err, shared.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", shared.ErrStoreFailure, err)
}
