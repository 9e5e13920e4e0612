package dispatch

import (
	"context"

	"github.com/levi-tabosa/jukebox/internal/models"
)

// EntityStore is the lookup surface the dispatch pipeline reads. The
// [repositories.Store] facade implements it; tests substitute their own.
//
// List finders return an empty slice, never an error, when nothing matches.
// User fails with [shared.ErrNotFound] for an absent id. Infrastructure
// failures surface as [shared.ErrStoreFailure].
type EntityStore interface {
	User(ctx context.Context, id int64) (models.User, error)
	AllUsers(ctx context.Context) ([]models.User, error)
	AllSongs(ctx context.Context) ([]models.Song, error)
	PlaylistsByUser(ctx context.Context, userID int64) ([]models.Playlist, error)
	SongsByPlaylist(ctx context.Context, playlistID int64) ([]models.Song, error)
	PlaylistsBySong(ctx context.Context, songID int64) ([]models.Playlist, error)
}

// Resolver translates dispatch operations into store traversals. Each method
// is a pass-through to one or more finders; the only added behavior is
// eager-loading songs for playlist results, since playlist documents always
// nest their songs.
type Resolver struct {
	store EntityStore
}

// NewResolver creates a Resolver over the given store.
func NewResolver(store EntityStore) *Resolver {
	return &Resolver{store: store}
}

// AllUsers resolves the get-all-users operation.
func (r *Resolver) AllUsers(ctx context.Context) ([]models.User, error) {
	return r.store.AllUsers(ctx)
}

// AllSongs resolves the get-all-songs operation.
func (r *Resolver) AllSongs(ctx context.Context) ([]models.Song, error) {
	return r.store.AllSongs(ctx)
}

// UserPlaylists resolves the get-user-playlists operation. An unknown user
// id yields an empty list, not an error.
func (r *Resolver) UserPlaylists(ctx context.Context, userID int64) ([]PlaylistTree, error) {
	playlists, err := r.store.PlaylistsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return r.loadSongs(ctx, playlists)
}

// PlaylistSongs resolves the get-playlist-songs operation.
func (r *Resolver) PlaylistSongs(ctx context.Context, playlistID int64) ([]models.Song, error) {
	return r.store.SongsByPlaylist(ctx, playlistID)
}

// PlaylistsBySong resolves the get-playlists-by-song operation.
func (r *Resolver) PlaylistsBySong(ctx context.Context, songID int64) ([]PlaylistTree, error) {
	playlists, err := r.store.PlaylistsBySong(ctx, songID)
	if err != nil {
		return nil, err
	}
	return r.loadSongs(ctx, playlists)
}

// UserGraph resolves the get-user operation, eager-loading the full
// Playlist→Song subtree for the one user. Propagates NotFound for an
// absent id.
func (r *Resolver) UserGraph(ctx context.Context, id int64) (UserTree, error) {
	user, err := r.store.User(ctx, id)
	if err != nil {
		return UserTree{}, err
	}

	playlists, err := r.store.PlaylistsByUser(ctx, id)
	if err != nil {
		return UserTree{}, err
	}

	trees, err := r.loadSongs(ctx, playlists)
	if err != nil {
		return UserTree{}, err
	}

	return UserTree{User: user, Playlists: trees}, nil
}

// loadSongs attaches each playlist's songs through the active edge,
// preserving store order.
func (r *Resolver) loadSongs(ctx context.Context, playlists []models.Playlist) ([]PlaylistTree, error) {
	trees := make([]PlaylistTree, 0, len(playlists))
	for _, playlist := range playlists {
		songs, err := r.store.SongsByPlaylist(ctx, playlist.ID)
		if err != nil {
			return nil, err
		}
		trees = append(trees, PlaylistTree{Playlist: playlist, Songs: songs})
	}
	return trees, nil
}
