package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/levi-tabosa/jukebox/internal/models"
	"github.com/levi-tabosa/jukebox/internal/shared"
)

// PlaylistRepository handles persistence for [models.Playlist], including
// the Playlist↔Song edge mutations for both variants.
type PlaylistRepository struct {
	db      *sql.DB
	variant Variant
}

// NewPlaylistRepository creates a new [PlaylistRepository] with the given database connection
func NewPlaylistRepository(db *sql.DB, variant Variant) *PlaylistRepository {
	return &PlaylistRepository{db: db, variant: variant}
}

// Create inserts a new playlist and assigns its store-generated ID.
// The owning UserID is fixed at this point and never updated afterwards.
func (r *PlaylistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO playlists (user_id, name) VALUES (?, ?)",
		playlist.UserID, playlist.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read generated playlist id: %w", err)
	}
	playlist.ID = id

	return nil
}

// Get retrieves a playlist by ID.
func (r *PlaylistRepository) Get(ctx context.Context, id int64) (models.Playlist, error) {
	var playlist models.Playlist
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, name FROM playlists WHERE id = ?", id,
	).Scan(&playlist.ID, &playlist.UserID, &playlist.Name)
	if err == sql.ErrNoRows {
		return models.Playlist{}, fmt.Errorf("%w: playlist %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return models.Playlist{}, fmt.Errorf("failed to query playlist: %w", err)
	}

	return playlist, nil
}

// List retrieves all playlists in insertion order.
func (r *PlaylistRepository) List(ctx context.Context) ([]models.Playlist, error) {
	return r.scanList(ctx, "SELECT id, user_id, name FROM playlists ORDER BY id ASC")
}

// ListByUser retrieves all playlists owned by the given user, in insertion order.
func (r *PlaylistRepository) ListByUser(ctx context.Context, userID int64) ([]models.Playlist, error) {
	return r.scanList(ctx,
		"SELECT id, user_id, name FROM playlists WHERE user_id = ? ORDER BY id ASC", userID)
}

// ListBySong retrieves every playlist containing the given song, each exactly
// once. The join table's primary key guarantees a single row per edge, so no
// explicit deduplication is needed.
func (r *PlaylistRepository) ListBySong(ctx context.Context, songID int64) ([]models.Playlist, error) {
	if r.variant == OwnedSongs {
		return r.scanList(ctx, `
			SELECT p.id, p.user_id, p.name
			FROM playlists p
			JOIN songs s ON s.playlist_id = p.id
			WHERE s.id = ?
			ORDER BY p.id ASC
		`, songID)
	}

	return r.scanList(ctx, `
		SELECT p.id, p.user_id, p.name
		FROM playlists p
		JOIN playlist_songs ps ON ps.playlist_id = p.id
		WHERE ps.song_id = ?
		ORDER BY p.id ASC
	`, songID)
}

// AttachSong links a song to a playlist. This is the single mutation path
// for the Playlist↔Song edge: shared membership writes one join row,
// exclusive ownership moves the song's playlist_id. Both endpoints must
// exist; in the shared variant a zero-row insert only ever means the edge
// was already there.
func (r *PlaylistRepository) AttachSong(ctx context.Context, playlistID, songID int64) error {
	if _, err := r.Get(ctx, playlistID); err != nil {
		return err
	}

	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM songs WHERE id = ?)", songID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check song: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: song %d", shared.ErrNotFound, songID)
	}

	if r.variant == OwnedSongs {
		_, err = r.db.ExecContext(ctx,
			"UPDATE songs SET playlist_id = ? WHERE id = ?", playlistID, songID)
	} else {
		_, err = r.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO playlist_songs (playlist_id, song_id) VALUES (?, ?)",
			playlistID, songID)
	}
	if err != nil {
		return fmt.Errorf("failed to attach song: %w", err)
	}

	return nil
}

// DetachSong removes the edge between a playlist and a song.
func (r *PlaylistRepository) DetachSong(ctx context.Context, playlistID, songID int64) error {
	var err error
	if r.variant == OwnedSongs {
		_, err = r.db.ExecContext(ctx,
			"UPDATE songs SET playlist_id = NULL WHERE id = ? AND playlist_id = ?", songID, playlistID)
	} else {
		_, err = r.db.ExecContext(ctx,
			"DELETE FROM playlist_songs WHERE playlist_id = ? AND song_id = ?", playlistID, songID)
	}
	if err != nil {
		return fmt.Errorf("failed to detach song: %w", err)
	}
	return nil
}

// Update modifies an existing playlist's name. UserID is immutable.
func (r *PlaylistRepository) Update(ctx context.Context, playlist models.Playlist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE playlists SET name = ? WHERE id = ?", playlist.Name, playlist.ID)
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: playlist %d", shared.ErrNotFound, playlist.ID)
	}

	return nil
}

// Delete removes a playlist; join rows cascade at the schema level.
func (r *PlaylistRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM playlists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: playlist %d", shared.ErrNotFound, id)
	}

	return nil
}

// scanList runs a playlist query and scans all rows.
func (r *PlaylistRepository) scanList(ctx context.Context, query string, args ...any) ([]models.Playlist, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	playlists := []models.Playlist{}
	for rows.Next() {
		var playlist models.Playlist
		if err := rows.Scan(&playlist.ID, &playlist.UserID, &playlist.Name); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}
