package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/levi-tabosa/jukebox/internal/models"
	"github.com/levi-tabosa/jukebox/internal/shared"
)

// SongRepository handles persistence for [models.Song].
type SongRepository struct {
	db      *sql.DB
	variant Variant
}

// NewSongRepository creates a new [SongRepository] with the given database connection
func NewSongRepository(db *sql.DB, variant Variant) *SongRepository {
	return &SongRepository{db: db, variant: variant}
}

// Create inserts a new song and assigns its store-generated ID.
func (r *SongRepository) Create(ctx context.Context, song *models.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO songs (title, artist, playlist_id) VALUES (?, ?, ?)",
		song.Title, song.Artist, song.PlaylistID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert song: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read generated song id: %w", err)
	}
	song.ID = id

	return nil
}

// Get retrieves a song by ID.
func (r *SongRepository) Get(ctx context.Context, id int64) (models.Song, error) {
	var song models.Song
	err := r.db.QueryRowContext(ctx,
		"SELECT id, title, artist, playlist_id FROM songs WHERE id = ?", id,
	).Scan(&song.ID, &song.Title, &song.Artist, &song.PlaylistID)
	if err == sql.ErrNoRows {
		return models.Song{}, fmt.Errorf("%w: song %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return models.Song{}, fmt.Errorf("failed to query song: %w", err)
	}

	return song, nil
}

// List retrieves all songs in insertion order.
func (r *SongRepository) List(ctx context.Context) ([]models.Song, error) {
	return r.scanList(ctx, "SELECT id, title, artist, playlist_id FROM songs ORDER BY id ASC")
}

// ListByPlaylist retrieves the songs of a playlist. In the shared variant
// rows come back in the order the membership edges were inserted.
func (r *SongRepository) ListByPlaylist(ctx context.Context, playlistID int64) ([]models.Song, error) {
	if r.variant == OwnedSongs {
		return r.scanList(ctx,
			"SELECT id, title, artist, playlist_id FROM songs WHERE playlist_id = ? ORDER BY id ASC",
			playlistID)
	}

	return r.scanList(ctx, `
		SELECT s.id, s.title, s.artist, s.playlist_id
		FROM songs s
		JOIN playlist_songs ps ON ps.song_id = s.id
		WHERE ps.playlist_id = ?
		ORDER BY ps.rowid ASC
	`, playlistID)
}

// Update modifies an existing song's title and artist.
func (r *SongRepository) Update(ctx context.Context, song models.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE songs SET title = ?, artist = ? WHERE id = ?",
		song.Title, song.Artist, song.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: song %d", shared.ErrNotFound, song.ID)
	}

	return nil
}

// Delete removes a song; membership rows cascade at the schema level.
func (r *SongRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM songs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: song %d", shared.ErrNotFound, id)
	}

	return nil
}

// scanList runs a song query and scans all rows.
func (r *SongRepository) scanList(ctx context.Context, query string, args ...any) ([]models.Song, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	songs := []models.Song{}
	for rows.Next() {
		var song models.Song
		if err := rows.Scan(&song.ID, &song.Title, &song.Artist, &song.PlaylistID); err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}
