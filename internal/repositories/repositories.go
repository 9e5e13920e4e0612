// package repositories provides the persistence layer for the catalog.
//
// Each repository owns the SQL for one entity type. Relation-scoped finders
// (songs of a playlist, playlists containing a song) switch their SQL on the
// configured [Variant]. All list finders return an empty slice, never an
// error, when nothing matches; Get finders wrap [shared.ErrNotFound].
package repositories

import (
	"fmt"

	"github.com/levi-tabosa/jukebox/internal/shared"
)

// Variant selects which Playlist↔Song edge the store reads.
type Variant int

const (
	// OwnedSongs: each song belongs to exactly one playlist via
	// songs.playlist_id.
	OwnedSongs Variant = iota
	// SharedSongs: songs appear in zero or more playlists via the
	// playlist_songs join table.
	SharedSongs
)

// ParseVariant maps the catalog.membership config value to a [Variant].
func ParseVariant(s string) (Variant, error) {
	switch s {
	case shared.MembershipOwned:
		return OwnedSongs, nil
	case shared.MembershipShared:
		return SharedSongs, nil
	default:
		return 0, fmt.Errorf("%w: unknown membership variant %q", shared.ErrInvalidConfig, s)
	}
}

func (v Variant) String() string {
	if v == OwnedSongs {
		return shared.MembershipOwned
	}
	return shared.MembershipShared
}
