package models

import (
	"fmt"
	"strings"
)

// User is a catalog account. Age is optional; a nil Age serializes as an
// empty element on the dispatch API and is omitted from JSON.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  *int64 `json:"age,omitempty"`
}

// Playlist is a named song collection owned by exactly one user. UserID is
// set at creation and never changes afterwards.
type Playlist struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

// Song is a single track. PlaylistID is populated only in the owned-songs
// variant; in the shared-membership variant it stays nil and the
// playlist_songs edge set carries the relation.
type Song struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	PlaylistID *int64 `json:"playlist_id,omitempty"`
}

// Validate checks if the user's data is valid and returns an error if not
func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("user name must not be empty")
	}
	if u.Age != nil && *u.Age < 0 {
		return fmt.Errorf("user age must not be negative")
	}
	return nil
}

// Validate checks if the playlist's data is valid and returns an error if not
func (p Playlist) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("playlist name must not be empty")
	}
	if p.UserID <= 0 {
		return fmt.Errorf("playlist must reference an owning user")
	}
	return nil
}

// Validate checks if the song's data is valid and returns an error if not
func (s Song) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("song title must not be empty")
	}
	if strings.TrimSpace(s.Artist) == "" {
		return fmt.Errorf("song artist must not be empty")
	}
	return nil
}
