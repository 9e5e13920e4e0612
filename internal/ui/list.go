package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/levi-tabosa/jukebox/internal/models"
)

var (
	_ list.Item = userItem{}
	_ list.Item = playlistItem{}
	_ list.Item = songItem{}
)

// userItem wraps [models.User] to implement [list.Item].
type userItem struct {
	user models.User
}

func (i userItem) FilterValue() string { return i.user.Name }
func (i userItem) Title() string       { return i.user.Name }
func (i userItem) Description() string {
	if i.user.Age == nil {
		return fmt.Sprintf("user #%d", i.user.ID)
	}
	return fmt.Sprintf("user #%d • age %d", i.user.ID, *i.user.Age)
}

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	return fmt.Sprintf("playlist #%d", i.playlist.ID)
}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) Title() string       { return i.song.Title }
func (i songItem) Description() string { return i.song.Artist }
