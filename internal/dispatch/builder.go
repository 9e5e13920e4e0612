package dispatch

import (
	"strconv"

	"github.com/levi-tabosa/jukebox/internal/models"
)

// PlaylistTree is a playlist with its songs already loaded through the
// active membership edge.
type PlaylistTree struct {
	Playlist models.Playlist
	Songs    []models.Song
}

// UserTree is a user with the full Playlist→Song subtree loaded.
type UserTree struct {
	User      models.User
	Playlists []PlaylistTree
}

// Builder emits response documents from catalog entities. Every element it
// produces, root and leaves included, is qualified with the one configured
// namespace.
//
// Field order is fixed per entity type: users are id, name, age; songs are
// id, title, artist; playlists are id, name followed by their songs. Only
// ownership edges are expanded, so the output depth is bounded by the
// user → playlist → song chain no matter how the store's relations loop.
type Builder struct {
	ns string
}

// NewBuilder creates a Builder for the given namespace.
func NewBuilder(ns string) *Builder {
	return &Builder{ns: ns}
}

// UserList builds a document with one "users" child per user.
func (b *Builder) UserList(root string, users []models.User) *Element {
	doc := NewElement(b.ns, root)
	for _, user := range users {
		doc.Append(b.user(user))
	}
	return doc
}

// SongList builds a document with one "songs" child per song.
func (b *Builder) SongList(root string, songs []models.Song) *Element {
	doc := NewElement(b.ns, root)
	for _, song := range songs {
		doc.Append(b.song(song))
	}
	return doc
}

// PlaylistList builds a document with one "playlists" child per playlist,
// each with its songs nested.
func (b *Builder) PlaylistList(root string, playlists []PlaylistTree) *Element {
	doc := NewElement(b.ns, root)
	for _, tree := range playlists {
		doc.Append(b.playlist(tree))
	}
	return doc
}

// UserDocument builds the single-user response: the user's scalar fields at
// the root, then the playlists, each with brief songs (title and artist only).
func (b *Builder) UserDocument(root string, tree UserTree) *Element {
	doc := NewElement(b.ns, root)
	doc.Append(
		b.int64Leaf("id", tree.User.ID),
		b.leaf("name", tree.User.Name),
		b.optLeaf("age", tree.User.Age),
	)
	for _, playlist := range tree.Playlists {
		el := NewElement(b.ns, "playlists").Append(
			b.int64Leaf("id", playlist.Playlist.ID),
			b.leaf("name", playlist.Playlist.Name),
		)
		for _, song := range playlist.Songs {
			el.Append(NewElement(b.ns, "songs").Append(
				b.leaf("title", song.Title),
				b.leaf("artist", song.Artist),
			))
		}
		doc.Append(el)
	}
	return doc
}

// user emits one "users" element: id, name, age. The owned playlists are not
// expanded here; the list operations are flat by contract.
func (b *Builder) user(u models.User) *Element {
	return NewElement(b.ns, "users").Append(
		b.int64Leaf("id", u.ID),
		b.leaf("name", u.Name),
		b.optLeaf("age", u.Age),
	)
}

// song emits one "songs" element: id, title, artist. The playlist
// back-reference is never emitted.
func (b *Builder) song(s models.Song) *Element {
	return NewElement(b.ns, "songs").Append(
		b.int64Leaf("id", s.ID),
		b.leaf("title", s.Title),
		b.leaf("artist", s.Artist),
	)
}

// playlist emits one "playlists" element: id, name, then its songs. The user
// back-reference is never emitted.
func (b *Builder) playlist(tree PlaylistTree) *Element {
	el := NewElement(b.ns, "playlists").Append(
		b.int64Leaf("id", tree.Playlist.ID),
		b.leaf("name", tree.Playlist.Name),
	)
	for _, song := range tree.Songs {
		el.Append(b.song(song))
	}
	return el
}

func (b *Builder) leaf(local, text string) *Element {
	return TextElement(b.ns, local, text)
}

func (b *Builder) int64Leaf(local string, v int64) *Element {
	return TextElement(b.ns, local, strconv.FormatInt(v, 10))
}

// optLeaf emits a nil value as an empty element, never an omitted one.
func (b *Builder) optLeaf(local string, v *int64) *Element {
	if v == nil {
		return TextElement(b.ns, local, "")
	}
	return b.int64Leaf(local, *v)
}
