// Package models defines domain entities for the jukebox catalog service.
//
// The catalog holds three entity types connected by two relations:
//
//   - [User] : account with display name and optional age
//   - [Playlist] : named collection owned by exactly one user
//   - [Song] : title/artist pair, attached to playlists either by exclusive
//     ownership (songs.playlist_id) or by shared membership (playlist_songs
//     join table), depending on the deployment variant
//
// IDs are assigned by the store at creation and never change. Back-references
// (playlist→user, song→playlist) are plain foreign keys; entities never hold
// pointers to their parents, so serialization can't recurse into them.
package models
