// Package ui implements an interactive catalog browser using bubbletea's Elm architecture.
//
// The TUI walks the entity graph top-down:
//  1. [UserListView] : Browse catalog users
//  2. [PlaylistListView] : A user's playlists
//  3. [SongListView] : A playlist's songs through the active membership edge
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Store lookups run as commands so the interface never blocks on SQLite.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
