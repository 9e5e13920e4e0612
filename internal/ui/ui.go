package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/levi-tabosa/jukebox/internal/models"
	"github.com/levi-tabosa/jukebox/internal/repositories"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	UserListView ViewState = iota
	PlaylistListView
	SongListView
)

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	view   ViewState
	store  *repositories.Store
	width  int
	height int

	userList     list.Model
	playlistList list.Model
	songList     list.Model

	selectedUser     *models.User
	selectedPlaylist *models.Playlist

	err  error
	help help.Model
	keys keyMap
}

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up    key.Binding
	down  key.Binding
	enter key.Binding
	back  key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.enter, k.back, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.quit},
	}
}

type usersFetchedMsg struct {
	users []models.User
	err   error
}

type playlistsFetchedMsg struct {
	playlists []models.Playlist
	err       error
}

type songsFetchedMsg struct {
	songs []models.Song
	err   error
}

// NewModel creates a new TUI model over the given store.
func NewModel(ctx context.Context, store *repositories.Store) *Model {
	return &Model{
		ctx:   ctx,
		view:  UserListView,
		store: store,
		help:  help.New(),
		keys:  newKeyMap(),
	}
}

// Init initializes the TUI by fetching the catalog's users.
func (m *Model) Init() tea.Cmd {
	return m.fetchUsers()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.userList, &m.playlistList, &m.songList} {
			if l.Width() == 0 {
				l.SetSize(msg.Width-4, msg.Height-8)
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case usersFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.userList = m.newList("Users", userItems(msg.users))
		return m, nil

	case playlistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		title := fmt.Sprintf("Playlists of %s", m.selectedUser.Name)
		m.playlistList = m.newList(title, playlistItems(msg.playlists))
		m.view = PlaylistListView
		return m, nil

	case songsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		title := fmt.Sprintf("Songs in '%s'", m.selectedPlaylist.Name)
		m.songList = m.newList(title, songItems(msg.songs))
		m.view = SongListView
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	var body string
	switch m.view {
	case UserListView:
		body = m.userList.View()
	case PlaylistListView:
		body = m.playlistList.View()
	case SongListView:
		body = m.songList.View()
	}

	if crumb := m.breadcrumb(); crumb != "" {
		body = fmt.Sprintf("%s\n%s", styles.ok.Render(crumb), body)
	}

	helpLine := styles.help.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	return fmt.Sprintf("%s\n\n%s", body, helpLine)
}

// breadcrumb shows where the catalog drill-down currently is.
func (m *Model) breadcrumb() string {
	switch m.view {
	case PlaylistListView:
		if m.selectedUser != nil {
			return m.selectedUser.Name
		}
	case SongListView:
		if m.selectedUser != nil && m.selectedPlaylist != nil {
			return fmt.Sprintf("%s / %s", m.selectedUser.Name, m.selectedPlaylist.Name)
		}
	}
	return ""
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		switch m.view {
		case PlaylistListView:
			m.view = UserListView
		case SongListView:
			m.view = PlaylistListView
		}
		return m, nil

	case "enter":
		switch m.view {
		case UserListView:
			if item, ok := m.userList.SelectedItem().(userItem); ok {
				m.selectedUser = &item.user
				return m, m.fetchPlaylists(item.user.ID)
			}
		case PlaylistListView:
			if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
				m.selectedPlaylist = &item.playlist
				return m, m.fetchSongs(item.playlist.ID)
			}
		}
	}

	return m.updateLists(msg)
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case UserListView:
		m.userList, cmd = m.userList.Update(msg)
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case SongListView:
		m.songList, cmd = m.songList.Update(msg)
	}
	return m, cmd
}

func (m *Model) newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.Styles.Title = styles.title
	l.SetSize(m.width-4, m.height-8)
	return l
}

func (m *Model) fetchUsers() tea.Cmd {
	return func() tea.Msg {
		users, err := m.store.AllUsers(m.ctx)
		return usersFetchedMsg{users: users, err: err}
	}
}

func (m *Model) fetchPlaylists(userID int64) tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.store.PlaylistsByUser(m.ctx, userID)
		return playlistsFetchedMsg{playlists: playlists, err: err}
	}
}

func (m *Model) fetchSongs(playlistID int64) tea.Cmd {
	return func() tea.Msg {
		songs, err := m.store.SongsByPlaylist(m.ctx, playlistID)
		return songsFetchedMsg{songs: songs, err: err}
	}
}

func userItems(users []models.User) []list.Item {
	items := make([]list.Item, len(users))
	for i, user := range users {
		items[i] = userItem{user: user}
	}
	return items
}

func playlistItems(playlists []models.Playlist) []list.Item {
	items := make([]list.Item, len(playlists))
	for i, playlist := range playlists {
		items[i] = playlistItem{playlist: playlist}
	}
	return items
}

func songItems(songs []models.Song) []list.Item {
	items := make([]list.Item, len(songs))
	for i, song := range songs {
		items[i] = songItem{song: song}
	}
	return items
}
