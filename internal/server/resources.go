package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/levi-tabosa/jukebox/internal/models"
	"github.com/levi-tabosa/jukebox/internal/repositories"
	"github.com/levi-tabosa/jukebox/internal/shared"
)

// UsersHandler serves the JSON resource API for users.
type UsersHandler struct {
	store  *repositories.Store
	logger *log.Logger
}

// NewUsersHandler creates a handler over the given store.
func NewUsersHandler(store *repositories.Store, logger *log.Logger) *UsersHandler {
	return &UsersHandler{store: store, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *UsersHandler) Routes() []string {
	return []string{
		"GET /users",
		"POST /users",
		"GET /users/{id}",
		"PUT /users/{id}",
		"DELETE /users/{id}",
		"GET /users/{id}/playlists",
	}
}

func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.PathValue("id") == "" {
		switch r.Method {
		case http.MethodGet:
			users, err := h.store.Users.List(ctx)
			respond(w, h.logger, users, err)
		case http.MethodPost:
			var user models.User
			if !decodeBody(w, r, &user) {
				return
			}
			if err := h.store.Users.Create(ctx, &user); err != nil {
				writeError(w, h.logger, err)
				return
			}
			writeJSON(w, http.StatusCreated, user)
		}
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if strings.HasSuffix(r.URL.Path, "/playlists") {
		playlists, err := h.store.Playlists.ListByUser(ctx, id)
		respond(w, h.logger, playlists, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		user, err := h.store.Users.Get(ctx, id)
		respond(w, h.logger, user, err)
	case http.MethodPut:
		var user models.User
		if !decodeBody(w, r, &user) {
			return
		}
		user.ID = id
		if err := h.store.Users.Update(ctx, user); err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	case http.MethodDelete:
		if err := h.store.Users.Delete(ctx, id); err != nil {
			writeError(w, h.logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// PlaylistsHandler serves the JSON resource API for playlists, including the
// membership edge mutations.
type PlaylistsHandler struct {
	store  *repositories.Store
	logger *log.Logger
}

// NewPlaylistsHandler creates a handler over the given store.
func NewPlaylistsHandler(store *repositories.Store, logger *log.Logger) *PlaylistsHandler {
	return &PlaylistsHandler{store: store, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *PlaylistsHandler) Routes() []string {
	return []string{
		"GET /playlists",
		"GET /playlists/search",
		"GET /playlists/{id}",
		"PUT /playlists/{id}",
		"DELETE /playlists/{id}",
		"GET /playlists/{id}/songs",
		"POST /playlists/user/{userId}",
		"POST /playlists/{id}/songs/{songId}",
		"DELETE /playlists/{id}/songs/{songId}",
	}
}

func (h *PlaylistsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch {
	case r.URL.Path == "/playlists":
		playlists, err := h.store.Playlists.List(ctx)
		respond(w, h.logger, playlists, err)

	case r.URL.Path == "/playlists/search":
		songID, err := strconv.ParseInt(r.URL.Query().Get("songId"), 10, 64)
		if err != nil {
			http.Error(w, "invalid songId parameter", http.StatusBadRequest)
			return
		}
		playlists, err := h.store.Playlists.ListBySong(ctx, songID)
		respond(w, h.logger, playlists, err)

	case r.PathValue("userId") != "":
		userID, ok := pathID(w, r, "userId")
		if !ok {
			return
		}
		// Creating under a user pins the ownership edge once, at creation.
		if _, err := h.store.Users.Get(ctx, userID); err != nil {
			writeError(w, h.logger, err)
			return
		}
		var playlist models.Playlist
		if !decodeBody(w, r, &playlist) {
			return
		}
		playlist.UserID = userID
		if err := h.store.Playlists.Create(ctx, &playlist); err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, playlist)

	case r.PathValue("songId") != "":
		h.handleEdge(w, r)

	case strings.HasSuffix(r.URL.Path, "/songs"):
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		songs, err := h.store.Songs.ListByPlaylist(ctx, id)
		respond(w, h.logger, songs, err)

	default:
		h.handleOne(w, r)
	}
}

// handleEdge attaches or detaches one Playlist↔Song edge.
func (h *PlaylistsHandler) handleEdge(w http.ResponseWriter, r *http.Request) {
	playlistID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	songID, ok := pathID(w, r, "songId")
	if !ok {
		return
	}

	var err error
	if r.Method == http.MethodDelete {
		err = h.store.Playlists.DetachSong(r.Context(), playlistID, songID)
	} else {
		err = h.store.Playlists.AttachSong(r.Context(), playlistID, songID)
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	playlist, err := h.store.Playlists.Get(r.Context(), playlistID)
	respond(w, h.logger, playlist, err)
}

func (h *PlaylistsHandler) handleOne(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		playlist, err := h.store.Playlists.Get(ctx, id)
		respond(w, h.logger, playlist, err)
	case http.MethodPut:
		var playlist models.Playlist
		if !decodeBody(w, r, &playlist) {
			return
		}
		current, err := h.store.Playlists.Get(ctx, id)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		current.Name = playlist.Name
		if err := h.store.Playlists.Update(ctx, current); err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, current)
	case http.MethodDelete:
		if err := h.store.Playlists.Delete(ctx, id); err != nil {
			writeError(w, h.logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// SongsHandler serves the JSON resource API for songs.
type SongsHandler struct {
	store  *repositories.Store
	logger *log.Logger
}

// NewSongsHandler creates a handler over the given store.
func NewSongsHandler(store *repositories.Store, logger *log.Logger) *SongsHandler {
	return &SongsHandler{store: store, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *SongsHandler) Routes() []string {
	return []string{
		"GET /songs",
		"POST /songs",
		"GET /songs/{id}",
		"PUT /songs/{id}",
		"DELETE /songs/{id}",
	}
}

func (h *SongsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.PathValue("id") == "" {
		switch r.Method {
		case http.MethodGet:
			songs, err := h.store.Songs.List(ctx)
			respond(w, h.logger, songs, err)
		case http.MethodPost:
			var song models.Song
			if !decodeBody(w, r, &song) {
				return
			}
			if err := h.store.Songs.Create(ctx, &song); err != nil {
				writeError(w, h.logger, err)
				return
			}
			writeJSON(w, http.StatusCreated, song)
		}
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		song, err := h.store.Songs.Get(ctx, id)
		respond(w, h.logger, song, err)
	case http.MethodPut:
		var song models.Song
		if !decodeBody(w, r, &song) {
			return
		}
		song.ID = id
		if err := h.store.Songs.Update(ctx, song); err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, song)
	case http.MethodDelete:
		if err := h.store.Songs.Delete(ctx, id); err != nil {
			writeError(w, h.logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// pathID parses an integer path value, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		http.Error(w, "invalid "+name+" path parameter", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// decodeBody decodes a JSON request body, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// respond writes either the value or the mapped error.
func respond(w http.ResponseWriter, logger *log.Logger, v any, err error) {
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps repository errors onto HTTP statuses.
func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case strings.Contains(err.Error(), "validation failed"):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		logger.Error("request failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
