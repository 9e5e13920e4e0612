package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/levi-tabosa/jukebox/internal/models"
	"github.com/levi-tabosa/jukebox/internal/repositories"
	"github.com/levi-tabosa/jukebox/internal/shared"
	jbtest "github.com/levi-tabosa/jukebox/internal/testing"
)

// seedCatalog loads a small fixture: Ana owns Road Trip (two songs) and
// Focus (one song, shared with Road Trip); Bruno owns nothing.
func seedCatalog(t *testing.T) (*repositories.Store, map[string]int64) {
	t.Helper()
	store := jbtest.SetupStore(t, repositories.SharedSongs)

	ana := jbtest.MustCreateUser(t, store, "Ana", jbtest.Int64(30))
	bruno := jbtest.MustCreateUser(t, store, "Bruno", nil)

	roadTrip := jbtest.MustCreatePlaylist(t, store, ana.ID, "Road Trip")
	focus := jbtest.MustCreatePlaylist(t, store, ana.ID, "Focus")

	aurora := jbtest.MustCreateSong(t, store, "Aurora", "V-Squared")
	lowTide := jbtest.MustCreateSong(t, store, "Low Tide", "Mare")

	jbtest.MustAttach(t, store, roadTrip.ID, aurora.ID)
	jbtest.MustAttach(t, store, roadTrip.ID, lowTide.ID)
	jbtest.MustAttach(t, store, focus.ID, aurora.ID)

	return store, map[string]int64{
		"ana": ana.ID, "bruno": bruno.ID,
		"roadTrip": roadTrip.ID, "focus": focus.ID,
		"aurora": aurora.ID, "lowTide": lowTide.ID,
	}
}

func request(local string, param string, id int64) *Element {
	req := NewElement(testNS, local)
	if param != "" {
		req.Append(b().int64Leaf(param, id))
	}
	return req
}

func b() *Builder { return NewBuilder(testNS) }

func TestDispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("GetAllUsers", func(t *testing.T) {
		store, _ := seedCatalog(t)
		d := NewDispatcher(testNS, store)

		resp, err := d.Dispatch(ctx, request(OpGetAllUsers, "", 0))
		if err != nil {
			t.Fatalf("dispatch failed: %v", err)
		}

		if resp.Local != "getAllUsersResponse" {
			t.Errorf("expected getAllUsersResponse root, got %s", resp.Local)
		}
		if len(resp.Children) != 2 {
			t.Fatalf("expected 2 users, got %d", len(resp.Children))
		}
		if resp.Children[0].Find(testNS, "name").Text != "Ana" {
			t.Error("insertion order not preserved")
		}
		// Bruno has no age; the leaf is still there, empty.
		brunoAge := resp.Children[1].Find(testNS, "age")
		if brunoAge == nil || brunoAge.Text != "" {
			t.Errorf("expected empty age leaf for Bruno, got %+v", brunoAge)
		}
	})

	t.Run("GetAllSongs", func(t *testing.T) {
		store, _ := seedCatalog(t)
		d := NewDispatcher(testNS, store)

		resp, err := d.Dispatch(ctx, request(OpGetAllSongs, "", 0))
		if err != nil {
			t.Fatalf("dispatch failed: %v", err)
		}
		if len(resp.Children) != 2 {
			t.Fatalf("expected 2 songs, got %d", len(resp.Children))
		}
	})

	t.Run("GetUserPlaylists", func(t *testing.T) {
		store, ids := seedCatalog(t)
		d := NewDispatcher(testNS, store)

		resp, err := d.Dispatch(ctx, request(OpGetUserPlaylists, "userId", ids["ana"]))
		if err != nil {
			t.Fatalf("dispatch failed: %v", err)
		}

		if resp.Local != "getUserPlaylistsResponse" {
			t.Errorf("unexpected root %s", resp.Local)
		}
		if len(resp.Children) != 2 {
			t.Fatalf("expected 2 playlists, got %d", len(resp.Children))
		}
		roadTrip := resp.Children[0]
		if roadTrip.Find(testNS, "name").Text != "Road Trip" {
			t.Error("playlist order not preserved")
		}
		// Playlists always nest their songs, full form.
		songs := 0
		for _, child := range roadTrip.Children {
			if child.Local == "songs" {
				songs++
				if child.Find(testNS, "id") == nil {
					t.Error("nested songs carry id in playlist documents")
				}
			}
		}
		if songs != 2 {
			t.Errorf("expected 2 nested songs, got %d", songs)
		}
	})

	t.Run("GetUserPlaylistsUnknownUser", func(t *testing.T) {
		store, _ := seedCatalog(t)
		d := NewDispatcher(testNS, store)

		resp, err := d.Dispatch(ctx, request(OpGetUserPlaylists, "userId", 999999))
		if err != nil {
			t.Fatalf("unknown user should yield an empty list, got %v", err)
		}
		if len(resp.Children) != 0 {
			t.Errorf("expected empty response, got %d children", len(resp.Children))
		}
	})

	t.Run("GetPlaylistSongs", func(t *testing.T) {
		store, ids := seedCatalog(t)
		d := NewDispatcher(testNS, store)

		resp, err := d.Dispatch(ctx, request(OpGetPlaylistSongs, "playlistId", ids["roadTrip"]))
		if err != nil {
			t.Fatalf("dispatch failed: %v", err)
		}
		if len(resp.Children) != 2 {
			t.Fatalf("expected 2 songs, got %d", len(resp.Children))
		}
		if resp.Children[0].Find(testNS, "title").Text != "Aurora" {
			t.Error("edge insertion order not preserved")
		}
	})

	t.Run("GetPlaylistsBySong", func(t *testing.T) {
		store, ids := seedCatalog(t)
		d := NewDispatcher(testNS, store)

		resp, err := d.Dispatch(ctx, request(OpGetPlaylistsBySong, "songId", ids["aurora"]))
		if err != nil {
			t.Fatalf("dispatch failed: %v", err)
		}

		// Aurora sits in both of Ana's playlists; each appears exactly once.
		if len(resp.Children) != 2 {
			t.Fatalf("expected 2 playlists, got %d", len(resp.Children))
		}
		seen := map[string]bool{}
		for _, playlist := range resp.Children {
			name := playlist.Find(testNS, "name").Text
			if seen[name] {
				t.Errorf("playlist %q appears more than once", name)
			}
			seen[name] = true
		}
	})

	t.Run("GetUser", func(t *testing.T) {
		store, ids := seedCatalog(t)
		d := NewDispatcher(testNS, store)

		resp, err := d.Dispatch(ctx, request(OpGetUser, "id", ids["ana"]))
		if err != nil {
			t.Fatalf("dispatch failed: %v", err)
		}

		if resp.Local != "getUserResponse" {
			t.Errorf("unexpected root %s", resp.Local)
		}
		if resp.Find(testNS, "name").Text != "Ana" {
			t.Error("user scalars missing from root")
		}
		song := resp.Find(testNS, "songs")
		if song == nil {
			t.Fatal("nested songs missing")
		}
		if song.Find(testNS, "id") != nil {
			t.Error("single-user documents nest brief songs without ids")
		}
	})

	t.Run("GetUserNotFound", func(t *testing.T) {
		store, _ := seedCatalog(t)
		d := NewDispatcher(testNS, store)

		_, err := d.Dispatch(ctx, request(OpGetUser, "id", 999999))
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UnknownOperation", func(t *testing.T) {
		store, _ := seedCatalog(t)
		d := NewDispatcher(testNS, store)

		_, err := d.Dispatch(ctx, NewElement(testNS, "deleteEverythingRequest"))
		if !errors.Is(err, shared.ErrUnknownOperation) {
			t.Errorf("expected ErrUnknownOperation, got %v", err)
		}
	})

	t.Run("WrongNamespace", func(t *testing.T) {
		store, _ := seedCatalog(t)
		d := NewDispatcher(testNS, store)

		_, err := d.Dispatch(ctx, NewElement("http://other", OpGetAllUsers))
		if !errors.Is(err, shared.ErrUnknownOperation) {
			t.Errorf("expected ErrUnknownOperation, got %v", err)
		}
	})

	t.Run("MissingParameter", func(t *testing.T) {
		store, _ := seedCatalog(t)
		d := NewDispatcher(testNS, store)

		_, err := d.Dispatch(ctx, NewElement(testNS, OpGetUser))
		if !errors.Is(err, shared.ErrMalformedRequest) {
			t.Errorf("expected ErrMalformedRequest, got %v", err)
		}
	})

	t.Run("NilRequest", func(t *testing.T) {
		store, _ := seedCatalog(t)
		d := NewDispatcher(testNS, store)

		_, err := d.Dispatch(ctx, nil)
		if !errors.Is(err, shared.ErrMalformedRequest) {
			t.Errorf("expected ErrMalformedRequest, got %v", err)
		}
	})
}

// failingStore simulates infrastructure failure under every finder.
type failingStore struct{}

func (failingStore) User(context.Context, int64) (models.User, error) {
	return models.User{}, shared.ErrStoreFailure
}
func (failingStore) AllUsers(context.Context) ([]models.User, error) {
	return nil, shared.ErrStoreFailure
}
func (failingStore) AllSongs(context.Context) ([]models.Song, error) {
	return nil, shared.ErrStoreFailure
}
func (failingStore) PlaylistsByUser(context.Context, int64) ([]models.Playlist, error) {
	return nil, shared.ErrStoreFailure
}
func (failingStore) SongsByPlaylist(context.Context, int64) ([]models.Song, error) {
	return nil, shared.ErrStoreFailure
}
func (failingStore) PlaylistsBySong(context.Context, int64) ([]models.Playlist, error) {
	return nil, shared.ErrStoreFailure
}

func TestDispatchStoreFailure(t *testing.T) {
	d := NewDispatcher(testNS, failingStore{})

	for _, local := range []string{OpGetAllUsers, OpGetAllSongs} {
		_, err := d.Dispatch(context.Background(), request(local, "", 0))
		if !errors.Is(err, shared.ErrStoreFailure) {
			t.Errorf("%s: expected ErrStoreFailure, got %v", local, err)
		}
	}
}
