package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/levi-tabosa/jukebox/internal/shared"
)

// Operation local names, requests and their parameter fields.
const (
	OpGetAllUsers        = "getAllUsersRequest"
	OpGetAllSongs        = "getAllSongsRequest"
	OpGetUserPlaylists   = "getUserPlaylistsRequest"
	OpGetPlaylistSongs   = "getPlaylistSongsRequest"
	OpGetPlaylistsBySong = "getPlaylistsBySongRequest"
	OpGetUser            = "getUserRequest"
)

// operation is one entry of the dispatch table: the request's parameter
// field (empty when the operation takes none) and the Resolve→Build pipeline.
type operation struct {
	param string
	run   func(ctx context.Context, root string, id int64) (*Element, error)
}

// Dispatcher maps (namespace, localName) request pairs to their pipelines.
// It holds no per-request state; concurrent Dispatch calls are independent.
type Dispatcher struct {
	ns       string
	resolver *Resolver
	builder  *Builder
	ops      map[string]operation
}

// NewDispatcher creates a Dispatcher for one namespace over the given store.
func NewDispatcher(ns string, store EntityStore) *Dispatcher {
	d := &Dispatcher{
		ns:       ns,
		resolver: NewResolver(store),
		builder:  NewBuilder(ns),
	}

	d.ops = map[string]operation{
		OpGetAllUsers: {run: d.getAllUsers},
		OpGetAllSongs: {run: d.getAllSongs},
		OpGetUserPlaylists: {
			param: "userId",
			run:   d.getUserPlaylists,
		},
		OpGetPlaylistSongs: {
			param: "playlistId",
			run:   d.getPlaylistSongs,
		},
		OpGetPlaylistsBySong: {
			param: "songId",
			run:   d.getPlaylistsBySong,
		},
		OpGetUser: {
			param: "id",
			run:   d.getUser,
		},
	}

	return d
}

// Namespace returns the namespace all operations are scoped to.
func (d *Dispatcher) Namespace() string {
	return d.ns
}

// Dispatch runs the pipeline for the operation named by the request's root
// element and returns the response document. Extractor and resolver errors
// abort the pipeline before the builder runs.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Element) (*Element, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", shared.ErrMalformedRequest)
	}

	op, ok := d.ops[req.Local]
	if !ok || req.Space != d.ns {
		return nil, fmt.Errorf("%w: {%s}%s", shared.ErrUnknownOperation, req.Space, req.Local)
	}

	var id int64
	if op.param != "" {
		var err error
		if id, err = ExtractID(req, d.ns, op.param); err != nil {
			return nil, err
		}
	}

	return op.run(ctx, responseLocal(req.Local), id)
}

func (d *Dispatcher) getAllUsers(ctx context.Context, root string, _ int64) (*Element, error) {
	users, err := d.resolver.AllUsers(ctx)
	if err != nil {
		return nil, err
	}
	return d.builder.UserList(root, users), nil
}

func (d *Dispatcher) getAllSongs(ctx context.Context, root string, _ int64) (*Element, error) {
	songs, err := d.resolver.AllSongs(ctx)
	if err != nil {
		return nil, err
	}
	return d.builder.SongList(root, songs), nil
}

func (d *Dispatcher) getUserPlaylists(ctx context.Context, root string, userID int64) (*Element, error) {
	playlists, err := d.resolver.UserPlaylists(ctx, userID)
	if err != nil {
		return nil, err
	}
	return d.builder.PlaylistList(root, playlists), nil
}

func (d *Dispatcher) getPlaylistSongs(ctx context.Context, root string, playlistID int64) (*Element, error) {
	songs, err := d.resolver.PlaylistSongs(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	return d.builder.SongList(root, songs), nil
}

func (d *Dispatcher) getPlaylistsBySong(ctx context.Context, root string, songID int64) (*Element, error) {
	playlists, err := d.resolver.PlaylistsBySong(ctx, songID)
	if err != nil {
		return nil, err
	}
	return d.builder.PlaylistList(root, playlists), nil
}

func (d *Dispatcher) getUser(ctx context.Context, root string, id int64) (*Element, error) {
	tree, err := d.resolver.UserGraph(ctx, id)
	if err != nil {
		return nil, err
	}
	return d.builder.UserDocument(root, tree), nil
}

// responseLocal derives the response root name from the request local name.
func responseLocal(requestLocal string) string {
	return strings.TrimSuffix(requestLocal, "Request") + "Response"
}
