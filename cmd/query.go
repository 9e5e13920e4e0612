package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/levi-tabosa/jukebox/internal/dispatch"
	"github.com/levi-tabosa/jukebox/internal/shared"
	"github.com/urfave/cli/v3"
)

// queryOps maps CLI operation names to their request document shape.
var queryOps = map[string]struct {
	local string
	param string
}{
	"users":             {dispatch.OpGetAllUsers, ""},
	"songs":             {dispatch.OpGetAllSongs, ""},
	"user-playlists":    {dispatch.OpGetUserPlaylists, "userId"},
	"playlist-songs":    {dispatch.OpGetPlaylistSongs, "playlistId"},
	"playlists-by-song": {dispatch.OpGetPlaylistsBySong, "songId"},
	"user":              {dispatch.OpGetUser, "id"},
}

// Query runs a single dispatch operation against the local database and
// prints the response document, bypassing the HTTP layer.
func (r *Runner) Query(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return fmt.Errorf("%w: operation name (one of: %s)", shared.ErrMissingArgument, queryOpNames())
	}

	op, ok := queryOps[name]
	if !ok {
		return fmt.Errorf("%w: unknown operation %q (one of: %s)", shared.ErrInvalidArgument, name, queryOpNames())
	}

	ns := r.config.Catalog.Namespace
	req := dispatch.NewElement(ns, op.local)
	if op.param != "" {
		if !cmd.IsSet("id") {
			return fmt.Errorf("%w: operation %q requires --id", shared.ErrMissingArgument, name)
		}
		id := int64(cmd.Int("id"))
		req.Append(dispatch.TextElement(ns, op.param, strconv.FormatInt(id, 10)))
	}

	db, store, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	dispatcher := dispatch.NewDispatcher(ns, store)
	resp, err := dispatcher.Dispatch(ctx, req)
	if err != nil {
		return fmt.Errorf("dispatch failed: %w", err)
	}

	out, err := dispatch.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	return r.writePlain("%s\n", out)
}

func queryOpNames() string {
	names := make([]string, 0, len(queryOps))
	for name := range queryOps {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func queryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "Run one dispatch operation locally and print the response XML",
		ArgsUsage: "<operation>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "id",
				Usage: "Entity ID for operations that take one",
			},
		},
		Action: r.Query,
	}
}
