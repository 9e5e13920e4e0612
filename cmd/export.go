package main

import (
	"context"
	"fmt"

	"github.com/levi-tabosa/jukebox/internal/formatter"
	"github.com/levi-tabosa/jukebox/internal/shared"
	"github.com/urfave/cli/v3"
)

// Export writes a playlist and its songs to a file in the requested format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	if !cmd.IsSet("id") {
		return fmt.Errorf("%w: --id is required", shared.ErrMissingArgument)
	}
	playlistID := int64(cmd.Int("id"))
	format := cmd.String("format")
	output := cmd.String("output")

	db, store, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	playlist, err := store.Playlists.Get(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("failed to load playlist: %w", err)
	}

	songs, err := store.SongsByPlaylist(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("failed to load songs: %w", err)
	}

	path, err := formatter.WriteExport(playlist, songs, format, output)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.logger.Infof("playlist exported to %v with %v songs", path, len(songs))
	r.writePlain("✓ Playlist exported to %s\n", path)
	r.writePlain("  Playlist: %s\n", playlist.Name)
	r.writePlain("  Songs: %d\n", len(songs))
	return nil
}

func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a playlist and its songs to a file",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "id",
				Usage:    "Playlist ID to export",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: csv, markdown or text",
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (defaults to a name derived from the playlist)",
			},
		},
		Action: r.Export,
	}
}
