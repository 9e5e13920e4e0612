package main

import (
	"context"
	"fmt"
	"time"

	"github.com/levi-tabosa/jukebox/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Seed populates the database with generated users, songs and playlists.
// Flag values override the [catalog.seed] section of the config; a fixed
// --seed value makes the generated catalog reproducible.
func (r *Runner) Seed(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Catalog.Seed
	if n := cmd.Int("users"); n > 0 {
		cfg.Users = n
	}
	if n := cmd.Int("songs"); n > 0 {
		cfg.Songs = n
	}
	if n := cmd.Int("playlists"); n > 0 {
		cfg.Playlists = n
	}
	if n := cmd.Int("songs-per-playlist"); n > 0 {
		cfg.SongsPerPlaylist = n
	}

	seed := int64(cmd.Int("seed"))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	db, store, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Info("seeding catalog",
		"users", cfg.Users, "songs", cfg.Songs, "playlists", cfg.Playlists,
		"membership", store.Variant())

	seeder := tasks.NewSeeder(store, r.logger, seed)
	result, err := seeder.Run(ctx, cfg)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	return r.writeJSON(result, cmd.Bool("pretty"))
}

func seedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Populate the database with generated catalog data",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "users", Usage: "Number of users to create"},
			&cli.IntFlag{Name: "songs", Usage: "Number of songs to create"},
			&cli.IntFlag{Name: "playlists", Usage: "Number of playlists to create"},
			&cli.IntFlag{Name: "songs-per-playlist", Usage: "Songs linked to each playlist"},
			&cli.IntFlag{Name: "seed", Usage: "Random seed (0 uses the current time)"},
			&cli.BoolFlag{Name: "pretty", Aliases: []string{"p"}, Usage: "Pretty-print the JSON summary"},
		},
		Action: r.Seed,
	}
}
