// package tasks implements catalog maintenance operations that run outside
// the request path, currently seed data generation.
package tasks

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/levi-tabosa/jukebox/internal/models"
	"github.com/levi-tabosa/jukebox/internal/repositories"
	"github.com/levi-tabosa/jukebox/internal/shared"
)

// SeedResult reports how many rows the seeder created.
type SeedResult struct {
	Users     int `json:"users"`
	Songs     int `json:"songs"`
	Playlists int `json:"playlists"`
	Edges     int `json:"edges"`
}

// Seeder populates the catalog with generated data through the repository
// layer, so every row goes through the same validation and edge mutation
// path as real writes.
type Seeder struct {
	store  *repositories.Store
	logger *log.Logger
	rng    *rand.Rand
}

// NewSeeder creates a Seeder. The rand seed is caller-provided so runs can
// be reproduced.
func NewSeeder(store *repositories.Store, logger *log.Logger, seed int64) *Seeder {
	return &Seeder{
		store:  store,
		logger: logger,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Run generates cfg.Users users, cfg.Songs songs and cfg.Playlists playlists,
// then links songs into playlists. In the shared variant each playlist gets
// up to cfg.SongsPerPlaylist distinct songs; in the owned variant each song
// is attached to at most one playlist.
func (s *Seeder) Run(ctx context.Context, cfg shared.SeedConfig) (*SeedResult, error) {
	result := &SeedResult{}

	s.logger.Info("seeding catalog",
		"users", cfg.Users, "songs", cfg.Songs, "playlists", cfg.Playlists,
		"variant", s.store.Variant().String(),
	)

	users := make([]models.User, 0, cfg.Users)
	for i := 0; i < cfg.Users; i++ {
		user := models.User{Name: s.personName()}
		if s.rng.Intn(10) > 0 { // leave some ages unset
			age := int64(18 + s.rng.Intn(53))
			user.Age = &age
		}
		if err := s.store.Users.Create(ctx, &user); err != nil {
			return nil, fmt.Errorf("failed to seed user: %w", err)
		}
		users = append(users, user)
		result.Users++
	}

	songs := make([]models.Song, 0, cfg.Songs)
	for i := 0; i < cfg.Songs; i++ {
		song := models.Song{Title: s.songTitle(), Artist: s.personName()}
		if err := s.store.Songs.Create(ctx, &song); err != nil {
			return nil, fmt.Errorf("failed to seed song: %w", err)
		}
		songs = append(songs, song)
		result.Songs++
	}

	if cfg.Playlists > 0 && len(users) == 0 {
		return nil, fmt.Errorf("%w: cannot seed playlists without users", shared.ErrInvalidInput)
	}

	playlists := make([]models.Playlist, 0, cfg.Playlists)
	for i := 0; i < cfg.Playlists; i++ {
		owner := users[s.rng.Intn(len(users))]
		playlist := models.Playlist{UserID: owner.ID, Name: s.playlistName()}
		if err := s.store.Playlists.Create(ctx, &playlist); err != nil {
			return nil, fmt.Errorf("failed to seed playlist: %w", err)
		}
		playlists = append(playlists, playlist)
		result.Playlists++
	}

	edges, err := s.linkSongs(ctx, playlists, songs, cfg.SongsPerPlaylist)
	if err != nil {
		return nil, err
	}
	result.Edges = edges

	s.logger.Info("seed complete",
		"users", result.Users, "songs", result.Songs,
		"playlists", result.Playlists, "edges", result.Edges,
	)

	return result, nil
}

func (s *Seeder) linkSongs(ctx context.Context, playlists []models.Playlist, songs []models.Song, perPlaylist int) (int, error) {
	if len(playlists) == 0 || len(songs) == 0 || perPlaylist <= 0 {
		return 0, nil
	}

	edges := 0

	if s.store.Variant() == repositories.OwnedSongs {
		// Exclusive ownership: walk the songs once, dealing each to a playlist.
		for i, song := range songs {
			playlist := playlists[i%len(playlists)]
			if err := s.store.Playlists.AttachSong(ctx, playlist.ID, song.ID); err != nil {
				return 0, fmt.Errorf("failed to attach song: %w", err)
			}
			edges++
		}
		return edges, nil
	}

	for _, playlist := range playlists {
		count := 1 + s.rng.Intn(perPlaylist)
		for _, idx := range s.rng.Perm(len(songs))[:min(count, len(songs))] {
			if err := s.store.Playlists.AttachSong(ctx, playlist.ID, songs[idx].ID); err != nil {
				return 0, fmt.Errorf("failed to attach song: %w", err)
			}
			edges++
		}
	}

	return edges, nil
}

var (
	firstNames = []string{
		"Ana", "Bruno", "Carla", "Diego", "Elisa", "Fabio", "Gina", "Hugo",
		"Iris", "Joao", "Karen", "Lucas", "Marta", "Nina", "Otto", "Paula",
	}
	lastNames = []string{
		"Almeida", "Barbosa", "Costa", "Dias", "Ferreira", "Gomes", "Lima",
		"Moraes", "Nunes", "Oliveira", "Pereira", "Santos", "Silva", "Souza",
	}
	titleWords = []string{
		"Midnight", "Golden", "Electric", "Silent", "Neon", "Velvet",
		"Broken", "Endless", "Hollow", "Distant", "Fading", "Wild",
		"River", "Echo", "Skyline", "Horizon", "Ember", "Thunder",
		"Mirror", "Gravity", "Satellite", "Paradise", "Motorway", "Lantern",
	}
	playlistWords = []string{
		"Road Trip", "Late Night", "Workout", "Focus", "Chill", "Party",
		"Morning", "Throwback", "Acoustic", "Summer", "Rainy Day", "Deep Cuts",
	}
)

func (s *Seeder) personName() string {
	return firstNames[s.rng.Intn(len(firstNames))] + " " + lastNames[s.rng.Intn(len(lastNames))]
}

func (s *Seeder) songTitle() string {
	return titleWords[s.rng.Intn(len(titleWords))] + " " + titleWords[s.rng.Intn(len(titleWords))]
}

func (s *Seeder) playlistName() string {
	return fmt.Sprintf("%s %02d", playlistWords[s.rng.Intn(len(playlistWords))], s.rng.Intn(100))
}
