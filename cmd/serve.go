package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/levi-tabosa/jukebox/internal/dispatch"
	"github.com/levi-tabosa/jukebox/internal/server"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"
)

// Serve starts the HTTP server exposing the dispatch endpoint at /ws and
// the JSON resource API. It blocks until the context is cancelled or the
// server fails.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	db, store, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	dispatcher := dispatch.NewDispatcher(r.config.Catalog.Namespace, store)

	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	if r.config.Server.RateLimit > 0 {
		burst := r.config.Server.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter := rate.NewLimiter(rate.Limit(r.config.Server.RateLimit), burst)
		router.Use(server.RateLimit(limiter))
	}

	router.Handler(server.NewDispatchHandler(dispatcher, r.logger))
	router.Handler(server.NewUsersHandler(store, r.logger))
	router.Handler(server.NewPlaylistsHandler(store, r.logger))
	router.Handler(server.NewSongsHandler(store, r.logger))

	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	if port := cmd.Int("port"); port > 0 {
		addr = fmt.Sprintf("%s:%d", r.config.Server.Host, port)
	}

	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("listening at %v (namespace %v, membership %v)",
			addr, r.config.Catalog.Namespace, store.Variant())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}
	return nil
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP server with the dispatch endpoint and resource API",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "Override the configured server port",
			},
		},
		Action: r.Serve,
	}
}
