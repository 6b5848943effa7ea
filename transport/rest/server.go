package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// NewRouter builds the HTTP API. metrics serves the prometheus scrape endpoint.
func NewRouter(logger *slog.Logger, lobby lobbyReader, scores scoreReader, matches matchReader, metrics http.Handler) http.Handler {
	h := &handlers{
		logger:  logger,
		lobby:   lobby,
		scores:  scores,
		matches: matches,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ping", pingHandler)
	r.Method(http.MethodGet, "/metrics", metrics)
	r.Get("/lobby", h.getLobby)
	r.Get("/scores/{name}", h.getScore)
	r.Get("/matches/{id}", h.getMatch)

	return r
}

// Start serves handler on port until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
