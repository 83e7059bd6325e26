package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/history"
	"github.com/robalobadob/wordle/apps/solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solver/internal/scoring"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg config.Config) error {
	src := wordSource(cfg)

	scorer, err := newScorer(cfg, src)
	if err != nil {
		return err
	}
	sv := solver.New(scorer, src, solver.WithMaxAttempts(cfg.MaxAttempts))

	hist, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer hist.Close()

	api := httpserver.New(sv, hist, httpserver.Options{
		ClientOrigin:   cfg.ClientOrigin,
		RequestTimeout: cfg.RequestTimeout,
	})
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("port", cfg.Port).
			Str("scoring", cfg.ScoringMode).
			Str("words", src.Name()).
			Msg("starting wordle solver")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// wordSource picks the dictionary: WORDS_FILE when set, else the embedded list.
func wordSource(cfg config.Config) words.Source {
	if cfg.WordsFile != "" {
		return words.FileSource(cfg.WordsFile)
	}
	return words.EmbeddedSource()
}

// newScorer builds the remote API client, or the offline scorer in local mode.
func newScorer(cfg config.Config, src words.Source) (scoring.Client, error) {
	if cfg.ScoringMode == config.ModeLocal {
		if cfg.LocalAnswer != "" {
			return scoring.NewFixedClient(cfg.LocalAnswer), nil
		}
		return scoring.NewLocalClient(src, cfg.DailySalt), nil
	}
	return scoring.NewHTTPClient(cfg.ScoringBaseURL, cfg.ScoringTimeout)
}

// openHistory uses SQLite when DB_PATH is set, memory otherwise.
func openHistory(cfg config.Config) (history.Store, error) {
	if cfg.DBPath == "" {
		return history.NewMemoryStore(history.DefaultCapacity), nil
	}
	return history.OpenSQLite(cfg.DBPath)
}
