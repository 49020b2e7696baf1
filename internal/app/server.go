package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/salita/internal/config"
	"github.com/heartmarshall/salita/internal/domain"
	"github.com/heartmarshall/salita/internal/service/transfer"
	"github.com/heartmarshall/salita/internal/transport/middleware"
	"github.com/heartmarshall/salita/internal/transport/rest"
)

// Run is the entry point of `salita serve`. It loads configuration, builds
// the App and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
	)

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("close store", slog.String("error", err.Error()))
		}
	}()

	return a.Serve(ctx)
}

// Handler builds the REST router behind the middleware chain. Every request
// holds Locker while it runs.
func (a *App) Handler(rl *middleware.RateLimiter) http.Handler {
	router := rest.NewRouter(rest.Handlers{
		Health:     rest.NewHealthHandler(a.Store, BuildVersion()),
		Words:      rest.NewWordsHandler(a.Vocabulary, a.Favourites, a.Log),
		Favourites: rest.NewFavouritesHandler(a.Favourites, a.Vocabulary, a.Log),
		Quiz:       rest.NewQuizHandler(a.Quizzes, a.Log),
		Search:     rest.NewSearchHandler(a.Search, a.Log),
		Deck:       rest.NewDeckHandler(a.Deck, a.Log),
	})

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(a.Log),
		middleware.Recovery(a.Log),
		middleware.CORS(a.Config.CORS),
		rl.Limit(a.Config.RateLimit),
		middleware.Serialize(a.Locker()),
	)(router)
}

// Serve runs the HTTP server and, when enabled, the backup scheduler. It
// returns after ctx is cancelled and both have stopped.
func (a *App) Serve(ctx context.Context) error {
	rl := middleware.NewRateLimiter(time.Minute)
	defer rl.Stop()

	srv := &http.Server{
		Addr:         a.Config.Server.Addr(),
		Handler:      a.Handler(rl),
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}

	var sched *transfer.Scheduler
	if a.Config.Backup.Enabled {
		var err error
		if sched, err = a.NewBackupScheduler(); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()

		a.Log.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if sched != nil {
		g.Go(func() error {
			if err := sched.Start(gctx); err != nil {
				return fmt.Errorf("backup scheduler: %w", err)
			}
			<-gctx.Done()
			sched.Stop()
			return nil
		})
	}

	return g.Wait()
}

// NewBackupScheduler creates the scheduler that exports to the backup
// directory under Locker.
func (a *App) NewBackupScheduler() (*transfer.Scheduler, error) {
	return transfer.NewScheduler(a.Log, a.Transfer, a.Locker(), transfer.BackupOptions{
		Interval: a.Config.Backup.Interval,
		Dir:      a.Config.Backup.Dir,
		Format:   domain.ExportFormat(a.Config.Backup.Format),
	})
}
