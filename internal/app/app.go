package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/heartmarshall/salita/internal/adapter/langdetect"
	"github.com/heartmarshall/salita/internal/adapter/provider/translate"
	"github.com/heartmarshall/salita/internal/config"
	"github.com/heartmarshall/salita/internal/domain"
	"github.com/heartmarshall/salita/internal/service/deck"
	"github.com/heartmarshall/salita/internal/service/favourites"
	"github.com/heartmarshall/salita/internal/service/quiz"
	"github.com/heartmarshall/salita/internal/service/search"
	"github.com/heartmarshall/salita/internal/service/transfer"
	"github.com/heartmarshall/salita/internal/service/vocabulary"
)

type translator interface {
	Translate(ctx context.Context, query, sourceLang, targetLang string) (string, error)
}

// App wires the services over one blob store. The services are not safe for
// concurrent use; concurrent callers must hold Locker.
type App struct {
	Config     *config.Config
	Log        *slog.Logger
	Store      BlobStore
	Vocabulary *vocabulary.Store
	Favourites *favourites.Manager
	Quizzes    *quiz.Registry
	Search     *search.Resolver
	Deck       *deck.Deck
	Transfer   *transfer.Service

	mu sync.Mutex
}

// New opens the configured store, loads the vocabulary and favourites and
// builds every service. Close releases the store.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := OpenStore(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Log: logger, Store: store}

	a.Vocabulary = vocabulary.NewStore(logger, store, domain.DefaultWords())
	a.Favourites = favourites.NewManager(logger, store)
	a.Vocabulary.SetDeletionListener(a.Favourites)

	if err := a.Vocabulary.Load(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	if err := a.Favourites.Load(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	a.Quizzes = quiz.NewRegistry(logger, cfg.Quiz.MaxSessions, a.NewQuiz)
	a.Search = search.NewResolver(logger, a.Vocabulary, newTranslator(cfg.Translate, logger), langdetect.New(a.Vocabulary), search.Options{
		MinQueryLength: cfg.Search.MinQueryLength,
		SourceLang:     cfg.Translate.SourceLang,
		TargetLang:     cfg.Translate.TargetLang,
	})
	a.Deck = deck.New(a.Vocabulary, a.newRand())
	a.Transfer = transfer.NewService(logger, a.Vocabulary, a.Favourites)

	return a, nil
}

func newTranslator(cfg config.TranslateConfig, logger *slog.Logger) translator {
	if cfg.Disabled {
		logger.Info("translation fallback disabled")
		return translate.NewStub()
	}
	return translate.NewClientWithURL(cfg.BaseURL, logger,
		translate.WithTimeout(cfg.Timeout),
		translate.WithRetryDelay(cfg.RetryDelay),
	)
}

// NewQuiz creates an idle quiz engine over the vocabulary and favourites.
func (a *App) NewQuiz() *quiz.Engine {
	return quiz.NewEngine(a.Log, a.Vocabulary, a.Favourites, a.newRand(), quiz.Options{
		DistinctOptions: !a.Config.Quiz.AllowDuplicateOptions,
	})
}

// newRand seeds from the config, or from the clock when the seed is zero.
func (a *App) newRand() *rand.Rand {
	seed := a.Config.Quiz.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)) //nolint:gosec // quiz shuffling, not security
}

// Locker is the lock that serialises access to the services.
func (a *App) Locker() sync.Locker {
	return &a.mu
}

// Revisions lists saved versions of key when the store keeps history.
func (a *App) Revisions(ctx context.Context, key string, limit int) ([]domain.Revision, error) {
	rs, ok := a.Store.(revisionStore)
	if !ok {
		return nil, fmt.Errorf("%s: %w", a.Config.Storage.Driver, ErrHistoryUnsupported)
	}
	return rs.Revisions(ctx, key, limit)
}

// Close releases the blob store.
func (a *App) Close() error {
	return a.Store.Close()
}
