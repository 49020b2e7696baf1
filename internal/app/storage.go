package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/salita/internal/adapter/memory"
	"github.com/heartmarshall/salita/internal/adapter/postgres"
	"github.com/heartmarshall/salita/internal/adapter/postgres/kv"
	"github.com/heartmarshall/salita/internal/adapter/sqlite"
	"github.com/heartmarshall/salita/internal/config"
	"github.com/heartmarshall/salita/internal/domain"
	"github.com/heartmarshall/salita/migrations"
)

// ErrHistoryUnsupported is returned by Revisions for drivers that keep no
// history.
var ErrHistoryUnsupported = errors.New("storage driver keeps no history")

// BlobStore is the key-value persistence shared by the vocabulary and the
// favourites.
type BlobStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}

type revisionStore interface {
	Revisions(ctx context.Context, key string, limit int) ([]domain.Revision, error)
}

// postgresStore closes the pool together with the repository.
type postgresStore struct {
	*kv.Repo
	pool *pgxpool.Pool
}

func (s *postgresStore) Close() error {
	s.pool.Close()
	return nil
}

// OpenStore opens the blob store selected by cfg.Driver. Postgres schemas are
// migrated before the store is returned.
func OpenStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (BlobStore, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.WarnContext(ctx, "using in-memory storage, nothing will be persisted")
		return memory.NewStore(), nil

	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		applied, err := postgres.Migrate(ctx, pool, migrations.FS)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate postgres store: %w", err)
		}
		logger.InfoContext(ctx, "postgres store ready", slog.Int("migrations_applied", applied))
		return &postgresStore{Repo: kv.New(pool), pool: pool}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
