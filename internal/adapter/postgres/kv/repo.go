// Package kv implements the blob store on PostgreSQL. Every save is also
// appended to kv_history so earlier versions can be listed.
package kv

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/salita/internal/adapter/postgres"
	"github.com/heartmarshall/salita/internal/domain"
)

const (
	blobsTable   = "kv_blobs"
	historyTable = "kv_history"
	entity       = "kv_blob"
)

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repo provides blob persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Pool
	tx   txManager
	sb   sq.StatementBuilderType
}

// New creates a new kv repository.
func New(pool postgres.Pool) *Repo {
	return &Repo{
		pool: pool,
		tx:   postgres.NewTxManager(pool),
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

type blobRow struct {
	Value []byte `db:"value"`
}

type revisionRow struct {
	Key     string    `db:"key"`
	Value   []byte    `db:"value"`
	SavedAt time.Time `db:"saved_at"`
}

// Load returns the value stored under key or domain.ErrNotFound.
func (r *Repo) Load(ctx context.Context, key string) ([]byte, error) {
	query, args, err := r.sb.
		Select("value").
		From(blobsTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load query: %w", err)
	}

	var row blobRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("%s %s: %w", entity, key, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, entity, key)
	}
	return row.Value, nil
}

// Save upserts value under key and records it in the history table, both in
// one transaction.
func (r *Repo) Save(ctx context.Context, key string, value []byte) error {
	upsert, upsertArgs, err := r.sb.
		Insert(blobsTable).
		Columns("key", "value", "updated_at").
		Values(key, value, sq.Expr("now()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}

	history, historyArgs, err := r.sb.
		Insert(historyTable).
		Columns("key", "value").
		Values(key, value).
		ToSql()
	if err != nil {
		return fmt.Errorf("build history query: %w", err)
	}

	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)
		if _, err := q.Exec(ctx, upsert, upsertArgs...); err != nil {
			return postgres.MapError(err, entity, key)
		}
		if _, err := q.Exec(ctx, history, historyArgs...); err != nil {
			return postgres.MapError(err, entity, key)
		}
		return nil
	})
}

// Revisions returns up to limit saved versions of key, newest first.
func (r *Repo) Revisions(ctx context.Context, key string, limit int) ([]domain.Revision, error) {
	query, args, err := r.sb.
		Select("key", "value", "saved_at").
		From(historyTable).
		Where(sq.Eq{"key": key}).
		OrderBy("saved_at DESC", "id DESC").
		Limit(uint64(max(limit, 1))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build revisions query: %w", err)
	}

	var rows []revisionRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, key)
	}

	out := make([]domain.Revision, len(rows))
	for i, row := range rows {
		out[i] = domain.Revision{Key: row.Key, Value: row.Value, SavedAt: row.SavedAt}
	}
	return out, nil
}

// Ping checks the database connection.
func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
