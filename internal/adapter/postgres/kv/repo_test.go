package kv

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/salita/internal/domain"
)

func newMockRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return New(mock), mock
}

var (
	loadSQL    = regexp.QuoteMeta(`SELECT value FROM kv_blobs WHERE key = $1`)
	upsertSQL  = regexp.QuoteMeta(`INSERT INTO kv_blobs (key,value,updated_at) VALUES ($1,$2,now()) ON CONFLICT (key) DO UPDATE`)
	historySQL = regexp.QuoteMeta(`INSERT INTO kv_history (key,value) VALUES ($1,$2)`)
)

func TestRepo_Load(t *testing.T) {
	t.Parallel()

	value := []byte(`[{"filipino":"Kain","english":"Eat"}]`)

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		want    []byte
		wantErr error
	}{
		{
			name: "found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(loadSQL).
					WithArgs("userWords").
					WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(value))
			},
			want: value,
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(loadSQL).
					WithArgs("userWords").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "context cancelled",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(loadSQL).
					WithArgs("userWords").
					WillReturnError(context.Canceled)
			},
			wantErr: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo, mock := newMockRepo(t)
			tt.setup(mock)

			got, err := repo.Load(context.Background(), "userWords")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepo_Save_CommitsBothWrites(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	value := []byte(`[]`)

	mock.ExpectBegin()
	mock.ExpectExec(upsertSQL).
		WithArgs("favouriteWords", value).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(historySQL).
		WithArgs("favouriteWords", value).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), "favouriteWords", value))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Save_RollsBackOnHistoryFailure(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	value := []byte(`[]`)

	mock.ExpectBegin()
	mock.ExpectExec(upsertSQL).
		WithArgs("userWords", value).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(historySQL).
		WithArgs("userWords", value).
		WillReturnError(&pgconn.PgError{Code: "23514"})
	mock.ExpectRollback()

	err := repo.Save(context.Background(), "userWords", value)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Save_UpsertError(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	dbErr := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectExec(upsertSQL).
		WithArgs("userWords", pgxmock.AnyArg()).
		WillReturnError(dbErr)
	mock.ExpectRollback()

	err := repo.Save(context.Background(), "userWords", []byte(`[]`))
	require.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Revisions(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	newer := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key, value, saved_at FROM kv_history WHERE key = $1 ORDER BY saved_at DESC, id DESC LIMIT 5`)).
		WithArgs("userWords").
		WillReturnRows(pgxmock.NewRows([]string{"key", "value", "saved_at"}).
			AddRow("userWords", []byte(`[{"filipino":"Kain","english":"Eat"}]`), newer).
			AddRow("userWords", []byte(`[]`), older))

	revs, err := repo.Revisions(context.Background(), "userWords", 5)
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, newer, revs[0].SavedAt)
	assert.Equal(t, []byte(`[]`), revs[1].Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}
