package favourites

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/heartmarshall/salita/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBlobStore struct {
	LoadFunc func(ctx context.Context, key string) ([]byte, error)
	SaveFunc func(ctx context.Context, key string, value []byte) error

	saves int
	saved map[string][]byte
}

func (m *mockBlobStore) Load(ctx context.Context, key string) ([]byte, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, key)
	}
	if v, ok := m.saved[key]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockBlobStore) Save(ctx context.Context, key string, value []byte) error {
	m.saves++
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, key, value)
	}
	if m.saved == nil {
		m.saved = make(map[string][]byte)
	}
	m.saved[key] = value
	return nil
}

var (
	kain = domain.WordEntry{Source: "Kain", Target: "Eat"}
	inom = domain.WordEntry{Source: "Inom", Target: "Drink"}
	upo  = domain.WordEntry{Source: "Upo", Target: "Sit"}
)

func newTestManager(t *testing.T, blobs *mockBlobStore, entries ...domain.WordEntry) *Manager {
	t.Helper()
	m := NewManager(slog.Default(), blobs)
	for _, e := range entries {
		require.NoError(t, m.Add(context.Background(), e))
	}
	return m
}

func TestAdd_Success(t *testing.T) {
	t.Parallel()

	blobs := &mockBlobStore{}
	m := newTestManager(t, blobs, kain, inom)

	assert.Equal(t, []domain.WordEntry{kain, inom}, m.List())
	assert.JSONEq(t,
		`[{"filipino":"Kain","english":"Eat"},{"filipino":"Inom","english":"Drink"}]`,
		string(blobs.saved[StorageKey]))
}

func TestAdd_Duplicate(t *testing.T) {
	t.Parallel()

	blobs := &mockBlobStore{}
	m := newTestManager(t, blobs, kain)

	err := m.Add(context.Background(), domain.WordEntry{Source: "KAIN", Target: "eat"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 1, blobs.saves)
}

func TestAdd_StoresValueCopy(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, &mockBlobStore{})
	entry := domain.WordEntry{Source: "Kain", Target: "Eat"}
	require.NoError(t, m.Add(context.Background(), entry))

	entry.Target = "Food"
	assert.Equal(t, "Eat", m.List()[0].Target)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		index   int
		want    []domain.WordEntry
		wantErr error
	}{
		{name: "first", index: 0, want: []domain.WordEntry{inom, upo}},
		{name: "last", index: 2, want: []domain.WordEntry{kain, inom}},
		{name: "negative", index: -1, want: []domain.WordEntry{kain, inom, upo}, wantErr: domain.ErrIndexOutOfRange},
		{name: "past end", index: 3, want: []domain.WordEntry{kain, inom, upo}, wantErr: domain.ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newTestManager(t, &mockBlobStore{}, kain, inom, upo)
			err := m.Remove(context.Background(), tt.index)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, m.List())
		})
	}
}

func TestCascadeDelete_RemovesEveryMatch(t *testing.T) {
	t.Parallel()

	blobs := &mockBlobStore{saved: map[string][]byte{}}
	m := NewManager(slog.Default(), blobs)
	// Bypass Add to simulate an upstream uniqueness violation.
	m.favourites = []domain.WordEntry{kain, inom, {Source: "kain", Target: "EAT"}}

	require.NoError(t, m.CascadeDelete(context.Background(), kain))
	assert.Equal(t, []domain.WordEntry{inom}, m.List())
	assert.Equal(t, 1, blobs.saves)
}

func TestCascadeDelete_NoMatchSkipsSave(t *testing.T) {
	t.Parallel()

	blobs := &mockBlobStore{}
	m := newTestManager(t, blobs, inom)
	saves := blobs.saves

	require.NoError(t, m.CascadeDelete(context.Background(), kain))
	assert.Equal(t, saves, blobs.saves)
	assert.Equal(t, []domain.WordEntry{inom}, m.List())
}

func TestCascadeDelete_SaveError(t *testing.T) {
	t.Parallel()

	blobs := &mockBlobStore{}
	m := newTestManager(t, blobs, kain)
	blobs.SaveFunc = func(ctx context.Context, key string, value []byte) error { return errors.New("boom") }

	require.Error(t, m.CascadeDelete(context.Background(), kain))
	assert.True(t, m.Contains(kain))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	blobs := &mockBlobStore{saved: map[string][]byte{
		StorageKey: []byte(`[{"filipino":"Kain","english":"Eat"},{"filipino":"KAIN","english":"eat"},{"filipino":"Upo","english":"Sit"}]`),
	}}
	m := NewManager(slog.Default(), blobs)

	require.NoError(t, m.Load(context.Background()))
	assert.Equal(t, []domain.WordEntry{kain, upo}, m.List())
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	m := NewManager(slog.Default(), &mockBlobStore{})
	require.NoError(t, m.Load(context.Background()))
	assert.Empty(t, m.List())
}
