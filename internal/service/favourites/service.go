package favourites

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/samber/lo"

	"github.com/heartmarshall/salita/internal/domain"
)

// StorageKey is the blob key favourites are persisted under.
const StorageKey = "favouriteWords"

type blobStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Manager keeps the user's favourite words as value copies, independent of
// the vocabulary except for cascade deletes.
type Manager struct {
	log        *slog.Logger
	blobs      blobStore
	favourites []domain.WordEntry
}

// NewManager creates an empty Manager.
func NewManager(log *slog.Logger, blobs blobStore) *Manager {
	return &Manager{
		log:   log.With("service", "favourites"),
		blobs: blobs,
	}
}

// Load replaces the in-memory favourites with the persisted ones.
func (m *Manager) Load(ctx context.Context) error {
	data, err := m.blobs.Load(ctx, StorageKey)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("load favourites: %w", err)
	}
	stored, err := domain.UnmarshalEntries(data)
	if err != nil {
		return fmt.Errorf("load favourites: %w", err)
	}

	favs := make([]domain.WordEntry, 0, len(stored))
	for _, e := range stored {
		if domain.ContainsEntry(favs, e) {
			continue
		}
		favs = append(favs, e)
	}
	if len(favs) != len(stored) {
		m.log.WarnContext(ctx, "dropped duplicate stored favourites",
			slog.Int("dropped", len(stored)-len(favs)),
		)
	}
	m.favourites = favs
	return nil
}

// Add appends a copy of entry. Equal entries are rejected with
// domain.ErrAlreadyExists.
func (m *Manager) Add(ctx context.Context, entry domain.WordEntry) error {
	if domain.ContainsEntry(m.favourites, entry) {
		return domain.ErrAlreadyExists
	}
	next := append(slices.Clone(m.favourites), entry)
	if err := m.persist(ctx, next); err != nil {
		return err
	}
	m.favourites = next

	m.log.InfoContext(ctx, "favourite added", slog.String("filipino", entry.Source))
	return nil
}

// Remove deletes the favourite at index.
func (m *Manager) Remove(ctx context.Context, index int) error {
	if index < 0 || index >= len(m.favourites) {
		return fmt.Errorf("favourite %d: %w", index, domain.ErrIndexOutOfRange)
	}
	removed := m.favourites[index]

	next := slices.Delete(slices.Clone(m.favourites), index, index+1)
	if err := m.persist(ctx, next); err != nil {
		return err
	}
	m.favourites = next

	m.log.InfoContext(ctx, "favourite removed",
		slog.Int("index", index),
		slog.String("filipino", removed.Source),
	)
	return nil
}

// CascadeDelete removes every favourite equal to entry. Storage is written
// only when something was removed.
func (m *Manager) CascadeDelete(ctx context.Context, entry domain.WordEntry) error {
	key := entry.Key()
	next := lo.Reject(m.favourites, func(e domain.WordEntry, _ int) bool {
		return e.Key() == key
	})
	if len(next) == len(m.favourites) {
		return nil
	}
	if err := m.persist(ctx, next); err != nil {
		return err
	}

	m.log.InfoContext(ctx, "favourites pruned",
		slog.String("filipino", entry.Source),
		slog.Int("removed", len(m.favourites)-len(next)),
	)
	m.favourites = next
	return nil
}

// List returns a copy of the favourites in insertion order.
func (m *Manager) List() []domain.WordEntry {
	return slices.Clone(m.favourites)
}

// Contains reports whether an equal entry is a favourite.
func (m *Manager) Contains(entry domain.WordEntry) bool {
	return domain.ContainsEntry(m.favourites, entry)
}

func (m *Manager) Len() int { return len(m.favourites) }

func (m *Manager) persist(ctx context.Context, favs []domain.WordEntry) error {
	data, err := domain.MarshalEntries(favs)
	if err != nil {
		return err
	}
	if err := m.blobs.Save(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("save favourites: %w", err)
	}
	return nil
}
