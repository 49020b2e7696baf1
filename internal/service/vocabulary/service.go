package vocabulary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/salita/internal/domain"
)

// StorageKey is the blob key user-added words are persisted under.
const StorageKey = "userWords"

type blobStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

type deletionListener interface {
	CascadeDelete(ctx context.Context, entry domain.WordEntry) error
}

// Store owns the vocabulary: a fixed built-in list followed by user-added
// words. It is not safe for concurrent use.
type Store struct {
	log       *slog.Logger
	blobs     blobStore
	builtIn   []domain.WordEntry
	userWords []domain.WordEntry
	listener  deletionListener
}

// NewStore creates a Store over the given built-in words. User words stay
// empty until Load is called.
func NewStore(log *slog.Logger, blobs blobStore, builtIn []domain.WordEntry) *Store {
	return &Store{
		log:     log.With("service", "vocabulary"),
		blobs:   blobs,
		builtIn: slices.Clone(builtIn),
	}
}

// SetDeletionListener registers the collaborator notified after a user word
// is deleted.
func (s *Store) SetDeletionListener(l deletionListener) {
	s.listener = l
}

// Load replaces the in-memory user words with the persisted ones. A missing
// key is an empty list. Invalid entries and repeats within the stored list
// are dropped; words that equal a built-in word are kept.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.blobs.Load(ctx, StorageKey)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("load user words: %w", err)
	}

	stored, err := domain.UnmarshalEntries(data)
	if err != nil {
		return fmt.Errorf("load user words: %w", err)
	}

	words := make([]domain.WordEntry, 0, len(stored))
	dropped := 0
	for _, e := range stored {
		e = e.Trimmed()
		if e.Validate() != nil || domain.ContainsEntry(words, e) {
			dropped++
			continue
		}
		words = append(words, e)
	}
	if dropped > 0 {
		s.log.WarnContext(ctx, "dropped invalid or duplicate stored words",
			slog.Int("dropped", dropped),
		)
	}

	s.userWords = words
	s.log.InfoContext(ctx, "vocabulary loaded",
		slog.Int("built_in", len(s.builtIn)),
		slog.Int("user", len(words)),
	)
	return nil
}

// Snapshot returns the merged vocabulary, built-in words first. The result is
// a fresh slice owned by the caller.
func (s *Store) Snapshot() []domain.WordEntry {
	out := make([]domain.WordEntry, 0, len(s.builtIn)+len(s.userWords))
	out = append(out, s.builtIn...)
	return append(out, s.userWords...)
}

// Contains reports whether an equal entry exists anywhere in the vocabulary.
func (s *Store) Contains(entry domain.WordEntry) bool {
	return domain.ContainsEntry(s.builtIn, entry) || domain.ContainsEntry(s.userWords, entry)
}

// UserWords returns a copy of the user-added words.
func (s *Store) UserWords() []domain.WordEntry {
	return slices.Clone(s.userWords)
}

// IsUserWord reports whether entry was added by the user and can be deleted.
func (s *Store) IsUserWord(entry domain.WordEntry) bool {
	return domain.ContainsEntry(s.userWords, entry)
}

// BuiltIn returns a copy of the built-in words.
func (s *Store) BuiltIn() []domain.WordEntry {
	return slices.Clone(s.builtIn)
}

// Len returns the size of the merged vocabulary.
func (s *Store) Len() int {
	return len(s.builtIn) + len(s.userWords)
}

func (s *Store) persist(ctx context.Context, words []domain.WordEntry) error {
	data, err := domain.MarshalEntries(words)
	if err != nil {
		return err
	}
	if err := s.blobs.Save(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("save user words: %w", err)
	}
	return nil
}
