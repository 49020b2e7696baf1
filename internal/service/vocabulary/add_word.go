package vocabulary

import (
	"context"
	"log/slog"
	"slices"

	"github.com/heartmarshall/salita/internal/domain"
)

// AddUserWord trims and appends entry to the user words and persists them.
// It returns the stored entry.
func (s *Store) AddUserWord(ctx context.Context, entry domain.WordEntry) (domain.WordEntry, error) {
	entry = entry.Trimmed()
	if err := entry.Validate(); err != nil {
		return domain.WordEntry{}, err
	}
	if s.Contains(entry) {
		return domain.WordEntry{}, domain.ErrAlreadyExists
	}

	next := append(slices.Clone(s.userWords), entry)
	if err := s.persist(ctx, next); err != nil {
		return domain.WordEntry{}, err
	}
	s.userWords = next

	s.log.InfoContext(ctx, "word added",
		slog.String("filipino", entry.Source),
		slog.String("english", entry.Target),
	)
	return entry, nil
}
