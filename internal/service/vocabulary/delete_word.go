package vocabulary

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/salita/internal/domain"
)

// DeleteUserWord removes a user-added word, persists the list and then asks
// the deletion listener to prune its copies. Built-in words are never found.
func (s *Store) DeleteUserWord(ctx context.Context, entry domain.WordEntry) error {
	idx := domain.IndexOf(s.userWords, entry)
	if idx < 0 {
		return domain.ErrNotFound
	}
	removed := s.userWords[idx]

	next := slices.Delete(slices.Clone(s.userWords), idx, idx+1)
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.userWords = next

	s.log.InfoContext(ctx, "word deleted",
		slog.String("filipino", removed.Source),
		slog.String("english", removed.Target),
	)

	if s.listener == nil {
		return nil
	}
	if err := s.listener.CascadeDelete(ctx, removed); err != nil {
		s.log.ErrorContext(ctx, "cascade delete failed",
			slog.String("filipino", removed.Source),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("cascade delete: %w", err)
	}
	return nil
}
