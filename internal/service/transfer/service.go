// Package transfer moves vocabulary in and out of files: spreadsheet and JSON
// imports, JSON/YAML/XLSX exports and scheduled backups.
package transfer

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/salita/internal/domain"
)

type vocabulary interface {
	AddUserWord(ctx context.Context, entry domain.WordEntry) (domain.WordEntry, error)
	Snapshot() []domain.WordEntry
	UserWords() []domain.WordEntry
	IsUserWord(entry domain.WordEntry) bool
}

type favourites interface {
	List() []domain.WordEntry
}

// Service implements import and export.
type Service struct {
	log        *slog.Logger
	vocab      vocabulary
	favourites favourites
	now        func() time.Time
}

// NewService creates a transfer Service.
func NewService(log *slog.Logger, vocab vocabulary, favs favourites) *Service {
	return &Service{
		log:        log.With("service", "transfer"),
		vocab:      vocab,
		favourites: favs,
		now:        time.Now,
	}
}
