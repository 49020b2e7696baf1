package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/salita/internal/domain"
)

type vocabularyService interface {
	Snapshot() []domain.WordEntry
	UserWords() []domain.WordEntry
	IsUserWord(entry domain.WordEntry) bool
	AddUserWord(ctx context.Context, entry domain.WordEntry) (domain.WordEntry, error)
	DeleteUserWord(ctx context.Context, entry domain.WordEntry) error
}

type favouriteChecker interface {
	Contains(entry domain.WordEntry) bool
}

// WordsHandler serves the vocabulary endpoints.
type WordsHandler struct {
	vocab      vocabularyService
	favourites favouriteChecker
	log        *slog.Logger
}

// NewWordsHandler creates a WordsHandler.
func NewWordsHandler(vocab vocabularyService, favourites favouriteChecker, logger *slog.Logger) *WordsHandler {
	return &WordsHandler{vocab: vocab, favourites: favourites, log: logger.With("handler", "words")}
}

type vocabularyItem struct {
	Filipino  string `json:"filipino"`
	English   string `json:"english"`
	UserWord  bool   `json:"user_word"`
	Favourite bool   `json:"favourite"`
}

type vocabularyResponse struct {
	Words []vocabularyItem `json:"words"`
	Count int              `json:"count"`
}

// List handles GET /words: built-in words followed by user words.
func (h *WordsHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.vocab.Snapshot()
	items := make([]vocabularyItem, len(entries))
	for i, e := range entries {
		items[i] = vocabularyItem{
			Filipino:  e.Source,
			English:   e.Target,
			UserWord:  h.vocab.IsUserWord(e),
			Favourite: h.favourites.Contains(e),
		}
	}
	writeJSON(w, http.StatusOK, vocabularyResponse{Words: items, Count: len(items)})
}

// UserWords handles GET /words/user.
func (h *WordsHandler) UserWords(w http.ResponseWriter, r *http.Request) {
	words := h.vocab.UserWords()
	writeJSON(w, http.StatusOK, map[string]any{
		"words": toWordResponses(words),
		"count": len(words),
	})
}

// Add handles POST /words.
func (h *WordsHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req wordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}

	stored, err := h.vocab.AddUserWord(r.Context(), req.entry())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWordResponse(stored))
}

// Delete handles DELETE /words with the entry in the body. Built-in words are
// reported as not found.
func (h *WordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req wordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}

	if err := h.vocab.DeleteUserWord(r.Context(), req.entry()); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
