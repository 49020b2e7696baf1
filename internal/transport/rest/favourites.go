package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/salita/internal/domain"
)

type favouritesService interface {
	List() []domain.WordEntry
	Add(ctx context.Context, entry domain.WordEntry) error
	Remove(ctx context.Context, index int) error
}

type wordLookup interface {
	Snapshot() []domain.WordEntry
}

// FavouritesHandler serves the favourites endpoints.
type FavouritesHandler struct {
	favourites favouritesService
	vocab      wordLookup
	log        *slog.Logger
}

// NewFavouritesHandler creates a FavouritesHandler.
func NewFavouritesHandler(favourites favouritesService, vocab wordLookup, logger *slog.Logger) *FavouritesHandler {
	return &FavouritesHandler{favourites: favourites, vocab: vocab, log: logger.With("handler", "favourites")}
}

// List handles GET /favourites.
func (h *FavouritesHandler) List(w http.ResponseWriter, r *http.Request) {
	favs := h.favourites.List()
	writeJSON(w, http.StatusOK, map[string]any{
		"favourites": toWordResponses(favs),
		"count":      len(favs),
	})
}

// Add handles POST /favourites. The entry must be in the vocabulary; the
// vocabulary's own spelling is what gets stored.
func (h *FavouritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req wordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}
	entry := req.entry()
	if err := entry.Validate(); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	words := h.vocab.Snapshot()
	idx := domain.IndexOf(words, entry)
	if idx < 0 {
		respondError(w, r, h.log, fmt.Errorf("word %s: %w", entry, domain.ErrNotFound))
		return
	}

	if err := h.favourites.Add(r.Context(), words[idx]); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWordResponse(words[idx]))
}

// Remove handles DELETE /favourites/{index}.
func (h *FavouritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		badRequest(w, errors.New("index must be an integer"))
		return
	}

	if err := h.favourites.Remove(r.Context(), index); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
