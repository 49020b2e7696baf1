package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/salita/internal/domain"
)

type deckBrowser interface {
	Current() (domain.WordEntry, int, bool)
	Next() (domain.WordEntry, int, bool)
	Previous() (domain.WordEntry, int, bool)
	Random() (domain.WordEntry, int, bool)
	Show(index int) (domain.WordEntry, int, bool)
	Last() (domain.WordEntry, int, bool)
	Locate(entry domain.WordEntry) (domain.WordEntry, int, bool)
}

// DeckHandler serves the flashcard browser.
type DeckHandler struct {
	deck deckBrowser
	log  *slog.Logger
}

// NewDeckHandler creates a DeckHandler.
func NewDeckHandler(deck deckBrowser, logger *slog.Logger) *DeckHandler {
	return &DeckHandler{deck: deck, log: logger.With("handler", "deck")}
}

type cardResponse struct {
	Index int          `json:"index"`
	Word  wordResponse `json:"word"`
}

// Current handles GET /deck.
func (h *DeckHandler) Current(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.deck.Current())
}

// Next handles POST /deck/next.
func (h *DeckHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.deck.Next())
}

// Previous handles POST /deck/previous.
func (h *DeckHandler) Previous(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.deck.Previous())
}

// Random handles POST /deck/random.
func (h *DeckHandler) Random(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.deck.Random())
}

// Show handles GET /deck/{index}. Out-of-range indices wrap around.
func (h *DeckHandler) Show(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		badRequest(w, errors.New("index must be an integer"))
		return
	}
	h.respond(w, r)(h.deck.Show(index))
}

// Last handles POST /deck/last, the most recently added word.
func (h *DeckHandler) Last(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.deck.Last())
}

// Locate handles POST /deck/locate.
func (h *DeckHandler) Locate(w http.ResponseWriter, r *http.Request) {
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
	found, index, ok := h.deck.Locate(entry)
	if !ok {
		respondError(w, r, h.log, fmt.Errorf("word %s: %w", entry, domain.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, cardResponse{Index: index, Word: toWordResponse(found)})
}

func (h *DeckHandler) respond(w http.ResponseWriter, r *http.Request) func(domain.WordEntry, int, bool) {
	return func(entry domain.WordEntry, index int, ok bool) {
		if !ok {
			respondError(w, r, h.log, errEmptyDeck)
			return
		}
		writeJSON(w, http.StatusOK, cardResponse{Index: index, Word: toWordResponse(entry)})
	}
}

var errEmptyDeck = fmt.Errorf("vocabulary is empty: %w", domain.ErrNotFound)
