package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/salita/internal/domain"
	"github.com/heartmarshall/salita/internal/service/search"
)

type searchService interface {
	Search(ctx context.Context, query string) ([]search.Suggestion, error)
	SuggestManualEntry(text string) domain.WordEntry
}

// SearchHandler serves vocabulary search.
type SearchHandler struct {
	svc searchService
	log *slog.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(svc searchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{svc: svc, log: logger.With("handler", "search")}
}

type suggestionResponse struct {
	Filipino     string            `json:"filipino"`
	English      string            `json:"english"`
	External     bool              `json:"external"`
	InVocabulary bool              `json:"in_vocabulary"`
	Highlight    highlightSegments `json:"highlight"`
}

type highlightSegments struct {
	Filipino []search.Segment `json:"filipino"`
	English  []search.Segment `json:"english"`
}

// Search handles GET /search?q=. Lookup failures come back as an empty list.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	found, err := h.svc.Search(r.Context(), q)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]suggestionResponse, len(found))
	for i, s := range found {
		out[i] = suggestionResponse{
			Filipino:     s.Entry.Source,
			English:      s.Entry.Target,
			External:     s.IsExternal,
			InVocabulary: s.InVocabulary,
			Highlight: highlightSegments{
				Filipino: search.Highlight(s.Entry.Source, q),
				English:  search.Highlight(s.Entry.Target, q),
			},
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":       q,
		"suggestions": out,
	})
}

// SuggestEntry handles GET /search/entry?text= and prefills a new word from
// free text.
func (h *SearchHandler) SuggestEntry(w http.ResponseWriter, r *http.Request) {
	entry := h.svc.SuggestManualEntry(r.URL.Query().Get("text"))
	writeJSON(w, http.StatusOK, toWordResponse(entry))
}
