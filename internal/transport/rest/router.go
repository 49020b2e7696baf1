package rest

import "net/http"

// APIPrefix is the mount point of the versioned API.
const APIPrefix = "/api/v1"

// Handlers groups every REST handler the router mounts.
type Handlers struct {
	Health     *HealthHandler
	Words      *WordsHandler
	Favourites *FavouritesHandler
	Quiz       *QuizHandler
	Search     *SearchHandler
	Deck       *DeckHandler
}

// NewRouter registers all routes on a new ServeMux. Probes live at the root,
// everything else under APIPrefix.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	api := func(method, path string, fn http.HandlerFunc) {
		mux.HandleFunc(method+" "+APIPrefix+path, fn)
	}

	api(http.MethodGet, "/words", h.Words.List)
	api(http.MethodPost, "/words", h.Words.Add)
	api(http.MethodDelete, "/words", h.Words.Delete)
	api(http.MethodGet, "/words/user", h.Words.UserWords)

	api(http.MethodGet, "/favourites", h.Favourites.List)
	api(http.MethodPost, "/favourites", h.Favourites.Add)
	api(http.MethodDelete, "/favourites/{index}", h.Favourites.Remove)

	api(http.MethodPost, "/quiz", h.Quiz.Start)
	api(http.MethodGet, "/quiz/{id}", h.Quiz.Get)
	api(http.MethodDelete, "/quiz/{id}", h.Quiz.Delete)
	api(http.MethodPost, "/quiz/{id}/answer", h.Quiz.Answer)
	api(http.MethodPost, "/quiz/{id}/advance", h.Quiz.Advance)
	api(http.MethodPost, "/quiz/{id}/stop", h.Quiz.Stop)
	api(http.MethodPost, "/quiz/{id}/restart", h.Quiz.Restart)
	api(http.MethodGet, "/quiz/{id}/mistakes", h.Quiz.Mistakes)

	api(http.MethodGet, "/search", h.Search.Search)
	api(http.MethodGet, "/search/entry", h.Search.SuggestEntry)

	api(http.MethodGet, "/deck", h.Deck.Current)
	api(http.MethodGet, "/deck/{index}", h.Deck.Show)
	api(http.MethodPost, "/deck/next", h.Deck.Next)
	api(http.MethodPost, "/deck/previous", h.Deck.Previous)
	api(http.MethodPost, "/deck/random", h.Deck.Random)
	api(http.MethodPost, "/deck/last", h.Deck.Last)
	api(http.MethodPost, "/deck/locate", h.Deck.Locate)

	return mux
}
