package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/salita/internal/adapter/memory"
	"github.com/heartmarshall/salita/internal/domain"
	"github.com/heartmarshall/salita/internal/service/deck"
	"github.com/heartmarshall/salita/internal/service/favourites"
	"github.com/heartmarshall/salita/internal/service/quiz"
	"github.com/heartmarshall/salita/internal/service/search"
	"github.com/heartmarshall/salita/internal/service/vocabulary"
)

type mockSearch struct {
	SearchFunc             func(ctx context.Context, query string) ([]search.Suggestion, error)
	SuggestManualEntryFunc func(text string) domain.WordEntry
}

func (m *mockSearch) Search(ctx context.Context, query string) ([]search.Suggestion, error) {
	return m.SearchFunc(ctx, query)
}

func (m *mockSearch) SuggestManualEntry(text string) domain.WordEntry {
	return m.SuggestManualEntryFunc(text)
}

var builtIn = []domain.WordEntry{
	{Source: "Kain", Target: "Eat"},
	{Source: "Inom", Target: "Drink"},
	{Source: "Tulog", Target: "Sleep"},
	{Source: "Takbo", Target: "Run"},
}

type testServer struct {
	handler http.Handler
	vocab   *vocabulary.Store
	favs    *favourites.Manager
	search  *mockSearch
}

func newTestServer(t *testing.T, words ...domain.WordEntry) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	blobs := memory.NewStore()

	vocab := vocabulary.NewStore(logger, blobs, words)
	favs := favourites.NewManager(logger, blobs)
	vocab.SetDeletionListener(favs)

	registry := quiz.NewRegistry(logger, 4, func() *quiz.Engine {
		rng := rand.New(rand.NewSource(7)) //nolint:gosec // deterministic test seed
		return quiz.NewEngine(logger, vocab, favs, rng, quiz.Options{DistinctOptions: true})
	})
	searchSvc := &mockSearch{
		SearchFunc: func(context.Context, string) ([]search.Suggestion, error) { return nil, nil },
		SuggestManualEntryFunc: func(text string) domain.WordEntry {
			return domain.WordEntry{Source: text}
		},
	}

	handler := NewRouter(Handlers{
		Health:     NewHealthHandler(blobs, "test"),
		Words:      NewWordsHandler(vocab, favs, logger),
		Favourites: NewFavouritesHandler(favs, vocab, logger),
		Quiz:       NewQuizHandler(registry, logger),
		Search:     NewSearchHandler(searchSvc, logger),
		Deck:       NewDeckHandler(deck.New(vocab, rand.New(rand.NewSource(1))), logger), //nolint:gosec // deterministic test seed
	})
	return &testServer{handler: handler, vocab: vocab, favs: favs, search: searchSvc}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[errorBody](t, rec).Error.Code
}

func TestWords_ListMarksUserAndFavourite(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, builtIn...)
	_, err := s.vocab.AddUserWord(context.Background(), domain.WordEntry{Source: "Lakad", Target: "Walk"})
	require.NoError(t, err)
	require.NoError(t, s.favs.Add(context.Background(), builtIn[0]))

	rec := s.do(t, http.MethodGet, "/api/v1/words", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[vocabularyResponse](t, rec)
	require.Equal(t, 5, resp.Count)
	assert.True(t, resp.Words[0].Favourite)
	assert.False(t, resp.Words[0].UserWord)
	assert.Equal(t, vocabularyItem{Filipino: "Lakad", English: "Walk", UserWord: true}, resp.Words[4])
}

func TestWords_Add(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"created", `{"filipino":"  Lakad ","english":"Walk"}`, http.StatusCreated, ""},
		{"duplicate ignoring case", `{"filipino":"kain","english":"EAT"}`, http.StatusConflict, "ALREADY_EXISTS"},
		{"empty field", `{"filipino":"Lakad","english":"  "}`, http.StatusUnprocessableEntity, "VALIDATION"},
		{"malformed body", `{"filipino":`, http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown field", `{"tagalog":"Lakad"}`, http.StatusBadRequest, "BAD_REQUEST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestServer(t, builtIn...)
			rec := s.do(t, http.MethodPost, "/api/v1/words", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, rec))
				return
			}
			assert.Equal(t, wordResponse{Filipino: "Lakad", English: "Walk"}, decode[wordResponse](t, rec))
		})
	}
}

func TestWords_ValidationFieldsReported(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, builtIn...)
	rec := s.do(t, http.MethodPost, "/api/v1/words", `{"filipino":"","english":"Walk"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decode[errorBody](t, rec)
	require.NotEmpty(t, body.Error.Fields)
	assert.Equal(t, "filipino", body.Error.Fields[0].Field)
}

func TestWords_DeleteCascadesToFavourites(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, builtIn...)
	lakad := domain.WordEntry{Source: "Lakad", Target: "Walk"}
	_, err := s.vocab.AddUserWord(context.Background(), lakad)
	require.NoError(t, err)
	require.NoError(t, s.favs.Add(context.Background(), lakad))

	rec := s.do(t, http.MethodDelete, "/api/v1/words", `{"filipino":"LAKAD","english":"walk"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, s.vocab.UserWords())
	assert.Zero(t, s.favs.Len())

	rec = s.do(t, http.MethodDelete, "/api/v1/words", `{"filipino":"Lakad","english":"Walk"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWords_DeleteBuiltInNotFound(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, builtIn...)
	rec := s.do(t, http.MethodDelete, "/api/v1/words", `{"filipino":"Kain","english":"Eat"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

func TestFavourites_AddListRemove(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, builtIn...)

	rec := s.do(t, http.MethodPost, "/api/v1/favourites", `{"filipino":"inom","english":"DRINK"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, wordResponse{Filipino: "Inom", English: "Drink"}, decode[wordResponse](t, rec))

	rec = s.do(t, http.MethodPost, "/api/v1/favourites", `{"filipino":"Inom","english":"Drink"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/favourites", `{"filipino":"Wala","english":"None"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/favourites", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Favourites []wordResponse `json:"favourites"`
		Count      int            `json:"count"`
	}](t, rec)
	assert.Equal(t, 1, list.Count)

	rec = s.do(t, http.MethodDelete, "/api/v1/favourites/1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INDEX_OUT_OF_RANGE", errorCode(t, rec))

	rec = s.do(t, http.MethodDelete, "/api/v1/favourites/x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/favourites/0", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, s.favs.Len())
}

func TestQuiz_FullSession(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, builtIn...)
	answers := map[string]string{}
	for _, e := range builtIn {
		answers[e.Source] = e.Target
	}

	rec := s.do(t, http.MethodPost, "/api/v1/quiz", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	session := decode[sessionResponse](t, rec)
	require.NotEmpty(t, session.ID)
	assert.Equal(t, "IN_PROGRESS", session.State)
	assert.Equal(t, "ALL", session.Source)
	require.NotNil(t, session.Question)
	assert.Len(t, session.Question.Options, quiz.OptionCount)

	base := "/api/v1/quiz/" + session.ID
	for i := 0; i < len(builtIn); i++ {
		q := session.Question
		require.NotNil(t, q)
		option := answers[q.Prompt]
		if i == 0 {
			option = "wrong"
		}

		rec = s.do(t, http.MethodPost, base+"/answer", `{"option":"`+option+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		ans := decode[answerResponse](t, rec)
		assert.Equal(t, i != 0, ans.Correct)
		assert.Equal(t, answers[q.Prompt], ans.CorrectAnswer)

		rec = s.do(t, http.MethodPost, base+"/answer", `{"option":"`+answers[q.Prompt]+`"}`)
		assert.True(t, decode[answerResponse](t, rec).AlreadyAnswered)

		rec = s.do(t, http.MethodPost, base+"/advance", "")
		require.Equal(t, http.StatusOK, rec.Code)
		session = decode[sessionResponse](t, rec)
	}

	assert.Equal(t, "FINISHED", session.State)
	require.NotNil(t, session.Summary)
	assert.Equal(t, "3/4", session.Summary.Text)

	rec = s.do(t, http.MethodGet, base+"/mistakes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	mistakes := decode[struct {
		Mistakes []wordResponse `json:"mistakes"`
	}](t, rec)
	assert.Len(t, mistakes.Mistakes, 1)

	rec = s.do(t, http.MethodPost, base+"/advance", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INVALID_STATE", errorCode(t, rec))

	rec = s.do(t, http.MethodPost, base+"/restart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "IN_PROGRESS", decode[sessionResponse](t, rec).State)

	rec = s.do(t, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuiz_StopEarly(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, builtIn...)
	session := decode[sessionResponse](t, s.do(t, http.MethodPost, "/api/v1/quiz", `{"source":"all"}`))
	base := "/api/v1/quiz/" + session.ID

	rec := s.do(t, http.MethodGet, base+"/mistakes", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, base+"/stop", "")
	require.Equal(t, http.StatusOK, rec.Code)
	session = decode[sessionResponse](t, rec)
	require.NotNil(t, session.Summary)
	assert.True(t, session.Summary.StoppedEarly)
	assert.Equal(t, "0/0", session.Summary.Text)
	assert.Nil(t, session.Question)
}

func TestQuiz_StartErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		words      []domain.WordEntry
		body       string
		wantStatus int
		wantCode   string
	}{
		{"too few words", builtIn[:3], `{"source":"ALL"}`, http.StatusUnprocessableEntity, "INSUFFICIENT_WORDS"},
		{"empty favourites", builtIn, `{"source":"FAVOURITES"}`, http.StatusUnprocessableEntity, "INSUFFICIENT_WORDS"},
		{"unknown source", builtIn, `{"source":"RANDOM"}`, http.StatusUnprocessableEntity, "VALIDATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestServer(t, tt.words...)
			rec := s.do(t, http.MethodPost, "/api/v1/quiz", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, rec))
		})
	}
}

func TestQuiz_FailedStartKeepsSessionsAtCapacity(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, builtIn...)

	// The test registry holds four sessions.
	var ids []string
	for range 4 {
		rec := s.do(t, http.MethodPost, "/api/v1/quiz", `{"source":"ALL"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		ids = append(ids, decode[sessionResponse](t, rec).ID)
	}

	rec := s.do(t, http.MethodPost, "/api/v1/quiz", `{"source":"FAVOURITES"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	for _, id := range ids {
		assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/quiz/"+id, "").Code, id)
	}
}

func TestSearch_ReturnsSuggestionsWithHighlight(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, builtIn...)
	s.search.SearchFunc = func(_ context.Context, query string) ([]search.Suggestion, error) {
		assert.Equal(t, "ka", query)
		return []search.Suggestion{{Entry: builtIn[0], InVocabulary: true}}, nil
	}

	rec := s.do(t, http.MethodGet, "/api/v1/search?q=ka", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[struct {
		Query       string               `json:"query"`
		Suggestions []suggestionResponse `json:"suggestions"`
	}](t, rec)
	require.Len(t, resp.Suggestions, 1)
	got := resp.Suggestions[0]
	assert.Equal(t, "Kain", got.Filipino)
	assert.True(t, got.InVocabulary)
	assert.Equal(t, []search.Segment{{Text: "Ka", Match: true}, {Text: "in"}}, got.Highlight.Filipino)
}

func TestSearch_CancelledContextIsInternal(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, builtIn...)
	s.search.SearchFunc = func(context.Context, string) ([]search.Suggestion, error) {
		return nil, context.Canceled
	}

	rec := s.do(t, http.MethodGet, "/api/v1/search?q=zzz", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL", errorCode(t, rec))
}

func TestSearch_SuggestEntry(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, builtIn...)
	rec := s.do(t, http.MethodGet, "/api/v1/search/entry?text=bahay", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, wordResponse{Filipino: "bahay"}, decode[wordResponse](t, rec))
}

func TestDeck_Navigation(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, builtIn...)

	card := decode[cardResponse](t, s.do(t, http.MethodGet, "/api/v1/deck", ""))
	assert.Equal(t, 0, card.Index)
	assert.Equal(t, "Kain", card.Word.Filipino)

	card = decode[cardResponse](t, s.do(t, http.MethodPost, "/api/v1/deck/previous", ""))
	assert.Equal(t, 3, card.Index)

	card = decode[cardResponse](t, s.do(t, http.MethodPost, "/api/v1/deck/next", ""))
	assert.Equal(t, 0, card.Index)

	card = decode[cardResponse](t, s.do(t, http.MethodGet, "/api/v1/deck/6", ""))
	assert.Equal(t, 2, card.Index)

	rec := s.do(t, http.MethodPost, "/api/v1/deck/random", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDeck_LastAndLocate(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, builtIn...)
	require.Equal(t, http.StatusCreated,
		s.do(t, http.MethodPost, "/api/v1/words", `{"filipino":"Bahay","english":"House"}`).Code)

	card := decode[cardResponse](t, s.do(t, http.MethodPost, "/api/v1/deck/last", ""))
	assert.Equal(t, 4, card.Index)
	assert.Equal(t, "Bahay", card.Word.Filipino)

	card = decode[cardResponse](t, s.do(t, http.MethodPost, "/api/v1/deck/locate", `{"filipino":"tulog","english":"SLEEP"}`))
	assert.Equal(t, 2, card.Index)
	assert.Equal(t, wordResponse{Filipino: "Tulog", English: "Sleep"}, card.Word)

	rec := s.do(t, http.MethodPost, "/api/v1/deck/locate", `{"filipino":"Ulan","english":"Rain"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/deck/locate", `{"filipino":"Ulan"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "VALIDATION", errorCode(t, rec))
}

func TestDeck_EmptyVocabulary(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/v1/deck", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

func TestRouter_Probes(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, builtIn...)
	for _, path := range []string{"/live", "/ready", "/health"} {
		rec := s.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, builtIn...)
	rec := s.do(t, http.MethodPut, "/api/v1/words", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
