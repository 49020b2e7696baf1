package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/salita/internal/domain"
	"github.com/heartmarshall/salita/internal/service/quiz"
)

type quizRegistry interface {
	Start(ctx context.Context, source domain.QuizSource) (string, *quiz.Engine, error)
	Get(id string) (*quiz.Engine, error)
	Delete(id string) error
}

// QuizHandler serves quiz sessions. Each session is a quiz.Engine held in the
// registry under a KSUID.
type QuizHandler struct {
	sessions quizRegistry
	log      *slog.Logger
}

// NewQuizHandler creates a QuizHandler.
func NewQuizHandler(sessions quizRegistry, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{sessions: sessions, log: logger.With("handler", "quiz")}
}

type startQuizRequest struct {
	Source string `json:"source"`
}

type answerRequest struct {
	Option string `json:"option"`
}

type questionResponse struct {
	Number  int      `json:"number"`
	Total   int      `json:"total"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type summaryResponse struct {
	Score        int    `json:"score"`
	Total        int    `json:"total"`
	Text         string `json:"text"`
	StoppedEarly bool   `json:"stopped_early"`
}

type sessionResponse struct {
	ID       string            `json:"id"`
	State    string            `json:"state"`
	Source   string            `json:"source"`
	Question *questionResponse `json:"question,omitempty"`
	Answered bool              `json:"answered"`
	Summary  *summaryResponse  `json:"summary,omitempty"`
}

type answerResponse struct {
	Correct         bool            `json:"correct"`
	CorrectAnswer   string          `json:"correct_answer"`
	AlreadyAnswered bool            `json:"already_answered"`
	Session         sessionResponse `json:"session"`
}

func toSessionResponse(id string, eng *quiz.Engine) sessionResponse {
	resp := sessionResponse{
		ID:       id,
		State:    eng.State().String(),
		Source:   eng.Source().String(),
		Answered: eng.Answered(),
	}
	if q, ok := eng.CurrentQuestion(); ok {
		resp.Question = &questionResponse{
			Number:  q.Number,
			Total:   q.Total,
			Prompt:  q.Prompt,
			Options: q.Options,
		}
	}
	if eng.State() == domain.QuizStateFinished {
		s := eng.Summary()
		resp.Summary = &summaryResponse{
			Score:        s.Score,
			Total:        s.Total,
			Text:         s.String(),
			StoppedEarly: s.StoppedEarly,
		}
	}
	return resp
}

// Start handles POST /quiz. An empty body or source starts over all words.
func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startQuizRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, err)
		return
	}
	source := domain.QuizSourceAll
	if req.Source != "" {
		source = domain.QuizSource(strings.ToUpper(strings.TrimSpace(req.Source)))
	}

	id, eng, err := h.sessions.Start(r.Context(), source)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(id, eng))
}

// Get handles GET /quiz/{id}.
func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, eng, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(id, eng))
}

// Answer handles POST /quiz/{id}/answer.
func (h *QuizHandler) Answer(w http.ResponseWriter, r *http.Request) {
	id, eng, ok := h.session(w, r)
	if !ok {
		return
	}
	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}

	outcome, err := eng.Answer(req.Option)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, answerResponse{
		Correct:         outcome.Correct,
		CorrectAnswer:   outcome.CorrectAnswer,
		AlreadyAnswered: outcome.AlreadyAnswered,
		Session:         toSessionResponse(id, eng),
	})
}

// Advance handles POST /quiz/{id}/advance.
func (h *QuizHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, eng, ok := h.session(w, r)
	if !ok {
		return
	}
	if _, _, err := eng.Advance(); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(id, eng))
}

// Stop handles POST /quiz/{id}/stop.
func (h *QuizHandler) Stop(w http.ResponseWriter, r *http.Request) {
	id, eng, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := eng.StopEarly(r.Context()); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(id, eng))
}

// Restart handles POST /quiz/{id}/restart.
func (h *QuizHandler) Restart(w http.ResponseWriter, r *http.Request) {
	id, eng, ok := h.session(w, r)
	if !ok {
		return
	}
	if _, err := eng.Restart(r.Context()); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(id, eng))
}

// Mistakes handles GET /quiz/{id}/mistakes. Only finished sessions have a
// review.
func (h *QuizHandler) Mistakes(w http.ResponseWriter, r *http.Request) {
	id, eng, ok := h.session(w, r)
	if !ok {
		return
	}
	mistakes, err := eng.MistakesReview()
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"mistakes": toWordResponses(mistakes),
		"session":  toSessionResponse(id, eng),
	})
}

// Delete handles DELETE /quiz/{id}.
func (h *QuizHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(r.PathValue("id")); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *QuizHandler) session(w http.ResponseWriter, r *http.Request) (string, *quiz.Engine, bool) {
	id := r.PathValue("id")
	eng, err := h.sessions.Get(id)
	if err != nil {
		respondError(w, r, h.log, err)
		return "", nil, false
	}
	return id, eng, true
}
