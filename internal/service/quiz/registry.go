package quiz

import (
	"context"
	"log/slog"
	"slices"

	"github.com/segmentio/ksuid"

	"github.com/heartmarshall/salita/internal/domain"
)

// Registry holds quiz engines addressed by KSUID session ids for the HTTP
// API. Not safe for concurrent use.
type Registry struct {
	log         *slog.Logger
	newEngine   func() *Engine
	maxSessions int
	sessions    map[string]*Engine
	order       []string
}

// NewRegistry creates a Registry. When more than maxSessions exist the oldest
// one is dropped; zero means unlimited.
func NewRegistry(log *slog.Logger, maxSessions int, newEngine func() *Engine) *Registry {
	return &Registry{
		log:         log.With("service", "quiz_registry"),
		newEngine:   newEngine,
		maxSessions: maxSessions,
		sessions:    make(map[string]*Engine),
	}
}

// Start starts a new engine on source and registers it. A failed start
// registers nothing and leaves existing sessions alone; the oldest session is
// evicted only to make room for one that started.
func (r *Registry) Start(ctx context.Context, source domain.QuizSource) (string, *Engine, error) {
	eng := r.newEngine()
	if _, err := eng.Start(ctx, source); err != nil {
		return "", nil, err
	}

	id := ksuid.New().String()
	r.sessions[id] = eng
	r.order = append(r.order, id)

	for r.maxSessions > 0 && len(r.order) > r.maxSessions {
		oldest := r.order[0]
		r.order = r.order[1:]
		r.sessions[oldest].Close()
		delete(r.sessions, oldest)
		r.log.InfoContext(ctx, "quiz session evicted", slog.String("session_id", oldest))
	}
	return id, eng, nil
}

// Get returns the engine for id or domain.ErrNotFound.
func (r *Registry) Get(id string) (*Engine, error) {
	eng, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return eng, nil
}

// Delete closes and forgets the engine for id.
func (r *Registry) Delete(id string) error {
	eng, ok := r.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	eng.Close()
	delete(r.sessions, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return nil
}

func (r *Registry) Len() int { return len(r.sessions) }
