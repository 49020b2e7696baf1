package search

import (
	"context"
	"sync"
	"time"
)

// SearchFunc runs one search. It is called from a timer goroutine.
type SearchFunc func(ctx context.Context, query string) ([]Suggestion, error)

// Result is a fired search tagged with the generation of the Trigger call
// that produced it.
type Result struct {
	Generation  uint64
	Query       string
	Suggestions []Suggestion
	Err         error
}

// Debouncer delays searches until input has been quiet for the configured
// window. A new Trigger cancels a pending one that has not fired yet; a
// search already running is not interrupted, so consumers should drop
// results for which IsCurrent is false.
type Debouncer struct {
	delay   time.Duration
	search  SearchFunc
	deliver func(Result)

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
}

// NewDebouncer creates a Debouncer that hands every fired result to deliver.
func NewDebouncer(delay time.Duration, search SearchFunc, deliver func(Result)) *Debouncer {
	return &Debouncer{
		delay:   delay,
		search:  search,
		deliver: deliver,
	}
}

// Trigger schedules a search for query and returns its generation.
func (d *Debouncer) Trigger(ctx context.Context, query string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		suggestions, err := d.search(ctx, query)
		d.deliver(Result{
			Generation:  gen,
			Query:       query,
			Suggestions: suggestions,
			Err:         err,
		})
	})
	return gen
}

// IsCurrent reports whether gen belongs to the latest Trigger call.
func (d *Debouncer) IsCurrent(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return gen == d.gen
}

// Stop cancels a pending search and invalidates outstanding generations.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
