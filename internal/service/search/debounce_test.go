package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/heartmarshall/salita/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_CoalescesRapidTriggers(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		queries []string
	)
	results := make(chan Result, 4)
	d := NewDebouncer(30*time.Millisecond,
		func(ctx context.Context, q string) ([]Suggestion, error) {
			mu.Lock()
			queries = append(queries, q)
			mu.Unlock()
			return []Suggestion{{Entry: domain.WordEntry{Source: q, Target: q}}}, nil
		},
		func(r Result) { results <- r },
	)
	defer d.Stop()

	ctx := context.Background()
	g1 := d.Trigger(ctx, "k")
	g2 := d.Trigger(ctx, "ka")
	g3 := d.Trigger(ctx, "kai")

	select {
	case r := <-results:
		assert.Equal(t, g3, r.Generation)
		assert.Equal(t, "kai", r.Query)
		require.NoError(t, r.Err)
		require.Len(t, r.Suggestions, 1)
		assert.True(t, d.IsCurrent(r.Generation))
	case <-time.After(2 * time.Second):
		t.Fatal("debounced search never fired")
	}

	select {
	case r := <-results:
		t.Fatalf("unexpected extra result: %+v", r)
	case <-time.After(100 * time.Millisecond):
	}

	assert.False(t, d.IsCurrent(g1))
	assert.False(t, d.IsCurrent(g2))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"kai"}, queries)
}

func TestDebouncer_StaleResultIsNotCurrent(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	results := make(chan Result, 2)
	d := NewDebouncer(5*time.Millisecond,
		func(ctx context.Context, q string) ([]Suggestion, error) {
			if q == "slow" {
				<-release
			}
			return nil, nil
		},
		func(r Result) { results <- r },
	)
	defer d.Stop()

	ctx := context.Background()
	slow := d.Trigger(ctx, "slow")
	time.Sleep(100 * time.Millisecond) // let the slow search start

	fast := d.Trigger(ctx, "fast")
	r := <-results
	assert.Equal(t, fast, r.Generation)
	assert.True(t, d.IsCurrent(r.Generation))

	close(release)
	r = <-results
	assert.Equal(t, slow, r.Generation)
	assert.False(t, d.IsCurrent(r.Generation))
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	t.Parallel()

	results := make(chan Result, 1)
	d := NewDebouncer(20*time.Millisecond,
		func(ctx context.Context, q string) ([]Suggestion, error) { return nil, nil },
		func(r Result) { results <- r },
	)

	gen := d.Trigger(context.Background(), "kain")
	d.Stop()

	select {
	case r := <-results:
		t.Fatalf("search fired after Stop: %+v", r)
	case <-time.After(80 * time.Millisecond):
	}
	assert.False(t, d.IsCurrent(gen))
}
