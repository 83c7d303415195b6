// Package debounce turns keystroke-level query input into searches: live
// input waits for a quiet period, explicit submits run at once, and both go
// through the same ordering so the newest query always wins.
package debounce

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/mrlokans/lexiclient/internal/entities"
	"github.com/mrlokans/lexiclient/internal/orchestrator"
)

const DefaultQuiet = 300 * time.Millisecond

// Searcher reserves a search's place in the search order and returns the
// call to perform. *orchestrator.Orchestrator satisfies it.
type Searcher interface {
	PrepareSearch(query string, match bool) orchestrator.SearchFunc
}

type Options struct {
	// Quiet is how long input must stay unchanged before it is searched.
	Quiet time.Duration

	// Match asks the server for exact matches only.
	Match bool

	// OnResult receives the outcome of every debounced search.
	OnResult func(query string, results []entities.LexemeSearchResult, err error)

	// OnSelect handles a suggestion the user picked.
	OnSelect func(ctx context.Context, result entities.LexemeSearchResult) error
}

type Trigger struct {
	ctx      context.Context
	searcher Searcher
	opts     Options

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// NewTrigger creates a trigger whose debounced searches run with ctx.
func NewTrigger(ctx context.Context, searcher Searcher, opts Options) *Trigger {
	if opts.Quiet <= 0 {
		opts.Quiet = DefaultQuiet
	}
	return &Trigger{ctx: ctx, searcher: searcher, opts: opts}
}

// Input records a new query value and restarts the quiet period.
func (t *Trigger) Input(query string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	gen := t.cancelLocked()
	t.timer = time.AfterFunc(t.opts.Quiet, func() { t.fire(gen, query) })
}

// Submit cancels any pending input and searches query immediately.
func (t *Trigger) Submit(ctx context.Context, query string) ([]entities.LexemeSearchResult, error) {
	return t.SubmitMatch(ctx, query, t.opts.Match)
}

// SubmitMatch is Submit with an explicit match mode for this one search.
func (t *Trigger) SubmitMatch(ctx context.Context, query string, match bool) ([]entities.LexemeSearchResult, error) {
	t.mu.Lock()
	t.cancelLocked()
	run := t.searcher.PrepareSearch(query, match)
	t.mu.Unlock()

	return run(ctx)
}

// Select cancels any pending input and hands result to OnSelect.
func (t *Trigger) Select(ctx context.Context, result entities.LexemeSearchResult) error {
	t.Cancel()
	if t.opts.OnSelect == nil {
		return nil
	}
	return t.opts.OnSelect(ctx, result)
}

// Cancel drops the pending debounced search, if any.
func (t *Trigger) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
}

// Pending reports whether a debounced search is waiting to fire.
func (t *Trigger) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

// cancelLocked stops the timer and bumps the generation so a timer that
// already fired but has not taken the lock yet becomes a no-op.
func (t *Trigger) cancelLocked() uint64 {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
	return t.gen
}

func (t *Trigger) fire(gen uint64, query string) {
	t.mu.Lock()
	if gen != t.gen || t.ctx.Err() != nil {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	run := t.searcher.PrepareSearch(query, t.opts.Match)
	t.mu.Unlock()

	results, err := run(t.ctx)
	if t.opts.OnResult != nil {
		t.opts.OnResult(query, results, err)
		return
	}
	if err != nil && !errors.Is(err, orchestrator.ErrSuperseded) {
		log.Printf("[SEARCH] Debounced search for %q failed: %v", query, err)
	}
}
