package orchestrator

import (
	"sync"

	"go.uber.org/atomic"
)

// gate orders responses of one request kind. Every request takes the next
// sequence number; only a response whose number is still the latest issued
// gets applied.
type gate struct {
	mu  sync.Mutex
	seq *atomic.Uint64
}

func newGate() *gate {
	return &gate{seq: atomic.NewUint64(0)}
}

func (g *gate) issue() uint64 {
	return g.seq.Inc()
}

// apply runs fn if seq is current and reports whether it did. The check and
// fn happen under one lock, so a newer response can't interleave.
func (g *gate) apply(seq uint64, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if seq != g.seq.Load() {
		return false
	}
	fn()
	return true
}
