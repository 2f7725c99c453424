package service

import (
	"context"
	"sync"
)

// inflight counts operations that must finish before the store is closed.
type inflight struct {
	mu sync.Mutex
	n  int
	wg sync.WaitGroup
}

// Begin registers one operation. Every Begin must be paired with End.
func (g *inflight) Begin() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	g.wg.Add(1)
}

// End marks one operation as finished.
func (g *inflight) End() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n--
	g.wg.Done()
}

// Len returns the number of running operations.
func (g *inflight) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}

// Wait blocks until every registered operation ends or ctx is cancelled.
func (g *inflight) Wait(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}
