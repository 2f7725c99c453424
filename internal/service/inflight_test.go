package service

import (
	"context"
	"testing"
	"time"
)

func TestInflight_BeginEnd(t *testing.T) {
	var g inflight

	g.Begin()
	g.Begin()
	if g.Len() != 2 {
		t.Fatalf("expected 2 in flight, got %d", g.Len())
	}
	g.End()
	g.End()
	if g.Len() != 0 {
		t.Fatalf("expected 0 in flight, got %d", g.Len())
	}

	// Wait returns immediately when nothing runs.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	g.Wait(ctx)
	if ctx.Err() != nil {
		t.Fatal("Wait blocked with nothing in flight")
	}
}

func TestInflight_Wait(t *testing.T) {
	var g inflight
	g.Begin()

	done := make(chan struct{})
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()
		g.Wait(ctx)
		close(done)
	}()

	go func() {
		time.Sleep(20 * time.Millisecond)
		g.End()
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Wait timed out")
	}
}

func TestInflight_WaitHonoursContext(t *testing.T) {
	var g inflight
	g.Begin()
	defer g.End()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	g.Wait(ctx)
	if time.Since(start) > time.Second {
		t.Error("Wait ignored context cancellation")
	}
}
