package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"bookreader/internal/domain"
	"bookreader/internal/service"
	"bookreader/internal/storage"
)

type countingCompactor struct {
	calls atomic.Int32
	err   error
}

func (c *countingCompactor) Compact(context.Context) error {
	c.calls.Add(1)
	return c.err
}

func TestMaintenance_RunOnce(t *testing.T) {
	c := &countingCompactor{}
	svc := service.NewMaintenanceService(c)
	if err := svc.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if c.calls.Load() != 1 {
		t.Errorf("expected 1 call, got %d", c.calls.Load())
	}

	c.err = errors.New("disk full")
	if err := svc.RunOnce(context.Background()); err == nil {
		t.Error("expected compaction error to be returned")
	}
}

func TestMaintenance_InvalidSchedule(t *testing.T) {
	svc := service.NewMaintenanceService(&countingCompactor{})
	if err := svc.Start(context.Background(), "every tuesday-ish"); err == nil {
		t.Error("expected invalid schedule error")
	}
	if err := svc.Start(context.Background(), ""); err != nil {
		t.Errorf("empty schedule should disable, got %v", err)
	}
	svc.Stop()
}

func TestMaintenance_ScheduledRun(t *testing.T) {
	c := &countingCompactor{}
	svc := service.NewMaintenanceService(c)
	if err := svc.Start(context.Background(), "@every 1s"); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer svc.Stop()

	deadline := time.After(3 * time.Second)
	for c.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("scheduled compaction never ran")
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestLibraryWatcher_DetectsForeignWrite(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "library.db")
	db, err := storage.New(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	em := &service.MockEmitter{}
	w := service.NewLibraryWatcher(dbPath, db.Fingerprint, em)
	w.Touch(ctx)

	if w.Check(ctx) {
		t.Fatal("no write happened, expected no change")
	}

	// A second connection to the same file stands in for another process.
	other, err := storage.New(dbPath)
	if err != nil {
		t.Fatalf("open second db: %v", err)
	}
	defer other.Close()
	if err := storage.NewKVStore(other).PutText(ctx, domain.KeyBookmarks, "[1]"); err != nil {
		t.Fatalf("foreign write: %v", err)
	}

	if !w.Check(ctx) {
		t.Fatal("expected foreign write to be detected")
	}
	if len(em.Events) != 1 || em.Events[0].Event != service.EventLibraryChanged {
		t.Errorf("expected one library:changed event, got %+v", em.Events)
	}
	if w.Check(ctx) {
		t.Error("change must be reported once")
	}
}

func TestLibraryWatcher_StartStop(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "library.db")
	db, err := storage.New(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	w := service.NewLibraryWatcher(dbPath, db.Fingerprint, service.NoopEmitter{})
	w.SetInterval(10 * time.Millisecond)
	w.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	w.Stop()
	w.Stop()
}
