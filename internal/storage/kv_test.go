package storage_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"bookreader/internal/domain"
	"bookreader/internal/storage"
)

func openTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestKVStore_BinaryRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewKVStore(openTestDB(t))

	if _, err := kv.GetBinary(ctx, domain.KeyBookPDF); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}

	if err := kv.PutBinary(ctx, domain.KeyBookPDF, []byte("%PDF-1.7 first")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := kv.PutBinary(ctx, domain.KeyBookPDF, []byte("%PDF-1.7 second")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	data, err := kv.GetBinary(ctx, domain.KeyBookPDF)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != "%PDF-1.7 second" {
		t.Errorf("expected overwritten blob, got %q", data)
	}

	info, err := kv.StatBinary(ctx, domain.KeyBookPDF)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size != int64(len("%PDF-1.7 second")) {
		t.Errorf("expected size %d, got %d", len("%PDF-1.7 second"), info.Size)
	}
	if info.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be set")
	}
}

func TestKVStore_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewKVStore(openTestDB(t))

	if err := kv.DeleteBinary(ctx, domain.KeyBookPDF); err != nil {
		t.Fatalf("delete missing binary: %v", err)
	}
	if err := kv.DeleteText(ctx, domain.KeyCurrentPage); err != nil {
		t.Fatalf("delete missing text: %v", err)
	}

	if err := kv.PutText(ctx, domain.KeyCurrentPage, "12"); err != nil {
		t.Fatalf("put text: %v", err)
	}
	if err := kv.DeleteText(ctx, domain.KeyCurrentPage); err != nil {
		t.Fatalf("delete text: %v", err)
	}
	if _, err := kv.GetText(ctx, domain.KeyCurrentPage); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestKVStore_TextOverwrite(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewKVStore(openTestDB(t))

	for _, v := range []string{"[1]", "[1,2]", "[3,5,10]"} {
		if err := kv.PutText(ctx, domain.KeyBookmarks, v); err != nil {
			t.Fatalf("put %s: %v", v, err)
		}
	}
	got, err := kv.GetText(ctx, domain.KeyBookmarks)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "[3,5,10]" {
		t.Errorf("expected last write, got %q", got)
	}
}

func TestKVStore_ClosedDBIsStorageFailure(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	kv := storage.NewKVStore(db)
	db.Close()

	if err := kv.PutText(ctx, domain.KeyBookmarks, "[]"); !errors.Is(err, domain.ErrStorageFailure) {
		t.Errorf("expected ErrStorageFailure, got %v", err)
	}
	if _, err := kv.GetBinary(ctx, domain.KeyBookPDF); !errors.Is(err, domain.ErrStorageFailure) {
		t.Errorf("expected ErrStorageFailure, got %v", err)
	}
}

func TestDB_FingerprintChangesOnWrite(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	kv := storage.NewKVStore(db)

	before, err := db.Fingerprint(ctx)
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	if err := kv.PutText(ctx, domain.KeyBookmarks, "[4]"); err != nil {
		t.Fatalf("put: %v", err)
	}
	after, err := db.Fingerprint(ctx)
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	if before == after {
		t.Errorf("expected fingerprint to change, both %q", before)
	}
}

func TestDB_Compact(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	kv := storage.NewKVStore(db)

	if err := kv.PutBinary(ctx, domain.KeyBookPDF, make([]byte, 1<<16)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := kv.DeleteBinary(ctx, domain.KeyBookPDF); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := db.Compact(ctx); err != nil {
		t.Fatalf("compact: %v", err)
	}
}
