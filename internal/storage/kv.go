package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bookreader/internal/domain"
)

// stampLayout is fixed-width so updated_at strings sort in time order;
// Fingerprint relies on MAX(updated_at).
const stampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// KVStore implements domain.KVStore on top of the SQLite file.
type KVStore struct {
	db  *DB
	now func() time.Time
}

// NewKVStore creates a new KVStore.
func NewKVStore(db *DB) *KVStore {
	return &KVStore{db: db, now: time.Now}
}

func (s *KVStore) stamp() string {
	return s.now().UTC().Format(stampLayout)
}

// ── Binary area ───────────────────────────────────────────

func (s *KVStore) GetBinary(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT data FROM kv_binary WHERE key = ?`, key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("binary %q: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, storageErr("get binary", key, err)
	}
	return data, nil
}

func (s *KVStore) StatBinary(ctx context.Context, key string) (*domain.BlobInfo, error) {
	var size int64
	var updated string
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT size, updated_at FROM kv_binary WHERE key = ?`, key,
	).Scan(&size, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("binary %q: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, storageErr("stat binary", key, err)
	}
	info := &domain.BlobInfo{Key: key, Size: size}
	if t, err := time.Parse(stampLayout, updated); err == nil {
		info.UpdatedAt = t
	}
	return info, nil
}

func (s *KVStore) PutBinary(ctx context.Context, key string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	_, err := s.db.conn.ExecContext(ctx,
		`INSERT INTO kv_binary (key, data, size, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, size = excluded.size, updated_at = excluded.updated_at`,
		key, data, len(data), s.stamp(),
	)
	if err != nil {
		return storageErr("put binary", key, err)
	}
	return nil
}

func (s *KVStore) DeleteBinary(ctx context.Context, key string) error {
	if _, err := s.db.conn.ExecContext(ctx, `DELETE FROM kv_binary WHERE key = ?`, key); err != nil {
		return storageErr("delete binary", key, err)
	}
	return nil
}

// ── Text area ─────────────────────────────────────────────

func (s *KVStore) GetText(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT value FROM kv_text WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("text %q: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return "", storageErr("get text", key, err)
	}
	return value, nil
}

func (s *KVStore) PutText(ctx context.Context, key, value string) error {
	_, err := s.db.conn.ExecContext(ctx,
		`INSERT INTO kv_text (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.stamp(),
	)
	if err != nil {
		return storageErr("put text", key, err)
	}
	return nil
}

func (s *KVStore) DeleteText(ctx context.Context, key string) error {
	if _, err := s.db.conn.ExecContext(ctx, `DELETE FROM kv_text WHERE key = ?`, key); err != nil {
		return storageErr("delete text", key, err)
	}
	return nil
}

func storageErr(op, key string, err error) error {
	return fmt.Errorf("%s %q: %w: %w", op, key, domain.ErrStorageFailure, err)
}

var _ domain.KVStore = (*KVStore)(nil)
