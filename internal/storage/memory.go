package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bookreader/internal/domain"
)

// MemoryKV is an in-memory domain.KVStore used by service tests.
// FailWrites and FailReads simulate an unavailable store.
type MemoryKV struct {
	mu     sync.Mutex
	binary map[string]memBlob
	text   map[string]string

	// Writes counts successful Put/Delete calls.
	Writes int

	FailWrites error
	FailReads  error
}

type memBlob struct {
	data    []byte
	updated time.Time
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{binary: map[string]memBlob{}, text: map[string]string{}}
}

func (m *MemoryKV) readErr(op, key string) error {
	if m.FailReads != nil {
		return storageErr(op, key, m.FailReads)
	}
	return nil
}

func (m *MemoryKV) writeErr(op, key string) error {
	if m.FailWrites != nil {
		return storageErr(op, key, m.FailWrites)
	}
	return nil
}

func (m *MemoryKV) GetBinary(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.readErr("get binary", key); err != nil {
		return nil, err
	}
	b, ok := m.binary[key]
	if !ok {
		return nil, fmt.Errorf("binary %q: %w", key, domain.ErrNotFound)
	}
	return append([]byte(nil), b.data...), nil
}

func (m *MemoryKV) StatBinary(_ context.Context, key string) (*domain.BlobInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.readErr("stat binary", key); err != nil {
		return nil, err
	}
	b, ok := m.binary[key]
	if !ok {
		return nil, fmt.Errorf("binary %q: %w", key, domain.ErrNotFound)
	}
	return &domain.BlobInfo{Key: key, Size: int64(len(b.data)), UpdatedAt: b.updated}, nil
}

func (m *MemoryKV) PutBinary(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.writeErr("put binary", key); err != nil {
		return err
	}
	m.binary[key] = memBlob{data: append([]byte(nil), data...), updated: time.Now()}
	m.Writes++
	return nil
}

func (m *MemoryKV) DeleteBinary(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.writeErr("delete binary", key); err != nil {
		return err
	}
	delete(m.binary, key)
	m.Writes++
	return nil
}

func (m *MemoryKV) GetText(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.readErr("get text", key); err != nil {
		return "", err
	}
	v, ok := m.text[key]
	if !ok {
		return "", fmt.Errorf("text %q: %w", key, domain.ErrNotFound)
	}
	return v, nil
}

func (m *MemoryKV) PutText(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.writeErr("put text", key); err != nil {
		return err
	}
	m.text[key] = value
	m.Writes++
	return nil
}

func (m *MemoryKV) DeleteText(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.writeErr("delete text", key); err != nil {
		return err
	}
	delete(m.text, key)
	m.Writes++
	return nil
}

var _ domain.KVStore = (*MemoryKV)(nil)
