package domain

import (
	"context"
	"time"
)

// Keys of the persisted library records.
const (
	KeyBookPDF      = "bookPdf"
	KeyBookmarks    = "bookmarks"
	KeyCurrentPage  = "currentPage"
	KeyWindowWidth  = "windowWidth"
	KeyWindowHeight = "windowHeight"
)

// BlobInfo describes a stored binary value without loading it.
type BlobInfo struct {
	Key       string    `json:"key"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// KVStore is the persistence port used by the library services. It holds two
// independent areas: binary values (the PDF) and text values (bookmarks,
// current page, settings).
//
// Get and Stat return ErrNotFound for absent keys. Delete of an absent key
// is not an error. Environmental failures are wrapped with ErrStorageFailure.
type KVStore interface {
	GetBinary(ctx context.Context, key string) ([]byte, error)
	StatBinary(ctx context.Context, key string) (*BlobInfo, error)
	PutBinary(ctx context.Context, key string, data []byte) error
	DeleteBinary(ctx context.Context, key string) error

	GetText(ctx context.Context, key string) (string, error)
	PutText(ctx context.Context, key, value string) error
	DeleteText(ctx context.Context, key string) error
}
