package service

import (
	"context"
	"fmt"
	"strconv"

	"bookreader/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Window Size Persistence
// ─────────────────────────────────────────────────────────────
//
// Saves and restores the main Wails window size between sessions.
// Stored as two text keys next to the library records.

// WindowSize holds the saved window dimensions.
type WindowSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WindowSettingsService persists window size between sessions.
type WindowSettingsService struct {
	store domain.KVStore
}

// NewWindowSettingsService creates a WindowSettingsService.
func NewWindowSettingsService(store domain.KVStore) *WindowSettingsService {
	return &WindowSettingsService{store: store}
}

const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 800
	minWindowWidth      = 800
	minWindowHeight     = 600
)

// LoadWindowSize returns the saved window dimensions, or sensible defaults.
func (s *WindowSettingsService) LoadWindowSize(ctx context.Context) WindowSize {
	if s.store == nil {
		return WindowSize{Width: DefaultWindowWidth, Height: DefaultWindowHeight}
	}
	w := s.loadInt(ctx, domain.KeyWindowWidth)
	h := s.loadInt(ctx, domain.KeyWindowHeight)
	if w < minWindowWidth {
		w = DefaultWindowWidth
	}
	if h < minWindowHeight {
		h = DefaultWindowHeight
	}
	return WindowSize{Width: w, Height: h}
}

// SaveWindowSize persists the current window dimensions.
func (s *WindowSettingsService) SaveWindowSize(ctx context.Context, width, height int) error {
	if s.store == nil {
		return fmt.Errorf("window settings: no store")
	}
	if err := s.store.PutText(ctx, domain.KeyWindowWidth, strconv.Itoa(width)); err != nil {
		return err
	}
	return s.store.PutText(ctx, domain.KeyWindowHeight, strconv.Itoa(height))
}

func (s *WindowSettingsService) loadInt(ctx context.Context, key string) int {
	raw, err := s.store.GetText(ctx, key)
	if err != nil {
		return 0
	}
	v, _ := strconv.Atoi(raw)
	return v
}
